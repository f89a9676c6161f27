package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist/internal/client/view"
	"todolist/internal/core/domain"
)

// fakeAPI scripts server behavior per call. A nil err means success.
type fakeAPI struct {
	todos []domain.Todo

	createErr error
	updateErr error
	deleteErr error

	created domain.Todo
	updated domain.Todo
}

func (f *fakeAPI) List(ctx context.Context) ([]domain.Todo, error) {
	return f.todos, nil
}

func (f *fakeAPI) Create(ctx context.Context, payload CreatePayload) (domain.Todo, error) {
	if f.createErr != nil {
		return domain.Todo{}, f.createErr
	}

	return f.created, nil
}

func (f *fakeAPI) Update(ctx context.Context, id uuid.UUID, payload UpdatePayload) (domain.Todo, error) {
	if f.updateErr != nil {
		return domain.Todo{}, f.updateErr
	}

	return f.updated, nil
}

func (f *fakeAPI) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteErr
}

func serverTodo(title string) domain.Todo {
	now := time.Now().UTC()

	return domain.Todo{
		ID:        uuid.New(),
		Title:     title,
		Status:    domain.StatusTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStoreRefresh(t *testing.T) {
	api := &fakeAPI{todos: []domain.Todo{serverTodo("a"), serverTodo("b")}}
	store := NewStore(api)

	require.NoError(t, store.Refresh(context.Background()))

	assert.Len(t, store.Items(), 2)
	assert.False(t, store.LastSyncedAt().IsZero())
}

func TestStoreCreateReconcilesPlaceholder(t *testing.T) {
	server := serverTodo("Write report")
	api := &fakeAPI{created: server}
	store := NewStore(api)

	created, err := store.Create(context.Background(), CreatePayload{Title: "Write report"})

	require.NoError(t, err)
	assert.Equal(t, server.ID, created.ID)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, server.ID, items[0].ID, "placeholder id must be replaced by the server id")
}

func TestStoreCreateRollsBack(t *testing.T) {
	existing := serverTodo("already here")
	api := &fakeAPI{todos: []domain.Todo{existing}, createErr: errors.New("boom")}
	store := NewStore(api)
	require.NoError(t, store.Refresh(context.Background()))

	before := store.Items()

	_, err := store.Create(context.Background(), CreatePayload{Title: "doomed"})

	assert.Error(t, err)
	assert.Equal(t, before, store.Items())
}

func TestStoreUpdateAppliesServerCopy(t *testing.T) {
	existing := serverTodo("Write report")
	server := existing
	server.Status = domain.StatusDoing

	api := &fakeAPI{todos: []domain.Todo{existing}, updated: server}
	store := NewStore(api)
	require.NoError(t, store.Refresh(context.Background()))

	status := domain.StatusDoing
	updated, err := store.Update(context.Background(), existing.ID, UpdatePayload{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDoing, updated.Status)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.StatusDoing, items[0].Status)
}

func TestStoreUpdateRollsBackToExactSnapshot(t *testing.T) {
	existing := serverTodo("Write report")
	api := &fakeAPI{todos: []domain.Todo{existing}, updateErr: errors.New("boom")}
	store := NewStore(api)
	require.NoError(t, store.Refresh(context.Background()))

	before := store.Items()

	status := domain.StatusDone
	title := "hijacked"
	_, err := store.Update(context.Background(), existing.ID, UpdatePayload{
		Title:  &title,
		Status: &status,
	})

	assert.Error(t, err)
	assert.Equal(t, before, store.Items())
}

func TestStoreDeleteRemovesLocally(t *testing.T) {
	keep := serverTodo("keep")
	drop := serverTodo("drop")

	api := &fakeAPI{todos: []domain.Todo{keep, drop}}
	store := NewStore(api)
	require.NoError(t, store.Refresh(context.Background()))

	require.NoError(t, store.Delete(context.Background(), drop.ID))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ID)
}

func TestStoreDeleteRollsBack(t *testing.T) {
	existing := serverTodo("sticky")
	api := &fakeAPI{todos: []domain.Todo{existing}, deleteErr: errors.New("boom")}
	store := NewStore(api)
	require.NoError(t, store.Refresh(context.Background()))

	before := store.Items()

	err := store.Delete(context.Background(), existing.ID)

	assert.Error(t, err)
	assert.Equal(t, before, store.Items())
}

func TestStoreVisibleUsesFilter(t *testing.T) {
	done := serverTodo("done thing")
	done.Status = domain.StatusDone

	api := &fakeAPI{todos: []domain.Todo{serverTodo("open thing"), done}}
	store := NewStore(api)
	require.NoError(t, store.Refresh(context.Background()))

	visible := store.Visible(view.Filter{Status: view.StatusDone})

	require.Len(t, visible, 1)
	assert.Equal(t, done.ID, visible[0].ID)
}

func TestStoreItemsReturnsCopy(t *testing.T) {
	api := &fakeAPI{todos: []domain.Todo{serverTodo("a")}}
	store := NewStore(api)
	require.NoError(t, store.Refresh(context.Background()))

	items := store.Items()
	items[0].Title = "mutated"

	assert.Equal(t, "a", store.Items()[0].Title)
}
