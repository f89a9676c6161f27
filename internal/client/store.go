package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"todolist/internal/client/view"
	"todolist/internal/core/domain"
	"todolist/internal/core/util"
)

// Store is a single-writer cache of server truth for one view session.
// Every mutation is optimistic: the local list changes first, the server
// call follows, and a failure restores the exact snapshot taken before
// the change. The mutex serializes mutations so two rollbacks can never
// interleave their snapshots.
type Store struct {
	mu           sync.Mutex
	api          API
	items        []domain.Todo
	lastSyncedAt time.Time
	logger       zerolog.Logger
}

func NewStore(api API) *Store {
	return &Store{
		api:    api,
		logger: zerolog.Nop(),
	}
}

func (s *Store) WithLogger(logger zerolog.Logger) *Store {
	s.logger = logger
	return s
}

// Refresh replaces the local list with server truth.
func (s *Store) Refresh(ctx context.Context) error {
	todos, err := s.api.List(ctx)

	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = todos
	s.lastSyncedAt = time.Now()

	return nil
}

// Items returns a copy of the canonical list.
func (s *Store) Items() []domain.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneTodos(s.items)
}

func (s *Store) LastSyncedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSyncedAt
}

// Visible computes the derived view over the current list.
func (s *Store) Visible(f view.Filter) []domain.Todo {
	s.mu.Lock()
	items := cloneTodos(s.items)
	s.mu.Unlock()

	return view.Project(items, f)
}

// Create prepends an optimistic placeholder, then reconciles it with the
// server-assigned todo or rolls back.
func (s *Store) Create(ctx context.Context, payload CreatePayload) (domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := cloneTodos(s.items)

	placeholder := domain.Todo{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(payload.Title),
		Description: payload.Description,
		Status:      domain.StatusTodo,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if payload.Deadline != nil {
		if deadline, err := util.ParseDeadline(*payload.Deadline); err == nil {
			placeholder.Deadline = &deadline
		}
	}

	s.items = append([]domain.Todo{placeholder}, s.items...)

	created, err := s.api.Create(ctx, payload)

	if err != nil {
		s.logger.Warn().Err(err).Msg("create failed, rolling back")
		s.items = snapshot

		return domain.Todo{}, err
	}

	// Reconcile: swap the placeholder for server truth.
	for i := range s.items {
		if s.items[i].ID == placeholder.ID {
			s.items[i] = created
			break
		}
	}

	return created, nil
}

// Update applies the patch locally, then reconciles with the server copy
// or rolls back.
func (s *Store) Update(ctx context.Context, id uuid.UUID, payload UpdatePayload) (domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := cloneTodos(s.items)

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}

		if payload.Title != nil {
			s.items[i].Title = strings.TrimSpace(*payload.Title)
		}

		if payload.Description != nil {
			s.items[i].Description = payload.Description
		}

		if payload.Status != nil {
			s.items[i].Status = *payload.Status
		}

		if payload.Deadline != nil {
			if deadline, err := util.ParseDeadline(*payload.Deadline); err == nil {
				s.items[i].Deadline = &deadline
			}
		}

		if payload.ClearDeadline {
			s.items[i].Deadline = nil
		}

		break
	}

	updated, err := s.api.Update(ctx, id, payload)

	if err != nil {
		s.logger.Warn().Err(err).Str("id", id.String()).Msg("update failed, rolling back")
		s.items = snapshot

		return domain.Todo{}, err
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = updated
			break
		}
	}

	return updated, nil
}

// Delete removes the todo locally, then confirms with the server or
// rolls back.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := cloneTodos(s.items)

	kept := s.items[:0:0]

	for _, t := range s.items {
		if t.ID != id {
			kept = append(kept, t)
		}
	}

	s.items = kept

	if err := s.api.Delete(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("id", id.String()).Msg("delete failed, rolling back")
		s.items = snapshot

		return err
	}

	return nil
}

func cloneTodos(in []domain.Todo) []domain.Todo {
	out := make([]domain.Todo, len(in))
	copy(out, in)

	return out
}
