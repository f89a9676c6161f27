package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist/internal/core/domain"
)

func TestUpdatePayloadBody(t *testing.T) {
	status := domain.StatusDone

	body := UpdatePayload{Status: &status}.body()

	assert.Equal(t, map[string]any{"status": "DONE"}, body)

	body = UpdatePayload{ClearDeadline: true}.body()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"deadline": null}`, string(raw))
}

func TestHTTPClientList(t *testing.T) {
	id := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/todos", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"id":         id.String(),
				"title":      "Write report",
				"status":     "TODO",
				"created_at": "2026-08-01T10:00:00Z",
				"updated_at": "2026-08-01T10:00:00Z",
			},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "secret-token")

	todos, err := client.List(context.Background())

	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, id, todos[0].ID)
	assert.Equal(t, domain.StatusTodo, todos[0].Status)
	assert.Nil(t, todos[0].Deadline)
}

func TestHTTPClientUpdateSendsNullDeadline(t *testing.T) {
	id := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/todos/"+id.String(), r.URL.Path)

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		raw, present := body["deadline"]
		assert.True(t, present)
		assert.Equal(t, "null", string(raw))

		json.NewEncoder(w).Encode(map[string]any{
			"id":         id.String(),
			"title":      "Taxes",
			"status":     "TODO",
			"created_at": "2026-08-01T10:00:00Z",
			"updated_at": "2026-08-01T10:05:00Z",
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "secret-token")

	updated, err := client.Update(context.Background(), id, UpdatePayload{ClearDeadline: true})

	require.NoError(t, err)
	assert.Nil(t, updated.Deadline)
}

func TestHTTPClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":"NOT_FOUND"}}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "secret-token")

	err := client.Delete(context.Background(), uuid.New())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "NOT_FOUND")
}
