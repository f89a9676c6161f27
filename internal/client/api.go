// Package client is the consumer side of the todo API: a thin HTTP
// client plus a session-scoped store that applies optimistic mutations
// and keeps a filtered, sorted view of the fetched list.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"todolist/internal/core/domain"
)

// CreatePayload mirrors the POST /todos body.
type CreatePayload struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
}

// UpdatePayload mirrors the PATCH body. Only non-nil fields are sent;
// ClearDeadline sends an explicit null.
type UpdatePayload struct {
	Title         *string
	Description   *string
	Status        *domain.Status
	Deadline      *string
	ClearDeadline bool
}

func (p UpdatePayload) body() map[string]any {
	body := map[string]any{}

	if p.Title != nil {
		body["title"] = *p.Title
	}

	if p.Description != nil {
		body["description"] = *p.Description
	}

	if p.Status != nil {
		body["status"] = p.Status.String()
	}

	if p.Deadline != nil {
		body["deadline"] = *p.Deadline
	}

	if p.ClearDeadline {
		body["deadline"] = nil
	}

	return body
}

// API is the remote surface the store mutates against.
type API interface {
	List(ctx context.Context) ([]domain.Todo, error)
	Create(ctx context.Context, payload CreatePayload) (domain.Todo, error)
	Update(ctx context.Context, id uuid.UUID, payload UpdatePayload) (domain.Todo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type todoWire struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Deadline    *time.Time `json:"deadline"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (w todoWire) toDomain() domain.Todo {
	return domain.Todo{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Status:      domain.Status(w.Status),
		Deadline:    w.Deadline,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// HTTPClient talks to the todo API with a bearer token.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
	logger  zerolog.Logger
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  zerolog.New(os.Stderr).With().Timestamp().Str("component", "client").Logger(),
	}
}

func (c *HTTPClient) List(ctx context.Context) ([]domain.Todo, error) {
	var wire []todoWire

	if err := c.do(ctx, http.MethodGet, "/todos", nil, &wire); err != nil {
		return nil, err
	}

	todos := make([]domain.Todo, 0, len(wire))

	for _, w := range wire {
		todos = append(todos, w.toDomain())
	}

	return todos, nil
}

func (c *HTTPClient) Create(ctx context.Context, payload CreatePayload) (domain.Todo, error) {
	var wire todoWire

	if err := c.do(ctx, http.MethodPost, "/todos", payload, &wire); err != nil {
		return domain.Todo{}, err
	}

	return wire.toDomain(), nil
}

func (c *HTTPClient) Update(ctx context.Context, id uuid.UUID, payload UpdatePayload) (domain.Todo, error) {
	var wire todoWire

	if err := c.do(ctx, http.MethodPatch, "/todos/"+id.String(), payload.body(), &wire); err != nil {
		return domain.Todo{}, err
	}

	return wire.toDomain(), nil
}

func (c *HTTPClient) Delete(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+id.String(), nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)

		if err != nil {
			return err
		}

		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)

	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)

		c.logger.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("request failed")

		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}
