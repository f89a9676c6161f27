package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusTodo  Status = "TODO"
	StatusDoing Status = "DOING"
	StatusDone  Status = "DONE"
)

// ParseStatus accepts the three literal enum values, case-sensitive.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusTodo, StatusDoing, StatusDone:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid todo status: %q", s)
	}
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

func (s Status) String() string {
	return string(s)
}

type Todo struct {
	ID          uuid.UUID
	Title       string `validate:"required,max=255"`
	Description *string
	Status      Status
	Deadline    *time.Time
	UserID      int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Todo) BelongsToUser(userID int) bool {
	return t.UserID == userID
}

// MatchesSearch reports whether the title or description contains the
// query, case-insensitively. A nil description never matches.
func (t *Todo) MatchesSearch(query string) bool {
	if query == "" {
		return true
	}

	q := strings.ToLower(query)

	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}

	if t.Description != nil && strings.Contains(strings.ToLower(*t.Description), q) {
		return true
	}

	return false
}

// DeadlineOrZero is the sort key for deadline ordering. Todos without a
// deadline sort as the minimum value.
func (t *Todo) DeadlineOrZero() time.Time {
	if t.Deadline == nil {
		return time.Time{}
	}

	return *t.Deadline
}

// TodoPatch carries a partial update. A nil field means "leave untouched",
// never "reset". ClearDeadline distinguishes removing the deadline from
// not mentioning it.
type TodoPatch struct {
	Title         *string
	Description   *string
	Status        *Status
	Deadline      *time.Time
	ClearDeadline bool
}

func (p *TodoPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Status == nil &&
		p.Deadline == nil &&
		!p.ClearDeadline
}

// Apply copies the present fields onto the todo. ID, UserID and CreatedAt
// are never touched.
func (p *TodoPatch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}

	if p.Description != nil {
		t.Description = p.Description
	}

	if p.Status != nil {
		t.Status = *p.Status
	}

	if p.Deadline != nil {
		t.Deadline = p.Deadline
	}

	if p.ClearDeadline {
		t.Deadline = nil
	}
}
