package request

import (
	"encoding/json"

	"todolist/internal/core/domain"
)

type SignUpRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"required,min=6,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"required,min=6,max=100"`
}

type CreateTodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
}

// UpdateTodoRequest is a partial update. Absent fields, JSON null and zero
// values are three different things here, so decoding goes through a raw
// message map to keep per-field presence.
type UpdateTodoRequest struct {
	Title       *string
	Description *string
	Status      *string
	Deadline    *string

	HasTitle       bool
	HasDescription bool
	HasStatus      bool
	HasDeadline    bool

	// DeadlineNull is set when the payload carries "deadline": null,
	// which clears the stored deadline.
	DeadlineNull bool
}

func (r *UpdateTodoRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if msg, ok := raw["title"]; ok {
		r.HasTitle = true

		if isNull(msg) {
			return domain.NewFieldError("title", "Title must be a non-empty string")
		}

		if err := json.Unmarshal(msg, &r.Title); err != nil {
			return domain.NewFieldError("title", "Title must be a non-empty string")
		}
	}

	if msg, ok := raw["description"]; ok {
		r.HasDescription = true

		if isNull(msg) {
			return domain.NewFieldError("description", "Description must be a string")
		}

		if err := json.Unmarshal(msg, &r.Description); err != nil {
			return domain.NewFieldError("description", "Description must be a string")
		}
	}

	if msg, ok := raw["status"]; ok {
		r.HasStatus = true

		if isNull(msg) {
			return domain.NewFieldError("status", "Invalid todo status")
		}

		if err := json.Unmarshal(msg, &r.Status); err != nil {
			return domain.NewFieldError("status", "Invalid todo status")
		}
	}

	if msg, ok := raw["deadline"]; ok {
		r.HasDeadline = true

		if isNull(msg) {
			r.DeadlineNull = true
		} else if err := json.Unmarshal(msg, &r.Deadline); err != nil {
			return domain.NewFieldError("deadline", "Invalid deadline")
		}
	}

	return nil
}

func isNull(msg json.RawMessage) bool {
	return string(msg) == "null"
}
