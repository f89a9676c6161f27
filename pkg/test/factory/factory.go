package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"todolist/internal/core/domain"
)

// merge flattens defaults and custom data into the single override map
// Build consumes; later maps win.
func merge(defaults map[string]any, customData []map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults))

	for k, v := range defaults {
		merged[k] = v
	}

	for _, data := range customData {
		for k, v := range data {
			merged[k] = v
		}
	}

	return merged
}

// NewTodo builds a todo with sane defaults; custom data wins on conflict.
func NewTodo(customData ...map[string]any) domain.Todo {
	defaults := map[string]any{
		"ID":        uuid.New(),
		"Status":    domain.StatusTodo,
		"CreatedAt": time.Now().UTC(),
		"UpdatedAt": time.Now().UTC(),
	}

	instance := fab.New(domain.Todo{})

	return instance.Build(merge(defaults, customData))
}

func NewUser(customData ...map[string]any) domain.User {
	encrypted, _ := bcrypt.GenerateFromPassword([]byte("12345678"), bcrypt.DefaultCost)

	defaults := map[string]any{
		"UUID":              uuid.New(),
		"EncryptedPassword": string(encrypted),
		"CreatedAt":         time.Now().UTC(),
		"UpdatedAt":         time.Now().UTC(),
	}

	instance := fab.New(domain.User{})

	return instance.Build(merge(defaults, customData))
}
