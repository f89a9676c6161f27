package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"todolist/internal/core/domain"
)

func TestUpdateTodoRequestPresence(t *testing.T) {
	var req UpdateTodoRequest

	err := json.Unmarshal([]byte(`{"status": "DONE"}`), &req)

	assert.NoError(t, err)
	assert.True(t, req.HasStatus)
	assert.Equal(t, "DONE", *req.Status)
	assert.False(t, req.HasTitle)
	assert.False(t, req.HasDescription)
	assert.False(t, req.HasDeadline)
}

func TestUpdateTodoRequestEmptyBody(t *testing.T) {
	var req UpdateTodoRequest

	err := json.Unmarshal([]byte(`{}`), &req)

	assert.NoError(t, err)
	assert.False(t, req.HasTitle || req.HasDescription || req.HasStatus || req.HasDeadline)
}

func TestUpdateTodoRequestNullTitle(t *testing.T) {
	var req UpdateTodoRequest

	err := json.Unmarshal([]byte(`{"title": null}`), &req)

	assert.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestUpdateTodoRequestWrongTypes(t *testing.T) {
	cases := map[string]string{
		"title":       `{"title": 42}`,
		"description": `{"description": ["x"]}`,
		"status":      `{"status": 1}`,
		"deadline":    `{"deadline": {}}`,
	}

	for field, body := range cases {
		var req UpdateTodoRequest

		err := json.Unmarshal([]byte(body), &req)

		assert.Error(t, err, "field %s", field)
		assert.True(t, domain.IsValidation(err), "field %s", field)
	}
}

func TestUpdateTodoRequestNullDeadlineClears(t *testing.T) {
	var req UpdateTodoRequest

	err := json.Unmarshal([]byte(`{"deadline": null}`), &req)

	assert.NoError(t, err)
	assert.True(t, req.HasDeadline)
	assert.True(t, req.DeadlineNull)
	assert.Nil(t, req.Deadline)
}
