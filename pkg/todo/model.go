// Package todo implements the todo entity, its request/response schemas
// and the CRUD operations over the datastore.
package todo

import (
	"encoding/json"
	"errors"
	"time"
)

// Todo represents a todo item as persisted and as returned to clients.
type Todo struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateTodoRequest is the POST /todos body.
type CreateTodoRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// UpdateTodoRequest is the PUT /todos/:id body. Every field is optional;
// only fields present in the JSON object are applied. Presence is tracked
// separately from value so "field": null is distinguishable from an
// omitted field: a null description clears the column, while a null title
// or completed is rejected because both are NOT NULL.
type UpdateTodoRequest struct {
	Title       *string
	Description *string
	Completed   *bool

	TitleSet       bool
	DescriptionSet bool
	CompletedSet   bool
}

// UnmarshalJSON decodes through a raw field map to record which fields
// the client actually supplied.
func (r *UpdateTodoRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	// A literal null decodes into a nil map without error; a patch must
	// be a JSON object.
	if raw == nil {
		return errors.New("expected a JSON object")
	}

	if v, ok := raw["title"]; ok {
		r.TitleSet = true
		if err := json.Unmarshal(v, &r.Title); err != nil {
			return err
		}
	}
	if v, ok := raw["description"]; ok {
		r.DescriptionSet = true
		if err := json.Unmarshal(v, &r.Description); err != nil {
			return err
		}
	}
	if v, ok := raw["completed"]; ok {
		r.CompletedSet = true
		if err := json.Unmarshal(v, &r.Completed); err != nil {
			return err
		}
	}
	return nil
}

// Empty reports whether the request carries no fields at all.
func (r *UpdateTodoRequest) Empty() bool {
	return !r.TitleSet && !r.DescriptionSet && !r.CompletedSet
}
