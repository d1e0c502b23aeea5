// Package tasks is a complete task-tracker resource built on the crudkit
// processor, serializer and resource packages. It ships three interchangeable
// stores (memory, SQLite, PostgreSQL), an optional Redis read-through cache,
// and a Router that mounts the full CRUD surface on chi.
package tasks

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/crudkit/serializer"
)

// Task statuses accepted by the schema.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
	StatusArchived   = "archived"
)

// Task is the domain object exposed by the resource.
type Task struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTask builds a pending task with a fresh ID and timestamps.
func NewTask(title, notes string) Task {
	now := time.Now().UTC()
	id := uuid.NewString()
	return Task{
		ID:        id,
		URL:       taskURL(id),
		Title:     title,
		Notes:     notes,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func taskURL(id string) string {
	return "/tasks/" + id
}

// Schema declares the request body contract shared by create and update.
func Schema() *serializer.Schema[Task] {
	return serializer.New[Task](
		serializer.Field{
			Name:     "title",
			Required: true,
			Rules:    []serializer.Rule{serializer.NonEmpty(), serializer.MaxLen(200)},
		},
		serializer.Field{
			Name:  "notes",
			Rules: []serializer.Rule{serializer.MaxLen(2000)},
		},
		serializer.Field{
			Name:  "status",
			Rules: []serializer.Rule{serializer.OneOf(StatusPending, StatusInProgress, StatusDone, StatusArchived)},
		},
	)
}

// applyPayload copies validated body fields onto the task. Absent keys leave
// the current value alone; replace semantics for full updates are handled by
// the caller resetting optional fields first.
func applyPayload(t *Task, p serializer.Payload) {
	if v, ok := p["title"].(string); ok {
		t.Title = v
	}
	if v, ok := p["notes"].(string); ok {
		t.Notes = v
	}
	if v, ok := p["status"].(string); ok {
		t.Status = v
	}
}
