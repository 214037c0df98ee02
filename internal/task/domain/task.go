package domain

import (
	"errors"
	"time"
)

// Task is a unit of work inside a space.
type Task struct {
	ID          string
	SpaceID     string
	Title       string
	Description string
	Status      Status
	AssigneeID  string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Validate validates the task for persistence.
func (t *Task) Validate() error {
	if t.Title == "" {
		return errors.New("title is required")
	}
	if t.SpaceID == "" {
		return errors.New("space_id is required")
	}
	if t.Status == "" {
		t.Status = StatusTodo
	}
	switch t.Status {
	case StatusTodo, StatusInProgress, StatusDone:
	default:
		return errors.New("invalid status")
	}
	return nil
}
