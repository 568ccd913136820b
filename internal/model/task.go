package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidImportance = errors.New("model: invalid task importance")
	ErrInvalidDueDate    = errors.New("model: invalid task due date")
)

const (
	ImportanceHighest = 1
	ImportanceLowest  = 5
	ImportanceDefault = 3
)

// Task is a dated, prioritized to-do item. Field names and encodings match
// previously saved data: dueDate is always YYYY-MM-DD.
type Task struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DueDate    string `json:"dueDate"`
	Importance int    `json:"importance"`
	Completed  bool   `json:"completed"`
}

// TaskPatch carries the fields of an update. Nil fields are left untouched.
type TaskPatch struct {
	Name       *string
	DueDate    *string
	Importance *int
	Completed  *bool
}

func (p TaskPatch) IsEmpty() bool {
	return p.Name == nil && p.DueDate == nil && p.Importance == nil && p.Completed == nil
}

// Apply returns a copy of t with the patch merged in.
func (p TaskPatch) Apply(t Task) Task {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Importance != nil {
		t.Importance = ClampImportance(*p.Importance)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

func ValidImportance(v int) bool {
	return v >= ImportanceHighest && v <= ImportanceLowest
}

func ClampImportance(v int) int {
	switch {
	case v < ImportanceHighest:
		return ImportanceHighest
	case v > ImportanceLowest:
		return ImportanceLowest
	default:
		return v
	}
}

// ImportanceLabel renders the P1..P5 label used across the UI.
func ImportanceLabel(v int) string {
	return fmt.Sprintf("P%d", ClampImportance(v))
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("model: task name is required")
	}
	if !IsISODate(t.DueDate) {
		return fmt.Errorf("%w: %q", ErrInvalidDueDate, t.DueDate)
	}
	if !ValidImportance(t.Importance) {
		return fmt.Errorf("%w: %d", ErrInvalidImportance, t.Importance)
	}
	return nil
}
