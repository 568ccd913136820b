package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidCategory = errors.New("model: invalid activity category")

// TimestampLayout always writes milliseconds, the way saved data has
// encoded them from the start ("2024-06-10T09:00:00.120Z").
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type Category string

const (
	CategorySchool Category = "school"
	CategoryWork   Category = "work"
	CategoryOther  Category = "other"
)

// Categories lists the closed category set in display and stacking order.
var Categories = []Category{CategorySchool, CategoryWork, CategoryOther}

func (c Category) IsValid() bool {
	switch c {
	case CategorySchool, CategoryWork, CategoryOther:
		return true
	default:
		return false
	}
}

func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
	}
	return c, nil
}

// Activity is a logged record of focused time. Timestamp is the moment the
// activity was committed, not when its timer started.
type Activity struct {
	ID              string    `json:"id"`
	Description     string    `json:"description"`
	Category        Category  `json:"category"`
	DurationMinutes int       `json:"durationMinutes"`
	Timestamp       time.Time `json:"timestamp"`
}

func (a Activity) MarshalJSON() ([]byte, error) {
	type plain Activity
	return json.Marshal(struct {
		plain
		Timestamp string `json:"timestamp"`
	}{
		plain:     plain(a),
		Timestamp: a.Timestamp.UTC().Format(TimestampLayout),
	})
}

func (a Activity) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("model: activity id is required")
	}
	if strings.TrimSpace(a.Description) == "" {
		return errors.New("model: activity description is required")
	}
	if !a.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, a.Category)
	}
	if a.DurationMinutes < 0 {
		return errors.New("model: activity duration must not be negative")
	}
	if a.Timestamp.IsZero() {
		return errors.New("model: activity timestamp is required")
	}
	return nil
}
