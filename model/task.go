package model

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Priority levels: 1 is highest, 3 is lowest.
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxTags              = 3
)

type Task struct {
	TaskID      string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Title       string    `bson:"title" json:"title" binding:"required"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Status      Status    `bson:"status" json:"status"`
	Priority    int       `bson:"priority" json:"priority"`
	Tags        []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	DueDate     time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

func (t *Task) Completed() bool {
	return t.Status == StatusCompleted
}

// TaskFilter carries the list-view query intent. Zero values mean "no filter";
// Priority 0 means all priorities.
type TaskFilter struct {
	Status    string
	Priority  int
	Search    string
	SortBy    string
	SortOrder string
}

const (
	SortByCreated  = "created"
	SortByDue      = "due"
	SortByTitle    = "title"
	SortByPriority = "priority"
)

// NormalizePriority coerces out-of-range priority values to medium.
func NormalizePriority(p int) int {
	if p < PriorityHigh || p > PriorityLow {
		return PriorityMedium
	}
	return p
}

// CleanTags trims entries, drops empties and caps the list at MaxTags.
func CleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		cleaned = append(cleaned, tag)
		if len(cleaned) == MaxTags {
			break
		}
	}
	return cleaned
}
