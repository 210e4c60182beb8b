// FilePath: internal/models/models.task.go
package models

import "time"

// TaskPriority is the urgency of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task is a to-do item, optionally scoped to one apiary and/or hive
type Task struct {
	ID          string       `json:"id" db:"id"`
	ApiaryID    string       `json:"apiary_id,omitempty" db:"apiary_id"`
	HiveID      string       `json:"hive_id,omitempty" db:"hive_id"`
	CreatorID   string       `json:"creator_id,omitempty" db:"creator_id"`
	AssignedTo  string       `json:"assigned_to,omitempty" db:"assigned_to"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description,omitempty" db:"description"`
	DueDate     string       `json:"due_date,omitempty" db:"due_date"`
	Priority    TaskPriority `json:"priority" db:"priority"`
	Completed   bool         `json:"completed" db:"completed"`
	CompletedAt *time.Time   `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// ValidPriority reports whether p is one of the known priorities
func ValidPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}
