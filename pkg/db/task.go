// Database model for follow-up tasks
package db

import "time"

// Task is a follow-up item, usually created from a protocol decision.
type Task struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	OrgID        string    `json:"org_id" gorm:"index;size:36;not null"`
	ProtocolID   *string   `json:"protocol_id,omitempty" gorm:"index;size:36"`
	AgendaItemID *string   `json:"agenda_item_id,omitempty" gorm:"size:36"`
	Title        string    `json:"title" gorm:"size:300;not null"`
	Description  string    `json:"description,omitempty" gorm:"type:text"`
	AssigneeID   *string   `json:"assignee_id,omitempty" gorm:"size:36"`
	Status       string    `json:"status" gorm:"size:20;default:'open'"` // open, in_progress, done
	DueDate      *string   `json:"due_date,omitempty" gorm:"size:10"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// Task status
const (
	TaskStatusOpen       = "open"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)
