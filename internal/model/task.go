package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Text      string    `gorm:"not null"`
	Completed bool      `gorm:"not null"`
	Order     int       `gorm:"column:task_order;not null"`
	DateKey   *string   `gorm:"size:10;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID"`
}

// Unassigned reports whether the task belongs to the unassigned list.
// List membership is derived from DateKey and nowhere else.
func (t *Task) Unassigned() bool {
	return t.DateKey == nil
}

// TaskPatch is a partial update to a task. Nil fields are left untouched.
// DateKeySet distinguishes "set DateKey to nil" (unassign) from "don't
// touch DateKey".
type TaskPatch struct {
	Completed  *bool
	Order      *int
	DateKey    *string
	DateKeySet bool
}

func (p TaskPatch) Empty() bool {
	return p.Completed == nil && p.Order == nil && !p.DateKeySet
}

// Fields returns the column updates the patch carries.
func (p TaskPatch) Fields() map[string]any {
	fields := map[string]any{}
	if p.Completed != nil {
		fields["completed"] = *p.Completed
	}
	if p.Order != nil {
		fields["task_order"] = *p.Order
	}
	if p.DateKeySet {
		fields["date_key"] = p.DateKey
	}
	return fields
}
