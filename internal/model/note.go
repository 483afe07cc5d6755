package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Note is a per-day free-form text attached to a user and a date key.
// A blank note is never stored; saving blank text deletes the record.
type Note struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	DateKey   string    `gorm:"size:10;primaryKey"`
	Text      string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	User User `gorm:"foreignKey:UserID"`
}

// NoteDocID is the wire identity of a note: "{userID}_{dateKey}".
func NoteDocID(userID uuid.UUID, dateKey string) string {
	return fmt.Sprintf("%s_%s", userID, dateKey)
}
