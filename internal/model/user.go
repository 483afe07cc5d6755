package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	EmailVerified  bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// Principal is the authenticated identity attached to data operations.
// Every task and note operation requires a verified principal.
type Principal struct {
	ID            uuid.UUID
	Email         string
	EmailVerified bool
}
