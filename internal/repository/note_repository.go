package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"planner/internal/model"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Get returns the note for (userID, dateKey), or nil when none exists.
func (r *NoteRepository) Get(ctx context.Context, userID uuid.UUID, dateKey string) (*model.Note, error) {
	var note model.Note
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date_key = ?", userID, dateKey).
		First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Save upserts the note. Callers must not pass blank text; a blank note
// is deleted, not stored.
func (r *NoteRepository) Save(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"text", "updated_at"}),
	}).Create(note).Error
}

// Delete removes the note for (userID, dateKey). Deleting an absent note
// is not an error.
func (r *NoteRepository) Delete(ctx context.Context, userID uuid.UUID, dateKey string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND date_key = ?", userID, dateKey).
		Delete(&model.Note{}).Error
}

// ListKeysInRange returns the date keys in [from, to] that have a note,
// ordered ascending. Used for the calendar's note markers.
func (r *NoteRepository) ListKeysInRange(ctx context.Context, userID uuid.UUID, from, to string) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&model.Note{}).
		Where("user_id = ? AND date_key >= ? AND date_key <= ?", userID, from, to).
		Order("date_key").
		Pluck("date_key", &keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}
