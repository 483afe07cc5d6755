package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"planner/internal/datekey"
	"planner/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NoteRepo is the repository surface the note handler consumes.
type NoteRepo interface {
	Get(ctx context.Context, userID uuid.UUID, dateKey string) (*model.Note, error)
	Save(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, userID uuid.UUID, dateKey string) error
	ListKeysInRange(ctx context.Context, userID uuid.UUID, from, to string) ([]string, error)
}

type NoteHandler struct {
	repo NoteRepo
}

func NewNoteHandler(repo NoteRepo) *NoteHandler {
	return &NoteHandler{repo: repo}
}

type SaveNoteRequest struct {
	Text string `json:"text"`
}

type NoteResponse struct {
	ID        string    `json:"id"`
	DateKey   string    `json:"dateKey"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (h *NoteHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	key := c.Param("dateKey")
	if !datekey.IsValid(key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date key"})
		return
	}

	note, err := h.repo.Get(c.Request.Context(), userID, key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve note"})
		return
	}
	if note == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}

	c.JSON(http.StatusOK, NoteResponse{
		ID:        model.NoteDocID(userID, key),
		DateKey:   note.DateKey,
		Text:      note.Text,
		UpdatedAt: note.UpdatedAt,
	})
}

// Save upserts the note for a day. Blank text deletes the note instead
// of storing an empty record.
func (h *NoteHandler) Save(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	key := c.Param("dateKey")
	if !datekey.IsValid(key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date key"})
		return
	}

	var req SaveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		if err := h.repo.Delete(c.Request.Context(), userID, key); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
		return
	}

	note := &model.Note{UserID: userID, DateKey: key, Text: req.Text}
	if err := h.repo.Save(c.Request.Context(), note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save note"})
		return
	}

	c.JSON(http.StatusOK, NoteResponse{
		ID:        model.NoteDocID(userID, key),
		DateKey:   key,
		Text:      note.Text,
		UpdatedAt: note.UpdatedAt,
	})
}

// ListRange returns the date keys in [from, to] that have a note. The
// calendar uses it to mark days.
func (h *NoteHandler) ListRange(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	from := c.Query("from")
	to := c.Query("to")
	if !datekey.IsValid(from) || !datekey.IsValid(to) || from > to {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
		return
	}

	keys, err := h.repo.ListKeysInRange(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dateKeys": keys})
}
