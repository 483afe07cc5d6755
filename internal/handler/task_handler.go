package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"planner/internal/datekey"
	"planner/internal/middleware"
	"planner/internal/model"
	"planner/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskRepo is the repository surface the task handler consumes.
type TaskRepo interface {
	ListUnassigned(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	ListForDate(ctx context.Context, userID uuid.UUID, dateKey string) ([]model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, userID, id uuid.UUID, patch model.TaskPatch) error
	DeleteCompletedUnassigned(ctx context.Context, userID uuid.UUID) error
}

type TaskHandler struct {
	repo TaskRepo
}

func NewTaskHandler(repo TaskRepo) *TaskHandler {
	return &TaskHandler{repo: repo}
}

type CreateTaskRequest struct {
	Text  string `json:"text" binding:"required"`
	Order *int   `json:"order"`
}

type UpdateTaskRequest struct {
	Completed *bool `json:"completed"`
	Order     *int  `json:"order"`
}

type AssignTaskRequest struct {
	DateKey string `json:"date_key" binding:"required"`
}

type TaskResponse struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	Order     int     `json:"order"`
	DateKey   *string `json:"dateKey"`
}

func taskResponse(task *model.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID.String(),
		Text:      task.Text,
		Completed: task.Completed,
		Order:     task.Order,
		DateKey:   task.DateKey,
	}
}

func taskResponses(tasks []model.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, taskResponse(&tasks[i]))
	}
	return out
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return userID, true
}

func (h *TaskHandler) ListUnassigned(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := h.repo.ListUnassigned(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	c.JSON(http.StatusOK, taskResponses(tasks))
}

func (h *TaskHandler) ListForDate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	key := c.Param("dateKey")
	if !datekey.IsValid(key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date key"})
		return
	}

	tasks, err := h.repo.ListForDate(c.Request.Context(), userID, key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	c.JSON(http.StatusOK, taskResponses(tasks))
}

// Create adds a task. Tasks always start unassigned; blank text is
// rejected.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Task text must not be blank"})
		return
	}

	order := 0
	if req.Order != nil {
		order = *req.Order
	} else {
		// Default to the end of the unassigned list.
		tasks, err := h.repo.ListUnassigned(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
			return
		}
		order = len(tasks)
	}

	task := &model.Task{
		UserID: userID,
		Text:   text,
		Order:  order,
	}

	if err := h.repo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, taskResponse(task))
}

// Update merges completion and order changes into the task.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := model.TaskPatch{Completed: req.Completed, Order: req.Order}
	if err := h.repo.Update(c.Request.Context(), userID, id, patch); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated"})
}

// Assign puts the task onto a calendar day.
func (h *TaskHandler) Assign(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !datekey.IsValid(req.DateKey) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date key"})
		return
	}

	patch := model.TaskPatch{DateKey: &req.DateKey, DateKeySet: true}
	if err := h.repo.Update(c.Request.Context(), userID, id, patch); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task assigned", "date_key": req.DateKey})
}

// Unassign clears the task's date, returning it to the unassigned list.
func (h *TaskHandler) Unassign(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	patch := model.TaskPatch{DateKeySet: true}
	if err := h.repo.Update(c.Request.Context(), userID, id, patch); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unassign task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task unassigned"})
}

// DeleteCompleted removes every completed task in the unassigned list.
func (h *TaskHandler) DeleteCompleted(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteCompletedUnassigned(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete completed tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Completed tasks deleted"})
}
