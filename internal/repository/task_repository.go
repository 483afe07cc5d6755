package repository

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"planner/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListUnassigned retrieves the user's tasks with no date assignment,
// normalized for display.
func (r *TaskRepository) ListUnassigned(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date_key IS NULL", userID).
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return NormalizeTasks(tasks), nil
}

// ListForDate retrieves the user's tasks assigned to the given day key.
func (r *TaskRepository) ListForDate(ctx context.Context, userID uuid.UUID, dateKey string) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date_key = ?", userID, dateKey).
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return NormalizeTasks(tasks), nil
}

// Create adds a new task. Tasks always start unassigned and incomplete.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	task.Completed = false
	task.DateKey = nil
	return r.db.WithContext(ctx).Create(task).Error
}

// Update merges the patch into the stored task. A patch carrying no
// fields is a no-op.
func (r *TaskRepository) Update(ctx context.Context, userID, id uuid.UUID, patch model.TaskPatch) error {
	if patch.Empty() {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(patch.Fields())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteCompletedUnassigned removes every completed task in the user's
// unassigned list.
func (r *TaskRepository) DeleteCompletedUnassigned(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND completed = ? AND date_key IS NULL", userID, true).
		Delete(&model.Task{}).Error
}

// NormalizeTasks sorts tasks ascending by order. The sort is stable:
// tasks with equal order keep their fetch order.
func NormalizeTasks(tasks []model.Task) []model.Task {
	if tasks == nil {
		return []model.Task{}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Order < tasks[j].Order
	})
	return tasks
}
