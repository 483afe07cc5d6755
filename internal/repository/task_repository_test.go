package repository_test

import (
	"context"
	"testing"

	"planner/internal/model"
	"planner/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func taskRows(tasks ...model.Task) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "text", "completed", "task_order", "date_key"})
	for _, task := range tasks {
		rows.AddRow(task.ID.String(), task.UserID.String(), task.Text, task.Completed, task.Order, task.DateKey)
	}
	return rows
}

func TestTaskRepository_ListUnassigned_StableSort(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)
	userID := uuid.New()

	// Two tasks share order 0; their fetch order must survive the sort.
	first := model.Task{ID: uuid.New(), UserID: userID, Text: "first", Order: 0}
	second := model.Task{ID: uuid.New(), UserID: userID, Text: "second", Order: 0}
	last := model.Task{ID: uuid.New(), UserID: userID, Text: "last", Order: 2}

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE user_id = .* AND date_key IS NULL`).
		WithArgs(userID).
		WillReturnRows(taskRows(last, first, second))

	// Act
	tasks, err := taskRepo.ListUnassigned(context.Background(), userID)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, tasks, 3)
	assert.Equal(t, "first", tasks[0].Text)
	assert.Equal(t, "second", tasks[1].Text)
	assert.Equal(t, "last", tasks[2].Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_ListForDate(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)
	userID := uuid.New()
	key := "2024-06-15"

	task := model.Task{ID: uuid.New(), UserID: userID, Text: "buy milk", Order: 0, DateKey: &key}

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE user_id = .* AND date_key = .*`).
		WithArgs(userID, key).
		WillReturnRows(taskRows(task))

	// Act
	tasks, err := taskRepo.ListForDate(context.Background(), userID, key)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, "buy milk", tasks[0].Text)
	assert.Equal(t, key, *tasks[0].DateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_ListUnassigned_EmptyResult(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE user_id = .* AND date_key IS NULL`).
		WithArgs(userID).
		WillReturnRows(taskRows())

	// Act
	tasks, err := taskRepo.ListUnassigned(context.Background(), userID)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)
	userID := uuid.New()
	taskID := uuid.New()
	completed := true

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET`).
		WithArgs(true, taskID, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Update(context.Background(), userID, taskID, model.TaskPatch{Completed: &completed})

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_AssignDate(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)
	userID := uuid.New()
	taskID := uuid.New()
	key := "2024-06-15"

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET`).
		WithArgs(key, taskID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Update(context.Background(), userID, taskID, model.TaskPatch{DateKey: &key, DateKeySet: true})

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_EmptyPatchIsNoop(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Act: no expectations registered, so any query would fail the test.
	err := taskRepo.Update(context.Background(), uuid.New(), uuid.New(), model.TaskPatch{})

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_DeleteCompletedUnassigned(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE user_id = .* AND completed = .* AND date_key IS NULL`).
		WithArgs(userID, true).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	// Act
	err := taskRepo.DeleteCompletedUnassigned(context.Background(), userID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNormalizeTasks_TiesKeepFetchOrder(t *testing.T) {
	a := model.Task{ID: uuid.New(), Text: "a", Order: 1}
	b := model.Task{ID: uuid.New(), Text: "b", Order: 1}
	c := model.Task{ID: uuid.New(), Text: "c", Order: 0}

	got := repository.NormalizeTasks([]model.Task{a, b, c})

	assert.Equal(t, "c", got[0].Text)
	assert.Equal(t, "a", got[1].Text)
	assert.Equal(t, "b", got[2].Text)
}
