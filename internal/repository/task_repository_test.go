package repository_test

import (
	"context"
	"testing"
	"time"

	"teamtrack/internal/model"
	"teamtrack/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTaskRepository_GetByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	taskID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE id = .* LIMIT 1`).
		WithArgs(taskID).
		WillReturnError(gorm.ErrRecordNotFound)

	task, err := taskRepo.GetByID(context.Background(), taskID)

	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByProjectID(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	projectID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE project_id = .* ORDER BY due_date`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "title", "status", "priority", "due_date"}).
			AddRow(uuid.New().String(), projectID.String(), "Design wireframes", model.TaskCompleted, model.PriorityHigh, now).
			AddRow(uuid.New().String(), projectID.String(), "Develop homepage", model.TaskPending, model.PriorityMedium, now.AddDate(0, 0, 7)))

	tasks, err := taskRepo.GetByProjectID(context.Background(), projectID)

	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, "Design wireframes", tasks[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := taskRepo.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
