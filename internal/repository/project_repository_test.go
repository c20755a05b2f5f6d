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

func TestProjectRepository_GetByID_PopulatesTeam(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	projectRepo := repository.NewProjectRepository(gormDB)

	projectID := uuid.New()
	memberA := uuid.New()
	memberB := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM "projects" WHERE id = .* LIMIT 1`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "created_by", "progress", "start_date", "end_date"}).
			AddRow(projectID.String(), "Q4 Marketing Website", model.ProjectOngoing, uuid.New().String(), 65, now, now))
	mock.ExpectQuery(`SELECT .* FROM "project_members" WHERE project_id = .*`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "member_id"}).
			AddRow(uuid.New().String(), projectID.String(), memberA.String()).
			AddRow(uuid.New().String(), projectID.String(), memberB.String()))

	project, err := projectRepo.GetByID(context.Background(), projectID)

	assert.NoError(t, err)
	assert.NotNil(t, project)
	assert.Equal(t, []uuid.UUID{memberA, memberB}, project.TeamMemberIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_GetByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	projectRepo := repository.NewProjectRepository(gormDB)

	projectID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "projects" WHERE id = .* LIMIT 1`).
		WithArgs(projectID).
		WillReturnError(gorm.ErrRecordNotFound)

	project, err := projectRepo.GetByID(context.Background(), projectID)

	assert.NoError(t, err)
	assert.Nil(t, project)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Delete_CascadesTasks(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	projectRepo := repository.NewProjectRepository(gormDB)

	projectID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE project_id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "project_members" WHERE project_id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "projects" WHERE id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := projectRepo.Delete(context.Background(), projectID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_RecalculateProgress(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	projectRepo := repository.NewProjectRepository(gormDB)

	projectID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "projects" WHERE id = .* LIMIT 1`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "progress", "start_date", "end_date"}).
			AddRow(projectID.String(), "Q4 Marketing Website", model.ProjectOngoing, 0, now, now))
	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE project_id = .*`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "due_date"}).
			AddRow(uuid.New().String(), "Design wireframes", model.TaskCompleted, now).
			AddRow(uuid.New().String(), "Develop homepage", model.TaskPending, now).
			AddRow(uuid.New().String(), "Set up CMS", model.TaskInProgress, now))
	// 1 of 3 completed -> 33; gorm also touches updated_at
	mock.ExpectExec(`UPDATE "projects" SET`).
		WithArgs(33, sqlmock.AnyArg(), projectID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := projectRepo.RecalculateProgress(context.Background(), projectID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_RecalculateProgress_ProjectGone(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	projectRepo := repository.NewProjectRepository(gormDB)

	projectID := uuid.New()

	// Deleted project: recalculation is a no-op, nothing is resurrected.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "projects" WHERE id = .* LIMIT 1`).
		WithArgs(projectID).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectCommit()

	err := projectRepo.RecalculateProgress(context.Background(), projectID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
