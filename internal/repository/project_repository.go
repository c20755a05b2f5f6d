package repository

import (
	"context"
	"errors"

	"teamtrack/internal/model"
	"teamtrack/internal/progress"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

type ProjectRepositoryInterface interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	GetAll(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	RecalculateProgress(ctx context.Context, id uuid.UUID) error
}

var _ ProjectRepositoryInterface = (*ProjectRepository)(nil)

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts the project together with its team membership rows.
func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		return replaceMemberships(tx, project.ID, project.TeamMemberIDs)
	})
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var memberships []model.ProjectMember
	if err := r.db.WithContext(ctx).Where("project_id = ?", id).Find(&memberships).Error; err != nil {
		return nil, err
	}
	project.TeamMemberIDs = make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		project.TeamMemberIDs = append(project.TeamMemberIDs, m.MemberID)
	}

	return &project, nil
}

func (r *ProjectRepository) GetAll(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).Order("created_at").Find(&projects).Error; err != nil {
		return nil, err
	}

	var memberships []model.ProjectMember
	if err := r.db.WithContext(ctx).Find(&memberships).Error; err != nil {
		return nil, err
	}
	byProject := make(map[uuid.UUID][]uuid.UUID, len(projects))
	for _, m := range memberships {
		byProject[m.ProjectID] = append(byProject[m.ProjectID], m.MemberID)
	}
	for i := range projects {
		ids := byProject[projects[i].ID]
		if ids == nil {
			ids = []uuid.UUID{}
		}
		projects[i].TeamMemberIDs = ids
	}

	return projects, nil
}

// Update saves the project fields and replaces its team membership rows.
func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Save(project)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		return replaceMemberships(tx, project.ID, project.TeamMemberIDs)
	})
}

// Delete removes the project, all of its tasks and its team memberships.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.ProjectMember{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		return nil
	})
}

// RecalculateProgress rederives the stored progress from the project's
// tasks. A missing project is a no-op: a task write racing a project delete
// must never resurrect the project.
func (r *ProjectRepository) RecalculateProgress(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := tx.Where("id = ?", id).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		var tasks []model.Task
		if err := tx.Where("project_id = ?", id).Find(&tasks).Error; err != nil {
			return err
		}

		return tx.Model(&model.Project{}).
			Where("id = ?", id).
			Update("progress", progress.Compute(tasks)).Error
	})
}

func replaceMemberships(tx *gorm.DB, projectID uuid.UUID, memberIDs []uuid.UUID) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&model.ProjectMember{}).Error; err != nil {
		return err
	}
	for _, memberID := range memberIDs {
		membership := model.ProjectMember{
			ID:        uuid.New(),
			ProjectID: projectID,
			MemberID:  memberID,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}
	}
	return nil
}
