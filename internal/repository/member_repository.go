package repository

import (
	"context"
	"errors"

	"teamtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

type MemberRepositoryInterface interface {
	Create(ctx context.Context, member *model.Member) error
	FindByEmail(ctx context.Context, email string) (*model.Member, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	GetAll(ctx context.Context) ([]model.Member, error)
	Update(ctx context.Context, member *model.Member) error
	Delete(ctx context.Context, id, successor uuid.UUID) error
}

var _ MemberRepositoryInterface = (*MemberRepository)(nil)

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

func (r *MemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

func (r *MemberRepository) GetAll(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).Order("name").Find(&members).Error
	return members, err
}

func (r *MemberRepository) Update(ctx context.Context, member *model.Member) error {
	result := r.db.WithContext(ctx).Save(member)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// Delete removes a member. Tasks assigned to them become unassigned and
// their team memberships are dropped; the tasks themselves survive. Records
// they authored are reattributed to successor so the created_by foreign
// keys never block the delete.
func (r *MemberRepository) Delete(ctx context.Context, id, successor uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Task{}).
			Where("assignee_id = ?", id).
			Update("assignee_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Task{}).
			Where("created_by = ?", id).
			Update("created_by", successor).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Project{}).
			Where("created_by = ?", id).
			Update("created_by", successor).Error; err != nil {
			return err
		}

		if err := tx.Where("member_id = ?", id).Delete(&model.ProjectMember{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Member{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMemberNotFound
		}
		return nil
	})
}
