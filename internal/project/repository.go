// File: internal/project/repository.go
package project

import (
	"context"
	"errors"
	"fmt"

	"collab_hub_backend/internal/common"
	"collab_hub_backend/internal/domain"
	"collab_hub_backend/internal/platform/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for project data operations.
type Repository interface {
	Create(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, query ListQuery) ([]domain.Project, *common.Pagination, error)
	CreatorExists(ctx context.Context, creatorID uuid.UUID) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM project repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// preloader applies the member projections shared by reads.
func (r *gormRepository) preloader(query *gorm.DB) *gorm.DB {
	members := func(db *gorm.DB) *gorm.DB {
		return db.Select("users.id", "users.name", "users.email")
	}
	return query.Preload("Creator", members).Preload("Collaborators", members)
}

func (r *gormRepository) Create(ctx context.Context, project *domain.Project) error {
	if project.TechStack == nil {
		project.TechStack = []string{}
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
	if err != nil {
		if database.IsDuplicateKey(err) {
			return common.ErrConflict.WithDetails("A project with this slug already exists.")
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.preloader(r.db.WithContext(ctx)).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Project not found")
		}
		return nil, err
	}
	return &project, nil
}

// List returns one page of projects, newest first.
func (r *gormRepository) List(ctx context.Context, query ListQuery) ([]domain.Project, *common.Pagination, error) {
	dbQuery := r.db.WithContext(ctx).Model(&domain.Project{})
	if query.CreatorID != nil {
		dbQuery = dbQuery.Where("creator_id = ?", *query.CreatorID)
	}
	// Shared by the count and the page query.
	dbQuery = dbQuery.Session(&gorm.Session{})

	var totalItems int64
	if err := dbQuery.Count(&totalItems).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count projects: %w", err)
	}

	pagination := common.NewPagination(totalItems, query.Page, query.PageSize)
	projects := []domain.Project{}
	err := r.preloader(dbQuery).
		Order("projects.created_at DESC").
		Order("projects.id ASC").
		Offset(common.Offset(pagination.CurrentPage, pagination.PageSize)).
		Limit(pagination.PageSize).
		Find(&projects).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, pagination, nil
}

func (r *gormRepository) CreatorExists(ctx context.Context, creatorID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", creatorID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
