// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"fmt"

	"collab_hub_backend/internal/common"
	"collab_hub_backend/internal/domain"
	"collab_hub_backend/internal/platform/database"
	"collab_hub_backend/internal/skill"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Lookup selects a single user either by Firebase UID or by internal ID.
type Lookup struct {
	column string
	value  interface{}
}

// ByFirebaseUID looks a user up by the identity provider's UID.
func ByFirebaseUID(uid string) Lookup {
	return Lookup{column: "firebase_uid", value: uid}
}

// ByID looks a user up by internal identifier.
func ByID(id uuid.UUID) Lookup {
	return Lookup{column: "id", value: id}
}

func (l Lookup) String() string {
	return fmt.Sprintf("%s=%v", l.column, l.value)
}

// Repository defines the interface for user data operations.
type Repository interface {
	List(ctx context.Context, params ListParams) ([]domain.User, error)
	Find(ctx context.Context, key Lookup) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateWithSkills(ctx context.Context, user *domain.User, skills []skill.Entry) error
	UpsertByFirebaseUID(ctx context.Context, firebaseUID string, patch ProfilePatch) (*domain.User, error)
	OwnedProjects(ctx context.Context, key Lookup) ([]domain.Project, error)
	Collaborations(ctx context.Context, key Lookup) ([]domain.Project, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// List returns users ordered by creation time. When params.Stack is set only
// users holding at least one of the named skills are returned.
func (r *gormRepository) List(ctx context.Context, params ListParams) ([]domain.User, error) {
	query := r.db.WithContext(ctx).Model(&domain.User{})

	if len(params.Stack) > 0 {
		holdsSkill := r.db.Table("user_skills").
			Select("1").
			Joins("JOIN skills ON skills.id = user_skills.skill_id").
			Where("user_skills.user_id = users.id AND skills.name IN ?", params.Stack)
		query = query.Where("EXISTS (?)", holdsSkill)
	}

	if params.Limit > 0 {
		query = query.Offset(common.Offset(params.Page, params.Limit)).Limit(params.Limit)
	}

	users := []domain.User{}
	err := query.
		Scopes(withProfile).
		Order("users.created_at ASC").
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	for i := range users {
		fillRelations(&users[i])
	}
	return users, nil
}

// Find retrieves a user with skills and owned projects.
func (r *gormRepository) Find(ctx context.Context, key Lookup) (*domain.User, error) {
	var userModel domain.User
	err := r.db.WithContext(ctx).
		Scopes(withProfile).
		Where(key.column+" = ?", key.value).
		First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found")
		}
		return nil, err
	}
	fillRelations(&userModel)
	return &userModel, nil
}

// FindByEmail retrieves a user by their email address.
func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var userModel domain.User
	err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found with this email.")
		}
		return nil, err
	}
	return &userModel, nil
}

// CreateWithSkills inserts the user and links its skills in one transaction,
// then reloads user with its skills and owned projects.
func (r *gormRepository) CreateWithSkills(ctx context.Context, user *domain.User, skills []skill.Entry) error {
	user.Email = normalizeEmail(user.Email)
	if user.FeaturedProjects == nil {
		user.FeaturedProjects = []string{}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		return replaceSkills(ctx, tx, user.ID, skills)
	})
	if err != nil {
		return translateWriteError(err)
	}

	var created domain.User
	if err := r.db.WithContext(ctx).Scopes(withProfile).First(&created, "id = ?", user.ID).Error; err != nil {
		return err
	}
	fillRelations(&created)
	*user = created
	return nil
}

// UpsertByFirebaseUID updates the user keyed by firebaseUID, or creates it
// when absent, and replaces its skill set. The result has skills and owned
// projects preloaded.
func (r *gormRepository) UpsertByFirebaseUID(ctx context.Context, firebaseUID string, patch ProfilePatch) (*domain.User, error) {
	var userID uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.User
		err := tx.Where("firebase_uid = ?", firebaseUID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := domain.User{FirebaseUID: firebaseUID}
			patch.applyTo(&created)
			if created.Name == "" || created.Email == "" {
				return common.ErrBadRequest.WithDetails("name and email are required to create a user")
			}
			if err := tx.Omit(clause.Associations).Create(&created).Error; err != nil {
				return err
			}
			userID = created.ID
		case err != nil:
			return err
		default:
			patch.applyTo(&existing)
			if err := tx.Omit(clause.Associations).Save(&existing).Error; err != nil {
				return err
			}
			userID = existing.ID
		}
		return replaceSkills(ctx, tx, userID, patch.Skills)
	})
	if err != nil {
		return nil, translateWriteError(err)
	}

	var result domain.User
	if err := r.db.WithContext(ctx).Scopes(withProfile).First(&result, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	fillRelations(&result)
	return &result, nil
}

// OwnedProjects returns the projects created by the user, newest first.
func (r *gormRepository) OwnedProjects(ctx context.Context, key Lookup) ([]domain.Project, error) {
	var userModel domain.User
	err := r.db.WithContext(ctx).
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order("projects.created_at DESC")
		}).
		Where(key.column+" = ?", key.value).
		First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found")
		}
		return nil, err
	}
	if userModel.Projects == nil {
		return []domain.Project{}, nil
	}
	return userModel.Projects, nil
}

// Collaborations returns the projects the user collaborates on with a
// trimmed creator (id, name, email) preloaded.
func (r *gormRepository) Collaborations(ctx context.Context, key Lookup) ([]domain.Project, error) {
	var userModel domain.User
	err := r.db.WithContext(ctx).
		Preload("CollaboratedProjects", func(db *gorm.DB) *gorm.DB {
			return db.Order("projects.created_at DESC")
		}).
		Preload("CollaboratedProjects.Creator", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Where(key.column+" = ?", key.value).
		First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found")
		}
		return nil, err
	}
	if userModel.CollaboratedProjects == nil {
		return []domain.Project{}, nil
	}
	return userModel.CollaboratedProjects, nil
}

// withProfile preloads what every user response carries.
func withProfile(db *gorm.DB) *gorm.DB {
	return db.Preload("Skills.Skill").Preload("Projects")
}

// fillRelations turns unloaded relations into empty lists so they encode as [].
func fillRelations(u *domain.User) {
	if u.Skills == nil {
		u.Skills = []domain.UserSkill{}
	}
	if u.Projects == nil {
		u.Projects = []domain.Project{}
	}
}

// replaceSkills drops every skill link of userID and recreates them from
// entries, resolving names against the vocabulary on the same transaction.
func replaceSkills(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entries []skill.Entry) error {
	if err := tx.Where("user_id = ?", userID).Delete(&domain.UserSkill{}).Error; err != nil {
		return fmt.Errorf("failed to clear user skills: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	skills, err := skill.Resolve(ctx, tx, skill.Names(entries))
	if err != nil {
		return err
	}
	links := skill.Link(userID, entries, skills)
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("failed to link user skills: %w", err)
	}
	return nil
}

func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if apiErr, ok := common.IsAPIError(err); ok {
		return apiErr
	}
	if database.IsDuplicateKey(err) {
		return common.ErrConflict.WithDetails("A user with this Firebase UID or email already exists.")
	}
	return err
}
