package invite

import (
	"context"
	"errors"
	"fmt"

	"collab_hub_backend/internal/common"
	"collab_hub_backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for invite data operations.
type Repository interface {
	Create(ctx context.Context, invite *domain.Invite) error
	ListReceived(ctx context.Context, receiverID uuid.UUID) ([]domain.Invite, error)
	Respond(ctx context.Context, id uuid.UUID, status string) (*domain.Invite, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM invite repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, invite *domain.Invite) error {
	if invite.Status == "" {
		invite.Status = domain.InviteStatusPending
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(invite).Error
}

// ListReceived returns the invites addressed to receiverID, newest first,
// with the project and a trimmed sender preloaded.
func (r *gormRepository) ListReceived(ctx context.Context, receiverID uuid.UUID) ([]domain.Invite, error) {
	invites := []domain.Invite{}
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Sender", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "github_url")
		}).
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

// Respond sets the invite status. Accepting also adds the receiver to the
// project's collaborators; both writes commit or roll back together and a
// repeated accept leaves a single collaborator row.
func (r *gormRepository) Respond(ctx context.Context, id uuid.UUID, status string) (*domain.Invite, error) {
	var invite domain.Invite

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&invite).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrNotFound.WithDetails("Invite not found")
			}
			return err
		}

		if err := tx.Model(&invite).Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to update invite status: %w", err)
		}
		invite.Status = status

		if status != domain.InviteStatusAccepted {
			return nil
		}
		collaborator := domain.ProjectCollaborator{ProjectID: invite.ProjectID, UserID: invite.ReceiverID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&collaborator).Error; err != nil {
			return fmt.Errorf("failed to add collaborator: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &invite, nil
}
