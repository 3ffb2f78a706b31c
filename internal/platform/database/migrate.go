package database

import (
	"fmt"

	"collab_hub_backend/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables backing the domain models.
// Production schemas are owned by external migration tooling; this is used by
// the migrate sub-command, DB_AUTO_MIGRATE and tests.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&domain.User{}, "CollaboratedProjects", &domain.ProjectCollaborator{}); err != nil {
		return fmt.Errorf("failed to set up collaborator join table: %w", err)
	}
	if err := db.SetupJoinTable(&domain.Project{}, "Collaborators", &domain.ProjectCollaborator{}); err != nil {
		return fmt.Errorf("failed to set up collaborator join table: %w", err)
	}
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate schema: %w", err)
	}
	return nil
}
