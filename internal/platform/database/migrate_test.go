package database_test

import (
	"testing"

	"collab_hub_backend/internal/domain"
	"collab_hub_backend/internal/platform/database/dbtest"

	"github.com/stretchr/testify/assert"
)

func TestAutoMigrate_CreatesTables(t *testing.T) {
	db := dbtest.New(t)

	for _, model := range domain.Models() {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
	assert.True(t, db.Migrator().HasTable("project_collaborators"))
}
