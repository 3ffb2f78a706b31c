package skill

import (
	"context"
	"testing"

	"collab_hub_backend/internal/domain"
	"collab_hub_backend/internal/platform/database/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupe(t *testing.T) {
	tests := []struct {
		name   string
		inputs []Input
		want   []Entry
	}{
		{
			name:   "last occurrence wins",
			inputs: []Input{{SkillID: "Go", Level: "Expert"}, {SkillID: "Go", Level: "Beginner"}},
			want:   []Entry{{Name: "Go", Level: "Beginner"}},
		},
		{
			name:   "order of first appearance kept",
			inputs: []Input{{SkillID: "Rust"}, {SkillID: "Go", Level: "Expert"}, {SkillID: "Rust", Level: "Advanced"}},
			want:   []Entry{{Name: "Rust", Level: "Advanced"}, {Name: "Go", Level: "Expert"}},
		},
		{
			name:   "blank names dropped and names trimmed",
			inputs: []Input{{SkillID: "  "}, {SkillID: " SQL ", Level: "Intermediate"}, {SkillID: ""}},
			want:   []Entry{{Name: "SQL", Level: "Intermediate"}},
		},
		{
			name:   "missing level defaults",
			inputs: []Input{{SkillID: "Docker"}},
			want:   []Entry{{Name: "Docker", Level: domain.DefaultSkillLevel}},
		},
		{
			name:   "case sensitive names",
			inputs: []Input{{SkillID: "go"}, {SkillID: "Go"}},
			want:   []Entry{{Name: "go", Level: domain.DefaultSkillLevel}, {Name: "Go", Level: domain.DefaultSkillLevel}},
		},
		{
			name:   "empty input",
			inputs: nil,
			want:   []Entry{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dedupe(tt.inputs))
		})
	}
}

func TestResolve_CreatesMissingAndReusesExisting(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	existing := domain.Skill{Name: "Go"}
	require.NoError(t, db.Create(&existing).Error)

	resolved, err := Resolve(ctx, db, []string{"Go", "Rust", "SQL"})
	require.NoError(t, err)
	require.Len(t, resolved, 3)
	assert.Equal(t, existing.ID, resolved["Go"].ID)
	assert.NotEqual(t, uuid.Nil, resolved["Rust"].ID)

	var count int64
	require.NoError(t, db.Model(&domain.Skill{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	again, err := Resolve(ctx, db, []string{"Rust"})
	require.NoError(t, err)
	assert.Equal(t, resolved["Rust"].ID, again["Rust"].ID)

	require.NoError(t, db.Model(&domain.Skill{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestResolve_EmptyNames(t *testing.T) {
	db := dbtest.New(t)

	resolved, err := Resolve(context.Background(), db, nil)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestLink(t *testing.T) {
	userID := uuid.New()
	goSkill := domain.Skill{Name: "Go"}
	goSkill.ID = uuid.New()

	links := Link(userID, []Entry{{Name: "Go", Level: "Expert"}}, map[string]domain.Skill{"Go": goSkill})
	require.Len(t, links, 1)
	assert.Equal(t, userID, links[0].UserID)
	assert.Equal(t, goSkill.ID, links[0].SkillID)
	assert.Equal(t, "Expert", links[0].Level)
}
