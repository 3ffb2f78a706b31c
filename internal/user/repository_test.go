package user

import (
	"context"
	"testing"
	"time"

	"collab_hub_backend/internal/common"
	"collab_hub_backend/internal/domain"
	"collab_hub_backend/internal/platform/database/dbtest"
	"collab_hub_backend/internal/skill"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func seedUser(t *testing.T, repo Repository, uid string, created time.Time, skills ...skill.Entry) *domain.User {
	t.Helper()
	usr := &domain.User{FirebaseUID: uid, Name: uid, Email: uid + "@x.com"}
	usr.CreatedAt = created
	require.NoError(t, repo.CreateWithSkills(context.Background(), usr, skills))
	return usr
}

func skillNames(usr domain.User) []string {
	var names []string
	for _, us := range usr.Skills {
		if us.Skill != nil {
			names = append(names, us.Skill.Name)
		}
	}
	return names
}

func TestGormRepository_CreateWithSkills(t *testing.T) {
	db := dbtest.New(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	usr := &domain.User{FirebaseUID: "u1", Name: "A", Email: "  A@X.com "}
	entries := skill.Dedupe([]skill.Input{{SkillID: "Go", Level: "Expert"}, {SkillID: "Go", Level: "Beginner"}})
	require.NoError(t, repo.CreateWithSkills(ctx, usr, entries))
	assert.Equal(t, "A@X.com", usr.Email)

	found, err := repo.Find(ctx, ByFirebaseUID("u1"))
	require.NoError(t, err)
	require.Len(t, found.Skills, 1)
	assert.Equal(t, "Go", found.Skills[0].Skill.Name)
	assert.Equal(t, "Beginner", found.Skills[0].Level)
	assert.Equal(t, []string{}, found.FeaturedProjects)

	dup := &domain.User{FirebaseUID: "u2", Name: "B", Email: "A@X.com"}
	err = repo.CreateWithSkills(ctx, dup, nil)
	assert.ErrorIs(t, err, common.ErrConflict)

	otherCase := &domain.User{FirebaseUID: "u3", Name: "C", Email: "a@x.com"}
	require.NoError(t, repo.CreateWithSkills(ctx, otherCase, nil))
	assert.Equal(t, "a@x.com", otherCase.Email)

	var count int64
	require.NoError(t, db.Model(&domain.User{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGormRepository_List(t *testing.T) {
	db := dbtest.New(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour).UTC()
	seedUser(t, repo, "go-dev", base, skill.Entry{Name: "Go", Level: "Expert"})
	seedUser(t, repo, "rust-dev", base.Add(time.Minute), skill.Entry{Name: "Rust", Level: "Beginner"})
	seedUser(t, repo, "both", base.Add(2*time.Minute), skill.Entry{Name: "Go", Level: "Beginner"}, skill.Entry{Name: "Rust", Level: "Expert"})
	seedUser(t, repo, "js-dev", base.Add(3*time.Minute), skill.Entry{Name: "JavaScript", Level: "Expert"})
	seedUser(t, repo, "nothing", base.Add(4*time.Minute))

	t.Run("no filter returns everyone in creation order", func(t *testing.T) {
		users, err := repo.List(ctx, ListParams{})
		require.NoError(t, err)
		require.Len(t, users, 5)
		assert.Equal(t, "go-dev", users[0].FirebaseUID)
		assert.Equal(t, "nothing", users[4].FirebaseUID)
	})

	t.Run("stack filter is a union", func(t *testing.T) {
		users, err := repo.List(ctx, ListParams{Stack: []string{"Go", "Rust"}})
		require.NoError(t, err)
		var uids []string
		for _, u := range users {
			uids = append(uids, u.FirebaseUID)
		}
		assert.Equal(t, []string{"go-dev", "rust-dev", "both"}, uids)
		assert.ElementsMatch(t, []string{"Go", "Rust"}, skillNames(users[2]))
	})

	t.Run("pagination", func(t *testing.T) {
		users, err := repo.List(ctx, ListParams{Page: 2, Limit: 2})
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "both", users[0].FirebaseUID)
		assert.Equal(t, "js-dev", users[1].FirebaseUID)

		users, err = repo.List(ctx, ListParams{Page: 3, Limit: 2, Stack: []string{"Go", "Rust"}})
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestGormRepository_UpsertByFirebaseUID(t *testing.T) {
	db := dbtest.New(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	t.Run("creates missing user", func(t *testing.T) {
		usr, err := repo.UpsertByFirebaseUID(ctx, "new-uid", ProfilePatch{
			Name:             strPtr("New"),
			Email:            strPtr("New@X.com"),
			Bio:              strPtr("hello"),
			FeaturedProjects: []string{"p1"},
			Skills:           []skill.Entry{{Name: "Go", Level: "Expert"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "new-uid", usr.FirebaseUID)
		assert.Equal(t, "New@X.com", usr.Email)
		assert.Equal(t, []string{"p1"}, usr.FeaturedProjects)
		assert.Equal(t, []string{"Go"}, skillNames(*usr))
	})

	t.Run("replaces skills and keeps omitted fields", func(t *testing.T) {
		usr, err := repo.UpsertByFirebaseUID(ctx, "new-uid", ProfilePatch{
			Name:   strPtr("Renamed"),
			Skills: []skill.Entry{{Name: "Rust", Level: "Beginner"}, {Name: "SQL", Level: "Advanced"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", usr.Name)
		require.NotNil(t, usr.Bio)
		assert.Equal(t, "hello", *usr.Bio)
		assert.Equal(t, []string{}, usr.FeaturedProjects)
		assert.ElementsMatch(t, []string{"Rust", "SQL"}, skillNames(*usr))

		var links int64
		require.NoError(t, db.Model(&domain.UserSkill{}).Where("user_id = ?", usr.ID).Count(&links).Error)
		assert.Equal(t, int64(2), links)
	})

	t.Run("create without email is rejected", func(t *testing.T) {
		_, err := repo.UpsertByFirebaseUID(ctx, "incomplete", ProfilePatch{Name: strPtr("X")})
		assert.ErrorIs(t, err, common.ErrBadRequest)
	})
}

func TestGormRepository_ProjectsAndCollaborations(t *testing.T) {
	db := dbtest.New(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	owner := seedUser(t, repo, "owner", time.Now())
	member := seedUser(t, repo, "member", time.Now())

	project := domain.Project{Title: "Hub", Slug: "hub-1", CreatorID: owner.ID, TechStack: []string{"Go"}}
	require.NoError(t, db.Create(&project).Error)
	require.NoError(t, db.Create(&domain.ProjectCollaborator{ProjectID: project.ID, UserID: member.ID}).Error)

	owned, err := repo.OwnedProjects(ctx, ByFirebaseUID("owner"))
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Hub", owned[0].Title)

	none, err := repo.OwnedProjects(ctx, ByID(member.ID))
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)

	collabs, err := repo.Collaborations(ctx, ByID(member.ID))
	require.NoError(t, err)
	require.Len(t, collabs, 1)
	require.NotNil(t, collabs[0].Creator)
	assert.Equal(t, owner.ID, collabs[0].Creator.ID)
	assert.Equal(t, "owner@x.com", collabs[0].Creator.Email)
	assert.Empty(t, collabs[0].Creator.FirebaseUID)

	_, err = repo.Collaborations(ctx, ByID(uuid.New()))
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = repo.OwnedProjects(ctx, ByFirebaseUID("missing"))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGormRepository_FindNotFound(t *testing.T) {
	repo := NewGORMRepository(dbtest.New(t))

	_, err := repo.Find(context.Background(), ByFirebaseUID("nobody"))
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NotErrorIs(t, err, gorm.ErrRecordNotFound)
}
