// File: internal/user/model.go
package user

import (
	"encoding/json"
	"strings"

	"collab_hub_backend/internal/domain"
	"collab_hub_backend/internal/skill"

	"github.com/google/uuid"
)

// --- DTOs (Data Transfer Objects) for API requests/responses ---

// CreateUserRequest is the body of POST /users. Projects cannot be attached
// at creation time, so the struct has no field for them.
type CreateUserRequest struct {
	FirebaseUID      string        `json:"firebaseUid" binding:"required"`
	Name             string        `json:"name" binding:"required"`
	Email            string        `json:"email" binding:"required,email"`
	Bio              *string       `json:"bio"`
	GithubURL        *string       `json:"githubUrl"`
	PortfolioURL     *string       `json:"portfolioUrl"`
	Availability     *string       `json:"availability"`
	AcademicYear     *string       `json:"academicYear"`
	Branch           *string       `json:"branch"`
	Interests        *string       `json:"interests"`
	DiscordOrContact *string       `json:"discordOrContact"`
	Skills           []skill.Input `json:"skills"`
	FeaturedProjects []string      `json:"featuredProjects"`
}

// UpdateUserRequest is the body of PUT/PATCH /users/firebase/:firebaseUid.
// Skills and FeaturedProjects stay raw so that a non-list value can be
// treated as an empty list instead of failing the bind.
type UpdateUserRequest struct {
	Name             *string         `json:"name"`
	Email            *string         `json:"email" binding:"omitempty,email"`
	Bio              *string         `json:"bio"`
	GithubURL        *string         `json:"githubUrl"`
	PortfolioURL     *string         `json:"portfolioUrl"`
	Availability     *string         `json:"availability"`
	AcademicYear     *string         `json:"academicYear"`
	Branch           *string         `json:"branch"`
	Interests        *string         `json:"interests"`
	DiscordOrContact *string         `json:"discordOrContact"`
	Skills           json.RawMessage `json:"skills"`
	FeaturedProjects json.RawMessage `json:"featuredProjects"`
}

// ProfilePatch is an update-or-create of a user profile. Nil fields keep the
// stored value; FeaturedProjects and Skills always replace what is stored.
type ProfilePatch struct {
	Name             *string
	Email            *string
	Bio              *string
	GithubURL        *string
	PortfolioURL     *string
	Availability     *string
	AcademicYear     *string
	Branch           *string
	Interests        *string
	DiscordOrContact *string
	FeaturedProjects []string
	Skills           []skill.Entry
}

func (p ProfilePatch) applyTo(u *domain.User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = normalizeEmail(*p.Email)
	}
	setIfPresent(&u.Bio, p.Bio)
	setIfPresent(&u.GithubURL, p.GithubURL)
	setIfPresent(&u.PortfolioURL, p.PortfolioURL)
	setIfPresent(&u.Availability, p.Availability)
	setIfPresent(&u.AcademicYear, p.AcademicYear)
	setIfPresent(&u.Branch, p.Branch)
	setIfPresent(&u.Interests, p.Interests)
	setIfPresent(&u.DiscordOrContact, p.DiscordOrContact)

	u.FeaturedProjects = p.FeaturedProjects
	if u.FeaturedProjects == nil {
		u.FeaturedProjects = []string{}
	}
}

func setIfPresent(dst **string, v *string) {
	if v != nil {
		*dst = v
	}
}

// ListParams filters and pages GET /users.
type ListParams struct {
	Stack []string
	Page  int
	Limit int // 0 returns every matching user
}

// CreatorSummary is the creator projection attached to collaborations.
type CreatorSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// CollaborationResponse is a project the user collaborates on.
type CollaborationResponse struct {
	domain.Project
	Creator *CreatorSummary `json:"creator,omitempty"`
}

// ToCollaborationResponses converts preloaded projects to the API shape.
func ToCollaborationResponses(projects []domain.Project) []CollaborationResponse {
	out := make([]CollaborationResponse, 0, len(projects))
	for _, p := range projects {
		resp := CollaborationResponse{Project: p}
		if p.Creator != nil {
			resp.Creator = &CreatorSummary{ID: p.Creator.ID, Name: p.Creator.Name, Email: p.Creator.Email}
		}
		resp.Project.Creator = nil
		out = append(out, resp)
	}
	return out
}

// ParseStack splits the comma separated stack filter, dropping blanks.
func ParseStack(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// normalizeEmail trims surrounding blanks. Casing is kept, so uniqueness is
// case-sensitive.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
