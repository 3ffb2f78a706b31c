// File: internal/project/model.go
package project

import (
	"collab_hub_backend/internal/domain"

	"github.com/google/uuid"
)

// CreateProjectRequest is the body of POST /projects.
type CreateProjectRequest struct {
	CreatorID   uuid.UUID `json:"creatorId" binding:"required"`
	Title       string    `json:"title" binding:"required,min=2,max=255"`
	Description *string   `json:"description,omitempty"`
	TechStack   []string  `json:"techStack,omitempty"`
}

// ListQuery pages GET /projects and optionally narrows it to one creator.
type ListQuery struct {
	CreatorID *uuid.UUID
	Page      int
	PageSize  int
}

// MemberSummary is the public projection of a creator or collaborator.
type MemberSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ProjectResponse is a project with trimmed creator and collaborators.
type ProjectResponse struct {
	domain.Project
	Creator       *MemberSummary  `json:"creator,omitempty"`
	Collaborators []MemberSummary `json:"collaborators"`
}

// ToProjectResponse converts a preloaded project to the API shape.
func ToProjectResponse(p domain.Project) ProjectResponse {
	resp := ProjectResponse{Project: p, Collaborators: make([]MemberSummary, 0, len(p.Collaborators))}
	if p.Creator != nil {
		resp.Creator = &MemberSummary{ID: p.Creator.ID, Name: p.Creator.Name, Email: p.Creator.Email}
	}
	for _, c := range p.Collaborators {
		resp.Collaborators = append(resp.Collaborators, MemberSummary{ID: c.ID, Name: c.Name, Email: c.Email})
	}
	resp.Project.Creator = nil
	resp.Project.Collaborators = nil
	return resp
}

// ToProjectResponses converts a list of preloaded projects.
func ToProjectResponses(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, ToProjectResponse(p))
	}
	return out
}
