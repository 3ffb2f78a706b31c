// File: internal/project/service.go
package project

import (
	"context"
	"strings"

	"collab_hub_backend/internal/common"
	"collab_hub_backend/internal/domain"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the project business logic used by the handler.
type Service interface {
	CreateProject(ctx context.Context, req CreateProjectRequest) (*domain.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*ProjectResponse, error)
	ListProjects(ctx context.Context, query ListQuery) ([]ProjectResponse, *common.Pagination, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*domain.Project, error) {
	exists, err := s.repo.CreatorExists(ctx, req.CreatorID)
	if err != nil {
		s.logger.Error("Failed to check project creator", zap.Error(err), zap.String("creatorID", req.CreatorID.String()))
		return nil, common.ErrInternalServer.WithDetails("Failed to create project")
	}
	if !exists {
		s.logger.Warn("Creator not found for project creation", zap.String("creatorID", req.CreatorID.String()))
		return nil, common.ErrBadRequest.WithDetails("Creator with ID " + req.CreatorID.String() + " not found.")
	}

	project := &domain.Project{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		TechStack:   cleanTechStack(req.TechStack),
		CreatorID:   req.CreatorID,
	}
	project.ID = uuid.New()
	project.Slug = MakeSlug(project.Title, project.ID)

	if err := s.repo.Create(ctx, project); err != nil {
		if apiErr, ok := common.IsAPIError(err); ok {
			return nil, apiErr
		}
		s.logger.Error("Failed to create project", zap.Error(err), zap.String("title", project.Title))
		return nil, common.ErrInternalServer.WithDetails("Failed to create project")
	}
	s.logger.Info("Project created", zap.String("id", project.ID.String()), zap.String("slug", project.Slug))
	return project, nil
}

func (s *service) GetProject(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); ok {
			return nil, apiErr
		}
		s.logger.Error("Failed to fetch project", zap.Error(err), zap.String("id", id.String()))
		return nil, common.ErrInternalServer.WithDetails("Failed to fetch project")
	}
	resp := ToProjectResponse(*project)
	return &resp, nil
}

func (s *service) ListProjects(ctx context.Context, query ListQuery) ([]ProjectResponse, *common.Pagination, error) {
	projects, pagination, err := s.repo.List(ctx, query)
	if err != nil {
		s.logger.Error("Failed to list projects", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Failed to fetch projects")
	}
	return ToProjectResponses(projects), pagination, nil
}

// MakeSlug builds a URL slug from the title, suffixed with the first block of
// the project ID so equal titles stay unique.
func MakeSlug(title string, id uuid.UUID) string {
	base := slug.Make(title)
	if base == "" {
		base = "project"
	}
	return base + "-" + strings.SplitN(id.String(), "-", 2)[0]
}

func cleanTechStack(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
