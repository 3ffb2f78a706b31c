package user

import (
	"context"
	"encoding/json"
	"errors"

	"collab_hub_backend/internal/common"
	"collab_hub_backend/internal/domain"
	"collab_hub_backend/internal/platform/database"
	"collab_hub_backend/internal/skill"

	"go.uber.org/zap"
)

// Messages returned to clients.
const (
	msgEmailInUse          = "Email is already used by another account."
	msgDatabaseUnavailable = "Database connection failed. Please ensure PostgreSQL is running."
)

// Service defines the user-profile business logic used by the handler.
type Service interface {
	ListUsers(ctx context.Context, params ListParams) ([]domain.User, error)
	GetUser(ctx context.Context, key Lookup) (*domain.User, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error)
	UpsertByFirebaseUID(ctx context.Context, firebaseUID string, req UpdateUserRequest) (*domain.User, error)
	OwnedProjects(ctx context.Context, key Lookup) ([]domain.Project, error)
	Collaborations(ctx context.Context, key Lookup) ([]CollaborationResponse, error)
}

// ServiceImplementation implements Service on top of a Repository.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger,
	}
}

// ListUsers returns users, optionally filtered by skill names and paged.
// A store that cannot be reached yields ErrServiceUnavailable.
func (s *ServiceImplementation) ListUsers(ctx context.Context, params ListParams) ([]domain.User, error) {
	users, err := s.repo.List(ctx, params)
	if err != nil {
		if database.IsUnavailable(err) {
			s.logger.Error("Database unreachable while listing users", zap.Error(err))
			return nil, common.ErrServiceUnavailable.WithDetails(msgDatabaseUnavailable)
		}
		s.logger.Error("Failed to list users", zap.Error(err), zap.Strings("stack", params.Stack))
		return nil, common.ErrInternalServer.WithDetails("Failed to fetch users")
	}
	return users, nil
}

// GetUser returns a user with skills and owned projects.
func (s *ServiceImplementation) GetUser(ctx context.Context, key Lookup) (*domain.User, error) {
	usr, err := s.repo.Find(ctx, key)
	if err != nil {
		return nil, s.internal(err, "Failed to fetch user", key)
	}
	return usr, nil
}

// CreateUser rejects an email owned by another Firebase UID before writing,
// then inserts the user together with its deduplicated skills.
func (s *ServiceImplementation) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil && existing.FirebaseUID != req.FirebaseUID:
		s.logger.Info("Rejected user creation: email bound to another account",
			zap.String("firebaseUid", req.FirebaseUID))
		return nil, common.ErrBadRequest.WithDetails(msgEmailInUse)
	case err != nil && !errors.Is(err, common.ErrNotFound):
		s.logger.Error("Failed to check existing user by email", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create user")
	}

	usr := &domain.User{
		FirebaseUID:      req.FirebaseUID,
		Name:             req.Name,
		Email:            req.Email,
		Bio:              req.Bio,
		GithubURL:        req.GithubURL,
		PortfolioURL:     req.PortfolioURL,
		Availability:     req.Availability,
		AcademicYear:     req.AcademicYear,
		Branch:           req.Branch,
		Interests:        req.Interests,
		DiscordOrContact: req.DiscordOrContact,
		FeaturedProjects: req.FeaturedProjects,
	}
	if err := s.repo.CreateWithSkills(ctx, usr, skill.Dedupe(req.Skills)); err != nil {
		return nil, s.internal(err, "Failed to create user", ByFirebaseUID(req.FirebaseUID))
	}

	s.logger.Info("User created", zap.String("userID", usr.ID.String()), zap.String("firebaseUid", usr.FirebaseUID))
	return usr, nil
}

// UpsertByFirebaseUID applies the profile update, creating the user when the
// UID is unknown. Skills and featured projects that are not JSON arrays are
// treated as empty lists.
func (s *ServiceImplementation) UpsertByFirebaseUID(ctx context.Context, firebaseUID string, req UpdateUserRequest) (*domain.User, error) {
	var inputs []skill.Input
	if !decodeList(req.Skills, &inputs) {
		s.logger.Warn("skills is not an array, treating as empty", zap.String("firebaseUid", firebaseUID))
		inputs = nil
	}
	var featured []string
	if !decodeList(req.FeaturedProjects, &featured) {
		s.logger.Warn("featuredProjects is not an array, treating as empty", zap.String("firebaseUid", firebaseUID))
		featured = nil
	}

	patch := ProfilePatch{
		Name:             req.Name,
		Email:            req.Email,
		Bio:              req.Bio,
		GithubURL:        req.GithubURL,
		PortfolioURL:     req.PortfolioURL,
		Availability:     req.Availability,
		AcademicYear:     req.AcademicYear,
		Branch:           req.Branch,
		Interests:        req.Interests,
		DiscordOrContact: req.DiscordOrContact,
		FeaturedProjects: featured,
		Skills:           skill.Dedupe(inputs),
	}

	usr, err := s.repo.UpsertByFirebaseUID(ctx, firebaseUID, patch)
	if err != nil {
		return nil, s.internal(err, "Failed to update user", ByFirebaseUID(firebaseUID))
	}
	s.logger.Info("User profile saved", zap.String("userID", usr.ID.String()), zap.String("firebaseUid", firebaseUID))
	return usr, nil
}

// OwnedProjects lists the projects the user created.
func (s *ServiceImplementation) OwnedProjects(ctx context.Context, key Lookup) ([]domain.Project, error) {
	projects, err := s.repo.OwnedProjects(ctx, key)
	if err != nil {
		return nil, s.internal(err, "Failed to fetch user projects", key)
	}
	return projects, nil
}

// Collaborations lists the projects the user collaborates on.
func (s *ServiceImplementation) Collaborations(ctx context.Context, key Lookup) ([]CollaborationResponse, error) {
	projects, err := s.repo.Collaborations(ctx, key)
	if err != nil {
		return nil, s.internal(err, "Failed to fetch collaborations", key)
	}
	return ToCollaborationResponses(projects), nil
}

// internal passes APIErrors through and logs anything else once before
// collapsing it into a generic 500.
func (s *ServiceImplementation) internal(err error, msg string, key Lookup) error {
	if apiErr, ok := common.IsAPIError(err); ok {
		return apiErr
	}
	s.logger.Error(msg, zap.Error(err), zap.Stringer("lookup", key))
	return common.ErrInternalServer.WithDetails(msg)
}

// decodeList unmarshals raw into dst when it is absent, null or a JSON
// array. It reports false for any other shape.
func decodeList(raw json.RawMessage, dst interface{}) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return true
	}
	if raw[0] != '[' {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
