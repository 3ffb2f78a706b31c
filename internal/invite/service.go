package invite

import (
	"context"

	"collab_hub_backend/internal/common"
	"collab_hub_backend/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the invite business logic used by the handler.
type Service interface {
	SendInvite(ctx context.Context, req SendInviteRequest) (*domain.Invite, error)
	ReceivedInvites(ctx context.Context, userID uuid.UUID) ([]ReceivedInviteResponse, error)
	RespondToInvite(ctx context.Context, id uuid.UUID, status string) (*domain.Invite, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new invite service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

func (s *service) SendInvite(ctx context.Context, req SendInviteRequest) (*domain.Invite, error) {
	invite := &domain.Invite{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		ProjectID:  req.ProjectID,
		Role:       req.Role,
	}
	if err := s.repo.Create(ctx, invite); err != nil {
		s.logger.Error("Failed to send invite", zap.Error(err),
			zap.String("senderID", req.SenderID.String()),
			zap.String("receiverID", req.ReceiverID.String()),
			zap.String("projectID", req.ProjectID.String()))
		return nil, common.ErrInternalServer.WithDetails("Failed to send invite")
	}
	s.logger.Info("Invite sent", zap.String("inviteID", invite.ID.String()))
	return invite, nil
}

func (s *service) ReceivedInvites(ctx context.Context, userID uuid.UUID) ([]ReceivedInviteResponse, error) {
	invites, err := s.repo.ListReceived(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to fetch received invites", zap.Error(err), zap.String("userID", userID.String()))
		return nil, common.ErrInternalServer.WithDetails("Failed to fetch invites")
	}
	return ToReceivedInviteResponses(invites), nil
}

// RespondToInvite records the receiver's answer. The status is not checked
// against the current one, so a declined invite can still be accepted.
func (s *service) RespondToInvite(ctx context.Context, id uuid.UUID, status string) (*domain.Invite, error) {
	invite, err := s.repo.Respond(ctx, id, status)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); ok {
			return nil, apiErr
		}
		s.logger.Error("Failed to respond to invite", zap.Error(err),
			zap.String("inviteID", id.String()), zap.String("status", status))
		return nil, common.ErrInternalServer.WithDetails("Failed to update invite")
	}
	s.logger.Info("Invite answered", zap.String("inviteID", id.String()), zap.String("status", status))
	return invite, nil
}
