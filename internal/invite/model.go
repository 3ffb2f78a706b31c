package invite

import (
	"collab_hub_backend/internal/domain"

	"github.com/google/uuid"
)

// SendInviteRequest is the body of POST /invites. The referenced users and
// project are not checked for existence.
type SendInviteRequest struct {
	SenderID   uuid.UUID `json:"senderId" binding:"required"`
	ReceiverID uuid.UUID `json:"receiverId" binding:"required"`
	ProjectID  uuid.UUID `json:"projectId" binding:"required"`
	Role       string    `json:"role" binding:"max=100"`
}

// RespondInviteRequest is the body of PATCH /invites/:id.
type RespondInviteRequest struct {
	Status string `json:"status" binding:"required,oneof=pending accepted declined"`
}

// SenderSummary is the sender projection attached to received invites.
type SenderSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	GithubURL *string   `json:"githubUrl"`
}

// ReceivedInviteResponse is an invite with its full project and a trimmed
// sender.
type ReceivedInviteResponse struct {
	domain.Invite
	Sender *SenderSummary `json:"sender,omitempty"`
}

// ToReceivedInviteResponses converts preloaded invites to the API shape.
func ToReceivedInviteResponses(invites []domain.Invite) []ReceivedInviteResponse {
	out := make([]ReceivedInviteResponse, 0, len(invites))
	for _, inv := range invites {
		resp := ReceivedInviteResponse{Invite: inv}
		if inv.Sender != nil {
			resp.Sender = &SenderSummary{
				ID:        inv.Sender.ID,
				Name:      inv.Sender.Name,
				Email:     inv.Sender.Email,
				GithubURL: inv.Sender.GithubURL,
			}
		}
		resp.Invite.Sender = nil
		out = append(out, resp)
	}
	return out
}
