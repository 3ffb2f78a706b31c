package invite

import (
	"fmt"

	"collab_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for invite handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new invite handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for invite operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, writeMW gin.HandlerFunc) {
	inviteGroup := router.Group("/invites")
	{
		inviteGroup.POST("", writeMW, h.sendInvite)
		inviteGroup.GET("/received", h.getReceivedInvites)
		inviteGroup.PATCH("/:id", writeMW, h.respondToInvite)
	}
}

func (h *Handler) sendInvite(c *gin.Context) {
	var req SendInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Send invite: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	invite, err := h.service.SendInvite(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, invite)
}

func (h *Handler) getReceivedInvites(c *gin.Context) {
	raw := c.Query("userId")
	userID, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Warn("Received invites: invalid userId", zap.String("userId", raw))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("A valid userId query parameter is required."))
		return
	}

	invites, err := h.service.ReceivedInvites(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, invites)
}

func (h *Handler) respondToInvite(c *gin.Context) {
	paramID := c.Param("id")
	inviteID, err := uuid.Parse(paramID)
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(fmt.Sprintf("Invalid invite ID format: %q", paramID)))
		return
	}

	var req RespondInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Respond to invite: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	invite, err := h.service.RespondToInvite(c.Request.Context(), inviteID, req.Status)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, invite)
}
