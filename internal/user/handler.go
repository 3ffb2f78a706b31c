// File: internal/user/handler.go
package user

import (
	"fmt"

	"collab_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for user operations. writeMW guards the
// routes that create or modify profiles.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, writeMW gin.HandlerFunc) {
	userGroup := router.Group("/users")
	{
		userGroup.GET("", h.getUsers)
		userGroup.POST("", writeMW, h.createUser)

		userGroup.GET("/firebase/:firebaseUid", h.getUserByFirebaseUID)
		userGroup.PUT("/firebase/:firebaseUid", writeMW, h.updateUserByFirebaseUID)
		userGroup.PATCH("/firebase/:firebaseUid", writeMW, h.updateUserByFirebaseUID)
		userGroup.GET("/firebase/:firebaseUid/projects", h.getUserProjects)
		userGroup.GET("/firebase/:firebaseUid/collaborations", h.getUserCollaborations)

		userGroup.GET("/:userId/projects", h.getUserProjectsByID)
		userGroup.GET("/:userId/collaborations", h.getUserCollaborationsByID)
	}
}

func (h *Handler) getUsers(c *gin.Context) {
	params := ListParams{Stack: ParseStack(c.Query("stack"))}
	if page, limit, ok := common.OptionalLimit(c.Query("page"), c.Query("limit")); ok {
		params.Page, params.Limit = page, limit
	}

	users, err := h.service.ListUsers(c.Request.Context(), params)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, users)
}

func (h *Handler) getUserByFirebaseUID(c *gin.Context) {
	usr, err := h.service.GetUser(c.Request.Context(), ByFirebaseUID(c.Param("firebaseUid")))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, usr)
}

func (h *Handler) createUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create user: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	usr, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, usr)
}

func (h *Handler) updateUserByFirebaseUID(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Update user: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	usr, err := h.service.UpsertByFirebaseUID(c.Request.Context(), c.Param("firebaseUid"), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, usr)
}

func (h *Handler) getUserProjects(c *gin.Context) {
	h.respondProjects(c, ByFirebaseUID(c.Param("firebaseUid")))
}

func (h *Handler) getUserProjectsByID(c *gin.Context) {
	key, ok := h.lookupByID(c)
	if !ok {
		return
	}
	h.respondProjects(c, key)
}

func (h *Handler) respondProjects(c *gin.Context, key Lookup) {
	projects, err := h.service.OwnedProjects(c.Request.Context(), key)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, projects)
}

func (h *Handler) getUserCollaborations(c *gin.Context) {
	h.respondCollaborations(c, ByFirebaseUID(c.Param("firebaseUid")))
}

func (h *Handler) getUserCollaborationsByID(c *gin.Context) {
	key, ok := h.lookupByID(c)
	if !ok {
		return
	}
	h.respondCollaborations(c, key)
}

func (h *Handler) respondCollaborations(c *gin.Context, key Lookup) {
	projects, err := h.service.Collaborations(c.Request.Context(), key)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, projects)
}

func (h *Handler) lookupByID(c *gin.Context) (Lookup, bool) {
	paramID := c.Param("userId")
	id, err := uuid.Parse(paramID)
	if err != nil {
		h.logger.Warn("Invalid user ID format in URL parameter", zap.String("paramID", paramID), zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(fmt.Sprintf("Invalid user ID format: %q", paramID)))
		return Lookup{}, false
	}
	return ByID(id), true
}
