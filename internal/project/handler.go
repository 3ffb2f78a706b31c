// File: internal/project/handler.go
package project

import (
	"collab_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for project handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new project handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for project operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, writeMW gin.HandlerFunc) {
	projectGroup := router.Group("/projects")
	{
		projectGroup.GET("", h.listProjects)
		projectGroup.POST("", writeMW, h.createProject)
		projectGroup.GET("/:id", h.getProject)
	}
}

func (h *Handler) createProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create project: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	project, err := h.service.CreateProject(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, project)
}

func (h *Handler) getProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid project ID format."))
		return
	}

	project, err := h.service.GetProject(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, project)
}

func (h *Handler) listProjects(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	query := ListQuery{Page: page, PageSize: pageSize}

	if raw := c.Query("creatorId"); raw != "" {
		creatorID, err := uuid.Parse(raw)
		if err != nil {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid creatorId format."))
			return
		}
		query.CreatorID = &creatorID
	}

	projects, pagination, err := h.service.ListProjects(c.Request.Context(), query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Projects retrieved successfully.", projects, pagination)
}
