package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbooks/books_backend/internal/core/domain"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/openbooks/books_backend/internal/middleware"
)

// pendingChangeHandler handles HTTP requests for the approval workflow.
type pendingChangeHandler struct {
	changeService portssvc.PendingChangeSvcFacade
}

func newPendingChangeHandler(ps portssvc.PendingChangeSvcFacade) *pendingChangeHandler {
	return &pendingChangeHandler{changeService: ps}
}

// registerPendingChangeRoutes registers routes related to pending changes.
func registerPendingChangeRoutes(rg *gin.RouterGroup, changeService portssvc.PendingChangeSvcFacade) {
	h := newPendingChangeHandler(changeService)

	changes := rg.Group("/pending-changes")
	{
		changes.POST("", h.submitChange)
		changes.GET("", h.listChanges)
		changes.GET("/:id", h.getChange)
		changes.POST("/:id/review", h.reviewChange)
	}
}

// submitChange godoc
// @Summary Submit a change for approval
// @Description Queues an opaque JSON change payload for reviewer approval
// @Tags pending-changes
// @Accept  json
// @Produce  json
// @Param   change body dto.SubmitChangeRequest true "Change details"
// @Success 201 {object} dto.PendingChangeResponse
// @Failure 400 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /pending-changes [post]
func (h *pendingChangeHandler) submitChange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SubmitChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Success: false, Message: "unauthorized"})
		return
	}

	change, err := h.changeService.SubmitChange(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPendingChangeResponse(change))
}

// getChange godoc
// @Summary Get a pending change by ID
// @Tags pending-changes
// @Produce  json
// @Param   id path string true "Change ID"
// @Success 200 {object} dto.PendingChangeResponse
// @Failure 404 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /pending-changes/{id} [get]
func (h *pendingChangeHandler) getChange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	change, err := h.changeService.GetChangeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPendingChangeResponse(change))
}

// listChanges godoc
// @Summary List pending changes
// @Description Lists changes filtered by status, newest first
// @Tags pending-changes
// @Produce  json
// @Param   status query string false "pending, approved, or rejected"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.PendingChangeResponse
// @Security BearerAuth
// @Router /pending-changes [get]
func (h *pendingChangeHandler) listChanges(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPendingChangesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	changes, err := h.changeService.ListChanges(c.Request.Context(), domain.ChangeStatus(params.Status), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListPendingChangeResponse(changes))
}

// reviewChange godoc
// @Summary Review a pending change
// @Description Approves or rejects a pending change; the transition is one-way
// @Tags pending-changes
// @Accept  json
// @Produce  json
// @Param   id path string true "Change ID"
// @Param   review body dto.ReviewChangeRequest true "Verdict"
// @Success 200 {object} dto.PendingChangeResponse
// @Failure 400 {object} handlers.errorResponse
// @Failure 403 {object} handlers.errorResponse
// @Failure 400 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /pending-changes/{id}/review [post]
func (h *pendingChangeHandler) reviewChange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReviewChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Success: false, Message: "unauthorized"})
		return
	}

	change, err := h.changeService.ReviewChange(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPendingChangeResponse(change))
}
