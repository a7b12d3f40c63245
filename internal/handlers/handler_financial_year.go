package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/openbooks/books_backend/internal/middleware"
)

// financialYearHandler handles HTTP requests for fiscal-year administration.
type financialYearHandler struct {
	fyService portssvc.FinancialYearSvcFacade
}

func newFinancialYearHandler(fs portssvc.FinancialYearSvcFacade) *financialYearHandler {
	return &financialYearHandler{fyService: fs}
}

// registerFinancialYearRoutes registers routes related to financial years.
func registerFinancialYearRoutes(rg *gin.RouterGroup, fyService portssvc.FinancialYearSvcFacade) {
	h := newFinancialYearHandler(fyService)

	years := rg.Group("/financial-years")
	{
		years.POST("", h.createFinancialYear)
		years.GET("", h.listFinancialYears)
		years.GET("/:id", h.getFinancialYear)
		years.PUT("/:id", h.updateFinancialYear)
		years.POST("/:id/activate", h.activateFinancialYear)
		years.POST("/:id/close", h.closeFinancialYear)
		years.DELETE("/:id", h.deleteFinancialYear)
	}
}

// createFinancialYear godoc
// @Summary Register a financial year
// @Description Registers an April-March fiscal year whose code must match its date range
// @Tags financial-years
// @Accept  json
// @Produce  json
// @Param   year body dto.CreateFinancialYearRequest true "Year details"
// @Success 201 {object} dto.FinancialYearResponse
// @Failure 400 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /financial-years [post]
func (h *financialYearHandler) createFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFinancialYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Success: false, Message: "unauthorized"})
		return
	}

	fy, err := h.fyService.CreateFinancialYear(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToFinancialYearResponse(fy))
}

// getFinancialYear godoc
// @Summary Get a financial year by ID
// @Tags financial-years
// @Produce  json
// @Param   id path string true "Year ID"
// @Success 200 {object} dto.FinancialYearResponse
// @Failure 404 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /financial-years/{id} [get]
func (h *financialYearHandler) getFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fy, err := h.fyService.GetFinancialYearByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialYearResponse(fy))
}

// updateFinancialYear godoc
// @Summary Update a financial year
// @Description Renames an open year; its date range follows the new code. Closed years cannot be edited
// @Tags financial-years
// @Accept  json
// @Produce  json
// @Param   id path string true "Year ID"
// @Param   year body dto.UpdateFinancialYearRequest true "Fields to update"
// @Success 200 {object} dto.FinancialYearResponse
// @Failure 400 {object} handlers.errorResponse
// @Failure 404 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /financial-years/{id} [put]
func (h *financialYearHandler) updateFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateFinancialYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Success: false, Message: "unauthorized"})
		return
	}

	fy, err := h.fyService.UpdateFinancialYear(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialYearResponse(fy))
}

// listFinancialYears godoc
// @Summary List financial years
// @Tags financial-years
// @Produce  json
// @Success 200 {array} dto.FinancialYearResponse
// @Security BearerAuth
// @Router /financial-years [get]
func (h *financialYearHandler) listFinancialYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	years, err := h.fyService.ListFinancialYears(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListFinancialYearResponse(years))
}

// activateFinancialYear godoc
// @Summary Activate a financial year
// @Description Marks the year active and every other year inactive
// @Tags financial-years
// @Produce  json
// @Param   id path string true "Year ID"
// @Success 200 {object} dto.FinancialYearResponse
// @Failure 404 {object} handlers.errorResponse
// @Failure 400 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /financial-years/{id}/activate [post]
func (h *financialYearHandler) activateFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Success: false, Message: "unauthorized"})
		return
	}

	yearID := c.Param("id")
	if err := h.fyService.ActivateFinancialYear(c.Request.Context(), yearID, userID); err != nil {
		respondError(c, logger, err)
		return
	}

	fy, err := h.fyService.GetFinancialYearByID(c.Request.Context(), yearID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialYearResponse(fy))
}

// closeFinancialYear godoc
// @Summary Close a financial year
// @Description One-way close; further vouchers dated inside the year are rejected
// @Tags financial-years
// @Produce  json
// @Param   id path string true "Year ID"
// @Success 200 {object} dto.FinancialYearResponse
// @Failure 404 {object} handlers.errorResponse
// @Failure 400 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /financial-years/{id}/close [post]
func (h *financialYearHandler) closeFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Success: false, Message: "unauthorized"})
		return
	}

	yearID := c.Param("id")
	if err := h.fyService.CloseFinancialYear(c.Request.Context(), yearID, userID); err != nil {
		respondError(c, logger, err)
		return
	}

	fy, err := h.fyService.GetFinancialYearByID(c.Request.Context(), yearID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialYearResponse(fy))
}

// deleteFinancialYear godoc
// @Summary Delete a financial year
// @Description Removes an open, inactive year
// @Tags financial-years
// @Produce  json
// @Param   id path string true "Year ID"
// @Success 204 "No Content"
// @Failure 404 {object} handlers.errorResponse
// @Failure 400 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /financial-years/{id} [delete]
func (h *financialYearHandler) deleteFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.fyService.DeleteFinancialYear(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
