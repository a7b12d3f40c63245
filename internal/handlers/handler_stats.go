package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/openbooks/books_backend/internal/middleware"
)

// statsHandler handles HTTP requests for the cached aggregate counters.
type statsHandler struct {
	statsService portssvc.StatsSvcFacade
}

func newStatsHandler(ss portssvc.StatsSvcFacade) *statsHandler {
	return &statsHandler{statsService: ss}
}

// registerStatsRoutes registers the stats routes.
func registerStatsRoutes(rg *gin.RouterGroup, statsService portssvc.StatsSvcFacade) {
	h := newStatsHandler(statsService)

	stats := rg.Group("/stats")
	{
		stats.GET("", h.getStats)
		stats.POST("", h.recomputeStats)
	}
}

// getStats godoc
// @Summary Get aggregate counters
// @Description Serves the cached snapshot, recomputing when stale
// @Tags stats
// @Produce  json
// @Param   force query bool false "Skip the freshness check"
// @Success 200 {object} dto.StatsResponse
// @Security BearerAuth
// @Router /stats [get]
func (h *statsHandler) getStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	force := c.Query("force") == "true"
	stats, err := h.statsService.GetStats(c.Request.Context(), force)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToStatsResponse(stats))
}

// recomputeStats godoc
// @Summary Force a stats recompute
// @Description Recomputes the snapshot synchronously and returns it
// @Tags stats
// @Produce  json
// @Success 200 {object} dto.StatsResponse
// @Security BearerAuth
// @Router /stats [post]
func (h *statsHandler) recomputeStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stats, err := h.statsService.GetStats(c.Request.Context(), true)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToStatsResponse(stats))
}
