package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/openbooks/books_backend/internal/middleware"
)

// voucherHandler handles HTTP requests for voucher posting and maintenance.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

func newVoucherHandler(vs portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{voucherService: vs}
}

// registerVoucherRoutes registers routes related to vouchers.
func registerVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	h := newVoucherHandler(voucherService)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.createVoucher)
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/:id", h.getVoucher)
		vouchers.PUT("/:id", h.updateVoucher)
		vouchers.DELETE("/:id", h.deleteVoucher)
	}
}

// createVoucher godoc
// @Summary Post a new voucher
// @Description Posts a balanced voucher of at least two entries and updates account balances atomically
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucher body dto.CreateVoucherRequest true "Voucher details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /vouchers [post]
func (h *voucherHandler) createVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Success: false, Message: "unauthorized"})
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// getVoucher godoc
// @Summary Get a voucher by ID
// @Tags vouchers
// @Produce  json
// @Param   id path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /vouchers/{id} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	voucher, err := h.voucherService.GetVoucherByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// listVouchers godoc
// @Summary List vouchers
// @Description Lists vouchers filtered by type, financial year, account, and date range
// @Tags vouchers
// @Produce  json
// @Param   voucherType query string false "Filter by voucher type"
// @Param   financialYear query string false "Filter by financial year (YYYY-YY)"
// @Param   accountID query string false "Only vouchers touching this account"
// @Param   dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param   dateTo query string false "End date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.VoucherResponse
// @Security BearerAuth
// @Router /vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	filter := portsrepo.ListVouchersFilter{
		VoucherType:   domain.VoucherType(params.VoucherType),
		FinancialYear: params.FinancialYear,
		AccountID:     params.AccountID,
		Limit:         params.Limit,
		Offset:        params.Offset,
	}
	if params.DateFrom != "" {
		from, err := time.Parse("2006-01-02", params.DateFrom)
		if err != nil {
			respondBindError(c, logger, err)
			return
		}
		filter.DateFrom = &from
	}
	if params.DateTo != "" {
		to, err := time.Parse("2006-01-02", params.DateTo)
		if err != nil {
			respondBindError(c, logger, err)
			return
		}
		filter.DateTo = &to
	}

	vouchers, err := h.voucherService.ListVouchers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListVoucherResponse(vouchers))
}

// updateVoucher godoc
// @Summary Edit a posted voucher
// @Description Replaces the entry set and reapplies account balances; type and number are immutable
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   id path string true "Voucher ID"
// @Param   voucher body dto.UpdateVoucherRequest true "Fields to update"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} handlers.errorResponse
// @Failure 404 {object} handlers.errorResponse
// @Failure 400 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /vouchers/{id} [put]
func (h *voucherHandler) updateVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Success: false, Message: "unauthorized"})
		return
	}

	voucher, err := h.voucherService.UpdateVoucher(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// deleteVoucher godoc
// @Summary Delete a voucher
// @Description Removes the voucher and reverses its effect on account balances
// @Tags vouchers
// @Produce  json
// @Param   id path string true "Voucher ID"
// @Success 204 "No Content"
// @Failure 404 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /vouchers/{id} [delete]
func (h *voucherHandler) deleteVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Success: false, Message: "unauthorized"})
		return
	}

	if err := h.voucherService.DeleteVoucher(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
