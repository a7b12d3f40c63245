package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/openbooks/books_backend/internal/middleware"
)

// reportingHandler handles HTTP requests for the derived reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/ledger/:accountID", h.getLedger)
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/day-book", h.getDayBook)
		reports.GET("/journal-book", h.getJournalBook)
		reports.GET("/cash-book", h.getCashBook)
		reports.GET("/bank-book", h.getBankBook)
		reports.GET("/profit-loss", h.getProfitLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
	}
}

// resolveRange turns the shared report query parameters into a concrete
// [from, to] window. A financialYear code wins over explicit dates; with
// neither, the window is the financial year the current date falls in.
func resolveRange(c *gin.Context) (time.Time, time.Time, error) {
	var params dto.ReportRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	if params.FinancialYear != "" {
		from, to, err := domain.FinancialYearBounds(params.FinancialYear)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
		}
		return from, to, nil
	}

	if params.DateFrom != "" || params.DateTo != "" {
		if params.DateFrom == "" || params.DateTo == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("dateFrom and dateTo must be given together: %w", apperrors.ErrValidation)
		}
		from, err := time.Parse("2006-01-02", params.DateFrom)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("malformed dateFrom: %w", apperrors.ErrValidation)
		}
		to, err := time.Parse("2006-01-02", params.DateTo)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("malformed dateTo: %w", apperrors.ErrValidation)
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, fmt.Errorf("dateTo before dateFrom: %w", apperrors.ErrValidation)
		}
		return from, to, nil
	}

	from, to, err := domain.FinancialYearBounds(domain.FinancialYearOf(time.Now()))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

// getLedger godoc
// @Summary Account ledger
// @Description Replays all vouchers touching the account with running balances
// @Tags reports
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   financialYear query string false "Financial year (YYYY-YY)"
// @Param   dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param   dateTo query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.LedgerReportResponse
// @Failure 404 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /reports/ledger/{accountID} [get]
func (h *reportingHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := resolveRange(c)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	report, err := h.reportingService.Ledger(c.Request.Context(), c.Param("accountID"), from, to)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerReportResponse(report))
}

// getTrialBalance godoc
// @Summary Trial balance
// @Description Every active account's balance in its Dr or Cr column, grouped by account group
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.TrialBalanceResponse
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.TrialBalance(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getDayBook godoc
// @Summary Day book
// @Description All vouchers in the date window with entry breakdowns
// @Tags reports
// @Produce  json
// @Param   financialYear query string false "Financial year (YYYY-YY)"
// @Param   dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param   dateTo query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.DayBookResponse
// @Security BearerAuth
// @Router /reports/day-book [get]
func (h *reportingHandler) getDayBook(c *gin.Context) {
	h.dayBook(c, "")
}

// getJournalBook godoc
// @Summary Journal book
// @Description The day book restricted to Journal vouchers
// @Tags reports
// @Produce  json
// @Param   financialYear query string false "Financial year (YYYY-YY)"
// @Param   dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param   dateTo query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.DayBookResponse
// @Security BearerAuth
// @Router /reports/journal-book [get]
func (h *reportingHandler) getJournalBook(c *gin.Context) {
	h.dayBook(c, domain.VoucherJournal)
}

func (h *reportingHandler) dayBook(c *gin.Context, voucherType domain.VoucherType) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := resolveRange(c)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	report, err := h.reportingService.DayBook(c.Request.Context(), from, to, voucherType)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDayBookResponse(report))
}

// getCashBook godoc
// @Summary Cash book
// @Description Cash-account legs of all vouchers in the window, with counter particulars
// @Tags reports
// @Produce  json
// @Param   financialYear query string false "Financial year (YYYY-YY)"
// @Param   dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param   dateTo query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.CashBookResponse
// @Security BearerAuth
// @Router /reports/cash-book [get]
func (h *reportingHandler) getCashBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := resolveRange(c)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	report, err := h.reportingService.CashBook(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCashBookResponse(report))
}

// getBankBook godoc
// @Summary Bank book
// @Description Bank-account legs of all vouchers in the window, with counter particulars
// @Tags reports
// @Produce  json
// @Param   financialYear query string false "Financial year (YYYY-YY)"
// @Param   dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param   dateTo query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.CashBookResponse
// @Security BearerAuth
// @Router /reports/bank-book [get]
func (h *reportingHandler) getBankBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := resolveRange(c)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	report, err := h.reportingService.BankBook(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCashBookResponse(report))
}

// getProfitLoss godoc
// @Summary Profit and loss statement
// @Description Income against expenses grouped by account type
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.ProfitLossResponse
// @Security BearerAuth
// @Router /reports/profit-loss [get]
func (h *reportingHandler) getProfitLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.ProfitLoss(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitLossResponse(report))
}

// getBalanceSheet godoc
// @Summary Balance sheet
// @Description Assets against liabilities, capital, and the folded-in net profit
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.BalanceSheetResponse
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.BalanceSheet(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}
