package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/openbooks/books_backend/internal/middleware"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/groups", h.getGroups)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Registers a chart-of-accounts entry with an opening balance
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Success: false, Message: "unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists accounts with optional search and group/type filters
// @Tags accounts
// @Produce  json
// @Param   search query string false "Substring match on code or name"
// @Param   accountGroup query string false "Filter by account group"
// @Param   accountType query string false "Filter by account type"
// @Param   isActive query bool false "Filter by active flag"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), portsrepo.ListAccountsFilter{
		Search:       params.Search,
		AccountGroup: domain.AccountGroup(params.AccountGroup),
		AccountType:  params.AccountType,
		IsActive:     params.IsActive,
		UnitID:       params.UnitID,
		Limit:        params.Limit,
		Offset:       params.Offset,
	})
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getGroups godoc
// @Summary Get the account group hierarchy
// @Description Returns the static group -> allowed account types mapping
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.GroupsResponse
// @Security BearerAuth
// @Router /accounts/groups [get]
func (h *accountHandler) getGroups(c *gin.Context) {
	c.JSON(http.StatusOK, dto.GroupsResponse{Groups: domain.AccountTypesByGroup})
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates mutable account details; the account group is immutable
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} handlers.errorResponse
// @Failure 404 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Success: false, Message: "unauthorized"})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Deactivate an account
// @Description Soft-deletes the account; posted vouchers keep referencing it
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} handlers.errorResponse
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Success: false, Message: "unauthorized"})
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
