package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/openbooks/books_backend/internal/middleware"
)

var (
	ErrAccountCodeTaken = fmt.Errorf("account code is already in use: %w", apperrors.ErrDuplicate)
	ErrUnknownGroup     = fmt.Errorf("unknown account group: %w", apperrors.ErrValidation)
	ErrInvalidType      = fmt.Errorf("account type not allowed under group: %w", apperrors.ErrValidation)
	ErrNegativeOpening  = fmt.Errorf("opening balance magnitude must not be negative: %w", apperrors.ErrValidation)
	ErrAccountInactive  = fmt.Errorf("account is inactive: %w", apperrors.ErrValidation)
)

// accountService provides chart-of-accounts operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account after validating the group/type
// pairing and code uniqueness. The opening balance arrives as (magnitude,
// side) and is stored signed.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AccountGroup.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, req.AccountGroup)
	}
	if !domain.ValidAccountType(req.AccountGroup, req.AccountType) {
		return nil, fmt.Errorf("%w: %q under %s", ErrInvalidType, req.AccountType, req.AccountGroup)
	}
	if req.OpeningBalance.Sign() < 0 {
		return nil, fmt.Errorf("%w: got %s", ErrNegativeOpening, req.OpeningBalance)
	}

	// Code collision check first so the caller gets a clean duplicate error
	// instead of a constraint violation.
	existing, err := s.accountRepo.FindAccountByCode(ctx, req.AccountCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check account code uniqueness", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountCodeTaken, req.AccountCode)
	}

	side := req.OpeningBalanceType
	if side == "" {
		side = req.AccountGroup.NormalSide()
	}
	opening := domain.FromMagnitudeSide(req.AccountGroup, req.OpeningBalance, side)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		AccountCode:    req.AccountCode,
		AccountName:    req.AccountName,
		AccountGroup:   req.AccountGroup,
		AccountType:    req.AccountType,
		ParentGroup:    req.ParentGroup,
		UnitID:         req.UnitID,
		OpeningBalance: opening,
		Balance:        opening,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrAccountCodeTaken, req.AccountCode)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_code", req.AccountCode))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_code", account.AccountCode))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts retrieves accounts matching the filter.
func (s *accountService) ListAccounts(ctx context.Context, filter portsrepo.ListAccountsFilter) ([]domain.Account, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount edits an account's mutable fields. A changed account code is
// collision-checked against every other account.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.AccountCode != nil && *req.AccountCode != account.AccountCode {
		other, err := s.accountRepo.FindAccountByCode(ctx, *req.AccountCode)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check account code: %w", err)
		}
		if other != nil && other.AccountID != accountID {
			return nil, fmt.Errorf("%w: %s", ErrAccountCodeTaken, *req.AccountCode)
		}
		account.AccountCode = *req.AccountCode
		updated = true
	}
	if req.AccountName != nil {
		account.AccountName = *req.AccountName
		updated = true
	}
	if req.AccountType != nil {
		if !domain.ValidAccountType(account.AccountGroup, *req.AccountType) {
			return nil, fmt.Errorf("%w: %q under %s", ErrInvalidType, *req.AccountType, account.AccountGroup)
		}
		account.AccountType = *req.AccountType
		updated = true
	}
	if req.ParentGroup != nil {
		account.ParentGroup = *req.ParentGroup
		updated = true
	}
	if req.UnitID != nil {
		account.UnitID = *req.UnitID
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount soft-deletes an account. Voucher history referencing it
// is never pruned.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.SetAccountActive(ctx, accountID, false, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
