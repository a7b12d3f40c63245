package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/openbooks/books_backend/internal/middleware"
)

var (
	ErrVoucherUnbalanced  = fmt.Errorf("total debit must equal total credit: %w", apperrors.ErrValidation)
	ErrVoucherMinEntries  = fmt.Errorf("voucher must have at least two entries: %w", apperrors.ErrValidation)
	ErrUnknownVoucherType = fmt.Errorf("unknown voucher type: %w", apperrors.ErrValidation)
	ErrNegativeAmount     = fmt.Errorf("entry amounts must not be negative: %w", apperrors.ErrValidation)
	ErrEmptyEntry         = fmt.Errorf("entry must carry a debit or a credit amount: %w", apperrors.ErrValidation)
	ErrAccountNotFound    = fmt.Errorf("voucher entry account not found: %w", apperrors.ErrValidation)
	ErrYearClosed         = fmt.Errorf("financial year is closed: %w", apperrors.ErrConflict)
)

// voucherService provides voucher posting, editing and deletion. All balance
// effects ride inside the repository's database transaction; a failure leaves
// no partial account mutations behind.
type voucherService struct {
	voucherRepo portsrepo.VoucherRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	fyRepo      portsrepo.FinancialYearRepository
	statsSvc    portssvc.StatsSvcFacade
}

// NewVoucherService creates a new VoucherService. statsSvc may be nil; the
// fire-and-forget recompute is then skipped.
func NewVoucherService(voucherRepo portsrepo.VoucherRepositoryFacade, accountSvc portssvc.AccountSvcFacade, fyRepo portsrepo.FinancialYearRepository, statsSvc portssvc.StatsSvcFacade) portssvc.VoucherSvcFacade {
	return &voucherService{
		voucherRepo: voucherRepo,
		accountSvc:  accountSvc,
		fyRepo:      fyRepo,
		statsSvc:    statsSvc,
	}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// buildEntries validates the submitted lines, resolves their accounts, and
// snapshots account code/name. It returns the entries plus the per-account
// signed balance deltas the posting must apply.
func (s *voucherService) buildEntries(ctx context.Context, voucherID string, reqs []dto.VoucherEntryRequest) ([]domain.VoucherEntry, map[string]decimal.Decimal, error) {
	if len(reqs) < 2 {
		return nil, nil, ErrVoucherMinEntries
	}

	accountIDs := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if r.Debit.Sign() < 0 || r.Credit.Sign() < 0 {
			return nil, nil, fmt.Errorf("%w: account %s", ErrNegativeAmount, r.AccountID)
		}
		if r.Debit.IsZero() && r.Credit.IsZero() {
			return nil, nil, fmt.Errorf("%w: account %s", ErrEmptyEntry, r.AccountID)
		}
		accountIDs = append(accountIDs, r.AccountID)
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	entries := make([]domain.VoucherEntry, len(reqs))
	deltas := make(map[string]decimal.Decimal)
	for i, r := range reqs {
		acc, found := accounts[r.AccountID]
		if !found {
			return nil, nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, r.AccountID)
		}
		if !acc.IsActive {
			return nil, nil, fmt.Errorf("%w: %s", ErrAccountInactive, acc.AccountCode)
		}
		entries[i] = domain.VoucherEntry{
			EntryID:     uuid.NewString(),
			VoucherID:   voucherID,
			AccountID:   acc.AccountID,
			AccountCode: acc.AccountCode,
			AccountName: acc.AccountName,
			Debit:       r.Debit,
			Credit:      r.Credit,
			Narration:   r.Narration,
			LineNo:      i + 1,
		}
		deltas[acc.AccountID] = deltas[acc.AccountID].Add(domain.SignedDelta(acc.AccountGroup, r.Debit, r.Credit))
	}

	return entries, deltas, nil
}

// reverseDeltas computes the signed deltas that undo a stored entry set:
// each entry is reapplied with debit and credit negated.
func (s *voucherService) reverseDeltas(ctx context.Context, entries []domain.VoucherEntry) (map[string]decimal.Decimal, error) {
	accountIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		accountIDs = append(accountIDs, e.AccountID)
	}
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	deltas := make(map[string]decimal.Decimal)
	for _, e := range entries {
		acc, found := accounts[e.AccountID]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, e.AccountID)
		}
		deltas[e.AccountID] = deltas[e.AccountID].Add(domain.SignedDelta(acc.AccountGroup, e.Debit.Neg(), e.Credit.Neg()))
	}
	return deltas, nil
}

// checkYearOpen rejects postings dated inside a closed financial year.
// A date in a year with no registered metadata is allowed.
func (s *voucherService) checkYearOpen(ctx context.Context, financialYear string) error {
	fy, err := s.fyRepo.FindFinancialYearByCode(ctx, financialYear)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check financial year: %w", err)
	}
	if fy.IsClosed {
		return fmt.Errorf("%w: %s", ErrYearClosed, financialYear)
	}
	return nil
}

// CreateVoucher validates the double-entry invariant, derives the financial
// year from the voucher date, assigns the next sequential voucher number for
// (type, year), persists the voucher and applies every account balance delta
// in one database transaction.
func (s *voucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.VoucherType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVoucherType, req.VoucherType)
	}

	voucherID := uuid.NewString()
	entries, deltas, err := s.buildEntries(ctx, voucherID, req.Entries)
	if err != nil {
		return nil, err
	}

	totalDebit, totalCredit := domain.Totals(entries)
	if !domain.Balanced(totalDebit, totalCredit) {
		return nil, fmt.Errorf("%w: debit %s, credit %s", ErrVoucherUnbalanced, totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	}

	// Financial year comes from the voucher's own date, not the wall clock.
	financialYear := domain.FinancialYearOf(req.VoucherDate)
	if err := s.checkYearOpen(ctx, financialYear); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	voucher := domain.Voucher{
		VoucherID:       voucherID,
		VoucherType:     req.VoucherType,
		VoucherDate:     req.VoucherDate,
		FinancialYear:   financialYear,
		Entries:         entries,
		TotalDebit:      totalDebit,
		TotalCredit:     totalCredit,
		ReferenceNumber: req.ReferenceNumber,
		ChequeNumber:    req.ChequeNumber,
		ChequeDate:      req.ChequeDate,
		Narration:       req.Narration,
		IsPosted:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.voucherRepo.SaveVoucher(ctx, &voucher, deltas); err != nil {
		logger.Error("Failed to save voucher", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}

	logger.Info("Voucher posted",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("voucher_number", voucher.VoucherNumber))

	s.triggerStatsRecompute(ctx)
	return &voucher, nil
}

// GetVoucherByID retrieves a voucher with its entries.
func (s *voucherService) GetVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		}
		return nil, err
	}
	return voucher, nil
}

// ListVouchers retrieves vouchers matching the filter.
func (s *voucherService) ListVouchers(ctx context.Context, filter portsrepo.ListVouchersFilter) ([]domain.Voucher, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	vouchers, err := s.voucherRepo.ListVouchers(ctx, filter)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list vouchers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	return vouchers, nil
}

// UpdateVoucher edits a posted voucher. The stored entries' effects are
// reversed and the new entry set's effects applied as two discrete passes
// inside one database transaction; the rule is not invertible in a single
// diff when amounts or accounts changed.
func (s *voucherService) UpdateVoucher(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}

	reverse := map[string]decimal.Decimal{}
	apply := map[string]decimal.Decimal{}

	if req.Entries != nil {
		reverse, err = s.reverseDeltas(ctx, voucher.Entries)
		if err != nil {
			return nil, err
		}

		newEntries, newDeltas, err := s.buildEntries(ctx, voucherID, req.Entries)
		if err != nil {
			return nil, err
		}
		totalDebit, totalCredit := domain.Totals(newEntries)
		if !domain.Balanced(totalDebit, totalCredit) {
			return nil, fmt.Errorf("%w: debit %s, credit %s", ErrVoucherUnbalanced, totalDebit.StringFixed(2), totalCredit.StringFixed(2))
		}
		voucher.Entries = newEntries
		voucher.TotalDebit = totalDebit
		voucher.TotalCredit = totalCredit
		apply = newDeltas
	}

	if req.VoucherDate != nil {
		newYear := domain.FinancialYearOf(*req.VoucherDate)
		if newYear != voucher.FinancialYear {
			// The voucher number is scoped to (type, year); moving a voucher
			// across years would orphan its sequence.
			return nil, fmt.Errorf("%w: voucher date must stay within financial year %s", apperrors.ErrConflict, voucher.FinancialYear)
		}
		voucher.VoucherDate = *req.VoucherDate
	}
	if req.Narration != nil {
		voucher.Narration = *req.Narration
	}
	if req.ReferenceNumber != nil {
		voucher.ReferenceNumber = *req.ReferenceNumber
	}
	if req.ChequeNumber != nil {
		voucher.ChequeNumber = *req.ChequeNumber
	}
	if req.ChequeDate != nil {
		voucher.ChequeDate = req.ChequeDate
	}
	if req.IsReconciled != nil {
		voucher.IsReconciled = *req.IsReconciled
	}

	if err := s.checkYearOpen(ctx, voucher.FinancialYear); err != nil {
		return nil, err
	}

	voucher.LastUpdatedAt = time.Now().UTC()
	voucher.LastUpdatedBy = userID

	if err := s.voucherRepo.ReplaceVoucher(ctx, *voucher, reverse, apply); err != nil {
		logger.Error("Failed to update voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, fmt.Errorf("failed to update voucher: %w", err)
	}

	logger.Info("Voucher updated", slog.String("voucher_id", voucherID), slog.String("voucher_number", voucher.VoucherNumber))
	s.triggerStatsRecompute(ctx)
	return voucher, nil
}

// DeleteVoucher reverses the voucher's balance effects and removes the
// record, atomically.
func (s *voucherService) DeleteVoucher(ctx context.Context, voucherID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return err
	}

	if err := s.checkYearOpen(ctx, voucher.FinancialYear); err != nil {
		return err
	}

	reverse, err := s.reverseDeltas(ctx, voucher.Entries)
	if err != nil {
		return err
	}

	if err := s.voucherRepo.DeleteVoucher(ctx, voucherID, reverse, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to delete voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return fmt.Errorf("failed to delete voucher: %w", err)
	}

	logger.Info("Voucher deleted", slog.String("voucher_id", voucherID), slog.String("voucher_number", voucher.VoucherNumber))
	s.triggerStatsRecompute(ctx)
	return nil
}

// triggerStatsRecompute kicks off the best-effort statistics refresh. Errors
// never propagate to the posting path.
func (s *voucherService) triggerStatsRecompute(ctx context.Context) {
	if s.statsSvc == nil {
		return
	}
	s.statsSvc.RecomputeAsync(ctx)
}

// uniqueStrings returns a slice containing only the unique strings from the
// input, preserving first-seen order.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
