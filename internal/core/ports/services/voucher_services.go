package services

import (
	"context"

	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	"github.com/openbooks/books_backend/internal/dto"
)

// VoucherSvcFacade defines voucher posting and maintenance operations.
type VoucherSvcFacade interface {
	CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error)
	GetVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)
	ListVouchers(ctx context.Context, filter portsrepo.ListVouchersFilter) ([]domain.Voucher, error)
	UpdateVoucher(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error)
	DeleteVoucher(ctx context.Context, voucherID string, userID string) error
}
