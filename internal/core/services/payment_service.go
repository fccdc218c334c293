package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dokanly/posledger/internal/apperrors"
	"github.com/dokanly/posledger/internal/core/domain"
	"github.com/dokanly/posledger/internal/core/ports/repositories"
	portssvc "github.com/dokanly/posledger/internal/core/ports/services"
	"github.com/dokanly/posledger/internal/dto"
	"github.com/dokanly/posledger/internal/middleware"
	"github.com/google/uuid"
)

// PaymentService orchestrates the payment lifecycle. For every mutation it
// resolves the parent transaction's flags once, classifies the payment,
// reduces the state change to a single signed balance delta and hands the
// payment write plus the delta to the repository, which applies both in one
// storage transaction.
type PaymentService struct {
	paymentRepo repositories.PaymentRepositoryFacade
	accountRepo repositories.AccountReader
	parentRepo  repositories.ParentTransactionReader
}

var _ portssvc.PaymentSvcFacade = (*PaymentService)(nil)

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentRepo repositories.PaymentRepositoryFacade,
	accountRepo repositories.AccountReader,
	parentRepo repositories.ParentTransactionReader,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		accountRepo: accountRepo,
		parentRepo:  parentRepo,
	}
}

// GetPaymentByID retrieves a specific payment within the tenant scope.
func (s *PaymentService) GetPaymentByID(ctx context.Context, tc domain.TenantContext, paymentID string) (*domain.Payment, error) {
	return s.paymentRepo.FindPaymentByID(ctx, tc, paymentID)
}

// ListPaymentsByAccount retrieves a paginated list of payments funded by the
// given account.
func (s *PaymentService) ListPaymentsByAccount(ctx context.Context, tc domain.TenantContext, accountID string, limit int, offset int) ([]domain.Payment, error) {
	limit, offset = normalizePagination(limit, offset)
	return s.paymentRepo.ListPaymentsByAccount(ctx, tc, accountID, limit, offset)
}

// ClassifyPayment resolves the payment's parent flags and returns its derived
// monetary direction.
func (s *PaymentService) ClassifyPayment(ctx context.Context, tc domain.TenantContext, payment domain.Payment) (domain.PaymentType, error) {
	flags, err := s.resolveParentFlags(ctx, tc, payment)
	if err != nil {
		return "", err
	}
	return domain.ClassifyPaymentType(flags), nil
}

// CreatePayment records a new payment. A payment created COMPLETED and linked
// to an account adjusts that account's balance in the same transaction as the
// insert; any other state leaves the balance untouched.
func (s *PaymentService) CreatePayment(ctx context.Context, tc domain.TenantContext, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	payment := domain.Payment{
		PaymentID:  uuid.NewString(),
		TenantID:   tc.TenantID,
		Amount:     req.Amount,
		Method:     req.Method,
		Reference:  req.Reference,
		Status:     req.Status,
		SaleID:     req.SaleID,
		PurchaseID: req.PurchaseID,
		ExpenseID:  req.ExpenseID,
		SalaryID:   req.SalaryID,
		AccountID:  req.AccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := payment.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	flags, err := s.resolveParentFlags(ctx, tc, payment)
	if err != nil {
		return nil, err
	}
	paymentType := domain.ClassifyPaymentType(flags)

	delta := domain.CreationDelta(payment.Amount, payment.Status, paymentType)
	if !delta.IsZero() && payment.AccountID == nil {
		return nil, fmt.Errorf("a completed %s payment requires a funding account: %w",
			paymentType, apperrors.ErrValidation)
	}

	if payment.AccountID != nil {
		account, err := s.accountRepo.FindAccountByID(ctx, tc, *payment.AccountID)
		if err != nil {
			return nil, fmt.Errorf("funding account: %w", err)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("funding account %q is inactive: %w", account.Name, apperrors.ErrValidation)
		}
	}

	if err := s.paymentRepo.SavePayment(ctx, payment, delta); err != nil {
		logger.Error("Failed to save payment", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment created",
		slog.String("payment_id", payment.PaymentID),
		slog.String("payment_type", string(paymentType)),
		slog.String("status", string(payment.Status)),
		slog.String("delta", delta.StringFixed(2)))
	return &payment, nil
}

// UpdatePayment edits a payment's amount, status, method or reference and
// reconciles the funding account's balance against the previously persisted
// state. The funding account and parent reference are immutable after
// creation.
func (s *PaymentService) UpdatePayment(ctx context.Context, tc domain.TenantContext, paymentID string, req dto.UpdatePaymentRequest, userID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.paymentRepo.FindPaymentByID(ctx, tc, paymentID)
	if err != nil {
		return nil, err
	}
	prev := existing.Snapshot()

	updated := *existing
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.Method != nil {
		updated.Method = *req.Method
	}
	if req.Reference != nil {
		updated.Reference = *req.Reference
	}
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	flags, err := s.resolveParentFlags(ctx, tc, updated)
	if err != nil {
		return nil, err
	}
	paymentType := domain.ClassifyPaymentType(flags)

	delta := domain.UpdateDelta(prev, updated.Amount, updated.Status, paymentType)
	if !delta.IsZero() && updated.AccountID == nil {
		return nil, fmt.Errorf("payment %s has a balance effect but no funding account: %w",
			paymentID, apperrors.ErrInvariant)
	}

	if err := s.paymentRepo.UpdatePayment(ctx, tc, updated, prev, delta); err != nil {
		logger.Error("Failed to update payment",
			slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment updated",
		slog.String("payment_id", paymentID),
		slog.String("status", string(updated.Status)),
		slog.String("delta", delta.StringFixed(2)))
	return &updated, nil
}

// DeletePayment removes the payment, reversing whatever effect it currently
// has on its funding account's balance.
func (s *PaymentService) DeletePayment(ctx context.Context, tc domain.TenantContext, paymentID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.paymentRepo.FindPaymentByID(ctx, tc, paymentID)
	if err != nil {
		return err
	}
	prev := existing.Snapshot()

	flags, err := s.resolveParentFlags(ctx, tc, *existing)
	if err != nil {
		return err
	}
	paymentType := domain.ClassifyPaymentType(flags)

	delta := domain.DeletionDelta(prev.Amount, prev.Status, paymentType)
	if !delta.IsZero() && existing.AccountID == nil {
		return fmt.Errorf("payment %s has a balance effect but no funding account: %w",
			paymentID, apperrors.ErrInvariant)
	}

	if err := s.paymentRepo.DeletePayment(ctx, tc, *existing, prev, delta); err != nil {
		logger.Error("Failed to delete payment",
			slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Payment deleted",
		slog.String("payment_id", paymentID),
		slog.String("delta", delta.StringFixed(2)))
	return nil
}

// resolveParentFlags fetches the classification flags for the payment's
// parent reference. Unlinked payments classify as transfers and need no
// lookup. The flags are read once per operation and reused for the whole
// mutation, so a concurrent flip of the return flag cannot split one
// operation's classification.
func (s *PaymentService) resolveParentFlags(ctx context.Context, tc domain.TenantContext, payment domain.Payment) (*domain.ParentFlags, error) {
	ref, err := payment.ParentRef()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}
	if ref == nil {
		return nil, nil
	}
	flags, err := s.parentRepo.FindParentFlags(ctx, tc, *ref)
	if err != nil {
		return nil, fmt.Errorf("parent %s %s: %w", ref.Kind, ref.ID, err)
	}
	return flags, nil
}
