package dto

import (
	"time"

	"github.com/dokanly/posledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines the data needed to record a payment. At most
// one of the parent references may be set; a payment without one is a
// transfer leg and never moves an account balance through this engine.
type CreatePaymentRequest struct {
	Amount     decimal.Decimal      `json:"amount" binding:"required,gt=0"`
	Method     string               `json:"method" binding:"required"`
	Reference  string               `json:"reference"`
	Status     domain.PaymentStatus `json:"status" binding:"required,oneof=PENDING COMPLETED CANCELLED"`
	AccountID  *string              `json:"accountID"`
	SaleID     *string              `json:"saleID"`
	PurchaseID *string              `json:"purchaseID"`
	ExpenseID  *string              `json:"expenseID"`
	SalaryID   *string              `json:"salaryID"`
}

// UpdatePaymentRequest defines the fields allowed for editing a payment
// after the fact. The funding account and parent reference are immutable.
type UpdatePaymentRequest struct {
	Amount    *decimal.Decimal      `json:"amount" binding:"omitempty,gt=0"`
	Status    *domain.PaymentStatus `json:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELLED"`
	Method    *string               `json:"method"`
	Reference *string               `json:"reference"`
}

// PaymentResponse defines the data returned for a payment, including the
// derived classification.
type PaymentResponse struct {
	PaymentID     string               `json:"paymentID"`
	Amount        decimal.Decimal      `json:"amount"`
	Method        string               `json:"method"`
	Reference     string               `json:"reference,omitempty"`
	Status        domain.PaymentStatus `json:"status"`
	PaymentType   domain.PaymentType   `json:"paymentType"`
	AccountID     *string              `json:"accountID,omitempty"`
	SaleID        *string              `json:"saleID,omitempty"`
	PurchaseID    *string              `json:"purchaseID,omitempty"`
	ExpenseID     *string              `json:"expenseID,omitempty"`
	SalaryID      *string              `json:"salaryID,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy string               `json:"lastUpdatedBy"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListPaymentsResponse wraps the list of payments.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToPaymentResponse converts a domain.Payment plus its derived type to the
// response DTO.
func ToPaymentResponse(p *domain.Payment, paymentType domain.PaymentType) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		Amount:        p.Amount,
		Method:        p.Method,
		Reference:     p.Reference,
		Status:        p.Status,
		PaymentType:   paymentType,
		AccountID:     p.AccountID,
		SaleID:        p.SaleID,
		PurchaseID:    p.PurchaseID,
		ExpenseID:     p.ExpenseID,
		SalaryID:      p.SalaryID,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}
