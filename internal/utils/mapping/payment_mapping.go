package mapping

import (
	"github.com/dokanly/posledger/internal/core/domain"
	"github.com/dokanly/posledger/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		TenantID:    d.TenantID,
		Amount:      d.Amount,
		Method:      d.Method,
		Reference:   d.Reference,
		Status:      models.PaymentStatus(d.Status),
		SaleID:      d.SaleID,
		PurchaseID:  d.PurchaseID,
		ExpenseID:   d.ExpenseID,
		SalaryID:    d.SalaryID,
		AccountID:   d.AccountID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		TenantID:    m.TenantID,
		Amount:      m.Amount,
		Method:      m.Method,
		Reference:   m.Reference,
		Status:      domain.PaymentStatus(m.Status),
		SaleID:      m.SaleID,
		PurchaseID:  m.PurchaseID,
		ExpenseID:   m.ExpenseID,
		SalaryID:    m.SalaryID,
		AccountID:   m.AccountID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to a slice of domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
