package domain

import "github.com/shopspring/decimal"

// The reconciliation policy: every payment lifecycle event is reduced to a
// single signed delta against the linked account's balance (positive =
// credit, negative = debit). Balances are never recomputed by replaying
// history; each mutation applies the O(1) delta derived from the old and new
// payment state, so the net effect of any event sequence always equals
// "+amount if income & completed, -amount if expense & completed, 0
// otherwise".

// signFor maps a payment type to the sign of its completed balance effect.
func signFor(t PaymentType) decimal.Decimal {
	switch t {
	case PaymentTypeIncome:
		return decimal.NewFromInt(1)
	case PaymentTypeExpense:
		return decimal.NewFromInt(-1)
	default:
		return decimal.Zero
	}
}

// CreationDelta is the balance change caused by creating a payment. Only a
// payment created in COMPLETED state has an effect.
func CreationDelta(amount decimal.Decimal, status PaymentStatus, t PaymentType) decimal.Decimal {
	if status != PaymentCompleted {
		return decimal.Zero
	}
	return signFor(t).Mul(amount)
}

// UpdateDelta is the balance change needed to reconcile a payment's previous
// persisted state with its new state:
//
//   - leaving COMPLETED reverses the old effect in full;
//   - staying COMPLETED applies only the amount difference (which may be a
//     partial reversal);
//   - entering COMPLETED applies the full new amount, even when the amount
//     changed in the same write;
//   - a mutation between non-completed states has no effect.
func UpdateDelta(prev Snapshot, newAmount decimal.Decimal, newStatus PaymentStatus, t PaymentType) decimal.Decimal {
	sign := signFor(t)
	if sign.IsZero() {
		return decimal.Zero
	}
	wasCompleted := prev.Status == PaymentCompleted
	isCompleted := newStatus == PaymentCompleted
	switch {
	case wasCompleted && !isCompleted:
		return sign.Mul(prev.Amount).Neg()
	case wasCompleted && isCompleted:
		return sign.Mul(newAmount.Sub(prev.Amount))
	case isCompleted:
		return sign.Mul(newAmount)
	default:
		return decimal.Zero
	}
}

// DeletionDelta is the balance change caused by removing a payment: the full
// reversal of its current effect.
func DeletionDelta(amount decimal.Decimal, status PaymentStatus, t PaymentType) decimal.Decimal {
	return CreationDelta(amount, status, t).Neg()
}
