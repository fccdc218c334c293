package domain_test

import (
	"testing"

	"github.com/dokanly/posledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCreationDelta(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		status domain.PaymentStatus
		ptype  domain.PaymentType
		want   decimal.Decimal
	}{
		{"completed income credits", dec(100), domain.PaymentCompleted, domain.PaymentTypeIncome, dec(100)},
		{"completed expense debits", dec(100), domain.PaymentCompleted, domain.PaymentTypeExpense, dec(-100)},
		{"pending payment has no effect", dec(100), domain.PaymentPending, domain.PaymentTypeIncome, dec(0)},
		{"cancelled payment has no effect", dec(100), domain.PaymentCancelled, domain.PaymentTypeExpense, dec(0)},
		{"transfer has no effect even when completed", dec(100), domain.PaymentCompleted, domain.PaymentTypeTransfer, dec(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.CreationDelta(tt.amount, tt.status, tt.ptype)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestUpdateDelta(t *testing.T) {
	tests := []struct {
		name      string
		prev      domain.Snapshot
		newAmount decimal.Decimal
		newStatus domain.PaymentStatus
		ptype     domain.PaymentType
		want      decimal.Decimal
	}{
		{
			name:      "amount raise while completed applies difference",
			prev:      domain.Snapshot{Amount: dec(100), Status: domain.PaymentCompleted},
			newAmount: dec(150), newStatus: domain.PaymentCompleted,
			ptype: domain.PaymentTypeIncome,
			want:  dec(50),
		},
		{
			name:      "amount cut while completed partially reverses",
			prev:      domain.Snapshot{Amount: dec(200), Status: domain.PaymentCompleted},
			newAmount: dec(150), newStatus: domain.PaymentCompleted,
			ptype: domain.PaymentTypeIncome,
			want:  dec(-50),
		},
		{
			name:      "leaving completed reverses the old amount",
			prev:      domain.Snapshot{Amount: dec(150), Status: domain.PaymentCompleted},
			newAmount: dec(150), newStatus: domain.PaymentCancelled,
			ptype: domain.PaymentTypeIncome,
			want:  dec(-150),
		},
		{
			name:      "leaving completed ignores a simultaneous amount change",
			prev:      domain.Snapshot{Amount: dec(150), Status: domain.PaymentCompleted},
			newAmount: dec(999), newStatus: domain.PaymentCancelled,
			ptype: domain.PaymentTypeIncome,
			want:  dec(-150),
		},
		{
			name:      "entering completed applies the full new amount",
			prev:      domain.Snapshot{Amount: dec(300), Status: domain.PaymentPending},
			newAmount: dec(300), newStatus: domain.PaymentCompleted,
			ptype: domain.PaymentTypeExpense,
			want:  dec(-300),
		},
		{
			name:      "entering completed with changed amount still applies the full new amount",
			prev:      domain.Snapshot{Amount: dec(300), Status: domain.PaymentPending},
			newAmount: dec(250), newStatus: domain.PaymentCompleted,
			ptype: domain.PaymentTypeExpense,
			want:  dec(-250),
		},
		{
			name:      "pending to cancelled has no effect",
			prev:      domain.Snapshot{Amount: dec(100), Status: domain.PaymentPending},
			newAmount: dec(100), newStatus: domain.PaymentCancelled,
			ptype: domain.PaymentTypeExpense,
			want:  dec(0),
		},
		{
			name:      "transfer payments never move the balance",
			prev:      domain.Snapshot{Amount: dec(100), Status: domain.PaymentPending},
			newAmount: dec(100), newStatus: domain.PaymentCompleted,
			ptype: domain.PaymentTypeTransfer,
			want:  dec(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.UpdateDelta(tt.prev, tt.newAmount, tt.newStatus, tt.ptype)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestDeletionDelta(t *testing.T) {
	t.Run("deleting a completed income reverses the credit", func(t *testing.T) {
		got := domain.DeletionDelta(dec(100), domain.PaymentCompleted, domain.PaymentTypeIncome)
		assert.True(t, dec(-100).Equal(got))
	})
	t.Run("deleting a pending payment has no effect", func(t *testing.T) {
		got := domain.DeletionDelta(dec(100), domain.PaymentPending, domain.PaymentTypeExpense)
		assert.True(t, got.IsZero())
	})
}

// Lifecycle composition: create, edit, cancel must net to zero.
func TestDeltaLifecycleNetsToZero(t *testing.T) {
	ptype := domain.PaymentTypeIncome

	created := domain.CreationDelta(dec(100), domain.PaymentCompleted, ptype)
	raised := domain.UpdateDelta(domain.Snapshot{Amount: dec(100), Status: domain.PaymentCompleted}, dec(150), domain.PaymentCompleted, ptype)
	cancelled := domain.UpdateDelta(domain.Snapshot{Amount: dec(150), Status: domain.PaymentCompleted}, dec(150), domain.PaymentCancelled, ptype)

	net := created.Add(raised).Add(cancelled)
	assert.True(t, net.IsZero(), "net effect %s", net)
}
