package calculator

import (
	"github.com/shopspring/decimal"

	"eurocalc/internal/domain"
)

// Ledger is the ordered list of recorded payments. IDs come from a
// dedicated counter so removals never cause an ID to be handed out twice.
type Ledger struct {
	payments []domain.Payment
	nextID   int64
}

func NewLedger() *Ledger {
	return &Ledger{nextID: 1}
}

// Append records a payment of amount in currency. The amount is stored
// exactly as given; callers round it beforehand.
func (l *Ledger) Append(currency domain.Currency, amount decimal.Decimal) domain.Payment {
	p := domain.Payment{
		ID:       l.nextID,
		Currency: currency,
		Amount:   amount,
	}
	l.nextID++
	l.payments = append(l.payments, p)
	return p
}

// Remove deletes the payment with id and reports whether it existed.
// Remaining payments keep their order and IDs.
func (l *Ledger) Remove(id int64) bool {
	for i, p := range l.payments {
		if p.ID == id {
			l.payments = append(l.payments[:i:i], l.payments[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the payment with id.
func (l *Ledger) Find(id int64) (domain.Payment, bool) {
	for _, p := range l.payments {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Payment{}, false
}

// Clear empties the ledger and restarts numbering at 1.
func (l *Ledger) Clear() {
	l.payments = nil
	l.nextID = 1
}

// Payments returns a copy of the payments in insertion order.
func (l *Ledger) Payments() []domain.Payment {
	out := make([]domain.Payment, len(l.payments))
	copy(out, l.payments)
	return out
}

func (l *Ledger) Len() int {
	return len(l.payments)
}

// NextID is the ID the next appended payment will receive.
func (l *Ledger) NextID() int64 {
	return l.nextID
}
