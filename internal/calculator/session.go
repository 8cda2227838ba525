package calculator

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"eurocalc/internal/domain"
	"eurocalc/internal/forex"
	"eurocalc/pkg/errors"
	"eurocalc/pkg/logger"
	"eurocalc/pkg/validator"
)

type rateSetter interface {
	Set(rate decimal.Decimal)
}

// Session holds the state of one calculator session: the document amount,
// the rate, the pending payment fields and the ledger. It is not safe for
// concurrent use.
type Session struct {
	id        uuid.UUID
	profile   domain.Profile
	rates     forex.RateProvider
	validator *validator.Validator
	logger    logger.Logger

	documentText    string
	rateText        string
	pendingCurrency domain.Currency
	pendingAmount   string
	ledger          *Ledger
}

// NewSession starts an empty session for profile, using a fixed or a
// manual rate provider as the profile requires.
func NewSession(profile domain.Profile, val *validator.Validator, log logger.Logger) *Session {
	var rates forex.RateProvider
	if profile.RateEditable {
		rates = forex.NewManualRateProvider(profile.DefaultRate)
	} else {
		rates = forex.NewFixedRateProvider(profile.DefaultRate)
	}
	return NewSessionWithProvider(profile, rates, val, log)
}

// NewSessionWithProvider starts an empty session reading its rate from rates.
func NewSessionWithProvider(profile domain.Profile, rates forex.RateProvider, val *validator.Validator, log logger.Logger) *Session {
	rate, _ := rates.Rate()
	s := &Session{
		id:              uuid.New(),
		profile:         profile,
		rates:           rates,
		validator:       val,
		logger:          log,
		rateText:        rate.String(),
		pendingCurrency: profile.DefaultPendingCurrency,
		ledger:          NewLedger(),
	}

	s.logger.Debug("Session started", map[string]interface{}{
		"session_id": s.id.String(),
		"profile":    profile.Name,
		"provider":   rates.Name(),
		"rate":       rate.String(),
	})

	return s
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) Profile() domain.Profile {
	return s.profile
}

// SetDocumentAmount stores the raw document amount. Text that does not
// parse counts as zero.
func (s *Session) SetDocumentAmount(text string) {
	s.documentText = text
}

func (s *Session) DocumentAmountText() string {
	return s.documentText
}

// SetRate stores a user-entered rate. The text is kept even when it is
// unusable so the field can be shown as invalid; in that case
// ErrInvalidRate is returned and payment entry stays blocked until the
// rate is corrected.
func (s *Session) SetRate(text string) error {
	setter, ok := s.rates.(rateSetter)
	if !s.rates.Editable() || !ok {
		return errors.ErrRateNotEditable
	}

	rate, parsed := Parse(text)
	if !parsed {
		rate = decimal.Zero
	}
	s.rateText = text
	setter.Set(rate)

	s.logger.Debug("Rate updated", map[string]interface{}{
		"session_id": s.id.String(),
		"rate":       text,
		"valid":      rate.IsPositive(),
	})

	if !rate.IsPositive() {
		return errors.ErrInvalidRate
	}
	return nil
}

func (s *Session) RateText() string {
	return s.rateText
}

// RateValid reports whether conversions may use the current rate.
func (s *Session) RateValid() bool {
	return forex.NewConverter(s.rates).Valid()
}

// SetPendingCurrency selects the currency of the next payment.
func (s *Session) SetPendingCurrency(c domain.Currency) error {
	if !c.Valid() {
		return errors.ErrInvalidCurrency
	}
	s.pendingCurrency = c
	return nil
}

func (s *Session) PendingCurrency() domain.Currency {
	return s.pendingCurrency
}

// SetPendingAmount stores the raw amount of the next payment.
func (s *Session) SetPendingAmount(text string) {
	s.pendingAmount = text
}

func (s *Session) PendingAmount() string {
	return s.pendingAmount
}

// QuickAmounts lists the preset amounts on offer. Presets exist only while
// the pending currency is the primary one.
func (s *Session) QuickAmounts() []decimal.Decimal {
	return quickAmounts(s.profile, s.pendingCurrency)
}

// ApplyQuickAmount sets the pending amount to one of the presets.
func (s *Session) ApplyQuickAmount(v decimal.Decimal) error {
	for _, q := range s.QuickAmounts() {
		if q.Equal(v) {
			s.pendingAmount = q.String()
			return nil
		}
	}
	return errors.ErrQuickAmountUnavailable
}

// CanAddPayment reports whether SubmitPending would succeed.
func (s *Session) CanAddPayment() bool {
	_, err := s.validatePayment(s.pendingCurrency, s.pendingAmount)
	return err == nil
}

// AddPayment records a payment of rawAmount in currency. The amount is
// rounded to two decimals once, here, and the rounded value must be
// positive: "0.004" is rejected with ErrNonPositiveAmount. A rejected payment leaves the
// session untouched. On success the pending amount is cleared while the
// pending currency stays selected.
func (s *Session) AddPayment(currency domain.Currency, rawAmount string) (domain.Payment, error) {
	amount, err := s.validatePayment(currency, rawAmount)
	if err != nil {
		s.logger.Debug("Payment rejected", map[string]interface{}{
			"session_id": s.id.String(),
			"currency":   currency.String(),
			"amount":     rawAmount,
			"reason":     err.Error(),
		})
		return domain.Payment{}, err
	}

	p := s.ledger.Append(currency, amount)
	s.pendingAmount = ""

	s.logger.Debug("Payment added", map[string]interface{}{
		"session_id": s.id.String(),
		"payment_id": p.ID,
		"currency":   currency.String(),
		"amount":     p.Amount.String(),
	})

	return p, nil
}

// SubmitPending adds the pending payment.
func (s *Session) SubmitPending() (domain.Payment, error) {
	return s.AddPayment(s.pendingCurrency, s.pendingAmount)
}

// RemovePayment deletes the payment with id. Unknown ids are a no-op.
func (s *Session) RemovePayment(id int64) bool {
	p, found := s.ledger.Find(id)
	if !found {
		s.logger.Debug("Payment not found", map[string]interface{}{
			"session_id": s.id.String(),
			"payment_id": id,
		})
		return false
	}

	s.ledger.Remove(id)
	s.logger.Debug("Payment removed", map[string]interface{}{
		"session_id": s.id.String(),
		"payment_id": p.ID,
		"currency":   p.Currency.String(),
		"amount":     p.Amount.String(),
	})
	return true
}

// Reset clears the ledger and the pending amount and restores the
// profile's default pending currency. Payment numbering restarts at 1.
// The document amount and rate are kept.
func (s *Session) Reset() {
	s.ledger.Clear()
	s.pendingAmount = ""
	s.pendingCurrency = s.profile.DefaultPendingCurrency

	s.logger.Debug("Session reset", map[string]interface{}{
		"session_id": s.id.String(),
	})
}

// Payments returns the ledger in insertion order.
func (s *Session) Payments() []domain.Payment {
	return s.ledger.Payments()
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	conv := forex.NewConverter(s.rates)
	return Snapshot{
		Profile:         s.profile,
		DocumentAmount:  ParseOrZero(s.documentText),
		Rate:            conv.Rate(),
		RateValid:       conv.Valid(),
		Payments:        s.ledger.Payments(),
		PendingCurrency: s.pendingCurrency,
		PendingAmount:   s.pendingAmount,
		CanAddPayment:   s.CanAddPayment(),
	}
}

// Summary derives every displayed figure from the current state.
func (s *Session) Summary() Summary {
	return Summarize(s.Snapshot())
}

func (s *Session) validatePayment(currency domain.Currency, rawAmount string) (decimal.Decimal, error) {
	parsed, ok := Parse(rawAmount)
	if !ok {
		return decimal.Zero, errors.ErrInvalidAmount
	}

	input := domain.PaymentInput{Currency: currency, Amount: Round2(parsed)}
	if errs := s.validator.ValidateStructured(&input); errs != nil {
		if _, bad := errs["Currency"]; bad {
			return decimal.Zero, errors.ErrInvalidCurrency
		}
		return decimal.Zero, errors.ErrNonPositiveAmount
	}

	if s.rates.Editable() && !s.RateValid() {
		return decimal.Zero, errors.ErrInvalidRate
	}

	return input.Amount, nil
}
