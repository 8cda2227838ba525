package calculator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eurocalc/internal/domain"
	"eurocalc/internal/forex"
	"eurocalc/pkg/errors"
	"eurocalc/pkg/logger"
	"eurocalc/pkg/validator"
)

// --- Mocks ---

type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Info(message string, fields map[string]interface{}) {
	m.Called(message, fields)
}

func (m *MockLogger) Error(message string, fields map[string]interface{}) {
	m.Called(message, fields)
}

func (m *MockLogger) Warn(message string, fields map[string]interface{}) {
	m.Called(message, fields)
}

func (m *MockLogger) Debug(message string, fields map[string]interface{}) {
	m.Called(message, fields)
}

func (m *MockLogger) Fatal(message string, fields map[string]interface{}) {
	m.Called(message, fields)
}

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) Name() string {
	return "MockProvider"
}

func (m *MockRateProvider) Rate() (decimal.Decimal, bool) {
	args := m.Called()
	return args.Get(0).(decimal.Decimal), args.Bool(1)
}

func (m *MockRateProvider) Editable() bool {
	return false
}

// --- Helpers ---

func fixedSession() *Session {
	profile := domain.FixedRateProfile(domain.EUR, domain.BGN, domain.DefaultRate)
	return NewSession(profile, validator.New(), logger.NewNop())
}

func editableSession() *Session {
	profile := domain.EditableRateProfile(domain.EUR, domain.BGN, domain.DefaultRate)
	return NewSession(profile, validator.New(), logger.NewNop())
}

// --- Tests ---

func TestAddPayment_StoresRoundedAmountAndClearsPending(t *testing.T) {
	s := fixedSession()
	s.SetPendingCurrency(domain.Secondary)
	s.SetPendingAmount("19,999")

	p, err := s.SubmitPending()

	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, domain.Secondary, p.Currency)
	assert.True(t, p.Amount.Equal(dec("20")), "got %s", p.Amount)
	assert.Equal(t, "", s.PendingAmount())
	assert.Equal(t, domain.Secondary, s.PendingCurrency())
	assert.Len(t, s.Payments(), 1)
}

func TestAddPayment_Rejections(t *testing.T) {
	testCases := []struct {
		name     string
		currency domain.Currency
		amount   string
		wantErr  error
	}{
		{name: "empty", currency: domain.Primary, amount: "", wantErr: errors.ErrInvalidAmount},
		{name: "garbage", currency: domain.Primary, amount: "ten", wantErr: errors.ErrInvalidAmount},
		{name: "zero", currency: domain.Primary, amount: "0", wantErr: errors.ErrNonPositiveAmount},
		{name: "negative", currency: domain.Secondary, amount: "-5", wantErr: errors.ErrNonPositiveAmount},
		{name: "rounds_to_zero", currency: domain.Primary, amount: "0.004", wantErr: errors.ErrNonPositiveAmount},
		{name: "unknown_currency", currency: domain.Currency(9), amount: "5", wantErr: errors.ErrInvalidCurrency},
		{name: "not_finite", currency: domain.Primary, amount: "1e400", wantErr: errors.ErrInvalidAmount},
		{name: "huge_exponent", currency: domain.Secondary, amount: "1e99999999", wantErr: errors.ErrInvalidAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := fixedSession()
			s.SetPendingAmount(tc.amount)

			_, err := s.AddPayment(tc.currency, tc.amount)

			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, s.Payments())
			assert.Equal(t, tc.amount, s.PendingAmount())
			assert.Equal(t, int64(1), s.ledger.NextID())
		})
	}
}

func TestAddPayment_IDsNeverReused(t *testing.T) {
	s := fixedSession()

	var last int64
	for _, amount := range []string{"1", "2", "3"} {
		p, err := s.AddPayment(domain.Primary, amount)
		require.NoError(t, err)
		assert.Greater(t, p.ID, last)
		last = p.ID
	}

	for _, p := range s.Payments() {
		require.True(t, s.RemovePayment(p.ID))
	}
	require.Empty(t, s.Payments())

	p, err := s.AddPayment(domain.Primary, "4")
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.ID)
}

func TestRemovePayment_UnknownIDIsNoop(t *testing.T) {
	s := fixedSession()
	_, err := s.AddPayment(domain.Primary, "10")
	require.NoError(t, err)

	assert.False(t, s.RemovePayment(99))
	assert.Len(t, s.Payments(), 1)
}

func TestScenario_PrimaryPayment(t *testing.T) {
	s := fixedSession()
	s.SetDocumentAmount("100.00")

	_, err := s.AddPayment(domain.Primary, "50")
	require.NoError(t, err)

	sum := s.Summary()
	assert.Equal(t, "50.00", Format(sum.TotalPaid.Primary))
	assert.Equal(t, "50.00", Format(sum.Remaining.Primary))
	assert.Equal(t, "97.79", Format(sum.Remaining.Secondary))
	assert.False(t, sum.Overpaid)
}

func TestScenario_SecondaryPayment(t *testing.T) {
	s := fixedSession()
	s.SetDocumentAmount("100")

	_, err := s.AddPayment(domain.Secondary, "100")
	require.NoError(t, err)

	sum := s.Summary()
	require.Len(t, sum.Payments, 1)
	assert.Equal(t, "51.13", Format(sum.Payments[0].Primary))
	assert.Equal(t, "100.00", Format(sum.Payments[0].Secondary))
	assert.Equal(t, "51.13", Format(sum.TotalPaid.Primary))
	assert.Equal(t, "48.87", Format(sum.Remaining.Primary))
}

func TestScenario_ZeroRateBlocksPayments(t *testing.T) {
	s := editableSession()

	err := s.SetRate("0")
	assert.ErrorIs(t, err, errors.ErrInvalidRate)
	assert.False(t, s.RateValid())
	assert.Equal(t, "0", s.RateText())

	for _, amount := range []string{"10", "0.5", "1000"} {
		s.SetPendingAmount(amount)
		assert.False(t, s.CanAddPayment())
		_, err := s.SubmitPending()
		assert.ErrorIs(t, err, errors.ErrInvalidRate)
	}
	assert.Empty(t, s.Payments())

	sum := s.Summary()
	assert.False(t, sum.RateValid)
	assert.False(t, sum.CanAddPayment)

	require.NoError(t, s.SetRate("1,95583"))
	assert.True(t, s.CanAddPayment())
	_, err = s.SubmitPending()
	assert.NoError(t, err)
}

func TestScenario_UnparseableRateIsInvalid(t *testing.T) {
	s := editableSession()

	err := s.SetRate("abc")

	assert.ErrorIs(t, err, errors.ErrInvalidRate)
	assert.False(t, s.RateValid())
	assert.Equal(t, "abc", s.RateText())
}

func TestScenario_Overpayment(t *testing.T) {
	s := fixedSession()
	s.SetDocumentAmount("100")

	_, err := s.AddPayment(domain.Primary, "70")
	require.NoError(t, err)
	_, err = s.AddPayment(domain.Primary, "50")
	require.NoError(t, err)

	sum := s.Summary()
	assert.Equal(t, "-20.00", Format(sum.Remaining.Primary))
	assert.True(t, sum.Overpaid)
	assert.True(t, sum.RemainingNegative(domain.Primary))
	assert.True(t, sum.RemainingNegative(domain.Secondary))
}

func TestScenario_Reset(t *testing.T) {
	for _, s := range []*Session{fixedSession(), editableSession()} {
		s.SetDocumentAmount("250")
		_, err := s.AddPayment(domain.Primary, "10")
		require.NoError(t, err)
		_, err = s.AddPayment(domain.Secondary, "20")
		require.NoError(t, err)
		s.RemovePayment(1)
		require.NoError(t, s.SetPendingCurrency(s.Profile().DefaultPendingCurrency.Other()))
		s.SetPendingAmount("33")

		s.Reset()

		assert.Empty(t, s.Payments())
		assert.Equal(t, "", s.PendingAmount())
		assert.Equal(t, s.Profile().DefaultPendingCurrency, s.PendingCurrency())
		assert.Equal(t, "250", s.DocumentAmountText())

		p, err := s.AddPayment(domain.Primary, "5")
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
	}
}

func TestReset_DefaultPendingCurrencyPerProfile(t *testing.T) {
	fixed := fixedSession()
	fixed.SetPendingCurrency(domain.Secondary)
	fixed.Reset()
	assert.Equal(t, domain.Primary, fixed.PendingCurrency())

	editable := editableSession()
	editable.SetPendingCurrency(domain.Primary)
	editable.Reset()
	assert.Equal(t, domain.Secondary, editable.PendingCurrency())
}

func TestSetRate_FixedProfile(t *testing.T) {
	s := fixedSession()

	err := s.SetRate("2")

	assert.ErrorIs(t, err, errors.ErrRateNotEditable)
	assert.Equal(t, "1.95583", s.RateText())
	assert.True(t, s.RateValid())
}

func TestSetPendingCurrency_Invalid(t *testing.T) {
	s := fixedSession()

	assert.ErrorIs(t, s.SetPendingCurrency(domain.Currency(0)), errors.ErrInvalidCurrency)
	assert.Equal(t, domain.Primary, s.PendingCurrency())
}

func TestQuickAmounts(t *testing.T) {
	s := fixedSession()

	quick := s.QuickAmounts()
	require.Len(t, quick, 5)
	assert.True(t, quick[0].Equal(dec("5")))
	assert.True(t, quick[4].Equal(dec("100")))

	require.NoError(t, s.ApplyQuickAmount(dec("20")))
	assert.Equal(t, "20", s.PendingAmount())

	assert.ErrorIs(t, s.ApplyQuickAmount(dec("7")), errors.ErrQuickAmountUnavailable)
	assert.Equal(t, "20", s.PendingAmount())

	require.NoError(t, s.SetPendingCurrency(domain.Secondary))
	assert.Empty(t, s.QuickAmounts())
	assert.ErrorIs(t, s.ApplyQuickAmount(dec("20")), errors.ErrQuickAmountUnavailable)
}

func TestEditableProfile_DocumentInSecondary(t *testing.T) {
	s := editableSession()
	s.SetDocumentAmount("195,583")

	sum := s.Summary()

	assert.Equal(t, "100.00", Format(sum.Document.Primary))
	assert.Equal(t, "195.58", Format(sum.Document.Secondary))

	assert.ErrorIs(t, s.SetRate("0"), errors.ErrInvalidRate)
	sum = s.Summary()
	assert.Equal(t, "0.00", Format(sum.Document.Primary))
	assert.Equal(t, "195.58", Format(sum.Document.Secondary))
}

func TestSession_LogsPaymentLifecycle(t *testing.T) {
	mockLog := new(MockLogger)
	mockLog.On("Debug", "Session started", mock.Anything).Return()
	mockLog.On("Debug", "Payment added", mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["payment_id"] == int64(1) && fields["amount"] == "12.5"
	})).Return().Once()
	mockLog.On("Debug", "Payment rejected", mock.Anything).Return().Once()
	mockLog.On("Debug", "Payment removed", mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["payment_id"] == int64(1) && fields["amount"] == "12.5"
	})).Return().Once()
	mockLog.On("Debug", "Payment not found", mock.Anything).Return().Once()
	mockLog.On("Debug", "Session reset", mock.Anything).Return().Once()

	profile := domain.FixedRateProfile(domain.EUR, domain.BGN, domain.DefaultRate)
	s := NewSession(profile, validator.New(), mockLog)

	_, err := s.AddPayment(domain.Primary, "12.50")
	require.NoError(t, err)
	_, err = s.AddPayment(domain.Primary, "-1")
	require.Error(t, err)
	assert.True(t, s.RemovePayment(1))
	assert.False(t, s.RemovePayment(1))
	s.Reset()

	mockLog.AssertExpectations(t)
}

func TestSummary_HugeDocumentAmountReadsAsZero(t *testing.T) {
	s := fixedSession()
	s.SetDocumentAmount("1e99999999")

	done := make(chan Summary, 1)
	go func() { done <- s.Summary() }()

	select {
	case sum := <-done:
		assert.True(t, sum.Document.Primary.IsZero())
		assert.True(t, sum.Document.Secondary.IsZero())
	case <-time.After(5 * time.Second):
		t.Fatal("Summary did not return")
	}
}

func TestSession_UsesInjectedProvider(t *testing.T) {
	rates := new(MockRateProvider)
	rates.On("Rate").Return(dec("2"), true)

	profile := domain.FixedRateProfile(domain.EUR, domain.BGN, dec("2"))
	s := NewSessionWithProvider(profile, rates, validator.New(), logger.NewNop())
	s.SetDocumentAmount("10")

	sum := s.Summary()

	assert.Equal(t, "20.00", Format(sum.Document.Secondary))
	assert.ErrorIs(t, s.SetRate("3"), errors.ErrRateNotEditable)
	rates.AssertExpectations(t)
}

func TestSetRate_FollowsProviderEditability(t *testing.T) {
	profile := domain.EditableRateProfile(domain.EUR, domain.BGN, domain.DefaultRate)
	s := NewSessionWithProvider(profile, forex.NewFixedRateProvider(domain.DefaultRate), validator.New(), logger.NewNop())

	assert.ErrorIs(t, s.SetRate("2"), errors.ErrRateNotEditable)
	assert.Equal(t, domain.DefaultRate.String(), s.RateText())
}

func TestSnapshot_InvalidProviderRateReadsAsZero(t *testing.T) {
	rates := new(MockRateProvider)
	rates.On("Rate").Return(dec("-1"), false)

	profile := domain.FixedRateProfile(domain.EUR, domain.BGN, domain.DefaultRate)
	s := NewSessionWithProvider(profile, rates, validator.New(), logger.NewNop())

	snap := s.Snapshot()
	assert.False(t, snap.RateValid)
	assert.True(t, snap.Rate.IsZero())
	assert.False(t, s.RateValid())
}
