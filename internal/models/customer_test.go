package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCustomer() *ActiveCustomer {
	return &ActiveCustomer{
		CustomerIdentity: CustomerIdentity{
			Name:        "Ahmed Hassan",
			NationalID:  "29801011234567",
			Address:     "12 Nile St",
			Email:       "ahmed@example.com",
			MeterCode:   DeriveMeterCode("29801011234567"),
			Region:      "Cairo",
			PhoneNumber: 1012345678,
		},
	}
}

func TestDeriveMeterCode(t *testing.T) {
	assert.Equal(t, "MTR-4567", DeriveMeterCode("29801011234567"))
	assert.Equal(t, "MTR-0001", DeriveMeterCode("29900000000001"))
	assert.Equal(t, "", DeriveMeterCode("123"))
}

func TestSubmitReading(t *testing.T) {
	c := newTestCustomer()
	c.CurrentReading = 100
	c.LastReading = 100

	result, err := c.SubmitReading(150)
	require.NoError(t, err)
	assert.Equal(t, 150, result.CurrentReading)
	assert.Equal(t, 100, result.LastReading)
	assert.Equal(t, 1, result.UnpaidMonths)
	assert.Empty(t, result.Advisory)
}

func TestSubmitReadingRejectsNonIncreasing(t *testing.T) {
	c := newTestCustomer()
	c.CurrentReading = 100
	c.LastReading = 80
	c.UnpaidMonths = 2

	for _, reading := range []int{100, 99, 0, -5} {
		_, err := c.SubmitReading(reading)
		require.ErrorIs(t, err, ErrInvalidReading)

		// Failed submissions leave the customer untouched
		assert.Equal(t, 100, c.CurrentReading)
		assert.Equal(t, 80, c.LastReading)
		assert.Equal(t, 2, c.UnpaidMonths)
	}
}

func TestSubmitReadingAdvisoryAfterThreeUnpaidMonths(t *testing.T) {
	c := newTestCustomer()

	r1, err := c.SubmitReading(10)
	require.NoError(t, err)
	assert.Empty(t, r1.Advisory)

	r2, err := c.SubmitReading(20)
	require.NoError(t, err)
	assert.Empty(t, r2.Advisory)

	r3, err := c.SubmitReading(30)
	require.NoError(t, err)
	assert.NotEmpty(t, r3.Advisory)
	assert.Equal(t, 3, r3.UnpaidMonths)
}

func TestApplyTariff(t *testing.T) {
	c := newTestCustomer()
	c.LastReading = 100
	c.CurrentReading = 150

	result, err := c.ApplyTariff(2)
	require.NoError(t, err)
	assert.Equal(t, 50, result.Consumption)
	assert.Equal(t, 100, result.Charge)
	assert.Equal(t, 100, result.BalanceDue)

	// Accumulates across invocations before payment
	result, err = c.ApplyTariff(3)
	require.NoError(t, err)
	assert.Equal(t, 150, result.Charge)
	assert.Equal(t, 250, c.BalanceDue)
}

func TestApplyTariffRejectsBadPrice(t *testing.T) {
	c := newTestCustomer()

	_, err := c.ApplyTariff(0)
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = c.ApplyTariff(-3)
	require.ErrorIs(t, err, ErrInvalidPrice)
}

func TestApplyTariffRejectsCorruptedReadings(t *testing.T) {
	c := newTestCustomer()
	c.CurrentReading = 50
	c.LastReading = 100 // out-of-band edit

	_, err := c.ApplyTariff(2)
	require.ErrorIs(t, err, ErrInvalidReadingState)
	assert.Equal(t, 0, c.BalanceDue)
}

func TestPayBill(t *testing.T) {
	c := newTestCustomer()
	c.BalanceDue = 100
	c.UnpaidMonths = 2

	require.NoError(t, c.PayBill("MTR-4567", 100))
	assert.Equal(t, 0, c.BalanceDue)
	assert.Equal(t, 0, c.UnpaidMonths)
}

func TestPayBillMeterCodeCaseInsensitive(t *testing.T) {
	c := newTestCustomer()
	c.BalanceDue = 50

	require.NoError(t, c.PayBill("mtr-4567", 50))
}

func TestPayBillFailures(t *testing.T) {
	c := newTestCustomer()
	c.BalanceDue = 100

	err := c.PayBill("MTR-9999", 100)
	require.ErrorIs(t, err, ErrMeterMismatch)

	err = c.PayBill("MTR-4567", 60)
	require.ErrorIs(t, err, ErrAmountMismatch)

	err = c.PayBill("MTR-4567", 150)
	require.ErrorIs(t, err, ErrAmountMismatch)

	// Balance untouched by failed attempts
	assert.Equal(t, 100, c.BalanceDue)

	c.BalanceDue = 0
	err = c.PayBill("MTR-4567", 0)
	require.ErrorIs(t, err, ErrNoBalance)
}

// Full billing cycle: reading, tariff, exact payment, repeat payment.
func TestBillingCycle(t *testing.T) {
	c := newTestCustomer()
	c.LastReading = 100
	c.CurrentReading = 100

	result, err := c.SubmitReading(150)
	require.NoError(t, err)
	assert.Equal(t, 100, result.LastReading)
	assert.Equal(t, 150, result.CurrentReading)
	assert.Equal(t, 1, result.UnpaidMonths)

	tariff, err := c.ApplyTariff(2)
	require.NoError(t, err)
	assert.Equal(t, 100, tariff.BalanceDue)

	require.NoError(t, c.PayBill("MTR-4567", 100))
	assert.Equal(t, 0, c.BalanceDue)
	assert.Equal(t, 0, c.UnpaidMonths)

	err = c.PayBill("MTR-4567", 100)
	require.ErrorIs(t, err, ErrNoBalance)
}

func TestRegisterComplaintIsOneShot(t *testing.T) {
	c := newTestCustomer()

	assert.True(t, c.RegisterComplaint())
	assert.True(t, c.HasComplaint)

	// Second registration is a reported no-op
	assert.False(t, c.RegisterComplaint())
	assert.True(t, c.HasComplaint)
}

func TestCancel(t *testing.T) {
	c := newTestCustomer()
	c.Cancel()
	assert.True(t, c.Cancelled)
}

func TestProspectiveCustomerConvertsOnce(t *testing.T) {
	draft := &ProspectiveCustomer{
		CustomerIdentity: CustomerIdentity{
			Name:       "Mona Adel",
			NationalID: "29911223344556",
			MeterCode:  DeriveMeterCode("29911223344556"),
		},
		ContractRef: "/contracts/mona.pdf",
	}

	customer, err := draft.Convert()
	require.NoError(t, err)
	assert.Equal(t, "MTR-4556", customer.MeterCode)
	assert.Equal(t, 0, customer.CurrentReading)
	assert.Equal(t, 0, customer.BalanceDue)
	assert.False(t, customer.Cancelled)

	_, err = draft.Convert()
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}
