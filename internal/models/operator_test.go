package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorCollect(t *testing.T) {
	op := &Operator{Name: "Karim"}
	c := newTestCustomer()
	c.BalanceDue = 200
	c.UnpaidMonths = 2

	receipt, err := op.Collect(c, "MTR-4567", 200)
	require.NoError(t, err)
	assert.Equal(t, 200, op.TotalCollected)
	assert.Equal(t, 0, c.BalanceDue)
	assert.NotEmpty(t, receipt.ReceiptID)
	assert.Equal(t, "MTR-4567", receipt.MeterCode)
	assert.Equal(t, "Ahmed Hassan", receipt.CustomerName)
	assert.Equal(t, "Karim", receipt.OperatorName)
	assert.Equal(t, 200, receipt.Amount)
}

func TestOperatorCollectKeepsTotalOnFailure(t *testing.T) {
	op := &Operator{Name: "Karim", TotalCollected: 500}
	c := newTestCustomer()
	c.BalanceDue = 100

	_, err := op.Collect(c, "MTR-4567", 60)
	require.ErrorIs(t, err, ErrAmountMismatch)
	assert.Equal(t, 500, op.TotalCollected)
	assert.Equal(t, 100, c.BalanceDue)

	_, err = op.Collect(c, "MTR-0000", 100)
	require.ErrorIs(t, err, ErrMeterMismatch)
	assert.Equal(t, 500, op.TotalCollected)
}
