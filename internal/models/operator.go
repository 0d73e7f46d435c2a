package models

import (
	"time"

	"github.com/google/uuid"
)

// Operator is a field operator who collects payments. Operators are keyed
// by case-insensitive name.
type Operator struct {
	Name           string `json:"name"`
	TotalCollected int    `json:"total_collected"`
}

// PaymentReceipt is issued for every operator-mediated collection.
type PaymentReceipt struct {
	ReceiptID    string    `json:"receipt_id"`
	MeterCode    string    `json:"meter_code"`
	CustomerName string    `json:"customer_name"`
	Amount       int       `json:"amount"`
	OperatorName string    `json:"operator_name"`
	CollectedAt  time.Time `json:"collected_at"`
}

// Collect settles a customer's bill through this operator. On success the
// amount is added to the operator's running total and a receipt is issued;
// on failure the payment error is surfaced unchanged and the total is left
// untouched.
func (o *Operator) Collect(c *ActiveCustomer, meterCode string, amount int) (*PaymentReceipt, error) {
	if err := c.PayBill(meterCode, amount); err != nil {
		return nil, err
	}

	o.TotalCollected += amount
	return &PaymentReceipt{
		ReceiptID:    uuid.NewString(),
		MeterCode:    c.MeterCode,
		CustomerName: c.Name,
		Amount:       amount,
		OperatorName: o.Name,
		CollectedAt:  time.Now(),
	}, nil
}

// Administrator holds no state beyond identity; administrative operations
// act on the directories passed to them.
type Administrator struct {
	Name string `json:"name"`
}

// CreateOperatorRequest represents the request body for adding an operator.
type CreateOperatorRequest struct {
	Name string `json:"name"`
}

// UpdateOperatorRequest represents the request body for updating an
// operator. Renaming changes the lookup key; callers re-resolve afterwards.
type UpdateOperatorRequest struct {
	Name           string `json:"name"`
	TotalCollected int    `json:"total_collected"`
}

// SubmitReadingRequest carries a monthly meter reading.
type SubmitReadingRequest struct {
	Reading int `json:"reading"`
}

// TariffRequest carries the price per unit for a tariff application.
type TariffRequest struct {
	PricePerUnit int `json:"price_per_unit"`
}

// PaymentRequest carries a bill payment. Operator is optional; when set,
// the payment is collected through that operator.
type PaymentRequest struct {
	MeterCode string `json:"meter_code"`
	Amount    int    `json:"amount"`
	Operator  string `json:"operator,omitempty"`
}
