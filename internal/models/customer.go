package models

import (
	"fmt"
	"strings"
)

// MeterCodePrefix prefixes every derived meter code.
const MeterCodePrefix = "MTR-"

// UnpaidMonthsWarning is the threshold after which reading submissions
// carry an overdue advisory.
const UnpaidMonthsWarning = 3

// CustomerIdentity holds the identity fields shared by prospective and
// active customers. It is embedded by both variants; behavior never varies
// by variant beyond field presence.
type CustomerIdentity struct {
	Name        string `json:"name"`
	NationalID  string `json:"national_id"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	MeterCode   string `json:"meter_code"`
	Region      string `json:"region"`
	PhoneNumber int64  `json:"phone_number"`
}

// DeriveMeterCode builds the meter code from the last four digits of a
// national ID. Callers validate the ID format first.
func DeriveMeterCode(nationalID string) string {
	if len(nationalID) < 4 {
		return ""
	}
	return MeterCodePrefix + nationalID[len(nationalID)-4:]
}

// ActiveCustomer is the durable, billable customer record.
type ActiveCustomer struct {
	CustomerIdentity
	CurrentReading int  `json:"current_reading"`
	LastReading    int  `json:"last_reading"`
	BalanceDue     int  `json:"balance_due"`
	UnpaidMonths   int  `json:"unpaid_months"`
	HasComplaint   bool `json:"has_complaint"`
	Cancelled      bool `json:"cancelled"`
}

// ReadingResult reports the state after a successful reading submission.
type ReadingResult struct {
	CurrentReading int    `json:"current_reading"`
	LastReading    int    `json:"last_reading"`
	UnpaidMonths   int    `json:"unpaid_months"`
	Advisory       string `json:"advisory,omitempty"`
}

// TariffResult reports the charge added by a tariff application.
type TariffResult struct {
	Consumption int `json:"consumption"`
	Charge      int `json:"charge"`
	BalanceDue  int `json:"balance_due"`
}

// Consumption is the metered usage since the last reading.
func (c *ActiveCustomer) Consumption() int {
	return c.CurrentReading - c.LastReading
}

// SubmitReading records a new monthly meter reading. The reading must be
// strictly greater than the current one; on failure the customer is left
// unchanged. Each accepted reading counts one more unpaid month, and an
// advisory is attached once the customer is three or more months behind.
func (c *ActiveCustomer) SubmitReading(reading int) (*ReadingResult, error) {
	if reading <= c.CurrentReading {
		return nil, fmt.Errorf("%w: reading %d is not greater than current reading %d",
			ErrInvalidReading, reading, c.CurrentReading)
	}

	c.LastReading = c.CurrentReading
	c.CurrentReading = reading
	c.UnpaidMonths++

	result := &ReadingResult{
		CurrentReading: c.CurrentReading,
		LastReading:    c.LastReading,
		UnpaidMonths:   c.UnpaidMonths,
	}
	if c.UnpaidMonths >= UnpaidMonthsWarning {
		result.Advisory = fmt.Sprintf("%d months unpaid; please settle the outstanding balance", c.UnpaidMonths)
	}
	return result, nil
}

// ApplyTariff converts the metered consumption into a charge at the given
// price per unit and adds it to the balance due. The operation is additive:
// invoking it again before payment accumulates further charges.
func (c *ActiveCustomer) ApplyTariff(pricePerUnit int) (*TariffResult, error) {
	if pricePerUnit <= 0 {
		return nil, fmt.Errorf("%w: price per unit must be positive, got %d", ErrInvalidPrice, pricePerUnit)
	}

	consumption := c.Consumption()
	if consumption < 0 {
		return nil, fmt.Errorf("%w: current reading %d is below last reading %d",
			ErrInvalidReadingState, c.CurrentReading, c.LastReading)
	}

	charge := consumption * pricePerUnit
	c.BalanceDue += charge

	return &TariffResult{
		Consumption: consumption,
		Charge:      charge,
		BalanceDue:  c.BalanceDue,
	}, nil
}

// PayBill settles the outstanding balance. The claimed meter code must
// match the customer's own and the payment must equal the balance due
// exactly; partial payments and overpayments are both rejected.
func (c *ActiveCustomer) PayBill(meterCode string, amount int) error {
	if !strings.EqualFold(meterCode, c.MeterCode) {
		return fmt.Errorf("%w: %s does not belong to this customer", ErrMeterMismatch, meterCode)
	}
	if c.BalanceDue <= 0 {
		return ErrNoBalance
	}
	if amount != c.BalanceDue {
		return fmt.Errorf("%w: payment %d does not equal balance due %d; exact amount required",
			ErrAmountMismatch, amount, c.BalanceDue)
	}

	c.BalanceDue = 0
	c.UnpaidMonths = 0
	return nil
}

// RegisterComplaint flips the one-shot complaint flag. It reports whether
// the complaint was newly registered; a repeat call is a no-op.
func (c *ActiveCustomer) RegisterComplaint() bool {
	if c.HasComplaint {
		return false
	}
	c.HasComplaint = true
	return true
}

// Cancel stops the customer's meter and marks the subscription cancelled.
// The transition is irreversible.
func (c *ActiveCustomer) Cancel() {
	c.Cancelled = true
}

// ProspectiveCustomer is a transient registration draft. It can produce an
// ActiveCustomer at most once.
type ProspectiveCustomer struct {
	CustomerIdentity
	ContractRef string `json:"contract_ref"`
	consumed    bool
}

// Convert turns the draft into an ActiveCustomer with zeroed billing state.
// A second call on the same draft fails; directory-level duplicate checks
// are the caller's responsibility.
func (p *ProspectiveCustomer) Convert() (*ActiveCustomer, error) {
	if p.consumed {
		return nil, ErrAlreadyRegistered
	}
	p.consumed = true
	return &ActiveCustomer{CustomerIdentity: p.CustomerIdentity}, nil
}

// RegisterCustomerRequest represents the request body for registering a
// new customer. Numeric fields arrive as strings so their digit counts can
// be validated before parsing.
type RegisterCustomerRequest struct {
	Name        string `json:"name"`
	NationalID  string `json:"national_id"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Region      string `json:"region"`
	PhoneNumber string `json:"phone_number"`
	ContractRef string `json:"contract_ref"`
}

// UpdateCustomerRequest represents the request body for updating a
// customer's mutable fields. Identity keys are never changed by update.
type UpdateCustomerRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Region      string `json:"region"`
	PhoneNumber string `json:"phone_number"`
}
