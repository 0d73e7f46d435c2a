// Package directory holds the in-memory record collections the whole
// system operates on. Both directories preserve insertion order for
// listing and enforce key uniqueness by linear scan on insert. The
// mutex guards membership; field-level mutation of a looked-up record
// assumes a single active session, as the rest of the design does.
package directory

import (
	"strings"
	"sync"

	"billing-backend/internal/models"
)

// CustomerDirectory is the collection of active customers, keyed by
// unique meter code and unique national ID.
type CustomerDirectory struct {
	mu        sync.RWMutex
	customers []*models.ActiveCustomer
}

// NewCustomerDirectory builds a directory over a loaded customer list.
func NewCustomerDirectory(customers []*models.ActiveCustomer) *CustomerDirectory {
	return &CustomerDirectory{customers: customers}
}

// Add appends a customer after checking both uniqueness keys.
func (d *CustomerDirectory) Add(c *models.ActiveCustomer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, existing := range d.customers {
		if existing.NationalID == c.NationalID {
			return models.NewDuplicateError("customer", "national ID", c.NationalID)
		}
		if strings.EqualFold(existing.MeterCode, c.MeterCode) {
			return models.NewDuplicateError("customer", "meter code", c.MeterCode)
		}
	}

	d.customers = append(d.customers, c)
	return nil
}

// FindByMeterCode returns the customer with the given meter code,
// matched case-insensitively.
func (d *CustomerDirectory) FindByMeterCode(meterCode string) (*models.ActiveCustomer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, c := range d.customers {
		if strings.EqualFold(c.MeterCode, meterCode) {
			return c, nil
		}
	}
	return nil, models.NewNotFoundError("customer", meterCode)
}

// FindByNationalID returns the customer with the given national ID.
func (d *CustomerDirectory) FindByNationalID(nationalID string) (*models.ActiveCustomer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, c := range d.customers {
		if c.NationalID == nationalID {
			return c, nil
		}
	}
	return nil, models.NewNotFoundError("customer", nationalID)
}

// FindByName returns the first customer whose name matches
// case-insensitively. Used by the customer-facing lookup flow.
func (d *CustomerDirectory) FindByName(name string) (*models.ActiveCustomer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, c := range d.customers {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, models.NewNotFoundError("customer", name)
}

// Delete removes the customer with the given meter code. There are no
// cascading effects.
func (d *CustomerDirectory) Delete(meterCode string) (*models.ActiveCustomer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, c := range d.customers {
		if strings.EqualFold(c.MeterCode, meterCode) {
			d.customers = append(d.customers[:i], d.customers[i+1:]...)
			return c, nil
		}
	}
	return nil, models.NewNotFoundError("customer", meterCode)
}

// List returns the customers in insertion order. The slice is a copy;
// the records are shared.
func (d *CustomerDirectory) List() []*models.ActiveCustomer {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*models.ActiveCustomer, len(d.customers))
	copy(out, d.customers)
	return out
}

// ByRegion returns the customers whose region matches case-insensitively,
// in insertion order.
func (d *CustomerDirectory) ByRegion(region string) []*models.ActiveCustomer {
	region = strings.TrimSpace(region)

	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []*models.ActiveCustomer
	for _, c := range d.customers {
		if strings.EqualFold(c.Region, region) {
			out = append(out, c)
		}
	}
	return out
}

// Len reports the number of customers.
func (d *CustomerDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.customers)
}
