package services

import (
	"fmt"
	"strconv"
	"strings"

	"billing-backend/internal/directory"
	"billing-backend/internal/models"
	"billing-backend/internal/repositories"
)

// CustomerService maintains the customer directory.
type CustomerService struct {
	Customers *directory.CustomerDirectory
	Repo      *repositories.CustomerRepository
}

func NewCustomerService(customers *directory.CustomerDirectory, repo *repositories.CustomerRepository) *CustomerService {
	return &CustomerService{Customers: customers, Repo: repo}
}

func (s *CustomerService) GetCustomer(meterCode string) (*models.ActiveCustomer, error) {
	return s.Customers.FindByMeterCode(meterCode)
}

// SearchByName returns the first customer matching the name
// case-insensitively; this is the customer-side login lookup.
func (s *CustomerService) SearchByName(name string) (*models.ActiveCustomer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.NewValidationError("name", "must not be empty")
	}
	return s.Customers.FindByName(name)
}

func (s *CustomerService) ListCustomers() []*models.ActiveCustomer {
	return s.Customers.List()
}

// UpdateCustomer overwrites the mutable fields of the customer with the
// given meter code. Identity keys (national ID, meter code) never change.
func (s *CustomerService) UpdateCustomer(meterCode string, req *models.UpdateCustomerRequest) (*models.ActiveCustomer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, models.NewValidationError("name", "must not be empty")
	}
	if !phonePattern.MatchString(req.PhoneNumber) {
		return nil, models.NewValidationError("phone_number", "must be exactly 11 digits")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, models.NewValidationError("email", "must be a valid address (local@domain.tld)")
	}

	customer, err := s.Customers.FindByMeterCode(meterCode)
	if err != nil {
		return nil, err
	}

	phone, _ := strconv.ParseInt(req.PhoneNumber, 10, 64)
	customer.Name = strings.TrimSpace(req.Name)
	customer.Address = req.Address
	customer.Email = req.Email
	customer.Region = strings.TrimSpace(req.Region)
	customer.PhoneNumber = phone

	if err := s.Repo.Save(s.Customers.List()); err != nil {
		return customer, fmt.Errorf("customer updated but not persisted: %w", err)
	}
	return customer, nil
}

// DeleteCustomer removes the customer with the given meter code. There are
// no cascading deletes.
func (s *CustomerService) DeleteCustomer(meterCode string) error {
	if _, err := s.Customers.Delete(meterCode); err != nil {
		return err
	}
	if err := s.Repo.Save(s.Customers.List()); err != nil {
		return fmt.Errorf("customer deleted but not persisted: %w", err)
	}
	return nil
}
