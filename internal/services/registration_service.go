package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"billing-backend/internal/directory"
	"billing-backend/internal/models"
	"billing-backend/internal/repositories"
)

var (
	nidPattern   = regexp.MustCompile(`^\d{14}$`)
	phonePattern = regexp.MustCompile(`^\d{11}$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
)

// RegistrationService converts registration drafts into active customers.
type RegistrationService struct {
	Customers *directory.CustomerDirectory
	Repo      *repositories.CustomerRepository
}

func NewRegistrationService(customers *directory.CustomerDirectory, repo *repositories.CustomerRepository) *RegistrationService {
	return &RegistrationService{Customers: customers, Repo: repo}
}

// NewDraft validates the candidate fields and builds a registration draft
// with its meter code derived from the national ID.
func (s *RegistrationService) NewDraft(req *models.RegisterCustomerRequest) (*models.ProspectiveCustomer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, models.NewValidationError("name", "must not be empty")
	}
	if !nidPattern.MatchString(req.NationalID) {
		return nil, models.NewValidationError("national_id", "must be exactly 14 digits")
	}
	if !phonePattern.MatchString(req.PhoneNumber) {
		return nil, models.NewValidationError("phone_number", "must be exactly 11 digits")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, models.NewValidationError("email", "must be a valid address (local@domain.tld)")
	}

	phone, err := strconv.ParseInt(req.PhoneNumber, 10, 64)
	if err != nil {
		return nil, models.NewValidationError("phone_number", "must be numeric")
	}

	return &models.ProspectiveCustomer{
		CustomerIdentity: models.CustomerIdentity{
			Name:        strings.TrimSpace(req.Name),
			NationalID:  req.NationalID,
			Address:     req.Address,
			Email:       req.Email,
			MeterCode:   models.DeriveMeterCode(req.NationalID),
			Region:      strings.TrimSpace(req.Region),
			PhoneNumber: phone,
		},
		ContractRef: req.ContractRef,
	}, nil
}

// Register converts a draft into an active customer and appends it to the
// directory. Duplicate national IDs and colliding meter codes are rejected
// before the draft is consumed, so a rejected draft can be corrected and
// retried; a successfully converted draft cannot register twice.
func (s *RegistrationService) Register(draft *models.ProspectiveCustomer) (*models.ActiveCustomer, error) {
	if _, err := s.Customers.FindByNationalID(draft.NationalID); err == nil {
		return nil, models.NewDuplicateError("customer", "national ID", draft.NationalID)
	}
	if _, err := s.Customers.FindByMeterCode(draft.MeterCode); err == nil {
		return nil, models.NewDuplicateError("customer", "meter code", draft.MeterCode)
	}

	customer, err := draft.Convert()
	if err != nil {
		return nil, err
	}
	if err := s.Customers.Add(customer); err != nil {
		return nil, err
	}

	if err := s.Repo.Save(s.Customers.List()); err != nil {
		return customer, fmt.Errorf("customer registered but not persisted: %w", err)
	}
	return customer, nil
}

// RegisterFromRequest is the one-call flow used by the HTTP layer: build a
// draft and register it.
func (s *RegistrationService) RegisterFromRequest(req *models.RegisterCustomerRequest) (*models.ActiveCustomer, error) {
	draft, err := s.NewDraft(req)
	if err != nil {
		return nil, err
	}
	return s.Register(draft)
}
