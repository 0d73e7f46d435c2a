package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billing-backend/internal/directory"
	"billing-backend/internal/models"
	"billing-backend/internal/repositories"
)

func newRegistrationService(t *testing.T) *RegistrationService {
	t.Helper()
	repo := repositories.NewCustomerRepository(filepath.Join(t.TempDir(), "customers.txt"))
	return NewRegistrationService(directory.NewCustomerDirectory(nil), repo)
}

func validRegisterRequest() *models.RegisterCustomerRequest {
	return &models.RegisterCustomerRequest{
		Name:        "Ahmed Hassan",
		NationalID:  "29801011234567",
		Address:     "12 Nile St",
		Email:       "ahmed@example.com",
		Region:      "Cairo",
		PhoneNumber: "01012345678",
		ContractRef: "/contracts/ahmed.pdf",
	}
}

func TestRegisterFromRequest(t *testing.T) {
	s := newRegistrationService(t)

	customer, err := s.RegisterFromRequest(validRegisterRequest())
	require.NoError(t, err)
	assert.Equal(t, "MTR-4567", customer.MeterCode)
	assert.Equal(t, int64(1012345678), customer.PhoneNumber)
	assert.Equal(t, 0, customer.BalanceDue)
	assert.Equal(t, 1, s.Customers.Len())

	// Registration persists immediately
	loaded, err := s.Repo.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Ahmed Hassan", loaded[0].Name)
}

func TestNewDraftValidation(t *testing.T) {
	s := newRegistrationService(t)

	cases := []struct {
		name   string
		mutate func(*models.RegisterCustomerRequest)
		field  string
	}{
		{"empty name", func(r *models.RegisterCustomerRequest) { r.Name = "  " }, "name"},
		{"short nid", func(r *models.RegisterCustomerRequest) { r.NationalID = "1234567" }, "national_id"},
		{"non-digit nid", func(r *models.RegisterCustomerRequest) { r.NationalID = "2980101123456x" }, "national_id"},
		{"short phone", func(r *models.RegisterCustomerRequest) { r.PhoneNumber = "0101234" }, "phone_number"},
		{"non-digit phone", func(r *models.RegisterCustomerRequest) { r.PhoneNumber = "01012345abc" }, "phone_number"},
		{"bad email", func(r *models.RegisterCustomerRequest) { r.Email = "not-an-email" }, "email"},
		{"email without tld", func(r *models.RegisterCustomerRequest) { r.Email = "a@b" }, "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegisterRequest()
			tc.mutate(req)

			_, err := s.NewDraft(req)
			require.ErrorIs(t, err, models.ErrValidation)

			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestRegisterRejectsDuplicateNationalID(t *testing.T) {
	s := newRegistrationService(t)
	_, err := s.RegisterFromRequest(validRegisterRequest())
	require.NoError(t, err)

	req := validRegisterRequest()
	req.Name = "Impostor"
	_, err = s.RegisterFromRequest(req)
	require.ErrorIs(t, err, models.ErrDuplicate)
	assert.Equal(t, 1, s.Customers.Len())
}

func TestRegisterRejectsMeterCodeCollision(t *testing.T) {
	s := newRegistrationService(t)
	_, err := s.RegisterFromRequest(validRegisterRequest())
	require.NoError(t, err)

	// Distinct national ID sharing the last four digits
	req := validRegisterRequest()
	req.NationalID = "30105054564567"
	_, err = s.RegisterFromRequest(req)
	require.ErrorIs(t, err, models.ErrDuplicate)
}

func TestRejectedDraftRemainsUsable(t *testing.T) {
	s := newRegistrationService(t)
	_, err := s.RegisterFromRequest(validRegisterRequest())
	require.NoError(t, err)

	// A draft rejected on duplicate keys is not consumed
	draft, err := s.NewDraft(validRegisterRequest())
	require.NoError(t, err)
	_, err = s.Register(draft)
	require.ErrorIs(t, err, models.ErrDuplicate)

	// Corrected and retried
	draft.NationalID = "30107078889990"
	draft.MeterCode = models.DeriveMeterCode(draft.NationalID)
	customer, err := s.Register(draft)
	require.NoError(t, err)
	assert.Equal(t, "MTR-9990", customer.MeterCode)

	// A converted draft cannot register twice
	_, err = s.Register(draft)
	require.ErrorIs(t, err, models.ErrAlreadyRegistered)
}
