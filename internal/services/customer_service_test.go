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

func newCustomerService(t *testing.T) *CustomerService {
	t.Helper()

	customers := directory.NewCustomerDirectory(nil)
	require.NoError(t, customers.Add(&models.ActiveCustomer{
		CustomerIdentity: models.CustomerIdentity{
			Name:        "Ahmed Hassan",
			NationalID:  "29801011234567",
			MeterCode:   "MTR-4567",
			Region:      "Cairo",
			Email:       "ahmed@example.com",
			PhoneNumber: 1012345678,
		},
	}))

	repo := repositories.NewCustomerRepository(filepath.Join(t.TempDir(), "customers.txt"))
	return NewCustomerService(customers, repo)
}

func TestGetCustomer(t *testing.T) {
	s := newCustomerService(t)

	c, err := s.GetCustomer("mtr-4567")
	require.NoError(t, err)
	assert.Equal(t, "Ahmed Hassan", c.Name)

	_, err = s.GetCustomer("MTR-0000")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestSearchByName(t *testing.T) {
	s := newCustomerService(t)

	c, err := s.SearchByName("ahmed hassan")
	require.NoError(t, err)
	assert.Equal(t, "MTR-4567", c.MeterCode)

	_, err = s.SearchByName("")
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = s.SearchByName("Nobody")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateCustomer(t *testing.T) {
	s := newCustomerService(t)

	c, err := s.UpdateCustomer("MTR-4567", &models.UpdateCustomerRequest{
		Name:        "Ahmed H. Hassan",
		Address:     "44 Tahrir Sq",
		Email:       "ahmed.h@example.com",
		Region:      "Giza",
		PhoneNumber: "01098765432",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ahmed H. Hassan", c.Name)
	assert.Equal(t, "Giza", c.Region)
	assert.Equal(t, int64(1098765432), c.PhoneNumber)

	// Identity keys are untouched
	assert.Equal(t, "29801011234567", c.NationalID)
	assert.Equal(t, "MTR-4567", c.MeterCode)

	loaded, err := s.Repo.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Ahmed H. Hassan", loaded[0].Name)
}

func TestUpdateCustomerValidation(t *testing.T) {
	s := newCustomerService(t)

	_, err := s.UpdateCustomer("MTR-4567", &models.UpdateCustomerRequest{
		Name:        "",
		Email:       "ahmed@example.com",
		PhoneNumber: "01012345678",
	})
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = s.UpdateCustomer("MTR-4567", &models.UpdateCustomerRequest{
		Name:        "Ahmed",
		Email:       "bad-email",
		PhoneNumber: "01012345678",
	})
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestDeleteCustomer(t *testing.T) {
	s := newCustomerService(t)

	require.NoError(t, s.DeleteCustomer("MTR-4567"))
	assert.Empty(t, s.ListCustomers())

	err := s.DeleteCustomer("MTR-4567")
	require.ErrorIs(t, err, models.ErrNotFound)
}
