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

func newOperatorService(t *testing.T) *OperatorService {
	t.Helper()
	repo := repositories.NewOperatorRepository(filepath.Join(t.TempDir(), "operators.txt"))
	return NewOperatorService(directory.NewOperatorDirectory(nil), repo)
}

func TestCreateOperator(t *testing.T) {
	s := newOperatorService(t)

	op, err := s.CreateOperator(&models.CreateOperatorRequest{Name: "  Karim "})
	require.NoError(t, err)
	assert.Equal(t, "Karim", op.Name)
	assert.Equal(t, 0, op.TotalCollected)

	loaded, err := s.Repo.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Karim", loaded[0].Name)
}

func TestCreateOperatorValidation(t *testing.T) {
	s := newOperatorService(t)

	_, err := s.CreateOperator(&models.CreateOperatorRequest{Name: "   "})
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = s.CreateOperator(&models.CreateOperatorRequest{Name: "Karim"})
	require.NoError(t, err)
	_, err = s.CreateOperator(&models.CreateOperatorRequest{Name: "KARIM"})
	require.ErrorIs(t, err, models.ErrDuplicate)
}

func TestUpdateOperator(t *testing.T) {
	s := newOperatorService(t)
	_, err := s.CreateOperator(&models.CreateOperatorRequest{Name: "Karim"})
	require.NoError(t, err)

	op, err := s.UpdateOperator("karim", &models.UpdateOperatorRequest{Name: "Karim Saad", TotalCollected: 250})
	require.NoError(t, err)
	assert.Equal(t, "Karim Saad", op.Name)
	assert.Equal(t, 250, op.TotalCollected)

	_, err = s.GetOperator("Karim Saad")
	require.NoError(t, err)

	_, err = s.UpdateOperator("Karim Saad", &models.UpdateOperatorRequest{Name: "X", TotalCollected: -1})
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestDeleteOperator(t *testing.T) {
	s := newOperatorService(t)
	_, err := s.CreateOperator(&models.CreateOperatorRequest{Name: "Karim"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteOperator("KARIM"))
	assert.Empty(t, s.ListOperators())

	err = s.DeleteOperator("Karim")
	require.ErrorIs(t, err, models.ErrNotFound)
}
