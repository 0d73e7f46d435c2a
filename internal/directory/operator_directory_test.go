package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billing-backend/internal/models"
)

func TestOperatorDirectoryAdd(t *testing.T) {
	d := NewOperatorDirectory(nil)

	require.NoError(t, d.Add(&models.Operator{Name: "Karim"}))
	err := d.Add(&models.Operator{Name: "KARIM"})
	require.ErrorIs(t, err, models.ErrDuplicate)
	assert.Equal(t, 1, d.Len())
}

func TestOperatorDirectoryFindByName(t *testing.T) {
	d := NewOperatorDirectory(nil)
	require.NoError(t, d.Add(&models.Operator{Name: "Karim", TotalCollected: 300}))

	o, err := d.FindByName("karim")
	require.NoError(t, err)
	assert.Equal(t, 300, o.TotalCollected)

	_, err = d.FindByName("Nour")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestOperatorDirectoryRename(t *testing.T) {
	d := NewOperatorDirectory(nil)
	require.NoError(t, d.Add(&models.Operator{Name: "Karim", TotalCollected: 300}))
	require.NoError(t, d.Add(&models.Operator{Name: "Nour"}))

	o, err := d.Rename("karim", "Karim Saad")
	require.NoError(t, err)
	assert.Equal(t, "Karim Saad", o.Name)
	assert.Equal(t, 300, o.TotalCollected)

	_, err = d.FindByName("Karim Saad")
	require.NoError(t, err)

	// Renaming onto an existing name is rejected
	_, err = d.Rename("Nour", "karim saad")
	require.ErrorIs(t, err, models.ErrDuplicate)

	// Renaming to the same name (case change only) is allowed
	_, err = d.Rename("Karim Saad", "KARIM SAAD")
	require.NoError(t, err)

	_, err = d.Rename("missing", "whatever")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestOperatorDirectoryDelete(t *testing.T) {
	d := NewOperatorDirectory(nil)
	require.NoError(t, d.Add(&models.Operator{Name: "Karim"}))

	removed, err := d.Delete("KARIM")
	require.NoError(t, err)
	assert.Equal(t, "Karim", removed.Name)
	assert.Equal(t, 0, d.Len())

	_, err = d.Delete("Karim")
	require.ErrorIs(t, err, models.ErrNotFound)
}
