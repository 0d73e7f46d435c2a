package directory

import (
	"strings"
	"sync"

	"billing-backend/internal/models"
)

// OperatorDirectory is the collection of field operators, keyed by unique
// case-insensitive name.
type OperatorDirectory struct {
	mu        sync.RWMutex
	operators []*models.Operator
}

// NewOperatorDirectory builds a directory over a loaded operator list.
func NewOperatorDirectory(operators []*models.Operator) *OperatorDirectory {
	return &OperatorDirectory{operators: operators}
}

// Add appends an operator after checking name uniqueness.
func (d *OperatorDirectory) Add(o *models.Operator) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, existing := range d.operators {
		if strings.EqualFold(existing.Name, o.Name) {
			return models.NewDuplicateError("operator", "name", o.Name)
		}
	}

	d.operators = append(d.operators, o)
	return nil
}

// FindByName returns the operator with the given name, matched
// case-insensitively.
func (d *OperatorDirectory) FindByName(name string) (*models.Operator, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, o := range d.operators {
		if strings.EqualFold(o.Name, name) {
			return o, nil
		}
	}
	return nil, models.NewNotFoundError("operator", name)
}

// Rename changes an operator's lookup key. The new name must not collide
// with another operator; callers re-resolve after a successful rename.
func (d *OperatorDirectory) Rename(oldName, newName string) (*models.Operator, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var target *models.Operator
	for _, o := range d.operators {
		if strings.EqualFold(o.Name, oldName) {
			target = o
			break
		}
	}
	if target == nil {
		return nil, models.NewNotFoundError("operator", oldName)
	}

	for _, o := range d.operators {
		if o != target && strings.EqualFold(o.Name, newName) {
			return nil, models.NewDuplicateError("operator", "name", newName)
		}
	}

	target.Name = newName
	return target, nil
}

// Delete removes the operator with the given name. Customers are not
// affected.
func (d *OperatorDirectory) Delete(name string) (*models.Operator, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, o := range d.operators {
		if strings.EqualFold(o.Name, name) {
			d.operators = append(d.operators[:i], d.operators[i+1:]...)
			return o, nil
		}
	}
	return nil, models.NewNotFoundError("operator", name)
}

// List returns the operators in insertion order. The slice is a copy;
// the records are shared.
func (d *OperatorDirectory) List() []*models.Operator {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*models.Operator, len(d.operators))
	copy(out, d.operators)
	return out
}

// Len reports the number of operators.
func (d *OperatorDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.operators)
}
