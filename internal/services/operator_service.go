package services

import (
	"fmt"
	"strings"

	"billing-backend/internal/directory"
	"billing-backend/internal/models"
	"billing-backend/internal/repositories"
)

// OperatorService maintains the operator directory.
type OperatorService struct {
	Operators *directory.OperatorDirectory
	Repo      *repositories.OperatorRepository
}

func NewOperatorService(operators *directory.OperatorDirectory, repo *repositories.OperatorRepository) *OperatorService {
	return &OperatorService{Operators: operators, Repo: repo}
}

// CreateOperator adds a new operator with an empty collection total.
func (s *OperatorService) CreateOperator(req *models.CreateOperatorRequest) (*models.Operator, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.NewValidationError("name", "must not be empty")
	}

	operator := &models.Operator{Name: name}
	if err := s.Operators.Add(operator); err != nil {
		return nil, err
	}

	if err := s.Repo.Save(s.Operators.List()); err != nil {
		return operator, fmt.Errorf("operator created but not persisted: %w", err)
	}
	return operator, nil
}

func (s *OperatorService) GetOperator(name string) (*models.Operator, error) {
	return s.Operators.FindByName(name)
}

func (s *OperatorService) ListOperators() []*models.Operator {
	return s.Operators.List()
}

// UpdateOperator renames an operator and overwrites its collected total.
// The rename changes the lookup key, so callers re-resolve afterwards.
func (s *OperatorService) UpdateOperator(name string, req *models.UpdateOperatorRequest) (*models.Operator, error) {
	newName := strings.TrimSpace(req.Name)
	if newName == "" {
		return nil, models.NewValidationError("name", "must not be empty")
	}
	if req.TotalCollected < 0 {
		return nil, models.NewValidationError("total_collected", "must not be negative")
	}

	operator, err := s.Operators.Rename(name, newName)
	if err != nil {
		return nil, err
	}
	operator.TotalCollected = req.TotalCollected

	if err := s.Repo.Save(s.Operators.List()); err != nil {
		return operator, fmt.Errorf("operator updated but not persisted: %w", err)
	}
	return operator, nil
}

// DeleteOperator removes an operator. Customers are unaffected.
func (s *OperatorService) DeleteOperator(name string) error {
	if _, err := s.Operators.Delete(name); err != nil {
		return err
	}
	if err := s.Repo.Save(s.Operators.List()); err != nil {
		return fmt.Errorf("operator deleted but not persisted: %w", err)
	}
	return nil
}
