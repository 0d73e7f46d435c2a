package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"billing-backend/internal/directory"
	"billing-backend/internal/metrics"
	"billing-backend/internal/models"
	"billing-backend/internal/repositories"
)

// ConsumptionCheck reports whether a customer's reading pair is coherent,
// without mutating anything.
type ConsumptionCheck struct {
	MeterCode   string `json:"meter_code"`
	Consumption int    `json:"consumption"`
	Valid       bool   `json:"valid"`
}

// BillSummary is the single-customer bill view shown to operators.
type BillSummary struct {
	Name       string `json:"name"`
	MeterCode  string `json:"meter_code"`
	BalanceDue int    `json:"balance_due"`
}

// ComplaintResult reports the outcome of a complaint registration.
type ComplaintResult struct {
	MeterCode         string `json:"meter_code"`
	AlreadyRegistered bool   `json:"already_registered"`
}

// BillingService runs the billing operations against the customer and
// operator directories and persists after each successful mutation. A save
// failure is reported to the caller but the in-memory state is kept; disk
// and memory may diverge until the next successful save.
type BillingService struct {
	Customers    *directory.CustomerDirectory
	Operators    *directory.OperatorDirectory
	CustomerRepo *repositories.CustomerRepository
	OperatorRepo *repositories.OperatorRepository
}

func NewBillingService(
	customers *directory.CustomerDirectory,
	operators *directory.OperatorDirectory,
	customerRepo *repositories.CustomerRepository,
	operatorRepo *repositories.OperatorRepository,
) *BillingService {
	return &BillingService{
		Customers:    customers,
		Operators:    operators,
		CustomerRepo: customerRepo,
		OperatorRepo: operatorRepo,
	}
}

// SubmitReading records a monthly meter reading for a customer.
func (s *BillingService) SubmitReading(meterCode string, reading int) (*models.ReadingResult, error) {
	customer, err := s.Customers.FindByMeterCode(meterCode)
	if err != nil {
		return nil, err
	}

	result, err := customer.SubmitReading(reading)
	if err != nil {
		return nil, err
	}
	metrics.ReadingsSubmitted.Inc()

	if err := s.CustomerRepo.Save(s.Customers.List()); err != nil {
		return result, fmt.Errorf("reading recorded but not persisted: %w", err)
	}
	return result, nil
}

// ApplyTariff bills a customer's consumption at the given price per unit.
func (s *BillingService) ApplyTariff(meterCode string, pricePerUnit int) (*models.TariffResult, error) {
	customer, err := s.Customers.FindByMeterCode(meterCode)
	if err != nil {
		return nil, err
	}

	result, err := customer.ApplyTariff(pricePerUnit)
	if err != nil {
		return nil, err
	}

	if err := s.CustomerRepo.Save(s.Customers.List()); err != nil {
		return result, fmt.Errorf("tariff applied but not persisted: %w", err)
	}
	return result, nil
}

// CheckReading validates a customer's reading pair.
func (s *BillingService) CheckReading(meterCode string) (*ConsumptionCheck, error) {
	customer, err := s.Customers.FindByMeterCode(meterCode)
	if err != nil {
		return nil, err
	}
	consumption := customer.Consumption()
	return &ConsumptionCheck{
		MeterCode:   customer.MeterCode,
		Consumption: consumption,
		Valid:       consumption >= 0,
	}, nil
}

// BillDetails returns the bill view for a single customer.
func (s *BillingService) BillDetails(meterCode string) (*BillSummary, error) {
	customer, err := s.Customers.FindByMeterCode(meterCode)
	if err != nil {
		return nil, err
	}
	return &BillSummary{
		Name:       customer.Name,
		MeterCode:  customer.MeterCode,
		BalanceDue: customer.BalanceDue,
	}, nil
}

// Pay settles a customer's bill. When the request names an operator the
// payment is collected through that operator, crediting its running total;
// otherwise the customer pays directly. A receipt is issued either way.
func (s *BillingService) Pay(meterCode string, req *models.PaymentRequest) (*models.PaymentReceipt, error) {
	customer, err := s.Customers.FindByMeterCode(meterCode)
	if err != nil {
		return nil, err
	}

	var receipt *models.PaymentReceipt
	if req.Operator != "" {
		operator, err := s.Operators.FindByName(req.Operator)
		if err != nil {
			return nil, err
		}
		receipt, err = operator.Collect(customer, req.MeterCode, req.Amount)
		if err != nil {
			return nil, err
		}
		if err := s.OperatorRepo.Save(s.Operators.List()); err != nil {
			return receipt, fmt.Errorf("payment collected but operators not persisted: %w", err)
		}
	} else {
		if err := customer.PayBill(req.MeterCode, req.Amount); err != nil {
			return nil, err
		}
		receipt = &models.PaymentReceipt{
			ReceiptID:    uuid.NewString(),
			MeterCode:    customer.MeterCode,
			CustomerName: customer.Name,
			Amount:       req.Amount,
			CollectedAt:  time.Now(),
		}
	}

	metrics.PaymentsCollected.Inc()
	metrics.AmountCollected.Add(float64(req.Amount))

	if err := s.CustomerRepo.Save(s.Customers.List()); err != nil {
		return receipt, fmt.Errorf("payment collected but customers not persisted: %w", err)
	}
	return receipt, nil
}

// RegisterComplaint flips the customer's one-shot complaint flag. A repeat
// registration is reported, not rejected.
func (s *BillingService) RegisterComplaint(meterCode string) (*ComplaintResult, error) {
	customer, err := s.Customers.FindByMeterCode(meterCode)
	if err != nil {
		return nil, err
	}

	registered := customer.RegisterComplaint()
	result := &ComplaintResult{MeterCode: customer.MeterCode, AlreadyRegistered: !registered}
	if !registered {
		return result, nil
	}

	if err := s.CustomerRepo.Save(s.Customers.List()); err != nil {
		return result, fmt.Errorf("complaint registered but not persisted: %w", err)
	}
	return result, nil
}

// CancelSubscription stops a customer's meter. The operation is reserved
// for operators, so the acting operator must exist in the directory.
func (s *BillingService) CancelSubscription(meterCode, operatorName string) (*models.ActiveCustomer, error) {
	if _, err := s.Operators.FindByName(operatorName); err != nil {
		return nil, err
	}
	customer, err := s.Customers.FindByMeterCode(meterCode)
	if err != nil {
		return nil, err
	}

	customer.Cancel()

	if err := s.CustomerRepo.Save(s.Customers.List()); err != nil {
		return customer, fmt.Errorf("subscription cancelled but not persisted: %w", err)
	}
	return customer, nil
}
