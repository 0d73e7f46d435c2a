package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"billing-backend/internal/directory"
)

// RegionBillsReport lists the outstanding bills in one region.
type RegionBillsReport struct {
	Region string        `json:"region"`
	Bills  []BillSummary `json:"bills"`
	Found  bool          `json:"found"`
}

// OperatorCollection is one operator's running collection total.
type OperatorCollection struct {
	Name           string `json:"name"`
	TotalCollected int    `json:"total_collected"`
}

// CollectionsReport aggregates collections across all operators.
type CollectionsReport struct {
	Total     int                  `json:"total"`
	Operators []OperatorCollection `json:"operators"`
}

// ConsumptionReport sums metered consumption in one region.
type ConsumptionReport struct {
	Region           string `json:"region"`
	TotalConsumption int    `json:"total_consumption"`
	CustomerCount    int    `json:"customer_count"`
	Found            bool   `json:"found"`
}

// ReportService produces read-only aggregations over the directories.
type ReportService struct {
	Customers *directory.CustomerDirectory
	Operators *directory.OperatorDirectory
}

func NewReportService(customers *directory.CustomerDirectory, operators *directory.OperatorDirectory) *ReportService {
	return &ReportService{Customers: customers, Operators: operators}
}

// BillsByRegion lists name, meter code and balance for every customer in
// the region. Found is false when the region has no customers.
func (s *ReportService) BillsByRegion(region string) *RegionBillsReport {
	report := &RegionBillsReport{Region: region}
	for _, c := range s.Customers.ByRegion(region) {
		report.Bills = append(report.Bills, BillSummary{
			Name:       c.Name,
			MeterCode:  c.MeterCode,
			BalanceDue: c.BalanceDue,
		})
	}
	report.Found = len(report.Bills) > 0
	return report
}

// TotalCollected sums the collection totals of all operators.
func (s *ReportService) TotalCollected() *CollectionsReport {
	report := &CollectionsReport{}
	for _, o := range s.Operators.List() {
		report.Total += o.TotalCollected
		report.Operators = append(report.Operators, OperatorCollection{
			Name:           o.Name,
			TotalCollected: o.TotalCollected,
		})
	}
	return report
}

// ConsumptionByRegion sums consumption and counts customers in a region.
// Found is false when the region has no customers, so callers never divide
// by a zero count.
func (s *ReportService) ConsumptionByRegion(region string) *ConsumptionReport {
	report := &ConsumptionReport{Region: region}
	for _, c := range s.Customers.ByRegion(region) {
		report.TotalConsumption += c.Consumption()
		report.CustomerCount++
	}
	report.Found = report.CustomerCount > 0
	return report
}

// GenerateRegionBillsPDF renders the regional bill listing as a PDF.
func (s *ReportService) GenerateRegionBillsPDF(region string) ([]byte, error) {
	report := s.BillsByRegion(region)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Electricity Billing - Regional Bill Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Region: %s  |  Generated: %s", report.Region,
		time.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	if !report.Found {
		pdf.SetFont("Arial", "I", 12)
		pdf.CellFormat(190, 10, "No customers found in this region.", "1", 1, "C", false, 0, "")
	} else {
		// Table header
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(90, 7, "Customer", "1", 0, "C", true, 0, "")
		pdf.CellFormat(50, 7, "Meter Code", "1", 0, "C", true, 0, "")
		pdf.CellFormat(50, 7, "Balance Due", "1", 1, "C", true, 0, "")

		// Table rows
		pdf.SetFont("Arial", "", 10)
		total := 0
		for _, bill := range report.Bills {
			name := bill.Name
			if len(name) > 40 {
				name = name[:37] + "..."
			}
			pdf.CellFormat(90, 6, name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, bill.MeterCode, "1", 0, "C", false, 0, "")
			pdf.CellFormat(50, 6, strconv.Itoa(bill.BalanceDue), "1", 1, "R", false, 0, "")
			total += bill.BalanceDue
		}

		pdf.SetFont("Arial", "B", 11)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(140, 8, "Total outstanding", "1", 0, "R", true, 0, "")
		pdf.CellFormat(50, 8, strconv.Itoa(total), "1", 1, "R", true, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportCustomersCSV writes the whole customer directory as CSV.
func (s *ReportService) ExportCustomersCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Name", "NID", "Address", "Email", "Meter Code", "Region",
		"Phone Number", "Current Reading", "Last Reading", "Balance Due",
		"Unpaid Months", "Complaint", "Cancelled"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, c := range s.Customers.List() {
		row := []string{
			c.Name,
			c.NationalID,
			c.Address,
			c.Email,
			c.MeterCode,
			c.Region,
			strconv.FormatInt(c.PhoneNumber, 10),
			strconv.Itoa(c.CurrentReading),
			strconv.Itoa(c.LastReading),
			strconv.Itoa(c.BalanceDue),
			strconv.Itoa(c.UnpaidMonths),
			strconv.FormatBool(c.HasComplaint),
			strconv.FormatBool(c.Cancelled),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
