// Package repositories persists the directories as plain-text record
// files: one block of "Label: value" lines per entity, blocks separated
// by a fixed dashed line. Every save rewrites the whole file; the
// in-memory directories never touch disk themselves.
package repositories

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"billing-backend/internal/models"
)

// recordSeparator terminates each record block in the data files.
const recordSeparator = "--------------------------------------------------"

// CustomerRepository reads and writes the customer record file.
type CustomerRepository struct {
	Path string
}

func NewCustomerRepository(path string) *CustomerRepository {
	return &CustomerRepository{Path: path}
}

// Save rewrites the customer file with the full collection.
func (r *CustomerRepository) Save(customers []*models.ActiveCustomer) error {
	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("open customer file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, c := range customers {
		fmt.Fprintf(w, "Name: %s\n", c.Name)
		fmt.Fprintf(w, "NID: %s\n", c.NationalID)
		fmt.Fprintf(w, "Address: %s\n", c.Address)
		fmt.Fprintf(w, "Email: %s\n", c.Email)
		fmt.Fprintf(w, "Meter Code: %s\n", c.MeterCode)
		fmt.Fprintf(w, "Region: %s\n", c.Region)
		fmt.Fprintf(w, "Phone Number: %d\n", c.PhoneNumber)
		fmt.Fprintf(w, "Current Reading: %d\n", c.CurrentReading)
		fmt.Fprintf(w, "Last Reading: %d\n", c.LastReading)
		fmt.Fprintf(w, "Balance Due: %d\n", c.BalanceDue)
		fmt.Fprintf(w, "Unpaid Months: %d\n", c.UnpaidMonths)
		fmt.Fprintf(w, "Complaint: %t\n", c.HasComplaint)
		fmt.Fprintf(w, "Stop and Cancel: %t\n", c.Cancelled)
		fmt.Fprintln(w, recordSeparator)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write customer file: %w", err)
	}
	return nil
}

// Load reads the customer file into a fresh list. A missing file means a
// first run and yields an empty list. Records with unparsable fields are
// skipped with a diagnostic; missing numeric fields default to zero.
func (r *CustomerRepository) Load() ([]*models.ActiveCustomer, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open customer file: %w", err)
	}
	defer f.Close()

	var customers []*models.ActiveCustomer
	fields := map[string]string{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, recordSeparator) {
			if len(fields) > 0 {
				if c, ok := parseCustomerRecord(fields); ok {
					customers = append(customers, c)
				}
				fields = map[string]string{}
			}
			continue
		}
		if label, value, found := strings.Cut(line, ": "); found {
			fields[strings.TrimSpace(label)] = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read customer file: %w", err)
	}

	// Trailing record without a separator line.
	if len(fields) > 0 {
		if c, ok := parseCustomerRecord(fields); ok {
			customers = append(customers, c)
		}
	}
	return customers, nil
}

func parseCustomerRecord(fields map[string]string) (*models.ActiveCustomer, bool) {
	nid := fields["NID"]
	meterCode := fields["Meter Code"]
	if nid == "" || meterCode == "" {
		log.Printf("[Storage] skipping customer record %q: missing NID or meter code", fields["Name"])
		return nil, false
	}

	c := &models.ActiveCustomer{
		CustomerIdentity: models.CustomerIdentity{
			Name:       fields["Name"],
			NationalID: nid,
			Address:    fields["Address"],
			Email:      fields["Email"],
			MeterCode:  meterCode,
			Region:     fields["Region"],
		},
	}

	ok := true
	c.PhoneNumber = parseInt64Field(fields, "Phone Number", c.Name, &ok)
	c.CurrentReading = parseIntField(fields, "Current Reading", c.Name, &ok)
	c.LastReading = parseIntField(fields, "Last Reading", c.Name, &ok)
	c.BalanceDue = parseIntField(fields, "Balance Due", c.Name, &ok)
	c.UnpaidMonths = parseIntField(fields, "Unpaid Months", c.Name, &ok)
	if !ok {
		return nil, false
	}

	c.HasComplaint = fields["Complaint"] == "true"
	c.Cancelled = fields["Stop and Cancel"] == "true"
	return c, true
}

func parseIntField(fields map[string]string, label, record string, ok *bool) int {
	value, present := fields[label]
	if !present || value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[Storage] skipping record %q: bad %s value %q", record, label, value)
		*ok = false
		return 0
	}
	return n
}

func parseInt64Field(fields map[string]string, label, record string, ok *bool) int64 {
	value, present := fields[label]
	if !present || value == "" {
		return 0
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("[Storage] skipping record %q: bad %s value %q", record, label, value)
		*ok = false
		return 0
	}
	return n
}
