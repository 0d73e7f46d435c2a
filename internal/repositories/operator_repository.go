package repositories

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"billing-backend/internal/models"
)

// OperatorRepository reads and writes the operator record file.
type OperatorRepository struct {
	Path string
}

func NewOperatorRepository(path string) *OperatorRepository {
	return &OperatorRepository{Path: path}
}

// Save rewrites the operator file with the full collection.
func (r *OperatorRepository) Save(operators []*models.Operator) error {
	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("open operator file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, o := range operators {
		fmt.Fprintf(w, "Operator Name: %s\n", o.Name)
		fmt.Fprintf(w, "Total Collected: %d\n", o.TotalCollected)
		fmt.Fprintln(w, recordSeparator)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write operator file: %w", err)
	}
	return nil
}

// Load reads the operator file into a fresh list. A missing file yields
// an empty list; an operator with an unparsable total is skipped with a
// diagnostic.
func (r *OperatorRepository) Load() ([]*models.Operator, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open operator file: %w", err)
	}
	defer f.Close()

	var operators []*models.Operator
	fields := map[string]string{}

	flush := func() {
		if len(fields) == 0 {
			return
		}
		if o, ok := parseOperatorRecord(fields); ok {
			operators = append(operators, o)
		}
		fields = map[string]string{}
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, recordSeparator) {
			flush()
			continue
		}
		if label, value, found := strings.Cut(line, ": "); found {
			fields[strings.TrimSpace(label)] = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read operator file: %w", err)
	}
	flush()

	return operators, nil
}

func parseOperatorRecord(fields map[string]string) (*models.Operator, bool) {
	name := fields["Operator Name"]
	if name == "" {
		return nil, false
	}

	o := &models.Operator{Name: name}
	ok := true
	o.TotalCollected = parseIntField(fields, "Total Collected", name, &ok)
	if !ok {
		return nil, false
	}
	return o, true
}
