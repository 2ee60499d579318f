package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"outreach/internal/services"
)

// phonePattern is the E.164-style check applied to every owner phone:
// optional leading +, leading digit 1-9, then 1 to 14 further digits.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

const (
	columnPhone   = "mobile number"
	columnEmail   = "account email"
	columnCountry = "account country"
	columnGrid    = "grid"
)

// VendorRecord is one roster row after cleaning and projection.
type VendorRecord struct {
	ExternalID string `json:"external_id"`
	Email      string `json:"email"`
	OwnerPhone string `json:"owner_phone"`
}

// Issue flags a single row whose field value failed validation. Row is the
// 1-based data row index (the header row is not counted).
type Issue struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// Result is the cleaned record set plus the per-row validation issues
// collected while producing it.
type Result struct {
	Records []VendorRecord `json:"records"`
	Issues  []Issue        `json:"issues"`
}

// RowCount returns the number of cleaned records.
func (r *Result) RowCount() int {
	return len(r.Records)
}

// Ingest parses a vendor roster CSV and returns the cleaned record set.
// Missing required columns abort with a schema error before any output is
// produced; per-row phone and country problems are reported as issues while
// the rows themselves are retained.
func Ingest(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, services.Wrap(services.ErrSchema, "vendor_data", "ingest", "read roster csv", err)
	}
	if len(rows) == 0 {
		return nil, services.Wrap(services.ErrSchema, "vendor_data", "ingest", "empty roster", nil)
	}

	columns, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	result := &Result{Records: make([]VendorRecord, 0, len(rows)-1)}
	for i, row := range rows[1:] {
		rowNum := i + 1

		country := row[columns.country]
		code, ok := CountryCode(country)
		if !ok {
			result.Issues = append(result.Issues, Issue{Row: rowNum, Field: columnCountry, Value: country})
		}

		phone := row[columns.phone]
		if !phonePattern.MatchString(phone) {
			result.Issues = append(result.Issues, Issue{Row: rowNum, Field: columnPhone, Value: phone})
		}

		result.Records = append(result.Records, VendorRecord{
			ExternalID: code + "_" + row[columns.grid],
			Email:      row[columns.email],
			OwnerPhone: phone,
		})
	}

	return result, nil
}

// WriteCSV re-emits the cleaned three-column table, the form the roster
// artifact is persisted in.
func (r *Result) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"external_id", "email", "owner_phone"}); err != nil {
		return fmt.Errorf("write roster header: %w", err)
	}
	for _, record := range r.Records {
		if err := writer.Write([]string{record.ExternalID, record.Email, record.OwnerPhone}); err != nil {
			return fmt.Errorf("write roster row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

type columnIndexes struct {
	phone   int
	email   int
	country int
	grid    int
}

func resolveColumns(header []string) (columnIndexes, error) {
	indexes := map[string]int{}
	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if _, exists := indexes[normalized]; !exists {
			indexes[normalized] = i
		}
	}

	columns := columnIndexes{phone: -1, email: -1, country: -1, grid: -1}
	if i, ok := indexes[columnPhone]; ok {
		columns.phone = i
	} else {
		return columns, services.Wrap(services.ErrSchema, "vendor_data", "ingest", "missing mobile number column", nil)
	}
	if i, ok := indexes[columnEmail]; ok {
		columns.email = i
	} else {
		return columns, services.Wrap(services.ErrSchema, "vendor_data", "ingest", "missing account email column", nil)
	}
	countryIdx, haveCountry := indexes[columnCountry]
	gridIdx, haveGrid := indexes[columnGrid]
	if !haveCountry || !haveGrid {
		return columns, services.Wrap(services.ErrSchema, "vendor_data", "ingest", "missing account country or grid column", nil)
	}
	columns.country = countryIdx
	columns.grid = gridIdx
	return columns, nil
}
