package roster_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"outreach/internal/roster"
	"outreach/internal/services"
)

func TestIngestCleansAndDerivesExternalID(t *testing.T) {
	input := strings.Join([]string{
		` Mobile Number ,Account Email,Account Country,Grid,Region`,
		`+201234567890,a@x.com,Egypt,55,South`,
		`+971501112222,b@x.com,United Arab Emirates,7,North`,
	}, "\n")

	result, err := roster.Ingest(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if result.RowCount() != 2 {
		t.Fatalf("expected 2 records, got %d", result.RowCount())
	}
	if len(result.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", result.Issues)
	}

	first := result.Records[0]
	if first.ExternalID != "EG_55" || first.Email != "a@x.com" || first.OwnerPhone != "+201234567890" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if result.Records[1].ExternalID != "AE_7" {
		t.Fatalf("unexpected second external id: %q", result.Records[1].ExternalID)
	}
}

func TestIngestKeepsInvalidPhoneRows(t *testing.T) {
	input := strings.Join([]string{
		`mobile number,account email,account country,grid`,
		`abc,a@x.com,Egypt,55`,
		`+201234567890,b@x.com,Qatar,12`,
		`007,c@x.com,Kuwait,3`,
	}, "\n")

	result, err := roster.Ingest(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if result.RowCount() != 3 {
		t.Fatal("invalid phone rows must be retained, not dropped")
	}
	if len(result.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %+v", result.Issues)
	}
	if result.Issues[0].Row != 1 || result.Issues[0].Value != "abc" {
		t.Fatalf("unexpected first issue: %+v", result.Issues[0])
	}
	if result.Issues[1].Row != 3 || result.Issues[1].Value != "007" {
		t.Fatalf("unexpected second issue: %+v", result.Issues[1])
	}
	if result.Records[0].OwnerPhone != "abc" {
		t.Fatalf("flagged row should keep its raw phone, got %q", result.Records[0].OwnerPhone)
	}
}

func TestIngestPhonePatternBoundaries(t *testing.T) {
	cases := []struct {
		phone string
		valid bool
	}{
		{"+201234567890", true},
		{"12345", true},
		{"12", true},
		{"1", false},
		{"012345", false},
		{"+0123", false},
		{"+12345678901234567", false},
		{"", false},
	}
	for _, tc := range cases {
		input := "mobile number,account email,account country,grid\n" +
			tc.phone + ",a@x.com,Egypt,1\n"
		result, err := roster.Ingest(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Ingest failed for %q: %v", tc.phone, err)
		}
		gotIssue := len(result.Issues) == 1
		if tc.valid && gotIssue {
			t.Fatalf("phone %q should validate, got issue %+v", tc.phone, result.Issues[0])
		}
		if !tc.valid && !gotIssue {
			t.Fatalf("phone %q should produce exactly one issue", tc.phone)
		}
	}
}

func TestIngestUnmappedCountryFlagsRow(t *testing.T) {
	input := strings.Join([]string{
		`mobile number,account email,account country,grid`,
		`+201234567890,a@x.com,Atlantis,42`,
	}, "\n")

	result, err := roster.Ingest(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if result.RowCount() != 1 {
		t.Fatal("unmapped country must not drop the row")
	}
	if result.Records[0].ExternalID != "_42" {
		t.Fatalf("expected bare-prefix sentinel id, got %q", result.Records[0].ExternalID)
	}
	if len(result.Issues) != 1 || result.Issues[0].Field != "account country" || result.Issues[0].Value != "Atlantis" {
		t.Fatalf("expected country issue, got %+v", result.Issues)
	}
}

func TestIngestCountryNamesMatchExactly(t *testing.T) {
	input := strings.Join([]string{
		`mobile number,account email,account country,grid`,
		`+201234567890,a@x.com,egypt,1`,
	}, "\n")

	result, err := roster.Ingest(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if result.Records[0].ExternalID != "_1" {
		t.Fatalf("lowercase country name must not map, got %q", result.Records[0].ExternalID)
	}
}

func TestIngestSchemaErrors(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		message string
	}{
		{"no phone", "account email,account country,grid", "missing mobile number column"},
		{"no email", "mobile number,account country,grid", "missing account email column"},
		{"no country", "mobile number,account email,grid", "missing account country or grid column"},
		{"no grid", "mobile number,account email,account country", "missing account country or grid column"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := tc.header + "\n" + strings.Repeat("x,", strings.Count(tc.header, ",")) + "x\n"
			result, err := roster.Ingest(strings.NewReader(input))
			if err == nil {
				t.Fatalf("expected schema error, got %+v", result)
			}
			if !errors.Is(err, services.ErrSchema) {
				t.Fatalf("expected ErrSchema, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Fatalf("expected %q in %q", tc.message, err.Error())
			}
			if result != nil {
				t.Fatal("schema errors must not produce partial output")
			}
		})
	}
}

func TestIngestEmptyInput(t *testing.T) {
	if _, err := roster.Ingest(strings.NewReader("")); !errors.Is(err, services.ErrSchema) {
		t.Fatalf("expected ErrSchema for empty input, got %v", err)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	input := strings.Join([]string{
		`mobile number,account email,account country,grid`,
		`+201234567890,a@x.com,Egypt,55`,
	}, "\n")
	result, err := roster.Ingest(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	var buf bytes.Buffer
	if err := result.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	reparsed, err := roster.Ingest(strings.NewReader(buf.String()))
	if err == nil {
		t.Fatal("cleaned CSV lacks the raw roster columns and should not re-ingest")
	}
	_ = reparsed

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "external_id,email,owner_phone" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "EG_55,a@x.com,+201234567890" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}
