package stages_test

import (
	"strings"
	"testing"
	"time"

	"outreach/internal/stages"
)

func wireNow(t *testing.T) stages.WireTime {
	t.Helper()
	return stages.NewWireTime(time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC))
}

func validContent(t *testing.T) stages.ContentRecord {
	t.Helper()
	return stages.ContentRecord{
		EmailContent:  "Spring launch",
		EmailDateTime: wireNow(t),
		Messages: []stages.WhatsAppMessage{
			{
				Body:     "Join us",
				DateTime: wireNow(t),
				Links:    []stages.Link{{Text: "Register", URL: "https://example.com/r"}},
			},
		},
	}
}

func TestLogisticsValidate(t *testing.T) {
	rec := stages.LogisticsRecord{Events: []stages.LogisticsEvent{
		{WebinarURL: "https://example.com/w", DateTime: wireNow(t), Notes: "bring slides"},
	}}
	if err := rec.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	if err := (stages.LogisticsRecord{}).Validate(); err == nil {
		t.Fatal("expected error for empty event list")
	}

	rec.Events[0].WebinarURL = "   "
	if err := rec.Validate(); err == nil || !strings.Contains(err.Error(), "webinar url") {
		t.Fatalf("expected webinar url error, got %v", err)
	}

	rec.Events[0].WebinarURL = "https://example.com/w"
	rec.Events[0].DateTime = stages.WireTime{}
	if err := rec.Validate(); err == nil || !strings.Contains(err.Error(), "date and time") {
		t.Fatalf("expected date error, got %v", err)
	}
}

func TestContentValidate(t *testing.T) {
	rec := validContent(t)
	if err := rec.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	rec.Messages[0].Links = nil
	if err := rec.Validate(); err == nil || !strings.Contains(err.Error(), "at least one link") {
		t.Fatalf("expected link cardinality error, got %v", err)
	}

	rec = validContent(t)
	rec.EmailContent = ""
	if err := rec.Validate(); err == nil || !strings.Contains(err.Error(), "email content") {
		t.Fatalf("expected email content error, got %v", err)
	}

	rec = validContent(t)
	rec.Messages[0].Links[0].URL = ""
	if err := rec.Validate(); err == nil || !strings.Contains(err.Error(), "link url") {
		t.Fatalf("expected link url error, got %v", err)
	}
}

func TestReportingValidate(t *testing.T) {
	rec := stages.ReportingRecord{
		Email:    stages.EmailReport{EmailCount: 120, Sent: 118, Read: 60},
		WhatsApp: stages.WhatsAppReport{Dispatched: 90, Sent: 88, Read: 70, Clicked: 12},
	}
	if err := rec.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	rec.WhatsApp.Clicked = -1
	if err := rec.Validate(); err == nil || !strings.Contains(err.Error(), "whatsapp_report.clicked") {
		t.Fatalf("expected negative counter error, got %v", err)
	}

	// Zero-valued counters are acceptable; only negatives fail.
	if err := (stages.ReportingRecord{}).Validate(); err != nil {
		t.Fatalf("zeroes should validate, got %v", err)
	}
}

func TestParseStage(t *testing.T) {
	stage, ok := stages.ParseStage("  Logistics ")
	if !ok || stage != stages.StageLogistics {
		t.Fatalf("expected logistics, got %q ok=%v", stage, ok)
	}
	if _, ok := stages.ParseStage("shipping"); ok {
		t.Fatal("expected unknown stage to fail")
	}
}

func TestDisplayName(t *testing.T) {
	if got := stages.StageVendorData.DisplayName(); got != "Vendor Data" {
		t.Fatalf("unexpected display name %q", got)
	}
	if got := stages.StageReporting.DisplayName(); got != "Reporting" {
		t.Fatalf("unexpected display name %q", got)
	}
}
