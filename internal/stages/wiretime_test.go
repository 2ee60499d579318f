package stages_test

import (
	"encoding/json"
	"testing"
	"time"

	"outreach/internal/stages"
)

func TestWireTimeRoundTrip(t *testing.T) {
	parsed, err := stages.ParseWireTime("2026-03-14 09:30")
	if err != nil {
		t.Fatalf("ParseWireTime failed: %v", err)
	}
	if got := parsed.String(); got != "2026-03-14 09:30" {
		t.Fatalf("expected wire string round-trip, got %q", got)
	}

	data, err := json.Marshal(parsed)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"2026-03-14 09:30"` {
		t.Fatalf("unexpected JSON form: %s", data)
	}

	var back stages.WireTime
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !back.Equal(parsed) {
		t.Fatalf("expected minute equality, got %v vs %v", back, parsed)
	}
}

func TestWireTimeTruncatesToMinute(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 30, 45, 123456, time.UTC)
	wt := stages.NewWireTime(base)
	if got := wt.String(); got != "2026-03-14 09:30" {
		t.Fatalf("expected seconds dropped, got %q", got)
	}
	if !wt.Equal(stages.NewWireTime(base.Add(10 * time.Second))) {
		t.Fatal("timestamps within the same minute should compare equal")
	}
}

func TestWireTimeRejectsOtherLayouts(t *testing.T) {
	for _, bad := range []string{"2026-03-14T09:30", "14/03/2026 09:30", "2026-03-14 09:30:00"} {
		if _, err := stages.ParseWireTime(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestWireTimeEmptyJSONStaysZero(t *testing.T) {
	var wt stages.WireTime
	if err := json.Unmarshal([]byte(`""`), &wt); err != nil {
		t.Fatalf("empty string should unmarshal: %v", err)
	}
	if !wt.IsZero() {
		t.Fatal("expected zero timestamp")
	}
}
