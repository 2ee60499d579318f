package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	content := strings.Join([]string{
		"[paths]",
		`data_dir = "` + filepath.Join(base, "data") + `"`,
		`upload_dir = "` + filepath.Join(base, "uploads") + `"`,
		`log_dir = "` + filepath.Join(base, "logs") + `"`,
		"",
		"[logging]",
		`format = "console"`,
		`level = "error"`,
		"",
	}, "\n")

	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("outreach %s failed: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestIngestThenProgressEndToEnd(t *testing.T) {
	cfgPath := writeTestConfig(t)

	rosterPath := filepath.Join(t.TempDir(), "roster.csv")
	roster := "Mobile Number,Account Email,Account Country,Grid\n" +
		"201234567890,vendor@example.com,Egypt,G-100\n"
	if err := os.WriteFile(rosterPath, []byte(roster), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}

	out := runCommand(t, cfgPath, "ingest", rosterPath)
	if !strings.Contains(out, "Ingested 1 vendor rows") {
		t.Fatalf("unexpected ingest output:\n%s", out)
	}

	out = runCommand(t, cfgPath, "progress", "--json")
	var view map[string]string
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("parse progress JSON: %v\n%s", err, out)
	}
	if view["vendor_data"] != "Uploaded" {
		t.Fatalf("expected vendor_data Uploaded, got %q", view["vendor_data"])
	}
	if view["reporting"] != "Pending" {
		t.Fatalf("expected reporting Pending, got %q", view["reporting"])
	}
}

func TestLogisticsEditPrintsEmptySlot(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out := runCommand(t, cfgPath, "logistics", "edit")
	var record struct {
		Events []map[string]any `json:"events"`
	}
	if err := json.Unmarshal([]byte(out), &record); err != nil {
		t.Fatalf("parse edit JSON: %v\n%s", err, out)
	}
	if len(record.Events) != 1 {
		t.Fatalf("expected one empty event slot, got %d", len(record.Events))
	}
}
