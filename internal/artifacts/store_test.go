package artifacts_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"outreach/internal/artifacts"
	"outreach/internal/services"
	"outreach/internal/testsupport"
)

func TestSaveRosterGeneratesUniqueNames(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenArtifacts(t, cfg)

	first, err := store.SaveRoster([]byte("external_id,email,owner_phone\n"))
	if err != nil {
		t.Fatalf("SaveRoster failed: %v", err)
	}
	second, err := store.SaveRoster([]byte("external_id,email,owner_phone\n"))
	if err != nil {
		t.Fatalf("second SaveRoster failed: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct generated names")
	}
	if !strings.HasSuffix(first, ".csv") {
		t.Fatalf("expected .csv suffix, got %q", first)
	}
	if !store.Exists(first) || !store.Exists(second) {
		t.Fatal("expected both rosters retrievable")
	}
}

func TestSaveImageKeepsOriginalName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenArtifacts(t, cfg)

	name, err := store.SaveImage("banner.png", []byte{0x89, 0x50})
	if err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	if name != "banner.png" {
		t.Fatalf("expected original name kept, got %q", name)
	}

	data, err := store.Read(name)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !bytes.Equal(data, []byte{0x89, 0x50}) {
		t.Fatalf("unexpected bytes: %v", data)
	}
}

func TestSaveImageStripsDirectories(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenArtifacts(t, cfg)

	name, err := store.SaveImage("../../etc/banner.png", []byte("x"))
	if err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	if name != "banner.png" {
		t.Fatalf("expected traversal stripped, got %q", name)
	}

	if _, err := store.SaveImage("  ", []byte("x")); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestReadMissingArtifact(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenArtifacts(t, cfg)

	if _, err := store.Read("absent.csv"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Read("../escape.csv"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation for traversal, got %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenArtifacts(t, cfg)

	name, err := store.SaveImage("gone.png", []byte("x"))
	if err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	if err := store.Remove(name); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if store.Exists(name) {
		t.Fatal("artifact should be gone")
	}
	if err := store.Remove(name); err != nil {
		t.Fatalf("second Remove should be a no-op, got %v", err)
	}
}

func TestWorkspaceLockExcludesSecondInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_ = testsupport.MustOpenArtifacts(t, cfg)

	if _, err := artifacts.Open(cfg); err == nil {
		t.Fatal("expected second open on the same workspace to fail")
	}
}
