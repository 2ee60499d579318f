package session

import (
	"strings"
	"time"
)

// ArtifactKind distinguishes the artifact references a session owns.
type ArtifactKind string

const (
	// KindRoster is the cleaned vendor roster CSV stored under a generated name.
	KindRoster ArtifactKind = "roster"
	// KindImage is a campaign image stored under its original name.
	KindImage ArtifactKind = "image"
)

// ParseArtifactKind converts a string into a known ArtifactKind.
func ParseArtifactKind(value string) (ArtifactKind, bool) {
	normalized := ArtifactKind(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case KindRoster, KindImage:
		return normalized, true
	default:
		return "", false
	}
}

// StageRecord is one stage's persisted state for a session. RecordJSON holds
// the stage's structured record; Completed is set once a stage submission
// succeeds and stays set across later edits.
type StageRecord struct {
	SessionID  string
	Stage      string
	RecordJSON string
	Completed  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ArtifactRef points at a stored artifact owned by a session. RowCount is
// only meaningful for roster artifacts.
type ArtifactRef struct {
	SessionID string
	Kind      ArtifactKind
	Name      string
	RowCount  int64
	CreatedAt time.Time
}
