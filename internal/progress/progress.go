// Package progress derives the dashboard completion view from persisted
// workflow state. Compute is a pure read: it never mutates the store.
package progress

import (
	"context"

	"outreach/internal/artifacts"
	"outreach/internal/session"
	"outreach/internal/stages"
)

// Status is a stage's dashboard state.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusUploaded  Status = "Uploaded"
	StatusCompleted Status = "Completed"
)

// Map holds the per-stage dashboard status for one session.
type Map map[stages.Stage]Status

// Compute derives the progress view for a session. Vendor Data is Uploaded
// only while the persisted roster artifact is still retrievable; Logistics
// and Content are Completed once their submissions have succeeded; Reporting
// stays Pending regardless of saved report data.
func Compute(ctx context.Context, store *session.Store, files *artifacts.Store, sessionID string) (Map, error) {
	result := Map{
		stages.StageVendorData: StatusPending,
		stages.StageLogistics:  StatusPending,
		stages.StageContent:    StatusPending,
		stages.StageReporting:  StatusPending,
	}

	ref, err := store.GetArtifact(ctx, sessionID, session.KindRoster)
	if err != nil {
		return nil, err
	}
	if ref != nil && files.Exists(ref.Name) {
		result[stages.StageVendorData] = StatusUploaded
	}

	for _, stage := range []stages.Stage{stages.StageLogistics, stages.StageContent} {
		completed, err := store.StageCompleted(ctx, sessionID, string(stage))
		if err != nil {
			return nil, err
		}
		if completed {
			result[stage] = StatusCompleted
		}
	}

	return result, nil
}
