package workflow

import (
	"context"
	"log/slog"

	"outreach/internal/logging"
	"outreach/internal/services"
	"outreach/internal/session"
)

// Sessions lists every session identifier known to the store.
func (s *Service) Sessions(ctx context.Context) ([]string, error) {
	ids, err := s.store.Sessions(ctx)
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, "", "sessions", "list sessions", err)
	}
	return ids, nil
}

// DeleteSession removes all stage records and artifact references for a
// session, then evicts the underlying artifact files. Returns false when the
// session held no state.
func (s *Service) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, services.Wrap(services.ErrValidation, "", "delete", "session id is required", nil)
	}

	var names []string
	for _, kind := range []session.ArtifactKind{session.KindRoster, session.KindImage} {
		ref, err := s.store.GetArtifact(ctx, sessionID, kind)
		if err != nil {
			return false, services.Wrap(services.ErrStorage, "", "delete", "load artifact refs", err)
		}
		if ref != nil {
			names = append(names, ref.Name)
		}
	}

	removed, err := s.store.DeleteSession(ctx, sessionID)
	if err != nil {
		return false, services.Wrap(services.ErrStorage, "", "delete", "delete session rows", err)
	}
	for _, name := range names {
		_ = s.files.Remove(name)
	}
	if removed {
		logging.WithContext(services.WithSessionID(ctx, sessionID), s.logger).Info("session deleted",
			slog.Int("artifacts", len(names)))
	}
	return removed, nil
}
