package workflow

import (
	"context"
	"encoding/json"
	"log/slog"

	"outreach/internal/logging"
	"outreach/internal/services"
	"outreach/internal/session"
	"outreach/internal/stages"
)

// EditLogistics returns the editable logistics structure for a session,
// mirroring the saved event count or a single empty slot when nothing has
// been saved yet.
func (s *Service) EditLogistics(ctx context.Context, sessionID string) (stages.LogisticsRecord, error) {
	saved, err := s.logisticsRecord(ctx, sessionID)
	if err != nil {
		return stages.LogisticsRecord{}, err
	}
	return stages.ReconcileLogistics(saved), nil
}

// SaveLogistics validates and persists a logistics submission, replacing any
// previously saved schedule and marking the stage complete.
func (s *Service) SaveLogistics(ctx context.Context, sessionID string, record stages.LogisticsRecord) error {
	if err := record.Validate(); err != nil {
		return services.Wrap(services.ErrValidation, string(stages.StageLogistics), "save", "", err)
	}
	return s.putStage(ctx, sessionID, stages.StageLogistics, record, true,
		slog.Int("events", len(record.Events)))
}

// EditContent returns the editable content structure for a session. When the
// saved record carries no image reference but an image artifact exists, the
// artifact name is injected so the edit view reflects the attachment.
func (s *Service) EditContent(ctx context.Context, sessionID string) (stages.ContentRecord, error) {
	saved, err := s.contentRecord(ctx, sessionID)
	if err != nil {
		return stages.ContentRecord{}, err
	}
	out := stages.ReconcileContent(saved)
	if out.ImageName == "" {
		ref, err := s.store.GetArtifact(ctx, sessionID, session.KindImage)
		if err != nil {
			return stages.ContentRecord{}, services.Wrap(services.ErrStorage, string(stages.StageContent), "edit", "load image ref", err)
		}
		if ref != nil {
			out.ImageName = ref.Name
		}
	}
	return out, nil
}

// SaveContent validates and persists a content submission, replacing any
// previously saved content and marking the stage complete. A submitted image
// name that points at a stored artifact is recorded as the session's image
// ref so the attachment survives stage replacement.
func (s *Service) SaveContent(ctx context.Context, sessionID string, record stages.ContentRecord) error {
	if err := record.Validate(); err != nil {
		return services.Wrap(services.ErrValidation, string(stages.StageContent), "save", "", err)
	}
	if record.ImageName != "" && s.files.Exists(record.ImageName) {
		ref, err := s.store.GetArtifact(ctx, sessionID, session.KindImage)
		if err != nil {
			return services.Wrap(services.ErrStorage, string(stages.StageContent), "save", "load image ref", err)
		}
		if ref == nil || ref.Name != record.ImageName {
			if err := s.store.PutArtifact(ctx, sessionID, session.KindImage, record.ImageName, 0); err != nil {
				return services.Wrap(services.ErrStorage, string(stages.StageContent), "save", "record image ref", err)
			}
		}
	}
	return s.putStage(ctx, sessionID, stages.StageContent, record, true,
		slog.Int("messages", len(record.Messages)))
}

// AttachImage stores an uploaded campaign image under its original base name
// and records it as this session's image artifact. The stored name is
// returned so the caller can fold it into the content record.
func (s *Service) AttachImage(ctx context.Context, sessionID string, name string, data []byte) (string, error) {
	if sessionID == "" {
		return "", services.Wrap(services.ErrValidation, string(stages.StageContent), "attach", "session id is required", nil)
	}
	stored, err := s.files.SaveImage(name, data)
	if err != nil {
		return "", err
	}
	if err := s.store.PutArtifact(ctx, sessionID, session.KindImage, stored, 0); err != nil {
		_ = s.files.Remove(stored)
		return "", services.Wrap(services.ErrStorage, string(stages.StageContent), "attach", "record image artifact", err)
	}
	logging.WithContext(services.WithSessionID(ctx, sessionID), s.logger).Info("image attached",
		slog.String("artifact", stored))
	return stored, nil
}

// SaveReporting validates and persists a reporting submission. Reported
// numbers are revisable at any time, so the stage is never marked complete.
func (s *Service) SaveReporting(ctx context.Context, sessionID string, record stages.ReportingRecord) error {
	if err := record.Validate(); err != nil {
		return services.Wrap(services.ErrValidation, string(stages.StageReporting), "save", "", err)
	}
	return s.putStage(ctx, sessionID, stages.StageReporting, record, false)
}

// Report returns the saved reporting record for a session, or a precondition
// error when no report has been submitted yet.
func (s *Service) Report(ctx context.Context, sessionID string) (*stages.ReportingRecord, error) {
	record, err := s.store.GetStage(ctx, sessionID, string(stages.StageReporting))
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, string(stages.StageReporting), "report", "load report", err)
	}
	if record == nil {
		return nil, services.Wrap(services.ErrPrecondition, string(stages.StageReporting), "report", "no report data available", nil)
	}
	var out stages.ReportingRecord
	if err := json.Unmarshal([]byte(record.RecordJSON), &out); err != nil {
		return nil, services.Wrap(services.ErrStorage, string(stages.StageReporting), "report", "decode report", err)
	}
	return &out, nil
}

func (s *Service) logisticsRecord(ctx context.Context, sessionID string) (*stages.LogisticsRecord, error) {
	record, err := s.store.GetStage(ctx, sessionID, string(stages.StageLogistics))
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, string(stages.StageLogistics), "load", "load record", err)
	}
	if record == nil {
		return nil, nil
	}
	var out stages.LogisticsRecord
	if err := json.Unmarshal([]byte(record.RecordJSON), &out); err != nil {
		return nil, services.Wrap(services.ErrStorage, string(stages.StageLogistics), "load", "decode record", err)
	}
	return &out, nil
}

func (s *Service) contentRecord(ctx context.Context, sessionID string) (*stages.ContentRecord, error) {
	record, err := s.store.GetStage(ctx, sessionID, string(stages.StageContent))
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, string(stages.StageContent), "load", "load record", err)
	}
	if record == nil {
		return nil, nil
	}
	var out stages.ContentRecord
	if err := json.Unmarshal([]byte(record.RecordJSON), &out); err != nil {
		return nil, services.Wrap(services.ErrStorage, string(stages.StageContent), "load", "decode record", err)
	}
	return &out, nil
}

func (s *Service) putStage(ctx context.Context, sessionID string, stage stages.Stage, record any, completed bool, attrs ...any) error {
	if sessionID == "" {
		return services.Wrap(services.ErrValidation, string(stage), "save", "session id is required", nil)
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return services.Wrap(services.ErrStorage, string(stage), "save", "encode record", err)
	}
	if err := s.store.PutStage(ctx, sessionID, string(stage), string(payload), completed); err != nil {
		return services.Wrap(services.ErrStorage, string(stage), "save", "persist record", err)
	}
	ctx = services.WithStage(services.WithSessionID(ctx, sessionID), string(stage))
	logging.WithContext(ctx, s.logger).Info("stage saved", attrs...)
	return nil
}
