package workflow

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"outreach/internal/artifacts"
	"outreach/internal/config"
	"outreach/internal/logging"
	"outreach/internal/progress"
	"outreach/internal/roster"
	"outreach/internal/services"
	"outreach/internal/session"
)

// Service exposes the workflow engine operations to the caller. All state
// flows through the injected session store; the service itself is stateless.
type Service struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *session.Store
	files  *artifacts.Store
}

// NewService wires the engine facade.
func NewService(cfg *config.Config, logger *slog.Logger, store *session.Store, files *artifacts.Store) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		cfg:    cfg,
		logger: logger.With(logging.FieldComponent, "workflow"),
		store:  store,
		files:  files,
	}
}

// IngestSummary reports the outcome of a roster upload.
type IngestSummary struct {
	ArtifactName string         `json:"artifact_name"`
	RowCount     int            `json:"row_count"`
	Issues       []roster.Issue `json:"issues,omitempty"`
}

// RosterInfo summarizes the persisted roster for the vendor-data view.
type RosterInfo struct {
	ArtifactName string `json:"artifact_name"`
	RowCount     int    `json:"row_count"`
}

// IngestRoster runs the ingestion pipeline on an uploaded roster, persists the
// cleaned CSV as this session's roster artifact, and records its reference.
// A re-upload replaces the previous cleaned set wholesale.
func (s *Service) IngestRoster(ctx context.Context, sessionID string, r io.Reader) (*IngestSummary, error) {
	if sessionID == "" {
		return nil, services.Wrap(services.ErrValidation, "vendor_data", "ingest", "session id is required", nil)
	}
	ctx = services.WithSessionID(ctx, sessionID)
	log := logging.WithContext(ctx, s.logger)

	limit := s.cfg.MaxUploadBytes()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, "vendor_data", "ingest", "read upload", err)
	}
	if int64(len(data)) > limit {
		return nil, services.Wrap(services.ErrValidation, "vendor_data", "ingest",
			fmt.Sprintf("roster exceeds the %d MiB upload limit", s.cfg.Roster.MaxUploadMiB), nil)
	}

	result, err := roster.Ingest(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var cleaned bytes.Buffer
	if err := result.WriteCSV(&cleaned); err != nil {
		return nil, services.Wrap(services.ErrStorage, "vendor_data", "ingest", "encode cleaned roster", err)
	}

	previous, err := s.store.GetArtifact(ctx, sessionID, session.KindRoster)
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, "vendor_data", "ingest", "load previous roster ref", err)
	}

	name, err := s.files.SaveRoster(cleaned.Bytes())
	if err != nil {
		return nil, err
	}
	if err := s.store.PutArtifact(ctx, sessionID, session.KindRoster, name, int64(result.RowCount())); err != nil {
		_ = s.files.Remove(name)
		return nil, services.Wrap(services.ErrStorage, "vendor_data", "ingest", "record roster artifact", err)
	}
	if previous != nil && previous.Name != name {
		_ = s.files.Remove(previous.Name)
	}

	log.Info("roster ingested",
		slog.String("artifact", name),
		slog.Int("rows", result.RowCount()),
		slog.Int("issues", len(result.Issues)),
	)

	return &IngestSummary{
		ArtifactName: name,
		RowCount:     result.RowCount(),
		Issues:       result.Issues,
	}, nil
}

// RosterSummary returns the persisted roster's artifact name and row count.
// It fails with a precondition error when no retrievable roster exists, so
// the caller can guide the user back to the upload step.
func (s *Service) RosterSummary(ctx context.Context, sessionID string) (*RosterInfo, error) {
	ref, err := s.store.GetArtifact(ctx, sessionID, session.KindRoster)
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, "vendor_data", "summary", "load roster ref", err)
	}
	if ref == nil {
		return nil, services.Wrap(services.ErrPrecondition, "vendor_data", "summary", "no vendor data available", nil)
	}

	data, err := s.files.Read(ref.Name)
	if err != nil {
		return nil, services.Wrap(services.ErrPrecondition, "vendor_data", "summary", "roster artifact is not retrievable", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, "vendor_data", "summary", "parse stored roster", err)
	}
	count := len(rows)
	if count > 0 {
		count--
	}
	return &RosterInfo{ArtifactName: ref.Name, RowCount: count}, nil
}

// DownloadArtifact returns an artifact's stored name and bytes for a session.
func (s *Service) DownloadArtifact(ctx context.Context, sessionID string, kind session.ArtifactKind) (string, []byte, error) {
	ref, err := s.store.GetArtifact(ctx, sessionID, kind)
	if err != nil {
		return "", nil, services.Wrap(services.ErrStorage, "", "download", "load artifact ref", err)
	}
	if ref == nil {
		return "", nil, services.Wrap(services.ErrNotFound, "", "download", fmt.Sprintf("no %s artifact for session", kind), nil)
	}
	data, err := s.files.Read(ref.Name)
	if err != nil {
		return "", nil, err
	}
	return ref.Name, data, nil
}

// Progress derives the dashboard view for a session.
func (s *Service) Progress(ctx context.Context, sessionID string) (progress.Map, error) {
	return progress.Compute(ctx, s.store, s.files, sessionID)
}
