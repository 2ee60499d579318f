package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"outreach/internal/config"
)

// Store manages workflow state persistence backed by SQLite. SQLite's single
// writer plus the busy timeout serialize writes per key, which is all the
// concurrency the engine requires: sessions are isolated and stages within a
// session are edited serially.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the session database and verifies its schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "sessions.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the session database location.
func (s *Store) Path() string {
	return s.path
}

// GetStage fetches a stage's saved record, or nil when the stage has never
// been saved for the session.
func (s *Store) GetStage(ctx context.Context, sessionID, stage string) (*StageRecord, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT session_id, stage, record_json, completed, created_at, updated_at
         FROM stage_records WHERE session_id = ? AND stage = ?`,
		sessionID, stage,
	)
	record, err := scanStageRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stage record: %w", err)
	}
	return record, nil
}

// PutStage fully replaces a stage's record for a session. The completion flag
// is sticky: once a stage has completed, later edits never clear it.
func (s *Store) PutStage(ctx context.Context, sessionID, stage, recordJSON string, completed bool) error {
	if sessionID == "" {
		return errors.New("session id is required")
	}
	if stage == "" {
		return errors.New("stage is required")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO stage_records (session_id, stage, record_json, completed, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(session_id, stage) DO UPDATE SET
            record_json = excluded.record_json,
            completed = MAX(stage_records.completed, excluded.completed),
            updated_at = excluded.updated_at`,
		sessionID, stage, recordJSON, boolToInt(completed), now, now,
	)
	if err != nil {
		return fmt.Errorf("put stage record: %w", err)
	}
	return nil
}

// StageCompleted reports whether a stage submission has succeeded at least once.
func (s *Store) StageCompleted(ctx context.Context, sessionID, stage string) (bool, error) {
	record, err := s.GetStage(ctx, sessionID, stage)
	if err != nil {
		return false, err
	}
	return record != nil && record.Completed, nil
}

// PutArtifact records (or replaces) an artifact reference for a session.
func (s *Store) PutArtifact(ctx context.Context, sessionID string, kind ArtifactKind, name string, rowCount int64) error {
	if sessionID == "" {
		return errors.New("session id is required")
	}
	if name == "" {
		return errors.New("artifact name is required")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO artifacts (session_id, kind, name, row_count, created_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(session_id, kind) DO UPDATE SET
            name = excluded.name,
            row_count = excluded.row_count,
            created_at = excluded.created_at`,
		sessionID, string(kind), name, rowCount, now,
	)
	if err != nil {
		return fmt.Errorf("put artifact ref: %w", err)
	}
	return nil
}

// GetArtifact fetches a session's artifact reference for a kind, or nil when
// none has been recorded.
func (s *Store) GetArtifact(ctx context.Context, sessionID string, kind ArtifactKind) (*ArtifactRef, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT session_id, kind, name, row_count, created_at FROM artifacts
         WHERE session_id = ? AND kind = ?`,
		sessionID, string(kind),
	)
	ref, err := scanArtifactRef(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get artifact ref: %w", err)
	}
	return ref, nil
}

// HasArtifact reports whether a session has an artifact reference of a kind.
func (s *Store) HasArtifact(ctx context.Context, sessionID string, kind ArtifactKind) (bool, error) {
	ref, err := s.GetArtifact(ctx, sessionID, kind)
	if err != nil {
		return false, err
	}
	return ref != nil, nil
}

// Sessions lists every session id known to the store, ordered by id.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT session_id FROM stage_records
         UNION SELECT session_id FROM artifacts ORDER BY session_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteSession evicts all stage records and artifact references for a
// session. It reports whether anything was removed.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var total int64
	for _, query := range []string{
		`DELETE FROM stage_records WHERE session_id = ?`,
		`DELETE FROM artifacts WHERE session_id = ?`,
	} {
		res, err := tx.ExecContext(ctx, query, sessionID)
		if err != nil {
			return false, fmt.Errorf("delete session rows: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return false, fmt.Errorf("rows affected: %w", err)
		}
		total += affected
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete: %w", err)
	}
	return total > 0, nil
}

func scanStageRecord(scanner interface{ Scan(dest ...any) error }) (*StageRecord, error) {
	var (
		sessionID  string
		stage      string
		recordJSON string
		completed  int
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(&sessionID, &stage, &recordJSON, &completed, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	record := &StageRecord{
		SessionID:  sessionID,
		Stage:      stage,
		RecordJSON: recordJSON,
		Completed:  completed != 0,
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		record.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		record.UpdatedAt = updated
	}
	return record, nil
}

func scanArtifactRef(scanner interface{ Scan(dest ...any) error }) (*ArtifactRef, error) {
	var (
		sessionID  string
		kind       string
		name       string
		rowCount   sql.NullInt64
		createdRaw string
	)
	if err := scanner.Scan(&sessionID, &kind, &name, &rowCount, &createdRaw); err != nil {
		return nil, err
	}

	ref := &ArtifactRef{
		SessionID: sessionID,
		Kind:      ArtifactKind(kind),
		Name:      name,
		RowCount:  rowCount.Int64,
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		ref.CreatedAt = created
	}
	return ref, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
