// Package service orchestrates imports, exports, and task CRUD on top of
// the pure engine and the persistence layer. It owns the concerns the
// engine deliberately does not: concurrency limits, file-size limits, byte
// sanitation, and record materialization.
package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/code-and-relax/studio/internal/config"
	"github.com/code-and-relax/studio/internal/engine"
	"github.com/code-and-relax/studio/internal/logging"
	"github.com/code-and-relax/studio/internal/task"
)

// ErrFileTooLarge is returned when an uploaded file exceeds the configured
// size limit.
var ErrFileTooLarge = fmt.Errorf("file exceeds the import size limit")

// colorRe matches the 6-hex-digit palette form every record color uses.
var colorRe = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// TaskStore is the persistence boundary. Implemented by store.Store; tests
// substitute an in-memory fake.
type TaskStore interface {
	Insert(ctx context.Context, t task.Record) error
	InsertAll(ctx context.Context, ts []task.Record) error
	List(ctx context.Context) ([]task.Record, error)
	Get(ctx context.Context, id uuid.UUID) (task.Record, error)
	Update(ctx context.Context, t task.Record) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// Service provides the application-level operations behind the HTTP API.
type Service struct {
	store       TaskStore
	limiter     *ImportLimiter
	maxFileSize int64
}

// New creates a Service with limits taken from the import configuration.
func New(store TaskStore, cfg config.ImportConfig) *Service {
	return &Service{
		store:       store,
		limiter:     NewImportLimiter(cfg.MaxConcurrent, cfg.MaxWaitTime),
		maxFileSize: cfg.MaxFileSize,
	}
}

// ImportReport summarizes one import call for the operator: how many rows
// became records and exactly which rows were dropped and why.
type ImportReport struct {
	Profile   string              `json:"profile"`
	FileName  string              `json:"fileName"`
	TotalRows int                 `json:"totalRows"`
	Imported  int                 `json:"imported"`
	Skipped   []engine.SkippedRow `json:"skipped,omitempty"`
	Duration  time.Duration       `json:"-"`
}

// ImportFile runs the full import pipeline over raw uploaded bytes and
// stores every materialized record. Structural failures (missing headers,
// no data) return an error and commit nothing; row-level problems are
// reported in the result and do not fail the call.
func (s *Service) ImportFile(ctx context.Context, profileKey, fileName string, data []byte) (*ImportReport, error) {
	start := time.Now()

	p, ok := engine.GetProfile(profileKey)
	if !ok {
		return nil, fmt.Errorf("unknown profile: %s", profileKey)
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, ErrFileTooLarge
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	text := string(sanitizeUTF8(data))

	result, err := engine.Import(text, p)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	now := time.Now()

	report := &ImportReport{
		Profile:   profileKey,
		FileName:  fileName,
		TotalRows: result.TotalRows,
		Skipped:   result.Skipped,
	}

	// All rows land in one transaction so a mid-import failure commits
	// nothing.
	records := make([]task.Record, len(result.Candidates))
	for i, c := range result.Candidates {
		records[i] = task.Materialize(c, p, now)
	}
	if err := s.store.InsertAll(ctx, records); err != nil {
		return nil, fmt.Errorf("store import: %w", err)
	}
	report.Imported = len(records)

	report.Duration = time.Since(start)
	logger.Info("import complete",
		"profile", profileKey,
		"file", fileName,
		"imported", report.Imported,
		"skipped", len(report.Skipped),
		"duration_ms", report.Duration.Milliseconds(),
	)

	return report, nil
}

// ExportCSV serializes every stored record using the profile's canonical
// headers.
func (s *Service) ExportCSV(ctx context.Context, profileKey string) (string, error) {
	p, ok := engine.GetProfile(profileKey)
	if !ok {
		return "", fmt.Errorf("unknown profile: %s", profileKey)
	}

	records, err := s.store.List(ctx)
	if err != nil {
		return "", err
	}

	rows := make([]engine.ExportRecord, len(records))
	for i, r := range records {
		rows[i] = r.Export()
	}
	return engine.Serialize(rows, p), nil
}

// CreateParams carries the fields of a manually entered task.
type CreateParams struct {
	Profile string `json:"profile"`
	Content string `json:"content"`
	Termini string `json:"termini"`
	DueDate string `json:"dueDate"`
}

// CreateTask materializes and stores a manually entered task. The due date
// text goes through the same normalization as an imported cell.
func (s *Service) CreateTask(ctx context.Context, params CreateParams) (task.Record, error) {
	profileKey := params.Profile
	if profileKey == "" {
		profileKey = "studio"
	}
	p, ok := engine.GetProfile(profileKey)
	if !ok {
		return task.Record{}, fmt.Errorf("unknown profile: %s", profileKey)
	}

	rec, err := task.New(params.Content, params.Termini, params.DueDate, p, time.Now())
	if err != nil {
		return task.Record{}, err
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		return task.Record{}, err
	}
	return rec, nil
}

// UpdateParams carries whole-field replacements for a task. Nil fields stay
// untouched; the creation timestamp and original due date are immutable.
type UpdateParams struct {
	Content     *string `json:"content"`
	Termini     *string `json:"termini"`
	AdjustedDue *string `json:"adjustedDue"`
	Status      *string `json:"status"`
	Color       *string `json:"color"`
}

// UpdateTask applies whole-field replacements to a stored task.
func (s *Service) UpdateTask(ctx context.Context, id uuid.UUID, params UpdateParams) (task.Record, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return task.Record{}, err
	}

	if params.Content != nil {
		content := strings.TrimSpace(*params.Content)
		if content == "" {
			return task.Record{}, fmt.Errorf("content must not be empty")
		}
		rec.Content = content
	}
	if params.Termini != nil {
		rec.Termini = strings.TrimSpace(*params.Termini)
	}
	if params.AdjustedDue != nil {
		rec.AdjustedDue = engine.Normalize(*params.AdjustedDue, nil)
	}
	if params.Status != nil {
		st, err := task.ParseStatus(*params.Status)
		if err != nil {
			return task.Record{}, err
		}
		rec.Status = st
	}
	if params.Color != nil {
		if !colorRe.MatchString(*params.Color) {
			return task.Record{}, fmt.Errorf("color must be a 6-digit hex value")
		}
		rec.Color = *params.Color
	}

	if err := s.store.Update(ctx, rec); err != nil {
		return task.Record{}, err
	}
	return rec, nil
}

// ListTasks returns all stored tasks.
func (s *Service) ListTasks(ctx context.Context) ([]task.Record, error) {
	return s.store.List(ctx)
}

// GetTask returns a single task.
func (s *Service) GetTask(ctx context.Context, id uuid.UUID) (task.Record, error) {
	return s.store.Get(ctx, id)
}

// DeleteTask removes a task.
func (s *Service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// Stats returns record counts per status.
func (s *Service) Stats(ctx context.Context) (map[string]int64, error) {
	return s.store.CountByStatus(ctx)
}

// ActiveImports reports how many imports are currently running.
func (s *Service) ActiveImports() int {
	return s.limiter.Active()
}

// WaitForImports blocks until running imports finish or the context expires.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
