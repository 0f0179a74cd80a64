// Package task defines the materialized task record and the rules for
// turning extraction candidates into records with identity and defaults.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/code-and-relax/studio/internal/engine"
)

// Status is the lifecycle state of a task record.
type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted
	StatusArchived
)

var statusNames = map[Status]string{
	StatusPending:    "pending",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
	StatusArchived:   "archived",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStatus resolves a status name, case-insensitively.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for st, name := range statusNames {
		if name == needle {
			return st, nil
		}
	}
	return StatusPending, fmt.Errorf("unknown status %q", s)
}

// MarshalJSON renders the status by name.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON resolves a status name.
func (s *Status) UnmarshalJSON(data []byte) error {
	name := strings.Trim(string(data), `"`)
	st, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Record is a fully materialized task: a candidate plus identity, defaults,
// and a creation timestamp. Records mutate only through whole-field
// replacement; in particular the adjusted date is replaced, never shifted
// in place.
type Record struct {
	ID          uuid.UUID        `json:"id"`
	Content     string           `json:"content"`
	Termini     string           `json:"termini"`
	OriginalDue engine.DateValue `json:"originalDue"`
	AdjustedDue engine.DateValue `json:"adjustedDue"`
	Status      Status           `json:"status"`
	Color       string           `json:"color"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// Materialize assigns identity and defaults to an extraction candidate.
// The adjusted date starts out mirroring the original; the two diverge only
// through a later explicit edit. An empty termini cell falls back to the
// profile's configured marker.
func Materialize(c engine.CandidateRecord, p engine.Profile, now time.Time) Record {
	termini := c.Termini
	if termini == "" {
		termini = p.TerminiFallback
	}

	return Record{
		ID:          uuid.New(),
		Content:     c.Content,
		Termini:     termini,
		OriginalDue: c.DueDate,
		AdjustedDue: c.DueDate,
		Status:      StatusPending,
		Color:       p.DefaultColor,
		CreatedAt:   now,
	}
}

// New builds a record from manual entry. The due-date text goes through the
// same normalization as an imported cell, so typed-in dates and file dates
// behave identically.
func New(content, termini, dueText string, p engine.Profile, now time.Time) (Record, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Record{}, fmt.Errorf("content must not be empty")
	}

	due := engine.Normalize(dueText, p.Sentinels)
	return Materialize(engine.CandidateRecord{
		Termini: strings.TrimSpace(termini),
		Content: content,
		DueDate: due,
	}, p, now), nil
}

// Export projects the record into the serializer's shape. The original due
// date is what exports, matching what was read from the file.
func (r Record) Export() engine.ExportRecord {
	return engine.ExportRecord{
		Termini: r.Termini,
		Content: r.Content,
		DueDate: r.OriginalDue,
	}
}
