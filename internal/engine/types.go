package engine

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Field identifies one of the three logical columns every import needs.
type Field int

const (
	FieldTermini Field = iota
	FieldContent
	FieldDueDate
)

// String returns the logical field name for diagnostics.
func (f Field) String() string {
	switch f {
	case FieldTermini:
		return "termini"
	case FieldContent:
		return "content"
	case FieldDueDate:
		return "due date"
	default:
		return "unknown"
	}
}

// FieldSpec describes how to recognize one logical column in a header row.
type FieldSpec struct {
	Name     string   // Canonical header spelling, used on export
	Variants []string // Additional accepted spellings, matched case-insensitively
	Required bool     // Import fails if the column cannot be located
}

// matchSet returns the uppercased set of all accepted spellings.
func (s FieldSpec) matchSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Variants)+1)
	set[strings.ToUpper(strings.TrimSpace(s.Name))] = struct{}{}
	for _, v := range s.Variants {
		set[strings.ToUpper(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}

// names returns every accepted spelling, canonical first, for error messages.
func (s FieldSpec) names() []string {
	return append([]string{s.Name}, s.Variants...)
}

// ColumnMap is the resolved physical layout of one input file: the column
// index of each logical field plus the line index at which data begins.
// Termini is -1 when the column is absent (it is the one optional field).
type ColumnMap struct {
	Termini   int
	Content   int
	DueDate   int
	DataStart int
}

// CandidateRecord is a partially built task row as read from the file,
// before identity and defaults are assigned.
type CandidateRecord struct {
	Line    int    // 1-based line number in the source file
	Termini string // Trimmed deadline condition cell, may be empty
	Content string // Trimmed description cell, never empty
	DueDate DateValue
}

// SkippedRow records a data row dropped during extraction, with enough
// context for an operator to find it in the source file.
type SkippedRow struct {
	Line   int      `json:"line"`
	Reason string   `json:"reason"`
	Cells  []string `json:"cells,omitempty"`
}

// ExtractResult is the outcome of a successful import: the candidates in
// file order plus diagnostics for every row that was dropped.
type ExtractResult struct {
	Candidates []CandidateRecord
	Skipped    []SkippedRow
	TotalRows  int // Data rows seen, including skipped and blank ones
}

// ExportRecord is the projection of a task record that the serializer needs.
type ExportRecord struct {
	Termini string
	Content string
	DueDate DateValue
}

// MissingField names one unresolved logical column and the spellings that
// were searched for it.
type MissingField struct {
	Field    Field    `json:"field"`
	Searched []string `json:"searched"`
}

// MissingFieldsError is the terminal failure of header location: one or more
// required columns could not be found in the scan window.
type MissingFieldsError struct {
	Missing []MissingField
}

func (e *MissingFieldsError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		parts[i] = fmt.Sprintf("%s (searched: %s)", m.Field, strings.Join(m.Searched, ", "))
	}
	return "header not found for " + strings.Join(parts, "; ")
}

// DateValue is either a concrete calendar date or an opaque placeholder
// holding the original cell text. It is never an invalid date: Normalize
// either succeeds into the concrete form or preserves the input verbatim.
//
// The zero value is an empty placeholder.
type DateValue struct {
	date     time.Time
	text     string
	concrete bool
}

// ConcreteDate builds a DateValue holding a resolved calendar date.
func ConcreteDate(t time.Time) DateValue {
	return DateValue{date: t, concrete: true}
}

// PlaceholderDate builds a DateValue preserving unresolvable text.
func PlaceholderDate(text string) DateValue {
	return DateValue{text: text}
}

// IsConcrete reports whether the value holds a resolved calendar date.
func (d DateValue) IsConcrete() bool { return d.concrete }

// Date returns the calendar date. Only meaningful when IsConcrete is true.
func (d DateValue) Date() time.Time { return d.date }

// Text returns the preserved placeholder text. Empty for concrete values.
func (d DateValue) Text() string { return d.text }

// Render produces the canonical textual form: day/month/4-digit-year for
// concrete dates, the preserved text verbatim otherwise. Rendered concrete
// dates re-parse to the same date (see Normalize).
func (d DateValue) Render() string {
	if d.concrete {
		return d.date.Format("02/01/2006")
	}
	return d.text
}

// Equal compares two DateValues. Concrete values compare by calendar day,
// placeholders by exact text.
func (d DateValue) Equal(o DateValue) bool {
	if d.concrete != o.concrete {
		return false
	}
	if d.concrete {
		y1, m1, d1 := d.date.Date()
		y2, m2, d2 := o.date.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	return d.text == o.text
}

func (d DateValue) String() string { return d.Render() }

// MarshalJSON renders the value as its canonical string form.
func (d DateValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Render())
}

// UnmarshalJSON re-normalizes a rendered string. The round-trip law for the
// canonical render format makes this lossless for concrete dates.
func (d *DateValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = Normalize(s, DefaultSentinels)
	return nil
}
