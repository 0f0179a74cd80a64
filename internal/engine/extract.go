package engine

// extract.go walks the data region of an import and builds candidate
// records. Row-level problems are diagnostics, not errors: a malformed row
// is dropped with a reason while the rest of the file still imports. The
// governing trade-off is maximal recovery of usable content over strict
// validation.

import (
	"errors"
	"fmt"
)

// ErrNoDataRows is returned when the header was located but no data row
// follows it, whether the file ends there or trails off in blank rows.
// Like a missing header, this is terminal for the whole import.
var ErrNoDataRows = errors.New("no data rows after header")

// Import runs the full pipeline over raw file text: locate the header,
// then extract candidate records. The only failure modes are structural
// (header not found, no data after it); every row-level problem lands in
// ExtractResult.Skipped instead.
func Import(text string, p Profile) (*ExtractResult, error) {
	lines := SplitLines(text)

	cm, err := LocateColumns(lines, p)
	if err != nil {
		return nil, err
	}

	result := ExtractRecords(lines, cm, p)
	if result.TotalRows == 0 {
		return nil, ErrNoDataRows
	}
	return result, nil
}

// ExtractRecords builds candidate records from every line at or below
// cm.DataStart. Blank rows are passed over silently; rows with too few
// columns or an empty content cell are dropped with a diagnostic. Due-date
// cells are normalized and never cause a skip.
func ExtractRecords(lines []string, cm ColumnMap, p Profile) *ExtractResult {
	// Content and due date are the columns a row cannot do without.
	minWidth := cm.Content
	if cm.DueDate > minWidth {
		minWidth = cm.DueDate
	}
	minWidth++

	result := &ExtractResult{}

	for i := cm.DataStart; i < len(lines); i++ {
		cells := splitCells(lines[i])
		if isBlankRow(cells) {
			continue
		}
		result.TotalRows++
		lineNum := i + 1

		if len(cells) < minWidth {
			result.Skipped = append(result.Skipped, SkippedRow{
				Line:   lineNum,
				Reason: fmt.Sprintf("expected at least %d columns, got %d", minWidth, len(cells)),
				Cells:  cells,
			})
			continue
		}

		content := trimCell(cells[cm.Content])
		if content == "" {
			result.Skipped = append(result.Skipped, SkippedRow{
				Line:   lineNum,
				Reason: "empty content",
				Cells:  cells,
			})
			continue
		}

		termini := ""
		if cm.Termini >= 0 && cm.Termini < len(cells) {
			termini = trimCell(cells[cm.Termini])
		}

		dueText := trimCell(cells[cm.DueDate])

		result.Candidates = append(result.Candidates, CandidateRecord{
			Line:    lineNum,
			Termini: termini,
			Content: content,
			DueDate: Normalize(dueText, p.Sentinels),
		})
	}

	return result
}
