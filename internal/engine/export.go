package engine

// export.go renders typed records back into delimited text.
//
// The output is the exact inverse of the import pipeline for values the
// engine produced itself: the header uses the canonical spellings the
// locator recognizes, concrete dates render in the highest-priority parse
// format, and placeholders come back verbatim. Serializing and re-importing
// a normalized record reproduces it.

import "strings"

// Serialize renders records as delimited text: one canonical header line,
// then one row per record in order. It is deterministic and total.
func Serialize(records []ExportRecord, p Profile) string {
	var b strings.Builder

	b.WriteString(escapeCell(p.Termini.Name))
	b.WriteString(delimiter)
	b.WriteString(escapeCell(p.Content.Name))
	b.WriteString(delimiter)
	b.WriteString(escapeCell(p.DueDate.Name))
	b.WriteString("\n")

	for _, r := range records {
		b.WriteString(escapeCell(r.Termini))
		b.WriteString(delimiter)
		b.WriteString(escapeCell(r.Content))
		b.WriteString(delimiter)
		b.WriteString(escapeCell(r.DueDate.Render()))
		b.WriteString("\n")
	}

	return b.String()
}

// escapeCell quotes a cell when it contains the delimiter, a quote, or a
// line break, doubling any embedded quotes. Anything else passes through
// untouched, which is what keeps placeholder text like "#VALUE!" stable
// across a round trip.
func escapeCell(s string) string {
	if !strings.ContainsAny(s, delimiter+"\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
