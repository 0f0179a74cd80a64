package engine

import "strings"

// delimiter is the field separator for both import and export.
const delimiter = ","

// SplitLines breaks raw file text into lines, tolerating CRLF endings and a
// leading UTF-8 BOM (both routine in spreadsheet exports from Windows).
func SplitLines(text string) []string {
	text = strings.TrimPrefix(text, "\ufeff")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// splitCells performs the naive delimiter split. Delimiters inside quoted
// text are not honored on import: a cell the serializer quoted because it
// contains a comma comes back split. Values without embedded delimiters
// round-trip exactly; that is the contract this engine commits to.
func splitCells(line string) []string {
	return strings.Split(line, delimiter)
}

// trimCell strips whitespace and common spreadsheet artifacts from a cell:
// the Excel formula prefix (="value") and surrounding quotes on a cell that
// carries no embedded delimiter. Stripping outer quotes also collapses the
// doubled quotes the serializer writes, so quoted comma-free cells re-import
// to their original text.
func trimCell(s string) string {
	s = strings.TrimSpace(s)
	quoted := false
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) > 3 {
		s = s[2 : len(s)-1]
		quoted = true
	} else if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
		quoted = true
	}
	if quoted {
		s = strings.ReplaceAll(s, `""`, `"`)
	}
	return strings.TrimSpace(s)
}

// isBlankRow reports whether every cell of the row trims to empty. Blank
// rows neither consume the header scan window nor count as data.
func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
