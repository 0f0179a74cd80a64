package engine

// header.go locates the logical columns in an arbitrary file prefix.
//
// Studio task files are exported from spreadsheets that accumulate titles,
// legends, and empty rows above the real header, and the header cells for
// different fields are not even guaranteed to share a row. The locator
// therefore matches each field independently across the scan window and
// starts data extraction below the last header it used.

import "strings"

// MaxScanLines is how many non-blank lines are searched for header cells
// before the import gives up.
const MaxScanLines = 20

// LocateColumns scans the first MaxScanLines non-blank lines for the header
// cells of each logical field and returns the resolved ColumnMap.
//
// Each field's column is fixed to its first match anywhere in the window;
// a field, once located, is never overwritten by a later row. DataStart is
// one past the last line that contributed a header. The termini column is
// optional unless the profile marks it required; Content and DueDate always
// are. When any required field stays unresolved the scan fails with a
// *MissingFieldsError naming the field(s) and every spelling searched.
func LocateColumns(lines []string, p Profile) (ColumnMap, error) {
	terminiSet := p.Termini.matchSet()
	contentSet := p.Content.matchSet()
	dueDateSet := p.DueDate.matchSet()

	cm := ColumnMap{Termini: -1, Content: -1, DueDate: -1}
	terminiRow, contentRow, dueDateRow := -1, -1, -1

	scanned := 0
	for i, line := range lines {
		if scanned >= MaxScanLines {
			break
		}
		cells := splitCells(line)
		if isBlankRow(cells) {
			continue
		}
		scanned++

		for col, cell := range cells {
			key := strings.ToUpper(strings.TrimSpace(cell))
			if cm.Termini < 0 {
				if _, ok := terminiSet[key]; ok {
					cm.Termini, terminiRow = col, i
				}
			}
			if cm.Content < 0 {
				if _, ok := contentSet[key]; ok {
					cm.Content, contentRow = col, i
				}
			}
			if cm.DueDate < 0 {
				if _, ok := dueDateSet[key]; ok {
					cm.DueDate, dueDateRow = col, i
				}
			}
		}

		// Stop only once every field is placed. The optional termini
		// column may still turn up on a line below the mandatory two,
		// so a partial match keeps the scan going to the window's end.
		if cm.Termini >= 0 && cm.Content >= 0 && cm.DueDate >= 0 {
			break
		}
	}

	var missing []MissingField
	if cm.Termini < 0 && p.Termini.Required {
		missing = append(missing, MissingField{Field: FieldTermini, Searched: p.Termini.names()})
	}
	if cm.Content < 0 {
		missing = append(missing, MissingField{Field: FieldContent, Searched: p.Content.names()})
	}
	if cm.DueDate < 0 {
		missing = append(missing, MissingField{Field: FieldDueDate, Searched: p.DueDate.names()})
	}
	if len(missing) > 0 {
		return ColumnMap{}, &MissingFieldsError{Missing: missing}
	}

	last := contentRow
	if dueDateRow > last {
		last = dueDateRow
	}
	if terminiRow > last {
		last = terminiRow
	}
	cm.DataStart = last + 1

	return cm, nil
}
