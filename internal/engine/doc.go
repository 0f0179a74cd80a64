// Package engine turns loosely structured delimited task files into typed
// records and back again.
//
// This package is the heart of the importer, containing all parsing and
// normalization logic independent of any transport or storage layer. It can
// be used by web handlers, CLI tools, or tests without modification.
//
// # Pipeline
//
// Importing a file runs three stages over the raw text:
//
//  1. LocateColumns scans the first [MaxScanLines] non-blank lines for the
//     header cells of each logical field, tolerating unrelated leading rows
//     and headers split across adjacent lines.
//  2. ExtractRecords walks the remaining lines and builds candidate records,
//     skipping rows that fail the minimal validity checks (empty content,
//     too few columns). Skips are diagnostics, never errors.
//  3. Normalize resolves each due-date cell into a [DateValue]: either a
//     concrete calendar date or the original text preserved as a placeholder.
//
// Serialize is the inverse of the whole pipeline: it renders records back
// into delimited text such that re-importing reproduces the same values.
//
// # Profiles
//
// Header spellings, sentinel strings, and fallback text differ per deployment
// (the studio front-end uses Catalan headers). A [Profile] bundles that
// configuration and is registered once at init time via [Register], mirroring
// how each supported file layout gets its own entry in the registry.
//
// # Error handling
//
// Only header location can fail, and it fails with a [*MissingFieldsError]
// naming the unresolved fields and the variants searched. Everything past the
// header is best-effort: bad rows become [SkippedRow] diagnostics and bad
// date cells become placeholders. The engine holds no state between calls.
package engine
