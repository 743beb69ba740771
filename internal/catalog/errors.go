// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package catalog

import "fmt"

// DataFormatError reports a malformed record in one of the input files.
// Load fails with this error rather than silently corrupting aggregates;
// no partial catalog is ever exposed.
type DataFormatError struct {
	// Path is the input file containing the bad record.
	Path string

	// Line is the 1-based line number of the record.
	Line int

	// Record is the offending raw line, truncated for logging.
	Record string

	// Reason describes why the record was rejected.
	Reason string
}

// Error implements the error interface.
func (e *DataFormatError) Error() string {
	return fmt.Sprintf("%s:%d: %s (record: %q)", e.Path, e.Line, e.Reason, e.Record)
}

// formatError builds a DataFormatError, truncating long records so log
// lines stay readable.
func formatError(path string, line int, record, reason string) *DataFormatError {
	const maxRecord = 120
	if len(record) > maxRecord {
		record = record[:maxRecord] + "..."
	}
	return &DataFormatError{Path: path, Line: line, Record: record, Reason: reason}
}
