// Package dataprocessing loads a city's trip records into a domain.Table.
//
// A Loader resolves the city through the configured catalogue, reads the
// source (CSV through gota, XLSX through excelize), parses and derives the
// calendar fields of every row, back-fills missing demographics and applies
// the month and day filters of the selection:
//
//	loader := dataprocessing.NewLoader(catalog, "/srv/bikeshare", logger)
//	table, err := loader.Load(ctx, domain.Selection{City: "chicago", Month: "mar", Day: "all"})
//
// # Errors
//
// Failures are *errors.AppError values:
//
//   - VALIDATION for an unknown city or filter code
//   - NOT_FOUND when the source is missing or unreadable
//   - PARSING for a missing required column or a malformed value, with
//     "row" and "column" in the error context
package dataprocessing
