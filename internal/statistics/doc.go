// Package statistics computes descriptive statistics over a loaded trip table.
//
// The Engine exposes four aggregate groups (TimeStats, StationStats,
// DurationStats, UserStats), each timed and traced on its own. They never
// mutate the table. An empty table makes every group fail with an EMPTY
// AppError.
//
// A Paginator walks the raw records in table order, calling a checkpoint
// function before every page.
//
// Modes break ties towards the smallest value: numeric order for months,
// weekdays, hours and birth years, lexical order for text.
package statistics
