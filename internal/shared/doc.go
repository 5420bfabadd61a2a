// Package shared holds code reused across the bikeshare packages that belongs
// to no single layer.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//   - trip fixtures (headers, a deterministic sample of 42 trips) and writers
//     that put them on disk as CSV or XLSX sources
//   - BufferedSlogHandler, a slog handler that keeps records in memory so
//     tests can assert on log output
//
// Example usage:
//
//	func TestLoad(t *testing.T) {
//	    dir := t.TempDir()
//	    testutil.WriteTripsCSV(t, dir, "chicago.csv", testutil.FullHeader, testutil.SampleTrips())
//	    logger, logs := testutil.NewTestLogger(t)
//	    ...
//	    testutil.AssertLogContains(t, logs, slog.LevelInfo, "Dataset loaded")
//	}
package shared
