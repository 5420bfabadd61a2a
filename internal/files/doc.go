// Package files locates trip source files in the data directory.
//
// Discovery resolves a configured source name to a file, trying the
// supported extensions in order when the name has none:
//
//	discovery := files.NewDiscovery("/srv/bikeshare")
//	src, err := discovery.Resolve("chicago") // chicago.csv, then chicago.xlsx
//
// FindSources lists every CSV and XLSX file in a directory.
package files
