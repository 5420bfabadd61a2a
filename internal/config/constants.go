package config

// Application constants
const (
	// Application Info
	AppName = "bikeshare"

	// Defaults applied by Default()
	DefaultDataDir   = "data"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "json"
	DefaultPageSize  = 5

	// Source extensions tried when a catalogue entry has none
	CSVExtension   = ".csv"
	ExcelExtension = ".xlsx"
)
