package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// Column headers as they appear in the published city files. The first
// column is an unnamed row index.
var (
	FullHeader       = []string{"", "Start Time", "End Time", "Trip Duration", "Start Station", "End Station", "User Type", "Gender", "Birth Year"}
	WashingtonHeader = []string{"", "Start Time", "End Time", "Trip Duration", "Start Station", "End Station", "User Type"}
)

// TimestampLayout is the start/end time layout used by the fixtures
const TimestampLayout = "2006-01-02 15:04:05"

// TripRow is one fixture record
type TripRow struct {
	Start        time.Time
	Duration     float64
	StartStation string
	EndStation   string
	UserType     string
	Gender       string
	BirthYear    string
}

// Record renders the row under header, leaving unknown columns blank
func (r TripRow) Record(index int, header []string) []string {
	out := make([]string, len(header))
	for i, col := range header {
		switch col {
		case "":
			out[i] = fmt.Sprint(index)
		case "Start Time":
			out[i] = r.Start.Format(TimestampLayout)
		case "End Time":
			out[i] = r.Start.Add(time.Duration(r.Duration * float64(time.Second))).Format(TimestampLayout)
		case "Trip Duration":
			out[i] = fmt.Sprint(r.Duration)
		case "Start Station":
			out[i] = r.StartStation
		case "End Station":
			out[i] = r.EndStation
		case "User Type":
			out[i] = r.UserType
		case "Gender":
			out[i] = r.Gender
		case "Birth Year":
			out[i] = r.BirthYear
		}
	}
	return out
}

// SampleTrips returns a small, varied dataset spanning January to June
// with every weekday represented.
func SampleTrips() []TripRow {
	base := time.Date(2017, time.January, 2, 8, 0, 0, 0, time.UTC) // Monday
	stations := []string{"Canal St & Adams St", "Clinton St & Madison St", "Streeter Dr & Grand Ave"}
	users := []string{"Subscriber", "Subscriber", "Customer"}
	genders := []string{"Male", "Female", ""}
	years := []string{"1985.0", "1992.0", "", "1985.0"}

	var rows []TripRow
	for i := 0; i < 42; i++ {
		rows = append(rows, TripRow{
			Start:        base.AddDate(0, 0, i*4).Add(time.Duration(i%5) * time.Hour),
			Duration:     float64(300 + i*17),
			StartStation: stations[i%len(stations)],
			EndStation:   stations[(i+1)%len(stations)],
			UserType:     users[i%len(users)],
			Gender:       genders[i%len(genders)],
			BirthYear:    years[i%len(years)],
		})
	}
	return rows
}

// WriteCSV writes header and records as a CSV file and returns its path
func WriteCSV(t *testing.T, dir, name string, header []string, records [][]string) string {
	t.Helper()

	var b strings.Builder
	writeLine := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			if strings.ContainsAny(f, ",\"\n") {
				f = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
			}
			b.WriteString(f)
		}
		b.WriteByte('\n')
	}
	writeLine(header)
	for _, rec := range records {
		writeLine(rec)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// WriteTripsCSV renders rows under header into dir/name
func WriteTripsCSV(t *testing.T, dir, name string, header []string, rows []TripRow) string {
	t.Helper()
	return WriteCSV(t, dir, name, header, tripRecords(header, rows))
}

// WriteTripsXLSX renders rows under header into the first sheet of dir/name.
// Every cell is written as text.
func WriteTripsXLSX(t *testing.T, dir, name string, header []string, rows []TripRow) string {
	t.Helper()
	records := tripRecords(header, rows)
	cells := make([][]interface{}, len(records))
	for i, rec := range records {
		cells[i] = make([]interface{}, len(rec))
		for j, v := range rec {
			cells[i][j] = v
		}
	}
	return writeWorkbook(t, filepath.Join(dir, name), header, cells)
}

// WriteTypedTripsXLSX is WriteTripsXLSX with native cell types, the way a
// spreadsheet application saves them: timestamps as date cells, durations and
// birth years as numbers.
func WriteTypedTripsXLSX(t *testing.T, dir, name string, header []string, rows []TripRow) string {
	t.Helper()
	cells := make([][]interface{}, len(rows))
	for i, r := range rows {
		cells[i] = r.Cells(i, header)
	}
	return writeWorkbook(t, filepath.Join(dir, name), header, cells)
}

// Cells is Record with typed values; blank birth years stay empty strings.
func (r TripRow) Cells(index int, header []string) []interface{} {
	rec := r.Record(index, header)
	out := make([]interface{}, len(header))
	for i, col := range header {
		switch col {
		case "":
			out[i] = index
		case "Start Time":
			out[i] = r.Start
		case "End Time":
			out[i] = r.Start.Add(time.Duration(r.Duration * float64(time.Second)))
		case "Trip Duration":
			out[i] = r.Duration
		case "Birth Year":
			if year, err := strconv.ParseFloat(r.BirthYear, 64); err == nil {
				out[i] = int(year)
			} else {
				out[i] = r.BirthYear
			}
		default:
			out[i] = rec[i]
		}
	}
	return out
}

func writeWorkbook(t *testing.T, path string, header []string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	head := make([]interface{}, len(header))
	for i, h := range header {
		head[i] = h
	}
	all := append([][]interface{}{head}, rows...)
	for i, cells := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook %s: %v", path, err)
	}
	return path
}

func tripRecords(header []string, rows []TripRow) [][]string {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = r.Record(i, header)
	}
	return records
}
