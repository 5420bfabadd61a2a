package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"bikeshare/internal/files"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// readSource returns the header row followed by every data row of the source.
func readSource(src files.FileInfo) ([][]string, error) {
	switch src.Ext() {
	case ".csv":
		return readCSV(src.Path)
	case ".xlsx":
		return readWorkbook(src.Path)
	default:
		return nil, fmt.Errorf("unsupported source format %q", src.Ext())
	}
}

// readCSV loads the file as an all-string frame so no value is coerced
// before the parser sees it. A header-only file yields just the header.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) <= 1 {
		// gota refuses frames without rows
		return records, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", df.Err)
	}
	return df.Records(), nil
}

// readWorkbook reads the first sheet of an XLSX workbook. Cells are read
// unformatted; date cells in the timestamp columns are converted from Excel
// serials to the first of TimestampLayouts.
func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook properties: %w", err)
	}
	date1904 := props.Date1904 != nil && *props.Date1904

	var timeCols []int
	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if strings.EqualFold(name, ColStartTime) || strings.EqualFold(name, ColEndTime) {
			timeCols = append(timeCols, i)
		}
	}

	// GetRows trims trailing empty cells; pad every row to the header width.
	width := len(rows[0])
	for i, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
			rows[i] = row
		}
		if i == 0 {
			continue
		}
		for _, col := range timeCols {
			row[col] = excelTimestamp(row[col], date1904)
		}
	}
	return rows, nil
}

// excelTimestamp renders a numeric date serial as a timestamp. Text cells are
// returned unchanged for the parser to handle.
func excelTimestamp(raw string, date1904 bool) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return raw
	}
	return t.Format(TimestampLayouts[0])
}
