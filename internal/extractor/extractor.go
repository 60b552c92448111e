package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/ministry-roster/internal/models"
	"github.com/insightdelivered/ministry-roster/internal/parser"
)

// ErrUnsupportedFormat is returned for files that are not CSV, XLSX or JSON.
var ErrUnsupportedFormat = errors.New("unsupported roster format")

// Format is the encoding of an imported roster.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// DetectFormat picks the format from a file name's extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q (expected .csv, .xlsx or .json)", ErrUnsupportedFormat, filepath.Ext(name))
}

// ExtractFile reads a roster export from disk.
func ExtractFile(path string) (parser.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return parser.Result{}, fmt.Errorf("failed to read roster file %q: %w", path, err)
	}
	return Extract(filepath.Base(path), data)
}

// Extract turns uploaded roster content into normalized records. name is
// only used to pick the format.
//
// CSV text and the first sheet of a workbook go through the header
// normalizer. JSON must be an array of already-canonical records, as
// written by the export; their dates are re-formatted and dateless entries
// dropped so the result obeys the same invariants.
func Extract(name string, data []byte) (parser.Result, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return parser.Result{}, err
	}

	switch format {
	case FormatCSV:
		return parser.ParseRecords(string(data)), nil
	case FormatXLSX:
		table, err := readWorkbook(data)
		if err != nil {
			return parser.Result{}, err
		}
		return parser.NewNormalizer(nil).NormalizeTable(table), nil
	default:
		return decodeRecords(data)
	}
}

// readWorkbook loads the first sheet of an XLSX workbook as a table.
// Cells are read as displayed, except date-column cells holding a serial
// date, which are converted from the raw serial so that short display
// formats such as "mm-dd-yy" do not lose the century.
func readWorkbook(data []byte) (parser.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return parser.Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return parser.Table{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return parser.Table{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	raw, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return parser.Table{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	var (
		t        parser.Table
		dateCols []int
	)
	for i, row := range rows {
		if blank(row) {
			continue
		}
		if t.Header == nil {
			t.Header = row
			dateCols = dateColumns(row)
			continue
		}
		if i < len(raw) {
			for _, col := range dateCols {
				serialDate(row, raw[i], col, date1904)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// dateColumns returns the indexes of header cells naming the service date.
func dateColumns(header []string) []int {
	var names []string
	for _, alias := range parser.DefaultAliases {
		if alias.Field == models.FieldDate {
			names = alias.Headers
			break
		}
	}

	var cols []int
	for i, h := range header {
		h = parser.CleanCell(h)
		for _, name := range names {
			if h == name {
				cols = append(cols, i)
				break
			}
		}
	}
	return cols
}

// serialDate replaces row[col] with the canonical date when the raw cell
// is a serial number shown through a number format. Plain numbers and
// text are left alone.
func serialDate(row, raw []string, col int, date1904 bool) {
	if col >= len(row) || col >= len(raw) || row[col] == raw[col] {
		return
	}
	serial, err := strconv.ParseFloat(raw[col], 64)
	if err != nil || serial <= 0 {
		return
	}
	tm, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return
	}
	row[col] = tm.Format("2006-01-02")
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// decodeRecords reads a JSON array of ServiceRecords.
func decodeRecords(data []byte) (parser.Result, error) {
	var records []models.ServiceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return parser.Result{}, fmt.Errorf("failed to decode roster JSON: %w", err)
	}
	return Canonicalize(records), nil
}

// Canonicalize re-applies date formatting to stored records and drops the
// ones without a date.
func Canonicalize(records []models.ServiceRecord) parser.Result {
	res := parser.Result{Records: make([]models.ServiceRecord, 0, len(records))}
	for _, r := range records {
		r.Date = parser.FormatDate(parser.CleanCell(r.Date))
		if r.Date == "" {
			res.Discarded++
			continue
		}
		if !models.IsCanonicalDate(r.Date) {
			res.Unparsed = append(res.Unparsed, r.Date)
		}
		res.Records = append(res.Records, r)
	}
	return res
}
