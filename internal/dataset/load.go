package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither spreadsheets nor
// delimited text.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// LoadOptions controls how files are read.
type LoadOptions struct {
	// Sheet selects an XLSX sheet by name; empty means the first sheet.
	Sheet string
	// Delimiter for CSV. If 0, sniffed from the extension and header line.
	Delimiter rune
}

// Load reads a tabular file into a Table. The first row is the header.
func Load(path string, opt LoadOptions) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return LoadXLSX(path, opt.Sheet)
	case ".csv", ".tsv", ".txt":
		return LoadCSV(path, opt.Delimiter)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// LoadXLSX reads one sheet of a workbook.
func LoadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook '%s' has no sheets", filepath.Base(path))
	}
	target := sheets[0]
	if sheet != "" {
		target = ""
		for _, s := range sheets {
			if s == sheet {
				target = s
				break
			}
		}
		if target == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				sheet, filepath.Base(path), strings.Join(sheets, ", "))
		}
	}
	rows, err := f.GetRows(target, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", target, err)
	}
	return fromRecords(filepath.Base(path), rows), nil
}

// LoadCSV reads a delimited text file.
func LoadCSV(path string, delim rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(filepath.Base(path), f, delim)
}

// ReadCSV parses delimited text from r. A zero delimiter is sniffed from the
// header line.
func ReadCSV(name string, r io.Reader, delim rune) (*Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	text := strings.TrimPrefix(string(b), "\ufeff")
	if delim == 0 {
		delim = sniffDelimiter(name, text)
	}
	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.Comma = delim
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return fromRecords(name, records), nil
}

func sniffDelimiter(name, text string) rune {
	if strings.HasSuffix(strings.ToLower(name), ".tsv") {
		return '\t'
	}
	header := text
	if i := strings.IndexByte(header, '\n'); i >= 0 {
		header = header[:i]
	}
	best, bestN := ',', strings.Count(header, ",")
	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(header, string(d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}

func fromRecords(name string, records [][]string) *Table {
	if len(records) == 0 {
		return New(name, nil)
	}
	t := New(name, records[0])
	for _, rec := range records[1:] {
		row := make([]Value, len(t.columns))
		for j := range row {
			if j < len(rec) {
				row[j] = ParseValue(rec[j])
			}
		}
		t.rows = append(t.rows, row)
	}
	return t
}
