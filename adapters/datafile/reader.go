package datafile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"churnprep/domain/core"
	"churnprep/domain/table"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Sheet1"

// Reader loads a flat tabular file into a table. The format is picked from
// the extension: .xlsx goes through excelize, everything else is treated as
// comma-delimited text with a header row.
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader for the given path
func NewReader(filePath string) *Reader {
	fileType := "csv"
	if strings.ToLower(filepath.Ext(filePath)) == ".xlsx" {
		fileType = "xlsx"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read loads the file. Missing files, empty files, and ragged rows are all
// load failures.
func (r *Reader) Read() (*table.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, core.NewLoadError(r.filePath, fmt.Errorf("file not found"))
	}

	switch r.fileType {
	case "xlsx":
		return r.readXLSX()
	default:
		return r.readCSV()
	}
}

func (r *Reader) readCSV() (*table.Table, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, core.NewLoadError(r.filePath, err)
	}
	defer f.Close()

	// FieldsPerRecord defaults to the header width, so ragged rows fail here
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, core.NewLoadError(r.filePath, err)
	}
	return r.buildTable(records)
}

func (r *Reader) readXLSX() (*table.Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, core.NewLoadError(r.filePath, err)
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		return nil, core.NewLoadError(r.filePath, err)
	}

	// excelize drops trailing empty cells; pad back to header width
	if len(rows) > 0 {
		width := len(rows[0])
		for i, row := range rows {
			for len(row) < width {
				row = append(row, "")
			}
			rows[i] = row
		}
	}
	return r.buildTable(rows)
}

func (r *Reader) buildTable(records [][]string) (*table.Table, error) {
	if len(records) < 2 {
		return nil, core.NewLoadError(r.filePath, fmt.Errorf("file must have a header row and at least one data row"))
	}

	tbl := table.New(records[0])
	for i, row := range records[1:] {
		if err := tbl.Append(row); err != nil {
			return nil, core.NewLoadError(r.filePath, fmt.Errorf("row %d: %v", i+1, err))
		}
	}
	return tbl, nil
}
