package datafile

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"churnprep/domain/core"
	"churnprep/domain/table"

	"github.com/xuri/excelize/v2"
)

// Writer persists a table to a flat file, format picked from the
// extension. Output goes to a temp file in the destination directory and
// is renamed into place, so readers never observe a partial file.
type Writer struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewWriter creates a writer for the given path
func NewWriter(filePath string) *Writer {
	fileType := "csv"
	if strings.ToLower(filepath.Ext(filePath)) == ".xlsx" {
		fileType = "xlsx"
	}
	return &Writer{filePath: filePath, fileType: fileType}
}

// Write persists the table, creating the output directory if needed and
// overwriting any previous file.
func (w *Writer) Write(tbl *table.Table) error {
	dir := filepath.Dir(w.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return core.NewPersistenceError(w.filePath, err)
	}

	// The extension matters to excelize, so the temp file keeps it
	tmp, err := os.CreateTemp(dir, ".datafile-*"+filepath.Ext(w.filePath))
	if err != nil {
		return core.NewPersistenceError(w.filePath, err)
	}
	tmpName := tmp.Name()

	switch w.fileType {
	case "xlsx":
		tmp.Close()
		err = w.writeXLSX(tmpName, tbl)
	default:
		err = w.writeCSV(tmp, tbl)
	}
	if err != nil {
		os.Remove(tmpName)
		return core.NewPersistenceError(w.filePath, err)
	}

	if err := os.Rename(tmpName, w.filePath); err != nil {
		os.Remove(tmpName)
		return core.NewPersistenceError(w.filePath, err)
	}
	return nil
}

func (w *Writer) writeCSV(f *os.File, tbl *table.Table) error {
	cw := csv.NewWriter(f)
	if err := cw.Write(tbl.Headers); err != nil {
		f.Close()
		return err
	}
	for _, row := range tbl.Rows {
		if err := cw.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (w *Writer) writeXLSX(path string, tbl *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	writeRow := func(rowNum int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(xlsxSheet, cell, &row)
	}

	if err := writeRow(1, tbl.Headers); err != nil {
		return err
	}
	for i, row := range tbl.Rows {
		if err := writeRow(i+2, row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
