package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxSheetName is the Excel limit on sheet name length.
const maxSheetName = 31

// Writer builds a workbook sheet by sheet, row by row.
type Writer interface {
	AddSheet(name string) error
	WriteHeader(columns []string) error
	WriteRow(row []interface{}) error
	// SkipRow leaves an empty row between sections of a sheet.
	SkipRow()
	Bytes() ([]byte, error)
	Close() error
}

type XLSXWriter struct {
	file         *excelize.File
	currentSheet string
	currentRow   int
	headerStyle  int
}

func NewXLSXWriter() Writer {
	return &XLSXWriter{
		file:        excelize.NewFile(),
		headerStyle: -1,
	}
}

func (w *XLSXWriter) AddSheet(name string) error {
	if len([]rune(name)) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}

	if w.currentSheet == "" {
		if err := w.file.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("rename sheet %s: %w", name, err)
		}
	} else {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	w.currentSheet = name
	w.currentRow = 1
	return nil
}

func (w *XLSXWriter) WriteHeader(columns []string) error {
	row := make([]interface{}, len(columns))
	for i, col := range columns {
		row[i] = col
	}
	if err := w.writeCells(row); err != nil {
		return err
	}

	if w.headerStyle < 0 {
		style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("create header style: %w", err)
		}
		w.headerStyle = style
	}
	startCell, _ := excelize.CoordinatesToCellName(1, w.currentRow)
	endCell, _ := excelize.CoordinatesToCellName(len(columns), w.currentRow)
	if err := w.file.SetCellStyle(w.currentSheet, startCell, endCell, w.headerStyle); err != nil {
		return err
	}

	w.currentRow++
	return nil
}

func (w *XLSXWriter) WriteRow(row []interface{}) error {
	if err := w.writeCells(row); err != nil {
		return err
	}
	w.currentRow++
	return nil
}

func (w *XLSXWriter) SkipRow() {
	w.currentRow++
}

func (w *XLSXWriter) writeCells(row []interface{}) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, val := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, val); err != nil {
			return err
		}
	}
	return nil
}

func (w *XLSXWriter) Bytes() ([]byte, error) {
	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *XLSXWriter) Close() error {
	return w.file.Close()
}
