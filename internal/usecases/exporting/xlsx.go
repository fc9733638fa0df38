package exporting

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// toXLSX grava uma aba por seção, com o cabeçalho na primeira linha
func toXLSX(sections []section) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, sec := range sections {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sec.Sheet); err != nil {
				return nil, fmt.Errorf("rename sheet %q: %w", sec.Sheet, err)
			}
		} else if _, err := f.NewSheet(sec.Sheet); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sec.Sheet, err)
		}

		if err := writeRow(f, sec.Sheet, 1, sec.Header); err != nil {
			return nil, err
		}

		lastHeader, err := excelize.CoordinatesToCellName(len(sec.Header), 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sec.Sheet, "A1", lastHeader, headerStyle); err != nil {
			return nil, fmt.Errorf("style header %q: %w", sec.Sheet, err)
		}

		for r, row := range sec.Rows {
			if err := writeRow(f, sec.Sheet, r+2, row); err != nil {
				return nil, err
			}
		}
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// writeRow grava números como células numéricas para que a planilha permita somas
func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, value := range values {
		if number, err := strconv.ParseFloat(value, 64); err == nil {
			cells[i] = number
			continue
		}
		cells[i] = value
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d on %q: %w", row, sheet, err)
	}

	return nil
}
