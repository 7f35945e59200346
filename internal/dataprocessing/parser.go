package dataprocessing

import (
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"tocetl/internal/errors"
)

// wantedColumns are the sheet columns the pipeline extracts, matched
// case-insensitively against trimmed header text.
var wantedColumns = []string{
	ColSampleID,
	ColSampleType,
	ColMeanPerAnalysis,
	ColPPM,
	ColAdjustedAbs,
}

// ParseWorkbook opens an instrument export workbook and extracts the
// raw rows from the named sheet. An empty sheet name selects the
// active sheet.
func ParseWorkbook(path, sheet string) ([]RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open workbook", err)
	}
	defer f.Close()

	return ParseSheet(f, sheet)
}

// ParseSheet extracts the raw instrument rows from one sheet of an
// already opened workbook. The header row is located by scanning for
// the "Sample ID" column; the remaining columns are mapped by header
// text, and columns missing from the sheet yield empty cells so the
// cleaner can carry them as nulls. A sheet with no recognizable
// header row is a contract violation and returns a single error.
func ParseSheet(f *excelize.File, sheet string) ([]RawRow, error) {
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.NewParsingError("failed to read sheet "+sheet, err)
	}

	headerRow, columnMap := findHeader(rows)
	if headerRow == -1 {
		return nil, errors.NewParsingError("could not find header row in sheet "+sheet, nil)
	}

	slog.Debug("mapped instrument columns",
		slog.String("sheet", sheet),
		slog.Int("header_row", headerRow),
		slog.Int("mapped_columns", len(columnMap)))

	raw := make([]RawRow, 0, len(rows)-headerRow-1)
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]

		// Skip rows with no content in any mapped column.
		empty := true
		for _, idx := range columnMap {
			if idx < len(row) && strings.TrimSpace(row[idx]) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		raw = append(raw, RawRow{
			SampleID:        cellAt(row, columnMap, ColSampleID),
			SampleType:      cellAt(row, columnMap, ColSampleType),
			MeanPerAnalysis: cellAt(row, columnMap, ColMeanPerAnalysis),
			PPM:             cellAt(row, columnMap, ColPPM),
			AdjustedAbs:     cellAt(row, columnMap, ColAdjustedAbs),
		})
	}

	slog.Info("extracted instrument rows",
		slog.String("sheet", sheet),
		slog.Int("row_count", len(raw)))

	return raw, nil
}

// findHeader scans for the row carrying the instrument column headers
// and maps each wanted column to its position. The row holding
// "Sample ID" is the header row.
func findHeader(rows [][]string) (int, map[string]int) {
	for i, row := range rows {
		columnMap := make(map[string]int)
		for j, header := range row {
			h := strings.TrimSpace(header)
			for _, wanted := range wantedColumns {
				if strings.EqualFold(h, wanted) {
					columnMap[wanted] = j
					break
				}
			}
		}
		if _, ok := columnMap[ColSampleID]; ok {
			return i, columnMap
		}
	}
	return -1, nil
}

// cellAt returns the trimmed cell text for a mapped column, or "" when
// the column is unmapped or the row is short.
func cellAt(row []string, columnMap map[string]int, column string) string {
	idx, ok := columnMap[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
