package exporter

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
	"gopkg.in/guregu/null.v3"

	"tocetl/internal/dataprocessing"
	"tocetl/internal/errors"
)

// redFontColor is the font color applied to out-of-bounds cells.
const redFontColor = "FF0000"

// xlwingsConfSheet is a leftover configuration sheet some instrument
// workbooks carry; it is removed on export.
const xlwingsConfSheet = "_xlwings.conf"

// SheetWriter writes an assembled report back into a workbook: the
// three report sheets are recreated, filled, and flagged cells get a
// red font. The writer owns the header-row offset; report flags carry
// zero-based data-row indices.
type SheetWriter struct {
	logger *slog.Logger
}

// NewSheetWriter creates a workbook report writer. A nil logger falls
// back to slog.Default().
func NewSheetWriter(logger *slog.Logger) *SheetWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SheetWriter{logger: logger}
}

// WriteReport writes every report table into the workbook and applies
// the out-of-bounds styling. The caller saves the file.
func (w *SheetWriter) WriteReport(f *excelize.File, report *dataprocessing.Report) error {
	if err := w.writeTable(f, dataprocessing.SheetQC, dataprocessing.QCColumns, qcCells(report.QC)); err != nil {
		return err
	}
	if err := w.writeTable(f, dataprocessing.SheetSamples, dataprocessing.SampleColumns, sampleCells(report.Samples)); err != nil {
		return err
	}
	if err := w.writeTable(f, dataprocessing.SheetReportedResults, dataprocessing.ReportedColumns, reportedCells(report.ReportedResults)); err != nil {
		return err
	}

	if err := w.applyFlags(f, report.Flags); err != nil {
		return err
	}

	// Drop the stale addin config sheet when present.
	if idx, _ := f.GetSheetIndex(xlwingsConfSheet); idx >= 0 {
		if err := f.DeleteSheet(xlwingsConfSheet); err != nil {
			w.logger.Warn("could not remove leftover config sheet",
				slog.String("sheet", xlwingsConfSheet),
				slog.String("error", err.Error()))
		}
	}

	w.logger.Info("report written to workbook",
		slog.Int("qc_rows", len(report.QC)),
		slog.Int("sample_rows", len(report.Samples)),
		slog.Int("reported_rows", len(report.ReportedResults)),
		slog.Int("flagged_cells", len(report.Flags)))

	return nil
}

// writeTable recreates one report sheet and fills it with a header row
// plus the record cells.
func (w *SheetWriter) writeTable(f *excelize.File, sheet string, columns []string, records [][]interface{}) error {
	if idx, _ := f.GetSheetIndex(sheet); idx >= 0 {
		if err := f.DeleteSheet(sheet); err != nil {
			return errors.NewStorageError("failed to reset sheet "+sheet, err)
		}
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.NewStorageError("failed to create sheet "+sheet, err)
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.NewStorageError("failed to write header for sheet "+sheet, err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.NewStorageError("failed to address row in sheet "+sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write row %d of sheet %s", i+2, sheet), err)
		}
	}

	return nil
}

// applyFlags renders each flagged cell in red. Flag rows are
// zero-based data indices, so spreadsheet row = index + 2.
func (w *SheetWriter) applyFlags(f *excelize.File, flags []dataprocessing.CellFlag) error {
	if len(flags) == 0 {
		return nil
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: redFontColor},
	})
	if err != nil {
		return errors.NewStorageError("failed to create flag style", err)
	}

	for _, flag := range flags {
		col := columnIndex(flag.Sheet, flag.Column)
		if col == -1 {
			w.logger.Warn("flag references unknown column",
				slog.String("sheet", flag.Sheet),
				slog.String("column", flag.Column))
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, flag.Row+2)
		if err != nil {
			return errors.NewStorageError("failed to address flagged cell", err)
		}
		if err := f.SetCellStyle(flag.Sheet, cell, cell, style); err != nil {
			return errors.NewStorageError("failed to style flagged cell "+cell, err)
		}
	}

	return nil
}

// columnIndex resolves a column name to its position in the sheet's
// schema, or -1.
func columnIndex(sheet, column string) int {
	var columns []string
	switch sheet {
	case dataprocessing.SheetQC:
		columns = dataprocessing.QCColumns
	case dataprocessing.SheetSamples:
		columns = dataprocessing.SampleColumns
	case dataprocessing.SheetReportedResults:
		columns = dataprocessing.ReportedColumns
	}
	for i, c := range columns {
		if c == column {
			return i
		}
	}
	return -1
}

// qcCells converts QC records to writable cell rows; null fields
// become empty cells.
func qcCells(records []dataprocessing.QCRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			stringCell(r.SampleID),
			floatCell(r.PPM),
			floatCell(r.MeanPPM),
			floatCell(r.PercentR),
			floatCell(r.RPD),
			stringCell(r.Bounds),
		})
	}
	return rows
}

func sampleCells(records []dataprocessing.SampleRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			stringCell(r.SampleID),
			floatCell(r.PPM),
			floatCell(r.MeanPPM),
			floatCell(r.RPD),
			floatCell(r.UmolPerL),
			stringCell(r.Bounds),
		})
	}
	return rows
}

func reportedCells(records []dataprocessing.ReportedRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.SampleID,
			floatCell(r.UmolPerL),
		})
	}
	return rows
}

func floatCell(v null.Float) interface{} {
	if !v.Valid {
		return nil
	}
	return v.Float64
}

func stringCell(v null.String) interface{} {
	if !v.Valid {
		return nil
	}
	return v.String
}
