package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/guregu/null.v3"

	"tocetl/internal/dataprocessing"
)

// CSVWriter exports report tables as CSV files, one file per table.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(path string, options WriteOptions) error {
	w.logger.Info("writing CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8.
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// WriteReport writes each report table to <dir>/<sheet name>.csv.
func (w *CSVWriter) WriteReport(dir string, report *dataprocessing.Report) error {
	tables := []struct {
		name    string
		headers []string
		records [][]string
	}{
		{dataprocessing.SheetQC, dataprocessing.QCColumns, QCRows(report.QC)},
		{dataprocessing.SheetSamples, dataprocessing.SampleColumns, SampleRows(report.Samples)},
		{dataprocessing.SheetReportedResults, dataprocessing.ReportedColumns, ReportedRows(report.ReportedResults)},
	}

	for _, table := range tables {
		path := filepath.Join(dir, table.name+".csv")
		err := w.WriteCSV(path, WriteOptions{
			Headers:   table.headers,
			Records:   table.records,
			BOMPrefix: true,
		})
		if err != nil {
			return fmt.Errorf("failed to export table %s: %w", table.name, err)
		}
	}
	return nil
}

// QCRows formats QC records as CSV fields; null cells become empty
// strings.
func QCRows(records []dataprocessing.QCRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.SampleID.ValueOrZero(),
			formatFloat(r.PPM),
			formatFloat(r.MeanPPM),
			formatFloat(r.PercentR),
			formatFloat(r.RPD),
			r.Bounds.ValueOrZero(),
		})
	}
	return rows
}

// SampleRows formats sample records as CSV fields.
func SampleRows(records []dataprocessing.SampleRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.SampleID.ValueOrZero(),
			formatFloat(r.PPM),
			formatFloat(r.MeanPPM),
			formatFloat(r.RPD),
			formatFloat(r.UmolPerL),
			r.Bounds.ValueOrZero(),
		})
	}
	return rows
}

// ReportedRows formats reported-result records as CSV fields.
func ReportedRows(records []dataprocessing.ReportedRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.SampleID,
			formatFloat(r.UmolPerL),
		})
	}
	return rows
}

func formatFloat(v null.Float) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}
