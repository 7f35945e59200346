// Command processor runs the TOC data-reduction pipeline on one
// instrument workbook: it extracts the raw readings from a sheet,
// computes the per-sample statistics, and writes the QC, Samples and
// Reported Results sheets back into the workbook with out-of-bounds
// values rendered in red.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"tocetl/internal/config"
	"tocetl/internal/dataprocessing"
	"tocetl/internal/exporter"
	"tocetl/internal/infrastructure"
)

func main() {
	in := flag.String("in", "", "instrument workbook (.xlsx) to process")
	sheet := flag.String("sheet", "", "sheet holding the raw readings (defaults to the active sheet)")
	out := flag.String("out", "", "output workbook path (defaults to rewriting the input in place)")
	cfgPath := flag.String("config", "", "optional YAML config file")
	csvExport := flag.Bool("csv", false, "also export each report table as CSV")
	flag.Parse()

	if *in == "" {
		slog.Error("no input workbook given, use -in")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		slog.Error("failed to create required directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	sheetName := *sheet
	if sheetName == "" {
		sheetName = cfg.Processing.DefaultSheet
	}

	logger.Info("starting data reduction",
		slog.String("workbook", *in),
		slog.String("sheet", sheetName))

	f, err := excelize.OpenFile(*in)
	if err != nil {
		logger.Error("cannot open workbook",
			slog.String("path", *in),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer f.Close()

	raw, err := dataprocessing.ParseSheet(f, sheetName)
	if err != nil {
		logger.Error("extraction failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	table := dataprocessing.Clean(raw)
	report := dataprocessing.NewAssembler(logger).Assemble(table)

	writer := exporter.NewSheetWriter(logger)
	if err := writer.WriteReport(f, report); err != nil {
		logger.Error("failed to write report sheets", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dest := *out
	if dest == "" {
		dest = *in
	}
	if err := f.SaveAs(dest); err != nil {
		logger.Error("failed to save workbook",
			slog.String("path", dest),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *csvExport || cfg.Processing.CSVExport {
		dir := filepath.Join(cfg.Paths.ReportsDir, baseName(dest))
		if err := exporter.NewCSVWriter(logger).WriteReport(dir, report); err != nil {
			logger.Error("CSV export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("processing complete",
		slog.String("workbook", dest),
		slog.Int("input_rows", len(table)),
		slog.Int("flagged_cells", len(report.Flags)))
}

// baseName strips the directory and extension from a workbook path.
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
