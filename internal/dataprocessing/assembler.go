package dataprocessing

import (
	"log/slog"

	"gopkg.in/guregu/null.v3"
)

// Bounds annotation text, written once on the first data row of the
// relevant sheet section.
const (
	qcBoundsText      = "MDL %R: 45-145%, ICV/CCV %R: 90-110%"
	samplesBoundsText = "RPD: ≤10%"
)

// sampleTypeSamples is the upstream "Sample Type" value a row must
// carry to be eligible for the QC sheet at all. Calibration and
// standard rows carry other types and are skipped there.
const sampleTypeSamples = "Samples"

// averageLabel names the pooled blank-average record at the bottom of
// the QC sheet.
const averageLabel = "Average"

// Assembler builds the three report tables from one cleaned table.
// It holds no state between runs; every Assemble call works only on
// its input.
type Assembler struct {
	logger *slog.Logger
}

// NewAssembler creates a report assembler. A nil logger falls back to
// slog.Default().
func NewAssembler(logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{logger: logger}
}

// Assemble builds the QC, Samples and Reported Results tables plus the
// out-of-bounds cell flags from a cleaned table. A table with no rows
// produces empty tables, never an error; data-quality gaps inside the
// rows degrade to null cells.
func (a *Assembler) Assemble(table Table) *Report {
	if len(table) == 0 {
		return &Report{
			QC:              []QCRecord{},
			Samples:         []SampleRecord{},
			ReportedResults: []ReportedRecord{},
			Flags:           []CellFlag{},
		}
	}

	report := &Report{
		QC:              a.buildQCTable(table),
		Samples:         a.buildSamplesTable(table),
		ReportedResults: a.buildReportedResults(table),
	}
	report.Flags = a.collectFlags(report)

	a.logger.Info("report assembled",
		slog.Int("input_rows", len(table)),
		slog.Int("qc_rows", len(report.QC)),
		slog.Int("sample_rows", len(report.Samples)),
		slog.Int("reported_rows", len(report.ReportedResults)),
		slog.Int("flagged_cells", len(report.Flags)))

	return report
}

// buildQCTable assembles the QC sheet: per-reading rows for every
// MDL/ICV/CCV group with the group summary on its last row, a blank
// separator, per-reading rows for the ICB/CCB blanks, and one pooled
// Average record. Only rows whose upstream Sample Type is exactly
// "Samples" are eligible for this sheet.
func (a *Assembler) buildQCTable(table Table) []QCRecord {
	var qcRows, blankRows Table
	for _, row := range table {
		if row.SampleType != sampleTypeSamples {
			continue
		}
		switch category := Classify(row.SampleID); {
		case category.OnQCSheet():
			qcRows = append(qcRows, row)
		case category.OnBlankSection():
			blankRows = append(blankRows, row)
		}
	}

	records := a.buildQCRecords(qcRows)

	// Blank separator between the verification and blank sections.
	records = append(records, QCRecord{})

	for _, row := range blankRows {
		records = append(records, QCRecord{
			SampleID: null.StringFrom(row.SampleID),
			PPM:      row.PPM,
		})
	}

	// The blanks get one pooled average across every ICB/CCB reading,
	// not a per-group summary.
	records = append(records, QCRecord{
		SampleID: null.StringFrom(averageLabel),
		PPM:      MeanPPM(blankRows),
	})

	return records
}

// buildQCRecords expands the verification groups into per-reading
// records, merging each group's statistics into its last record. The
// bounds legend goes on the very first data row only.
func (a *Assembler) buildQCRecords(qcRows Table) []QCRecord {
	records := make([]QCRecord, 0, len(qcRows))
	boundsAdded := false

	for _, group := range GroupBySampleID(qcRows) {
		first := len(records)
		for _, row := range group.Rows {
			records = append(records, QCRecord{
				SampleID: null.StringFrom(row.SampleID),
				PPM:      row.PPM,
			})
		}

		mean := MeanPPM(group.Rows)
		last := &records[len(records)-1]
		last.MeanPPM = mean
		last.PercentR = PercentRecovery(group.Rows, Classify(group.ID).Target())
		last.RPD = RPD(group.Rows, mean)

		if !boundsAdded {
			records[first].Bounds = null.StringFrom(qcBoundsText)
			boundsAdded = true
		}
	}
	return records
}

// buildSamplesTable assembles the Samples sheet: per-reading rows for
// every non-QC sample group with the group's mean, RPD and converted
// concentration on its last row.
func (a *Assembler) buildSamplesTable(table Table) []SampleRecord {
	records := make([]SampleRecord, 0, len(table))
	boundsAdded := false

	for _, group := range sampleGroups(table) {
		first := len(records)
		for _, row := range group.Rows {
			records = append(records, SampleRecord{
				SampleID: null.StringFrom(row.SampleID),
				PPM:      row.PPM,
			})
		}

		mean := MeanPPM(group.Rows)
		last := &records[len(records)-1]
		last.MeanPPM = mean
		last.RPD = RPD(group.Rows, mean)
		last.UmolPerL = UmolPerL(mean)

		if !boundsAdded {
			records[first].Bounds = null.StringFrom(samplesBoundsText)
			boundsAdded = true
		}
	}
	return records
}

// buildReportedResults assembles the Reported Results sheet: one row
// per non-QC sample group holding the identifier and the group's
// umol/L C conversion.
func (a *Assembler) buildReportedResults(table Table) []ReportedRecord {
	groups := sampleGroups(table)
	records := make([]ReportedRecord, 0, len(groups))
	for _, group := range groups {
		records = append(records, ReportedRecord{
			SampleID: group.ID,
			UmolPerL: UmolPerL(MeanPPM(group.Rows)),
		})
	}
	return records
}

// sampleGroups groups the non-QC rows of the cleaned table in
// first-seen order. Unlike the QC sheet there is no Sample Type
// pre-filter here; exclusion is purely by identifier pattern.
func sampleGroups(table Table) []SampleGroup {
	var samplesOnly Table
	for _, row := range table {
		if !Classify(row.SampleID).IsQC() {
			samplesOnly = append(samplesOnly, row)
		}
	}
	return GroupBySampleID(samplesOnly)
}

// collectFlags walks the assembled tables and records every cell whose
// value is outside its acceptance window: %R on the QC sheet (MDL rows
// against the wider MDL window) and %RPD on the Samples sheet.
func (a *Assembler) collectFlags(report *Report) []CellFlag {
	flags := []CellFlag{}

	for i, rec := range report.QC {
		if !rec.PercentR.Valid {
			continue
		}
		check := RecoveryCheckFor(rec.SampleID.ValueOrZero())
		if IsOutOfBounds(rec.PercentR, check) {
			flags = append(flags, CellFlag{Sheet: SheetQC, Row: i, Column: ColPercent})
		}
	}

	for i, rec := range report.Samples {
		if rec.RPD.Valid && IsOutOfBounds(rec.RPD, CheckRPD) {
			flags = append(flags, CellFlag{Sheet: SheetSamples, Row: i, Column: ColRPD})
		}
	}

	return flags
}
