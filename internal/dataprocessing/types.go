package dataprocessing

import (
	"gopkg.in/guregu/null.v3"
)

// Column names as they appear in the instrument export sheet.
const (
	ColSampleID        = "Sample ID"
	ColSampleType      = "Sample Type"
	ColMeanPerAnalysis = "Mean (per analysis type)"
	ColPPM             = "PPM"
	ColAdjustedAbs     = "Adjusted ABS"
)

// Column names used in the generated report sheets.
const (
	ColPPMC    = "PPM C"
	ColMeanPPM = "Mean ppm C"
	ColPercent = "%R"
	ColRPD     = "%RPD"
	ColUmol    = "umol/L C"
	ColBounds  = "Bounds"
)

// Sheet names for the generated report tables.
const (
	SheetQC              = "QC"
	SheetSamples         = "Samples"
	SheetReportedResults = "Reported Results"
)

// RawRow holds the untyped cell text for one extracted row, before
// cleaning. Missing columns arrive as empty strings.
type RawRow struct {
	SampleID        string
	SampleType      string
	MeanPerAnalysis string
	PPM             string
	AdjustedAbs     string
}

// Row is one cleaned instrument reading. SampleID is always trimmed;
// numeric fields that failed coercion are invalid (null).
type Row struct {
	SampleID        string
	SampleType      string
	MeanPerAnalysis null.Float
	PPM             null.Float
	AdjustedAbs     null.Float
}

// Table is an ordered sequence of cleaned rows.
type Table []Row

// SampleGroup is all rows sharing one trimmed sample identifier, in
// source order.
type SampleGroup struct {
	ID   string
	Rows []Row
}

// SummaryStats holds the per-group statistics. Any field may be null
// when the inputs do not support the calculation.
type SummaryStats struct {
	MeanPPM  null.Float
	PercentR null.Float
	RPD      null.Float
	UmolPerL null.Float
}

// QCRecord is one row of the QC report table. All fields are nullable
// so the separator and Average rows render blank.
type QCRecord struct {
	SampleID null.String
	PPM      null.Float
	MeanPPM  null.Float
	PercentR null.Float
	RPD      null.Float
	Bounds   null.String
}

// SampleRecord is one row of the Samples report table.
type SampleRecord struct {
	SampleID null.String
	PPM      null.Float
	MeanPPM  null.Float
	RPD      null.Float
	UmolPerL null.Float
	Bounds   null.String
}

// ReportedRecord is one row of the Reported Results table: one line
// per sample group with its converted concentration.
type ReportedRecord struct {
	SampleID string
	UmolPerL null.Float
}

// CellFlag locates one out-of-bounds cell for the styling collaborator.
// Row is the zero-based index into the table's records; writers own
// the header-row offset.
type CellFlag struct {
	Sheet  string
	Row    int
	Column string
}

// Report is the full output of one assembly run: the three report
// tables plus the cells the writer should render in red.
type Report struct {
	QC              []QCRecord
	Samples         []SampleRecord
	ReportedResults []ReportedRecord
	Flags           []CellFlag
}

// QCColumns, SampleColumns and ReportedColumns are the fixed header
// schemas of the three report sheets, in write order.
var (
	QCColumns       = []string{ColSampleID, ColPPMC, ColMeanPPM, ColPercent, ColRPD, ColBounds}
	SampleColumns   = []string{ColSampleID, ColPPMC, ColMeanPPM, ColRPD, ColUmol, ColBounds}
	ReportedColumns = []string{ColSampleID, ColUmol}
)
