package dataprocessing

import (
	"regexp"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// QCCategory tags a sample identifier as one of the closed set of
// quality-control types, or as an ordinary sample.
type QCCategory int

const (
	CategorySample QCCategory = iota
	CategoryMDL
	CategoryICV
	CategoryCCV
	CategoryICB
	CategoryCCB
	CategoryRinse
)

// String returns the category's short name.
func (c QCCategory) String() string {
	switch c {
	case CategoryMDL:
		return "MDL"
	case CategoryICV:
		return "ICV"
	case CategoryCCV:
		return "CCV"
	case CategoryICB:
		return "ICB"
	case CategoryCCB:
		return "CCB"
	case CategoryRinse:
		return "Rinse"
	default:
		return "Sample"
	}
}

// Recovery targets per QC type, in ppm C. Identifiers outside the
// known set have no target and therefore no %R.
const (
	targetMDL = 0.2
	targetICV = 18.0
	targetCCV = 10.0
)

var (
	qcPattern  = regexp.MustCompile(`(?i)^(MDL|ICV|ICB|CCV\d+|CCB\d+|Rinse)$`)
	ccvPattern = regexp.MustCompile(`(?i)^CCV\d+$`)
	ccbPattern = regexp.MustCompile(`(?i)^CCB\d+$`)
)

// Classify maps a sample identifier to its QC category. The match is
// case-insensitive and against the full identifier, so "mdl" and "MDL"
// are the same check sample but "MDL dup" is an ordinary sample.
// The identifier is trimmed before matching.
func Classify(sampleID string) QCCategory {
	id := strings.TrimSpace(sampleID)
	if !qcPattern.MatchString(id) {
		return CategorySample
	}
	switch strings.ToUpper(id) {
	case "MDL":
		return CategoryMDL
	case "ICV":
		return CategoryICV
	case "ICB":
		return CategoryICB
	case "RINSE":
		return CategoryRinse
	}
	if ccvPattern.MatchString(id) {
		return CategoryCCV
	}
	if ccbPattern.MatchString(id) {
		return CategoryCCB
	}
	return CategorySample
}

// IsQC reports whether the category is any quality-control type.
func (c QCCategory) IsQC() bool {
	return c != CategorySample
}

// OnQCSheet reports whether rows of this category appear in the upper
// (verification) section of the QC report sheet. Rinse rows are
// excluded from the QC sheet entirely.
func (c QCCategory) OnQCSheet() bool {
	return c == CategoryMDL || c == CategoryICV || c == CategoryCCV
}

// OnBlankSection reports whether rows of this category appear in the
// blank (QCB) section of the QC report sheet, which carries a single
// pooled average instead of per-group summaries.
func (c QCCategory) OnBlankSection() bool {
	return c == CategoryICB || c == CategoryCCB
}

// Target returns the expected concentration for percent-recovery
// calculations, or null for categories with no defined target.
func (c QCCategory) Target() null.Float {
	switch c {
	case CategoryMDL:
		return null.FloatFrom(targetMDL)
	case CategoryICV:
		return null.FloatFrom(targetICV)
	case CategoryCCV:
		return null.FloatFrom(targetCCV)
	default:
		return null.Float{}
	}
}
