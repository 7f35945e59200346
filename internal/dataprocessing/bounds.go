package dataprocessing

import (
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// CheckType selects the acceptance window a value is tested against.
type CheckType string

const (
	// CheckQCRecovery is the %R window for ICV/CCV verification samples.
	CheckQCRecovery CheckType = "QC_R"
	// CheckMDLRecovery is the wider %R window for MDL check samples.
	CheckMDLRecovery CheckType = "MDL_R"
	// CheckRPD is the replicate-spread ceiling for sample groups.
	CheckRPD CheckType = "RPD"
)

// IsOutOfBounds reports whether a cell value falls outside the
// acceptance window for the given check type. Values that cannot be
// read as a number are never flagged, and an unknown check type never
// flags. It accepts the value shapes the report pipeline produces:
// floats, ints, numeric strings and null.Float.
func IsOutOfBounds(value interface{}, check CheckType) bool {
	v, ok := toFloat(value)
	if !ok {
		return false
	}
	switch check {
	case CheckQCRecovery:
		return v < 90 || v > 110
	case CheckMDLRecovery:
		return v < 45 || v > 145
	case CheckRPD:
		return v > 10
	default:
		return false
	}
}

// RecoveryCheckFor picks the %R window for a QC row: MDL samples get
// the wider MDL window, everything else the standard QC window. The
// match is a case-insensitive substring, so replicate labels such as
// "MDL 2" still get the MDL window.
func RecoveryCheckFor(sampleID string) CheckType {
	if strings.Contains(strings.ToUpper(sampleID), "MDL") {
		return CheckMDLRecovery
	}
	return CheckQCRecovery
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case null.Float:
		return v.Float64, v.Valid
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
