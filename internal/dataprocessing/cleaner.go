package dataprocessing

import (
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Clean normalizes raw rows into a typed Table. Sample identifiers are
// trimmed of surrounding whitespace and numeric columns are coerced;
// a cell that fails coercion becomes null rather than an error. No row
// is ever dropped, even with an empty identifier or no numeric data,
// so the downstream statistics must tolerate nulls throughout.
func Clean(raw []RawRow) Table {
	table := make(Table, 0, len(raw))
	for _, r := range raw {
		table = append(table, Row{
			SampleID:        strings.TrimSpace(r.SampleID),
			SampleType:      strings.TrimSpace(r.SampleType),
			MeanPerAnalysis: coerceFloat(r.MeanPerAnalysis),
			PPM:             coerceFloat(r.PPM),
			AdjustedAbs:     coerceFloat(r.AdjustedAbs),
		})
	}
	return table
}

// coerceFloat parses a cell's text as a float. Thousands separators
// are stripped first, matching how the instrument export formats large
// values.
func coerceFloat(cell string) null.Float {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if s == "" {
		return null.Float{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return null.Float{}
	}
	return null.FloatFrom(v)
}
