package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "tocetl/internal/errors"
)

func buildSheet(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	return f
}

func TestParseSheet(t *testing.T) {
	f := buildSheet(t, [][]interface{}{
		{"Run report", nil, nil},
		{"Sample ID", "Sample Type", "Mean (per analysis type)", "PPM", "Adjusted ABS"},
		{"MDL", "Samples", 0.21, 0.2, 0.013},
		{"  S1  ", "Samples", 10.4, 10.5, 0.87},
		{"S2", "Samples", nil, "n/a", nil},
	})
	defer f.Close()

	raw, err := ParseSheet(f, "Sheet1")
	require.NoError(t, err)
	require.Len(t, raw, 3)

	assert.Equal(t, "MDL", raw[0].SampleID)
	assert.Equal(t, "Samples", raw[0].SampleType)
	assert.Equal(t, "0.2", raw[0].PPM)

	// The parser trims cell text; type coercion is the cleaner's job.
	assert.Equal(t, "S1", raw[1].SampleID)
	assert.Equal(t, "n/a", raw[2].PPM)
}

func TestParseSheetHeaderNotFirstRow(t *testing.T) {
	f := buildSheet(t, [][]interface{}{
		{"Laboratory X"},
		{},
		{"Sample ID", "PPM"},
		{"S1", 1.5},
	})
	defer f.Close()

	raw, err := ParseSheet(f, "Sheet1")
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, "S1", raw[0].SampleID)
	assert.Equal(t, "1.5", raw[0].PPM)
}

func TestParseSheetMissingColumnsTolerated(t *testing.T) {
	f := buildSheet(t, [][]interface{}{
		{"Sample ID", "PPM"},
		{"S1", 2.0},
	})
	defer f.Close()

	raw, err := ParseSheet(f, "Sheet1")
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Empty(t, raw[0].SampleType)
	assert.Empty(t, raw[0].MeanPerAnalysis)
	assert.Empty(t, raw[0].AdjustedAbs)
}

func TestParseSheetSkipsEmptyRows(t *testing.T) {
	f := buildSheet(t, [][]interface{}{
		{"Sample ID", "PPM"},
		{"S1", 2.0},
		{},
		{"S2", 3.0},
	})
	defer f.Close()

	raw, err := ParseSheet(f, "Sheet1")
	require.NoError(t, err)
	assert.Len(t, raw, 2)
}

func TestParseSheetNoHeader(t *testing.T) {
	f := buildSheet(t, [][]interface{}{
		{"no", "recognizable", "columns"},
		{"a", "b", "c"},
	})
	defer f.Close()

	_, err := ParseSheet(f, "Sheet1")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestParseSheetActiveSheetDefault(t *testing.T) {
	f := buildSheet(t, [][]interface{}{
		{"Sample ID", "PPM"},
		{"S1", 2.0},
	})
	defer f.Close()

	raw, err := ParseSheet(f, "")
	require.NoError(t, err)
	assert.Len(t, raw, 1)
}

func TestParseWorkbookMissingFile(t *testing.T) {
	_, err := ParseWorkbook("no-such-workbook.xlsx", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}
