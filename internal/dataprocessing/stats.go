package dataprocessing

import (
	"github.com/montanaflynn/stats"
	"gopkg.in/guregu/null.v3"
)

// MolecularWeightCarbon converts ppm C to umol/L C.
const MolecularWeightCarbon = 12.01057

// ppmValues collects the non-null PPM readings of a row set. A null
// reading contributes nothing, not a zero.
func ppmValues(rows []Row) []float64 {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if row.PPM.Valid {
			values = append(values, row.PPM.Float64)
		}
	}
	return values
}

// MeanPPM returns the arithmetic mean of the non-null PPM readings,
// or null when the set has none.
func MeanPPM(rows []Row) null.Float {
	values := ppmValues(rows)
	mean, err := stats.Mean(values)
	if err != nil {
		return null.Float{}
	}
	return null.FloatFrom(mean)
}

// PercentRecovery returns the group mean as a percentage of the
// expected target concentration. The ratio is taken on the already
// computed group mean, not averaged per reading. A null or zero
// target, or a group with no readings, yields null.
func PercentRecovery(rows []Row, target null.Float) null.Float {
	if !target.Valid || target.Float64 == 0 {
		return null.Float{}
	}
	mean := MeanPPM(rows)
	if !mean.Valid {
		return null.Float{}
	}
	return null.FloatFrom(mean.Float64 / target.Float64 * 100)
}

// RPD returns the relative percent difference of the readings: the
// spread between the extreme values relative to the group mean,
// as a percentage. Fewer than two non-null readings, or a null or
// zero mean, yields null.
func RPD(rows []Row, meanPPM null.Float) null.Float {
	if !meanPPM.Valid || meanPPM.Float64 == 0 {
		return null.Float{}
	}
	values := ppmValues(rows)
	if len(values) < 2 {
		return null.Float{}
	}
	max, err := stats.Max(values)
	if err != nil {
		return null.Float{}
	}
	min, err := stats.Min(values)
	if err != nil {
		return null.Float{}
	}
	return null.FloatFrom((max - min) / meanPPM.Float64 * 100)
}

// UmolPerL converts a mean ppm C concentration to umol/L C using the
// molecular weight of carbon. Null in, null out.
func UmolPerL(meanPPM null.Float) null.Float {
	if !meanPPM.Valid {
		return null.Float{}
	}
	return null.FloatFrom(meanPPM.Float64 / MolecularWeightCarbon)
}

// Summarize computes the full per-group statistics in one pass.
// The recovery target comes from the group's QC category; ordinary
// samples have no target and therefore a null %R.
func Summarize(group SampleGroup) SummaryStats {
	mean := MeanPPM(group.Rows)
	return SummaryStats{
		MeanPPM:  mean,
		PercentR: PercentRecovery(group.Rows, Classify(group.ID).Target()),
		RPD:      RPD(group.Rows, mean),
		UmolPerL: UmolPerL(mean),
	}
}
