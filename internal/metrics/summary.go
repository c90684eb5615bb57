package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/salcedoinaki/fcsim/internal/sim"
)

// RunSummary is the statistical digest of a completed run.
type RunSummary struct {
	Steps int

	MeanVoltage   float64
	VoltageStdDev float64

	// TempSlope is the least-squares temperature trend over the whole run
	// [degC/s]. Near zero means the thermal loop settled.
	TempSlope float64

	FinalSoC      float64
	FinalPressure float64
}

// Summarize reduces a run history to its summary. An empty history yields
// the zero summary.
func Summarize(history []sim.Snapshot) RunSummary {
	if len(history) == 0 {
		return RunSummary{}
	}

	times := make([]float64, len(history))
	temps := make([]float64, len(history))
	volts := make([]float64, len(history))
	for i, snap := range history {
		times[i] = snap.Time
		temps[i] = snap.FuelCell.Temperature
		volts[i] = snap.FuelCell.Voltage
	}

	s := RunSummary{
		Steps:         len(history),
		MeanVoltage:   stat.Mean(volts, nil),
		VoltageStdDev: stat.StdDev(volts, nil),
		FinalSoC:      history[len(history)-1].Battery.SoC,
		FinalPressure: history[len(history)-1].Manifold.Pressure,
	}
	if len(history) > 1 {
		_, s.TempSlope = stat.LinearRegression(times, temps, nil, false)
	}
	return s
}
