package telemetry

import (
	"github.com/rs/zerolog"

	"github.com/salcedoinaki/fcsim/internal/sim"
)

// LogSink writes one structured log line per step.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Record(snap sim.Snapshot) error {
	s.log.Info().
		Int("step", snap.Step).
		Float64("t", snap.Time).
		Float64("voltage", snap.FuelCell.Voltage).
		Float64("current", snap.FuelCell.Current).
		Float64("temperature", snap.FuelCell.Temperature).
		Float64("hydration", snap.FuelCell.MembraneHydration).
		Float64("oxygen", snap.FuelCell.OxygenConcentration).
		Float64("soc", snap.Battery.SoC).
		Float64("pressure", snap.Manifold.Pressure).
		Float64("compressor_speed", snap.Compressor.Speed).
		Float64("load", snap.Load).
		Bool("charging", snap.Charging).
		Bool("cooling", snap.CoolingActive).
		Msg("step")
	return nil
}
