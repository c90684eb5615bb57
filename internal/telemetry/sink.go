// Package telemetry ships committed snapshots to external consumers:
// structured logs, InfluxDB, Prometheus and MQTT. Sinks are fanned out
// through MultiSink and attached to the engine as observers; a sink
// failure never stops the simulation.
package telemetry

import (
	"github.com/rs/zerolog"

	"github.com/salcedoinaki/fcsim/internal/sim"
)

// Sink receives every committed snapshot.
type Sink interface {
	Record(snap sim.Snapshot) error
}

// NopSink discards everything. Used as the fallback when an external
// endpoint is unreachable.
type NopSink struct{}

func (NopSink) Record(sim.Snapshot) error { return nil }

// MultiSink fans a snapshot out to multiple sinks, returning the first
// error encountered.
type MultiSink struct {
	Sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

func (m *MultiSink) Record(snap sim.Snapshot) error {
	for _, s := range m.Sinks {
		if err := s.Record(snap); err != nil {
			return err
		}
	}
	return nil
}

type observer struct {
	sink Sink
	log  zerolog.Logger
}

// AsObserver adapts a sink to the engine observer interface. Record errors
// are logged and dropped so telemetry cannot stall the loop.
func AsObserver(s Sink, log zerolog.Logger) sim.Observer {
	return &observer{sink: s, log: log}
}

func (o *observer) OnStep(snap sim.Snapshot) {
	if err := o.sink.Record(snap); err != nil {
		o.log.Error().Err(err).Int("step", snap.Step).Msg("telemetry record failed")
	}
}
