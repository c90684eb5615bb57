package metrics

import (
	"math"
	"testing"

	"github.com/salcedoinaki/fcsim/internal/plant"
	"github.com/salcedoinaki/fcsim/internal/sim"
)

func snapAt(t, temp, voltage, current float64, cooling bool) sim.Snapshot {
	return sim.Snapshot{
		Time:          t,
		FuelCell:      plant.FuelCellState{Temperature: temp, Voltage: voltage, Current: current},
		CoolingActive: cooling,
	}
}

func TestPeakTemperature(t *testing.T) {
	m := NewPeakTemperature()
	m.Observe(snapAt(0, 30, 50, 1, false))
	m.Observe(snapAt(0.5, 45, 50, 1, false))
	m.Observe(snapAt(1.0, 41, 50, 1, false))

	if m.Value() != 45 {
		t.Errorf("expected peak 45, got %f", m.Value())
	}

	m.Reset()
	m.Observe(snapAt(0, -5, 50, 1, false))
	if m.Value() != -5 {
		t.Errorf("peak after reset should track first sample, got %f", m.Value())
	}
}

func TestEnergyOutputIntegration(t *testing.T) {
	m := NewEnergyOutput()
	// Two steps of 0.5 s at 50 V * 1 A = 50 J.
	m.Observe(snapAt(0.5, 30, 50, 1, false))
	m.Observe(snapAt(1.0, 30, 50, 1, false))
	m.Observe(snapAt(1.5, 30, 50, 1, false))

	if math.Abs(m.Value()-50.0) > 1e-9 {
		t.Errorf("expected 50 J, got %f", m.Value())
	}
}

func TestCoolingDuty(t *testing.T) {
	m := NewCoolingDuty()
	m.Observe(snapAt(0, 30, 50, 1, false))
	m.Observe(snapAt(0.5, 46, 50, 1, true))
	m.Observe(snapAt(1.0, 47, 50, 1, true))
	m.Observe(snapAt(1.5, 45, 50, 1, true))

	if m.Value() != 0.75 {
		t.Errorf("expected duty 0.75, got %f", m.Value())
	}
}

func TestSummarize(t *testing.T) {
	history := []sim.Snapshot{
		snapAt(0, 25, 50, 1, false),
		snapAt(1, 27, 50, 1, false),
		snapAt(2, 29, 50, 1, false),
	}
	history[2].Battery = plant.BatteryState{SoC: 88.0}

	s := Summarize(history)
	if s.Steps != 3 {
		t.Errorf("expected 3 steps, got %d", s.Steps)
	}
	if math.Abs(s.TempSlope-2.0) > 1e-9 {
		t.Errorf("expected temperature slope 2.0 degC/s, got %f", s.TempSlope)
	}
	if s.MeanVoltage != 50.0 {
		t.Errorf("expected mean voltage 50, got %f", s.MeanVoltage)
	}
	if s.FinalSoC != 88.0 {
		t.Errorf("expected final SoC 88, got %f", s.FinalSoC)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil); s.Steps != 0 {
		t.Errorf("empty history should give zero summary, got %+v", s)
	}
}
