// Package metrics reduces a simulation run to scalar figures of merit.
// Each metric implements [sim.Metric] and observes every committed step.
package metrics

import "github.com/salcedoinaki/fcsim/internal/sim"

// PeakTemperature tracks the hottest stack temperature seen during a run.
type PeakTemperature struct {
	peak float64
	seen bool
}

func NewPeakTemperature() *PeakTemperature { return &PeakTemperature{} }

func (m *PeakTemperature) Name() string { return "peak_temperature" }

func (m *PeakTemperature) Observe(snap sim.Snapshot) {
	if !m.seen || snap.FuelCell.Temperature > m.peak {
		m.peak = snap.FuelCell.Temperature
		m.seen = true
	}
}

func (m *PeakTemperature) Value() float64 { return m.peak }

func (m *PeakTemperature) Reset() {
	m.peak = 0
	m.seen = false
}

// EnergyOutput integrates stack electrical output over the run [J].
type EnergyOutput struct {
	total    float64
	prevTime float64
	seen     bool
}

func NewEnergyOutput() *EnergyOutput { return &EnergyOutput{} }

func (m *EnergyOutput) Name() string { return "energy_output" }

func (m *EnergyOutput) Observe(snap sim.Snapshot) {
	if m.seen {
		dt := snap.Time - m.prevTime
		if dt > 0 {
			m.total += snap.FuelCell.Voltage * snap.FuelCell.Current * dt
		}
	}
	m.prevTime = snap.Time
	m.seen = true
}

func (m *EnergyOutput) Value() float64 { return m.total }

func (m *EnergyOutput) Reset() {
	m.total = 0
	m.prevTime = 0
	m.seen = false
}

// CoolingDuty is the fraction of steps spent with the cooling actuator on.
type CoolingDuty struct {
	active  int
	samples int
}

func NewCoolingDuty() *CoolingDuty { return &CoolingDuty{} }

func (m *CoolingDuty) Name() string { return "cooling_duty" }

func (m *CoolingDuty) Observe(snap sim.Snapshot) {
	m.samples++
	if snap.CoolingActive {
		m.active++
	}
}

func (m *CoolingDuty) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.active) / float64(m.samples)
}

func (m *CoolingDuty) Reset() {
	m.active = 0
	m.samples = 0
}
