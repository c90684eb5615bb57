// Package sensors is the thin sensor/actuator layer between the simulation
// core and its front ends: pure read-outs over a committed snapshot, and
// the simulated cooling actuator the thermal manager drives.
package sensors

import "github.com/salcedoinaki/fcsim/internal/sim"

// FuelCellReading is what the stack sensor harness reports.
type FuelCellReading struct {
	Voltage             float64
	Current             float64
	HydrogenFlow        float64
	Temperature         float64
	OxygenConcentration float64
}

// BatteryReading is what the battery sensor harness reports.
type BatteryReading struct {
	SoC         float64
	Voltage     float64
	Current     float64
	Temperature float64
}

func ReadFuelCell(snap sim.Snapshot) FuelCellReading {
	return FuelCellReading{
		Voltage:             snap.FuelCell.Voltage,
		Current:             snap.FuelCell.Current,
		HydrogenFlow:        snap.FuelCell.HydrogenFlow,
		Temperature:         snap.FuelCell.Temperature,
		OxygenConcentration: snap.FuelCell.OxygenConcentration,
	}
}

func ReadBattery(snap sim.Snapshot) BatteryReading {
	return BatteryReading{
		SoC:         snap.Battery.SoC,
		Voltage:     snap.Battery.Voltage,
		Current:     snap.Battery.Current,
		Temperature: snap.Battery.Temperature,
	}
}

// ReadTemperature is the stack temperature sensor.
func ReadTemperature(snap sim.Snapshot) float64 { return snap.FuelCell.Temperature }

// ReadOxygen is the cathode oxygen concentration sensor.
func ReadOxygen(snap sim.Snapshot) float64 { return snap.FuelCell.OxygenConcentration }

// SimulatedActuator is a digital output latch standing in for the cooling
// fan relay. It implements [sim.Actuator].
type SimulatedActuator struct {
	state bool
}

func NewSimulatedActuator() *SimulatedActuator { return &SimulatedActuator{} }

func (a *SimulatedActuator) Set(active bool) { a.state = active }
func (a *SimulatedActuator) Active() bool    { return a.state }
