package sensors

import (
	"testing"

	"github.com/salcedoinaki/fcsim/internal/plant"
	"github.com/salcedoinaki/fcsim/internal/sim"
)

func TestReadingsMirrorSnapshot(t *testing.T) {
	snap := sim.Snapshot{
		FuelCell: plant.FuelCellState{
			Voltage:             52.5,
			Current:             1.1,
			Temperature:         41.0,
			HydrogenFlow:        1.05,
			OxygenConcentration: 0.8,
		},
		Battery: plant.BatteryState{SoC: 90.0, Voltage: 52.0, Current: 0.55, Temperature: 26.1},
	}

	fc := ReadFuelCell(snap)
	if fc.Voltage != 52.5 || fc.Current != 1.1 || fc.Temperature != 41.0 {
		t.Errorf("fuel cell reading does not mirror snapshot: %+v", fc)
	}
	b := ReadBattery(snap)
	if b.SoC != 90.0 || b.Current != 0.55 {
		t.Errorf("battery reading does not mirror snapshot: %+v", b)
	}
	if ReadTemperature(snap) != 41.0 {
		t.Errorf("temperature read-out wrong: %f", ReadTemperature(snap))
	}
	if ReadOxygen(snap) != 0.8 {
		t.Errorf("oxygen read-out wrong: %f", ReadOxygen(snap))
	}
}

func TestSimulatedActuatorLatch(t *testing.T) {
	a := NewSimulatedActuator()
	if a.Active() {
		t.Error("actuator should start low")
	}
	a.Set(true)
	if !a.Active() {
		t.Error("actuator should latch high")
	}
	a.Set(false)
	if a.Active() {
		t.Error("actuator should latch low")
	}
}
