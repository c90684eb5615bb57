package plant

import (
	"math/rand"
	"testing"
)

func TestFuelCellLossMonotonicity(t *testing.T) {
	fc, err := NewFuelCell(DefaultFuelCellParams(), 25.0)
	if err != nil {
		t.Fatalf("new fuel cell: %v", err)
	}

	prev := -1.0
	for load := 0.05; load < DefaultLimitingCurrent; load += 0.05 {
		act, ohm, conc := fc.Losses(load)
		total := act + ohm + conc
		if total <= prev {
			t.Fatalf("losses not strictly increasing at load %.2f: %.6f <= %.6f", load, total, prev)
		}
		prev = total
	}
}

func TestFuelCellConcentrationLossSaturates(t *testing.T) {
	fc, err := NewFuelCell(DefaultFuelCellParams(), 25.0)
	if err != nil {
		t.Fatalf("new fuel cell: %v", err)
	}

	for _, load := range []float64{1.5, 2.0, 10.0} {
		_, _, conc := fc.Losses(load)
		if conc != concentrationLossCap {
			t.Errorf("load %.1f: concentration loss should cap at %.2f, got %f", load, concentrationLossCap, conc)
		}
	}
}

func TestFuelCellZeroLoadIsDefined(t *testing.T) {
	fc, err := NewFuelCell(DefaultFuelCellParams(), 25.0)
	if err != nil {
		t.Fatalf("new fuel cell: %v", err)
	}

	s := fc.Update(0, AmbientPressure, false, 0.5)
	if s.Voltage <= 0 {
		t.Errorf("expected positive open-circuit voltage at zero load, got %f", s.Voltage)
	}
}

func TestFuelCellHydrationBounds(t *testing.T) {
	fc, err := NewFuelCell(DefaultFuelCellParams(), 25.0)
	if err != nil {
		t.Fatalf("new fuel cell: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		load := rng.Float64() * 5.0
		s := fc.Update(load, AmbientPressure+rng.Float64()*400000, false, 0.5)
		if s.MembraneHydration < 0.1 || s.MembraneHydration > 1.0 {
			t.Fatalf("step %d: hydration %f left [0.1, 1.0]", i, s.MembraneHydration)
		}
	}
}

func TestFuelCellCoolingDivergence(t *testing.T) {
	cooled, err := NewFuelCell(DefaultFuelCellParams(), 25.0)
	if err != nil {
		t.Fatalf("new fuel cell: %v", err)
	}
	uncooled, err := NewFuelCell(DefaultFuelCellParams(), 25.0)
	if err != nil {
		t.Fatalf("new fuel cell: %v", err)
	}

	for i := 0; i < 50; i++ {
		a := cooled.Update(1.0, TargetPressure, true, 0.5)
		b := uncooled.Update(1.0, TargetPressure, false, 0.5)
		if i > 0 && a.Temperature >= b.Temperature {
			t.Fatalf("step %d: cooled trajectory %.4f not below uncooled %.4f", i, a.Temperature, b.Temperature)
		}
	}
}

func TestFuelCellTemperatureRisesWithLoad(t *testing.T) {
	fc, err := NewFuelCell(DefaultFuelCellParams(), 25.0)
	if err != nil {
		t.Fatalf("new fuel cell: %v", err)
	}

	before := fc.State().Temperature
	s := fc.Update(1.0, TargetPressure, false, 0.5)
	if s.Temperature <= before {
		t.Errorf("temperature should rise under load: %f -> %f", before, s.Temperature)
	}
}

func TestFuelCellOxygenConcentrationClamped(t *testing.T) {
	fc, err := NewFuelCell(DefaultFuelCellParams(), 25.0)
	if err != nil {
		t.Fatalf("new fuel cell: %v", err)
	}

	s := fc.Update(0.5, 10*DefaultNominalPressure, false, 0.5)
	if s.OxygenConcentration != 1.0 {
		t.Errorf("oxygen concentration should clamp to 1.0, got %f", s.OxygenConcentration)
	}
	s = fc.Update(0.5, 0, false, 0.5)
	if s.OxygenConcentration != 0.0 {
		t.Errorf("oxygen concentration should clamp to 0.0, got %f", s.OxygenConcentration)
	}
}

func TestFuelCellRejectsBadParams(t *testing.T) {
	p := DefaultFuelCellParams()
	p.LimitingCurrent = 0
	if _, err := NewFuelCell(p, 25.0); err == nil {
		t.Error("expected error for zero limiting current")
	}

	p = DefaultFuelCellParams()
	p.ThermalMass = -1
	if _, err := NewFuelCell(p, 25.0); err == nil {
		t.Error("expected error for negative thermal mass")
	}
}
