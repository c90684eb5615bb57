package sim

import (
	"context"
	"errors"
	"testing"
)

func TestEngineRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for zero dt, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.DischargeSplit = 1.5
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for discharge split > 1, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Compressor.Inertia = -1
	if _, err := New(cfg); err == nil {
		t.Error("expected error for negative inertia")
	}
}

func TestEngineStepRejectsBadDt(t *testing.T) {
	e, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := e.Step(0); !errors.Is(err, ErrNonPositiveStep) {
		t.Errorf("expected ErrNonPositiveStep, got %v", err)
	}
	if _, err := e.Step(-0.5); !errors.Is(err, ErrNonPositiveStep) {
		t.Errorf("expected ErrNonPositiveStep, got %v", err)
	}
}

func TestEngineCoolingLagsOneStep(t *testing.T) {
	cfg := DefaultConfig()
	// Start just below the threshold so the first step crosses it.
	cfg.InitialTemp = 43.9
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	act := &recordingActuator{}
	e.AttachActuator(act)

	var crossed int
	for i := 1; i <= 20; i++ {
		snap, err := e.Step(0.5)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if crossed == 0 && snap.FuelCell.Temperature > cfg.CoolingOnTemp {
			crossed = i
			if !snap.CoolingActive {
				t.Fatalf("latch should arm on the step that crosses the threshold")
			}
			if len(act.sets) == 0 || !act.sets[len(act.sets)-1] {
				t.Fatalf("actuator should be driven high when the latch arms")
			}
		}
	}
	if crossed == 0 {
		t.Fatal("temperature never crossed the cooling threshold")
	}
}

func TestEngineFirstStepUsesPassiveCooling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialTemp = 60.0 // far above the cooling threshold
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	// The latch starts idle, so the very first update must run with the
	// passive coefficient even though the temperature is already over the
	// threshold. With active cooling this step would lose heat faster.
	snap, err := e.Step(0.5)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	p := cfg.FuelCell
	passive := cfg.InitialTemp + 0.5*(p.HeatPerAmp*snap.Load-p.PassiveCooling*(cfg.InitialTemp-p.AmbientTemp))/p.ThermalMass
	active := cfg.InitialTemp + 0.5*(p.HeatPerAmp*snap.Load-p.ActiveCooling*(cfg.InitialTemp-p.AmbientTemp))/p.ThermalMass
	if diff := snap.FuelCell.Temperature - passive; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("first step should use the passive coefficient: got %f, want %f (active would be %f)",
			snap.FuelCell.Temperature, passive, active)
	}
	if !snap.CoolingActive {
		t.Error("latch should be armed for the next step")
	}
}

func TestEngineChargingModeFixedLoad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialSoC = 60.0 // below the charge threshold
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	snap, err := e.Step(0.5)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !snap.Charging {
		t.Fatal("engine should start charging below the lower SoC threshold")
	}
	if snap.Load != cfg.ChargeLoad {
		t.Errorf("charging load should be fixed at %f, got %f", cfg.ChargeLoad, snap.Load)
	}
	if snap.Battery.Current >= 0 {
		t.Errorf("battery current should be negative (charging), got %f", snap.Battery.Current)
	}
}

func TestEngineRunHonorsContext(t *testing.T) {
	e, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	history, err := e.Run(ctx, 100, 0.5)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected no steps after cancellation, got %d", len(history))
	}
}

func TestEngineObserversSeeEveryStep(t *testing.T) {
	e, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var seen []Snapshot
	e.AddObserver(observerFunc(func(s Snapshot) { seen = append(seen, s) }))

	history, err := e.Run(context.Background(), 10, 0.5)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(seen) != len(history) {
		t.Errorf("observer saw %d steps, run recorded %d", len(seen), len(history))
	}
	for i := range seen {
		if seen[i].Step != history[i].Step {
			t.Fatalf("step %d: observer snapshot out of order", i)
		}
	}
}

type recordingActuator struct {
	state bool
	sets  []bool
}

func (a *recordingActuator) Set(active bool) {
	a.state = active
	a.sets = append(a.sets, active)
}

func (a *recordingActuator) Active() bool { return a.state }

type observerFunc func(Snapshot)

func (f observerFunc) OnStep(s Snapshot) { f(s) }
