package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/salcedoinaki/fcsim/internal/control"
	"github.com/salcedoinaki/fcsim/internal/plant"
)

// Config holds everything the engine needs to build the plant and its
// controllers. Physical constants are validated by the component
// constructors; loop-level values are validated here.
type Config struct {
	Dt             float64 // default step interval [s]
	BaseLoad       float64 // commanded discharge load [A]
	ChargeLoad     float64 // fixed stack load while charging [A]
	DischargeSplit float64 // fraction of the load the battery supplies [0,1]
	DisturbanceAmp float64 // amplitude of the |sin t| load disturbance [A]
	CathodeDraw    float64 // manifold outflow per unit hydrogen flow

	InitialSoC      float64
	InitialTemp     float64
	InitialPressure float64

	OxygenGain     float64
	OxygenSetpoint float64

	AirKp, AirKi, AirKd float64
	AirTargetO2         float64
	AirMaxTorque        float64

	CoolingOnTemp  float64
	CoolingOffTemp float64

	ChargeBelowSoC    float64
	DischargeAboveSoC float64

	FuelCell   plant.FuelCellParams
	Battery    plant.BatteryParams
	Compressor plant.CompressorParams
	Manifold   plant.ManifoldParams
}

func DefaultConfig() Config {
	return Config{
		Dt:             0.5,
		BaseLoad:       1.0,
		ChargeLoad:     1.2,
		DischargeSplit: 0.5,
		DisturbanceAmp: 0.0,
		CathodeDraw:    0.05,

		InitialSoC:      100.0,
		InitialTemp:     25.0,
		InitialPressure: plant.AmbientPressure,

		OxygenGain:     control.DefaultOxygenGain,
		OxygenSetpoint: control.DefaultOxygenSetpoint,

		AirKp:        control.DefaultAirSupplyKp,
		AirKi:        control.DefaultAirSupplyKi,
		AirKd:        control.DefaultAirSupplyKd,
		AirTargetO2:  control.DefaultO2Target,
		AirMaxTorque: control.DefaultMaxMotorTorque,

		CoolingOnTemp:  control.DefaultCoolingOnTemp,
		CoolingOffTemp: control.DefaultCoolingOffTemp,

		ChargeBelowSoC:    control.DefaultChargeBelowSoC,
		DischargeAboveSoC: control.DefaultDischargeAboveSoC,

		FuelCell:   plant.DefaultFuelCellParams(),
		Battery:    plant.DefaultBatteryParams(),
		Compressor: plant.DefaultCompressorParams(),
		Manifold:   plant.DefaultManifoldParams(),
	}
}

func (c Config) validate() error {
	switch {
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt %f", ErrInvalidConfig, c.Dt)
	case c.BaseLoad < 0:
		return fmt.Errorf("%w: base load %f", ErrInvalidConfig, c.BaseLoad)
	case c.ChargeLoad < 0:
		return fmt.Errorf("%w: charge load %f", ErrInvalidConfig, c.ChargeLoad)
	case c.DischargeSplit < 0 || c.DischargeSplit > 1:
		return fmt.Errorf("%w: discharge split %f", ErrInvalidConfig, c.DischargeSplit)
	case c.CathodeDraw <= 0:
		return fmt.Errorf("%w: cathode draw %f", ErrInvalidConfig, c.CathodeDraw)
	}
	return nil
}

// Engine owns all plant state for the lifetime of a run and advances it one
// fixed increment per Step call, in a fixed order: mode decision, sensor
// read, air-supply torque, compressor, manifold, fuel cell, battery,
// thermal latch. The cooling flag produced at the end of a step is consumed
// by the fuel cell on the *next* step, so thermal response lags temperature
// by exactly one step.
type Engine struct {
	cfg Config

	fuelCell   *plant.FuelCell
	battery    *plant.Battery
	compressor *plant.Compressor
	manifold   *plant.Manifold

	oxygen     *control.Oxygen
	airSupply  *control.AirSupply
	thermal    *control.Thermal
	chargeMode *control.ChargeMode

	actuator  Actuator
	observers []Observer

	coolingActive bool
	step          int
	time          float64
	last          Snapshot
}

func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	fc, err := plant.NewFuelCell(cfg.FuelCell, cfg.InitialTemp)
	if err != nil {
		return nil, err
	}
	batt, err := plant.NewBattery(cfg.Battery, cfg.InitialSoC)
	if err != nil {
		return nil, err
	}
	comp, err := plant.NewCompressor(cfg.Compressor)
	if err != nil {
		return nil, err
	}
	mani, err := plant.NewManifold(cfg.Manifold, cfg.InitialPressure)
	if err != nil {
		return nil, err
	}
	air, err := control.NewAirSupply(cfg.AirKp, cfg.AirKi, cfg.AirKd, cfg.Dt, cfg.AirTargetO2, cfg.AirMaxTorque)
	if err != nil {
		return nil, err
	}
	thermal, err := control.NewThermal(cfg.CoolingOnTemp, cfg.CoolingOffTemp)
	if err != nil {
		return nil, err
	}
	mode, err := control.NewChargeMode(cfg.ChargeBelowSoC, cfg.DischargeAboveSoC)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:        cfg,
		fuelCell:   fc,
		battery:    batt,
		compressor: comp,
		manifold:   mani,
		oxygen:     control.NewOxygen(cfg.OxygenGain, cfg.OxygenSetpoint),
		airSupply:  air,
		thermal:    thermal,
		chargeMode: mode,
	}
	e.last = Snapshot{
		FuelCell:   fc.State(),
		Battery:    batt.State(),
		Compressor: comp.State(),
		Manifold:   mani.State(),
	}
	return e, nil
}

// AttachActuator wires the cooling output. The thermal latch remains the
// sole writer.
func (e *Engine) AttachActuator(a Actuator) { e.actuator = a }

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Snapshot returns the last committed snapshot.
func (e *Engine) Snapshot() Snapshot { return e.last }

// Step advances the whole plant by dt and returns the committed snapshot.
func (e *Engine) Step(dt float64) (Snapshot, error) {
	if dt <= 0 {
		return Snapshot{}, fmt.Errorf("%w: got %f", ErrNonPositiveStep, dt)
	}

	// Sensor reads come from the previous snapshot: controllers react to
	// the state the plant had when the step began.
	prevFC := e.fuelCell.State()
	prevPressure := e.manifold.State().Pressure

	charging := e.chargeMode.Update(e.battery.State().SoC)
	discharging := !charging

	motorTorque := e.airSupply.MotorTorque(prevFC.OxygenConcentration)
	loadTorque := e.compressor.LoadTorque(plant.AmbientPressure, prevPressure)
	e.compressor.Update(motorTorque, loadTorque, dt)

	inflow := e.compressor.MassFlow(plant.AmbientPressure, prevPressure)
	e.compressor.SetMassFlow(inflow)
	outflow := prevFC.HydrogenFlow * e.cfg.CathodeDraw
	mani := e.manifold.Update(inflow, outflow, dt, discharging)

	var load float64
	if charging {
		load = e.cfg.ChargeLoad
	} else {
		disturbance := e.cfg.DisturbanceAmp * math.Abs(math.Sin(e.time))
		load = e.cfg.BaseLoad + e.oxygen.LoadAdjustment(prevFC.OxygenConcentration, disturbance)
		if load < 0 {
			load = 0
		}
	}

	// The cooling flag here is the one latched at the end of the previous
	// step: thermal response lags by exactly one step.
	fc := e.fuelCell.Update(load, mani.Pressure, e.coolingActive, dt)

	var netCurrent float64
	if charging {
		netCurrent = -e.cfg.ChargeLoad
	} else {
		netCurrent = load * e.cfg.DischargeSplit
	}
	batt := e.battery.Update(netCurrent, dt)

	cooling := e.thermal.Evaluate(fc.Temperature)
	e.coolingActive = cooling
	if e.actuator != nil {
		e.actuator.Set(cooling)
	}

	e.step++
	e.time += dt

	snap := Snapshot{
		Step:          e.step,
		Time:          e.time,
		FuelCell:      fc,
		Battery:       batt,
		Compressor:    e.compressor.State(),
		Manifold:      mani,
		Load:          load,
		Charging:      charging,
		CoolingActive: cooling,
	}
	e.last = snap

	for _, o := range e.observers {
		o.OnStep(snap)
	}
	return snap, nil
}

// Run drives the engine for the given number of steps, checking for
// cancellation between steps. The history of committed snapshots is
// returned even on early exit.
func (e *Engine) Run(ctx context.Context, steps int, dt float64) ([]Snapshot, error) {
	history := make([]Snapshot, 0, steps)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return history, ctx.Err()
		default:
		}
		snap, err := e.Step(dt)
		if err != nil {
			return history, err
		}
		history = append(history, snap)
	}
	return history, nil
}
