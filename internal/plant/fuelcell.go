package plant

import (
	"fmt"
	"math"
)

const (
	// Polarization curve parameters.
	DefaultBaseOCV         = 60.0 // open-circuit voltage at ambient [V]
	DefaultTempCoefficient = 0.05 // OCV drop per degree above ambient [V/degC]
	DefaultActivationConst = 0.1  // activation loss magnitude [V]
	DefaultExchangeCurrent = 0.2  // exchange current I0 [A]
	DefaultConcentrationK  = 0.08 // concentration loss magnitude [V]
	DefaultLimitingCurrent = 1.5  // current where voltage collapses [A]
	DefaultInternalRes     = 0.1  // membrane resistance at full hydration [Ohm]

	// Thermal and hydration dynamics.
	DefaultThermalMass      = 12.0 // [J/degC]
	DefaultHeatPerAmp       = 55.0 // generated heat per unit load [W/A]
	DefaultPassiveCooling   = 0.7  // convective loss coefficient [W/degC]
	DefaultActiveCooling    = 2.0  // loss coefficient with the fan on [W/degC]
	DefaultAmbientTemp      = 20.0 // [degC]
	DefaultHydrationTau     = 10.0 // hydration relaxation time constant [s]
	DefaultNominalPressure  = 380000.0
	concentrationLossCap    = 0.5
	minLoad                 = 1e-6
	o2StarvationThreshold   = 0.3
	lowHydrationThreshold   = 0.5
	o2StarvationDerate      = 0.85
	lowHydrationDerate      = 0.9
	hydrationFloor, hydCeil = 0.1, 1.0
)

// FuelCellState is the observable state of the stack after an update.
type FuelCellState struct {
	Voltage             float64 // terminal voltage [V]
	Current             float64 // load current [A]
	Temperature         float64 // stack temperature [degC]
	HydrogenFlow        float64 // anode supply flow
	MembraneHydration   float64 // normalized water content [0.1, 1.0]
	OxygenConcentration float64 // fraction of nominal cathode supply [0, 1]
}

// FuelCellParams are the model constants, validated at construction.
type FuelCellParams struct {
	BaseOCV         float64
	TempCoefficient float64
	ActivationConst float64
	ExchangeCurrent float64
	ConcentrationK  float64
	LimitingCurrent float64
	InternalRes     float64
	ThermalMass     float64
	HeatPerAmp      float64
	PassiveCooling  float64
	ActiveCooling   float64
	AmbientTemp     float64
	HydrationTau    float64
	NominalPressure float64
}

func DefaultFuelCellParams() FuelCellParams {
	return FuelCellParams{
		BaseOCV:         DefaultBaseOCV,
		TempCoefficient: DefaultTempCoefficient,
		ActivationConst: DefaultActivationConst,
		ExchangeCurrent: DefaultExchangeCurrent,
		ConcentrationK:  DefaultConcentrationK,
		LimitingCurrent: DefaultLimitingCurrent,
		InternalRes:     DefaultInternalRes,
		ThermalMass:     DefaultThermalMass,
		HeatPerAmp:      DefaultHeatPerAmp,
		PassiveCooling:  DefaultPassiveCooling,
		ActiveCooling:   DefaultActiveCooling,
		AmbientTemp:     DefaultAmbientTemp,
		HydrationTau:    DefaultHydrationTau,
		NominalPressure: DefaultNominalPressure,
	}
}

func (p FuelCellParams) validate() error {
	switch {
	case p.ExchangeCurrent <= 0:
		return fmt.Errorf("plant: exchange current must be positive, got %f", p.ExchangeCurrent)
	case p.LimitingCurrent <= 0:
		return fmt.Errorf("plant: limiting current must be positive, got %f", p.LimitingCurrent)
	case p.ThermalMass <= 0:
		return fmt.Errorf("plant: thermal mass must be positive, got %f", p.ThermalMass)
	case p.HydrationTau <= 0:
		return fmt.Errorf("plant: hydration time constant must be positive, got %f", p.HydrationTau)
	case p.NominalPressure <= 0:
		return fmt.Errorf("plant: nominal pressure must be positive, got %f", p.NominalPressure)
	}
	return nil
}

// FuelCell models the stack with a three-term polarization curve, a
// first-order hydration relaxation and a lumped thermal node.
type FuelCell struct {
	params FuelCellParams
	state  FuelCellState
}

func NewFuelCell(params FuelCellParams, initialTemp float64) (*FuelCell, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &FuelCell{
		params: params,
		state: FuelCellState{
			Voltage:             params.BaseOCV,
			Temperature:         initialTemp,
			HydrogenFlow:        1.0,
			MembraneHydration:   1.0,
			OxygenConcentration: clamp(AmbientPressure/params.NominalPressure, 0, 1),
		},
	}, nil
}

// State returns a copy of the current state.
func (f *FuelCell) State() FuelCellState { return f.state }

// Losses evaluates the polarization losses for a hypothetical load at the
// current hydration level, without mutating state. Exposed for controller
// tuning and tests.
func (f *FuelCell) Losses(load float64) (activation, ohmic, concentration float64) {
	p := f.params
	if load < minLoad {
		load = minLoad
	}
	activation = p.ActivationConst * math.Log(1.0+load/p.ExchangeCurrent)
	ohmic = load * p.InternalRes / f.state.MembraneHydration
	if load >= p.LimitingCurrent {
		concentration = concentrationLossCap
	} else {
		concentration = -p.ConcentrationK * math.Log(1.0-load/p.LimitingCurrent)
		if concentration > concentrationLossCap {
			concentration = concentrationLossCap
		}
	}
	return activation, ohmic, concentration
}

// Update advances the stack by dt under the given load, cathode manifold
// pressure and cooling actuator state, and returns the new state.
func (f *FuelCell) Update(load, manifoldPressure float64, coolingActive bool, dt float64) FuelCellState {
	p := f.params
	s := &f.state

	s.Current = load
	s.OxygenConcentration = clamp(manifoldPressure/p.NominalPressure, 0, 1)

	effectiveOCV := p.BaseOCV - p.TempCoefficient*(s.Temperature-p.AmbientTemp)
	vAct, vOhm, vConc := f.Losses(load)
	voltage := effectiveOCV - (vAct + vOhm + vConc)

	// Starvation and dry-membrane derating.
	if s.OxygenConcentration < o2StarvationThreshold {
		voltage *= o2StarvationDerate
	}
	if s.MembraneHydration < lowHydrationThreshold {
		voltage *= lowHydrationDerate
	}
	if voltage < 0 {
		voltage = 0
	}
	s.Voltage = voltage

	s.HydrogenFlow = 1.0 + 0.05*load

	// Hydration relaxes toward a load-dependent target: higher load dries
	// the membrane.
	target := clamp(1.0-load/(2.0*p.LimitingCurrent), lowHydrationThreshold, hydCeil)
	s.MembraneHydration += dt * (target - s.MembraneHydration) / p.HydrationTau
	s.MembraneHydration = clamp(s.MembraneHydration, hydrationFloor, hydCeil)

	cooling := p.PassiveCooling
	if coolingActive {
		cooling = p.ActiveCooling
	}
	s.Temperature += dt * (p.HeatPerAmp*load - cooling*(s.Temperature-p.AmbientTemp)) / p.ThermalMass

	return *s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
