package plant

import (
	"fmt"
	"math"
)

const (
	DefaultBatteryCapacity = 250.0 // [A*s]
	DefaultBatteryBaseOCV  = 47.0  // [V]
	DefaultBatteryOCVLin   = 0.03  // [V per %SoC]
	DefaultBatteryOCVQuad  = 0.0003
	DefaultBatteryRes      = 0.1  // internal resistance [Ohm]
	DefaultBatteryAmbient  = 25.0 // [degC]
	DefaultBatteryHeating  = 2.0  // [degC per A of net current]
)

// BatteryState is the observable state of the buffer battery. Current is
// signed: positive means discharge.
type BatteryState struct {
	SoC         float64 // state of charge [0, 100]
	Voltage     float64 // terminal voltage [V]
	Current     float64 // net current [A], positive = discharge
	Temperature float64 // [degC]
}

type BatteryParams struct {
	Capacity    float64 // [A*s]
	BaseOCV     float64
	OCVLin      float64
	OCVQuad     float64
	InternalRes float64
	AmbientTemp float64
	HeatPerAmp  float64
}

func DefaultBatteryParams() BatteryParams {
	return BatteryParams{
		Capacity:    DefaultBatteryCapacity,
		BaseOCV:     DefaultBatteryBaseOCV,
		OCVLin:      DefaultBatteryOCVLin,
		OCVQuad:     DefaultBatteryOCVQuad,
		InternalRes: DefaultBatteryRes,
		AmbientTemp: DefaultBatteryAmbient,
		HeatPerAmp:  DefaultBatteryHeating,
	}
}

// Battery models the buffer battery with a coulomb-counting SoC and a
// quadratic OCV curve.
type Battery struct {
	params BatteryParams
	state  BatteryState
}

func NewBattery(params BatteryParams, initialSoC float64) (*Battery, error) {
	if params.Capacity <= 0 {
		return nil, fmt.Errorf("plant: battery capacity must be positive, got %f", params.Capacity)
	}
	if initialSoC < 0 || initialSoC > 100 {
		return nil, fmt.Errorf("plant: initial SoC must be in [0,100], got %f", initialSoC)
	}
	b := &Battery{params: params}
	b.state.SoC = initialSoC
	b.state.Temperature = params.AmbientTemp
	b.state.Voltage = b.ocv(initialSoC)
	return b, nil
}

func (b *Battery) State() BatteryState { return b.state }

func (b *Battery) ocv(soc float64) float64 {
	return b.params.BaseOCV + b.params.OCVLin*soc + b.params.OCVQuad*soc*soc
}

// Update integrates the net current over dt. Positive current discharges,
// negative charges. SoC is clamped to its physical bounds.
func (b *Battery) Update(netCurrent, dt float64) BatteryState {
	p := b.params
	s := &b.state

	s.SoC -= netCurrent * dt * 100.0 / p.Capacity
	s.SoC = clamp(s.SoC, 0, 100)

	s.Voltage = b.ocv(s.SoC) - netCurrent*p.InternalRes
	s.Current = netCurrent
	s.Temperature = p.AmbientTemp + p.HeatPerAmp*math.Abs(netCurrent)

	return *s
}
