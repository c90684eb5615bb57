package plant

import (
	"fmt"
	"math"
)

const (
	DefaultCompressorInertia = 0.1   // combined motor + impeller inertia [kg*m^2]
	DefaultFlowConstant      = 0.001 // mass flow per unit speed [kg/rad]
	DefaultFlowDecay         = 1.0   // flow falloff vs pressure ratio
	DefaultTorquePerFlow     = 50.0  // retarding torque per unit flow [N*m/(kg/s)]
)

// CompressorState is the observable state of the air compressor.
type CompressorState struct {
	Speed    float64 // angular speed [rad/s]
	MassFlow float64 // delivered air flow [kg/s]
}

type CompressorParams struct {
	Inertia       float64
	FlowConstant  float64
	FlowDecay     float64
	TorquePerFlow float64
}

func DefaultCompressorParams() CompressorParams {
	return CompressorParams{
		Inertia:       DefaultCompressorInertia,
		FlowConstant:  DefaultFlowConstant,
		FlowDecay:     DefaultFlowDecay,
		TorquePerFlow: DefaultTorquePerFlow,
	}
}

// Compressor models the air compressor as a single rotating inertia with a
// simplified exponential compressor map.
type Compressor struct {
	params CompressorParams
	state  CompressorState
}

func NewCompressor(params CompressorParams) (*Compressor, error) {
	if params.Inertia <= 0 {
		return nil, fmt.Errorf("plant: compressor inertia must be positive, got %f", params.Inertia)
	}
	return &Compressor{params: params}, nil
}

func (c *Compressor) State() CompressorState { return c.state }

// MassFlow evaluates the compressor map at the current speed for the given
// inlet and outlet pressures. Higher pressure ratio chokes the flow.
func (c *Compressor) MassFlow(inletPressure, outletPressure float64) float64 {
	ratio := outletPressure / inletPressure
	return c.state.Speed * c.params.FlowConstant * math.Exp(-c.params.FlowDecay*(ratio-1.0))
}

// LoadTorque is the retarding torque the air column exerts on the impeller,
// proportional to the delivered mass flow.
func (c *Compressor) LoadTorque(inletPressure, outletPressure float64) float64 {
	return c.params.TorquePerFlow * c.MassFlow(inletPressure, outletPressure)
}

// Update integrates the torque balance over dt. Speed never goes negative:
// the impeller stalls rather than spinning backwards.
func (c *Compressor) Update(motorTorque, loadTorque, dt float64) CompressorState {
	s := &c.state
	s.Speed += dt * (motorTorque - loadTorque) / c.params.Inertia
	if s.Speed < 0 {
		s.Speed = 0
	}
	return *s
}

// SetMassFlow records the flow delivered this step so the snapshot reflects
// the value the manifold actually received.
func (c *Compressor) SetMassFlow(flow float64) { c.state.MassFlow = flow }
