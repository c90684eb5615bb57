package plant

import "fmt"

const (
	AmbientPressure       = 101325.0 // [Pa]
	TargetPressure        = 380000.0 // cathode supply target, 4 bar [Pa]
	DefaultManifoldVolume = 0.1      // [m^3]
	DefaultManifoldTemp   = 300.0    // [K]
	gasConstantAir        = 287.0    // [J/(kg*K)]

	defaultLeakGain          = 0.05
	defaultVentGainCharge    = 0.05
	defaultVentGainDischarge = 0.1
	defaultCtrlGainCharge    = 0.1
	defaultCtrlGainDischarge = 0.2
)

// ManifoldState is the observable state of the cathode-side air manifold.
type ManifoldState struct {
	Pressure float64 // [Pa]
}

type ManifoldParams struct {
	Volume      float64 // [m^3]
	Temperature float64 // [K]

	// Per-second pressure relief gains. The discharge-mode gains are
	// stronger: air supply tracks overall system load state.
	LeakGain          float64
	VentGainCharge    float64
	VentGainDischarge float64
	CtrlGainCharge    float64
	CtrlGainDischarge float64
}

func DefaultManifoldParams() ManifoldParams {
	return ManifoldParams{
		Volume:            DefaultManifoldVolume,
		Temperature:       DefaultManifoldTemp,
		LeakGain:          defaultLeakGain,
		VentGainCharge:    defaultVentGainCharge,
		VentGainDischarge: defaultVentGainDischarge,
		CtrlGainCharge:    defaultCtrlGainCharge,
		CtrlGainDischarge: defaultCtrlGainDischarge,
	}
}

// Manifold models the air cavity between compressor and cathode inlet as a
// lumped volume under the ideal gas law, with a baseline leak, an
// over-target vent and a proportional relief term.
type Manifold struct {
	params ManifoldParams
	state  ManifoldState
}

func NewManifold(params ManifoldParams, initialPressure float64) (*Manifold, error) {
	if params.Volume <= 0 {
		return nil, fmt.Errorf("plant: manifold volume must be positive, got %f", params.Volume)
	}
	if params.Temperature <= 0 {
		return nil, fmt.Errorf("plant: manifold temperature must be positive, got %f", params.Temperature)
	}
	if initialPressure < AmbientPressure {
		initialPressure = AmbientPressure
	}
	return &Manifold{params: params, state: ManifoldState{Pressure: initialPressure}}, nil
}

func (m *Manifold) State() ManifoldState { return m.state }

// Update advances the manifold pressure by dt given the compressor inflow
// and the cathode consumption outflow. Discharge mode selects the stronger
// vent and relief gains.
func (m *Manifold) Update(inflow, outflow, dt float64, discharging bool) ManifoldState {
	p := m.params
	s := &m.state

	dMass := (gasConstantAir * p.Temperature / p.Volume) * (inflow - outflow) * dt
	dLeak := p.LeakGain * (s.Pressure - AmbientPressure) * dt

	var dVent, dCtrl float64
	if s.Pressure > TargetPressure {
		excess := s.Pressure - TargetPressure
		vent, ctrl := p.VentGainCharge, p.CtrlGainCharge
		if discharging {
			vent, ctrl = p.VentGainDischarge, p.CtrlGainDischarge
		}
		dVent = vent * excess * dt
		dCtrl = ctrl * excess * dt
	}

	s.Pressure += dMass - dLeak - dVent - dCtrl
	if s.Pressure < AmbientPressure {
		s.Pressure = AmbientPressure
	}
	return *s
}
