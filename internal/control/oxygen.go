package control

const (
	DefaultOxygenGain     = 0.3
	DefaultOxygenSetpoint = 0.9
)

// Oxygen maps the measured oxygen concentration to a load adjustment.
// Purely proportional and stateless: each step reacts to the current
// deviation plus an externally supplied disturbance. Integral or predictive
// regulation (PID, MPC) is future work.
type Oxygen struct {
	Gain     float64
	Setpoint float64
}

func NewOxygen(gain, setpoint float64) *Oxygen {
	return &Oxygen{Gain: gain, Setpoint: setpoint}
}

// LoadAdjustment returns the delta to add to the base load. A starved
// cathode (measured below setpoint) raises the load on the air supply loop.
func (o *Oxygen) LoadAdjustment(measuredO2, disturbance float64) float64 {
	return o.Gain*(o.Setpoint-measuredO2) + disturbance
}
