package control

import "fmt"

const (
	DefaultAirSupplyKp     = 0.5
	DefaultAirSupplyKi     = 0.05
	DefaultAirSupplyKd     = 0.05
	DefaultO2Target        = 0.9
	DefaultMaxMotorTorque  = 5.0
)

// AirSupply drives the compressor motor torque from the measured oxygen
// concentration: a falling cathode supply spins the compressor up.
type AirSupply struct {
	pid       *PID
	target    float64
	maxTorque float64
}

func NewAirSupply(kp, ki, kd, dt, targetO2, maxTorque float64) (*AirSupply, error) {
	if maxTorque <= 0 {
		return nil, fmt.Errorf("control: max motor torque must be positive, got %f", maxTorque)
	}
	pid, err := NewPID(kp, ki, kd, dt)
	if err != nil {
		return nil, err
	}
	return &AirSupply{pid: pid, target: targetO2, maxTorque: maxTorque}, nil
}

// MotorTorque computes the commanded torque for the measured oxygen
// concentration, clamped to [0, maxTorque].
func (a *AirSupply) MotorTorque(measuredO2 float64) float64 {
	torque := a.pid.Compute(a.target, measuredO2)
	if torque < 0 {
		return 0
	}
	if torque > a.maxTorque {
		return a.maxTorque
	}
	return torque
}

func (a *AirSupply) Reset() { a.pid.Reset() }
