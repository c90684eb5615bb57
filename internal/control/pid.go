package control

import "fmt"

// PID is a positional PID controller evaluated at a fixed sample interval.
type PID struct {
	Kp float64
	Ki float64
	Kd float64

	dt       float64
	integral float64
	prevErr  float64
	first    bool
}

func NewPID(kp, ki, kd, dt float64) (*PID, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("control: pid sample interval must be positive, got %f", dt)
	}
	return &PID{Kp: kp, Ki: ki, Kd: kd, dt: dt, first: true}, nil
}

// Compute returns the control signal for the given setpoint and measurement.
func (p *PID) Compute(setpoint, measured float64) float64 {
	err := setpoint - measured
	p.integral += err * p.dt

	derivative := 0.0
	if !p.first {
		derivative = (err - p.prevErr) / p.dt
	}
	p.first = false
	p.prevErr = err

	return p.Kp*err + p.Ki*p.integral + p.Kd*derivative
}

// Reset clears integral and derivative state.
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.first = true
}
