package control

import "fmt"

const (
	DefaultCoolingOnTemp  = 44.0 // [degC]
	DefaultCoolingOffTemp = 40.0 // [degC]
)

// Thermal is a two-state cooling latch. It arms above the high threshold
// and disarms only below the low threshold; inside the band the previous
// state holds, so the actuator never chatters at the boundary.
type Thermal struct {
	onTemp  float64
	offTemp float64
	cooling bool
}

func NewThermal(onTemp, offTemp float64) (*Thermal, error) {
	if offTemp >= onTemp {
		return nil, fmt.Errorf("control: cooling off threshold %f must be below on threshold %f", offTemp, onTemp)
	}
	return &Thermal{onTemp: onTemp, offTemp: offTemp}, nil
}

// Evaluate feeds the latch a temperature reading and reports whether the
// cooling actuator should be active.
func (t *Thermal) Evaluate(temperature float64) bool {
	if temperature > t.onTemp {
		t.cooling = true
	} else if temperature < t.offTemp {
		t.cooling = false
	}
	return t.cooling
}

// Cooling reports the latch state without a new reading.
func (t *Thermal) Cooling() bool { return t.cooling }
