package control

import "fmt"

const (
	DefaultChargeBelowSoC    = 65.0
	DefaultDischargeAboveSoC = 75.0
)

// ChargeMode switches the battery between charging and discharging with a
// hysteresis band: charging starts at or below the lower SoC threshold and
// ends at or above the upper one. Between the thresholds the previous mode
// holds.
type ChargeMode struct {
	lower    float64
	upper    float64
	charging bool
}

func NewChargeMode(lower, upper float64) (*ChargeMode, error) {
	if lower >= upper {
		return nil, fmt.Errorf("control: charge threshold %f must be below discharge threshold %f", lower, upper)
	}
	return &ChargeMode{lower: lower, upper: upper}, nil
}

// Update feeds the switch the current SoC and reports whether the battery
// should be charging.
func (c *ChargeMode) Update(soc float64) bool {
	if c.charging {
		if soc >= c.upper {
			c.charging = false
		}
	} else {
		if soc <= c.lower {
			c.charging = true
		}
	}
	return c.charging
}

// Charging reports the current mode.
func (c *ChargeMode) Charging() bool { return c.charging }
