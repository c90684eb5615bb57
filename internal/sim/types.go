package sim

import (
	"errors"

	"github.com/salcedoinaki/fcsim/internal/plant"
)

// Domain errors for simulation operations.
var (
	// ErrNonPositiveStep indicates a zero or negative time increment.
	ErrNonPositiveStep = errors.New("sim: time step must be positive")

	// ErrInvalidConfig indicates a configuration rejected at construction.
	ErrInvalidConfig = errors.New("sim: invalid configuration")
)

// Snapshot is the flat read-only record of the whole plant after one step,
// plus the controller-derived load and the actuator flags. It is the only
// thing collaborators (console, TUI, HTTP, telemetry) ever see.
type Snapshot struct {
	Step int     `json:"step"`
	Time float64 `json:"time"`

	FuelCell   plant.FuelCellState   `json:"fuel_cell"`
	Battery    plant.BatteryState    `json:"battery"`
	Compressor plant.CompressorState `json:"compressor"`
	Manifold   plant.ManifoldState   `json:"manifold"`

	Load          float64 `json:"load"`
	Charging      bool    `json:"charging"`
	CoolingActive bool    `json:"cooling_active"`
}

// Observer receives every committed snapshot. Observers must not block:
// they run inline with the step.
type Observer interface {
	OnStep(snap Snapshot)
}

// Metric is an observer that reduces a run to a single value.
type Metric interface {
	Name() string
	Observe(snap Snapshot)
	Value() float64
	Reset()
}

// Actuator is the digital output the thermal manager drives. The engine is
// its sole writer.
type Actuator interface {
	Set(active bool)
	Active() bool
}
