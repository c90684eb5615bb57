package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/salcedoinaki/fcsim/internal/sim"
)

// PromSink exports the latest snapshot as Prometheus gauges.
type PromSink struct {
	steps    prometheus.Counter
	voltage  prometheus.Gauge
	current  prometheus.Gauge
	temp     prometheus.Gauge
	oxygen   prometheus.Gauge
	soc      prometheus.Gauge
	pressure prometheus.Gauge
	speed    prometheus.Gauge
	cooling  prometheus.Gauge
}

// NewPromSink registers the simulation metrics on the provided registerer.
// If reg is nil the default registerer is used; already-registered
// collectors are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	s := &PromSink{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fcsim_steps_total",
			Help: "Total simulation steps committed",
		}),
		voltage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fcsim_stack_voltage_volts",
			Help: "Fuel cell terminal voltage",
		}),
		current: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fcsim_stack_current_amps",
			Help: "Fuel cell load current",
		}),
		temp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fcsim_stack_temperature_celsius",
			Help: "Fuel cell stack temperature",
		}),
		oxygen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fcsim_oxygen_concentration_ratio",
			Help: "Cathode oxygen concentration as fraction of nominal",
		}),
		soc: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fcsim_battery_soc_percent",
			Help: "Battery state of charge",
		}),
		pressure: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fcsim_manifold_pressure_pascals",
			Help: "Cathode manifold pressure",
		}),
		speed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fcsim_compressor_speed_rad_per_second",
			Help: "Compressor angular speed",
		}),
		cooling: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fcsim_cooling_active",
			Help: "Cooling actuator state (1 active, 0 idle)",
		}),
	}

	collectors := []prometheus.Collector{
		s.steps, s.voltage, s.current, s.temp, s.oxygen, s.soc, s.pressure, s.speed, s.cooling,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

func (s *PromSink) Record(snap sim.Snapshot) error {
	s.steps.Inc()
	s.voltage.Set(snap.FuelCell.Voltage)
	s.current.Set(snap.FuelCell.Current)
	s.temp.Set(snap.FuelCell.Temperature)
	s.oxygen.Set(snap.FuelCell.OxygenConcentration)
	s.soc.Set(snap.Battery.SoC)
	s.pressure.Set(snap.Manifold.Pressure)
	s.speed.Set(snap.Compressor.Speed)
	if snap.CoolingActive {
		s.cooling.Set(1)
	} else {
		s.cooling.Set(0)
	}
	return nil
}
