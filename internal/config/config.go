package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/salcedoinaki/fcsim/internal/control"
	"github.com/salcedoinaki/fcsim/internal/sim"
)

const (
	DefaultDt    = 0.5
	DefaultSteps = 100
	DefaultLoad  = 1.0
)

// Config is the yaml-facing view of a simulation run.
type Config struct {
	Dt    float64 `yaml:"dt"`
	Steps int     `yaml:"steps"`

	Load           float64 `yaml:"load"`
	ChargeLoad     float64 `yaml:"charge_load"`
	DischargeSplit float64 `yaml:"discharge_split"`
	Disturbance    float64 `yaml:"disturbance"`

	InitState InitStateConfig `yaml:"init_state"`
	Oxygen    OxygenConfig    `yaml:"oxygen"`
	AirSupply AirSupplyConfig `yaml:"air_supply"`
	Thermal   ThermalConfig   `yaml:"thermal"`
	Battery   BatteryConfig   `yaml:"battery"`

	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type InitStateConfig struct {
	SoC         float64 `yaml:"soc"`
	Temperature float64 `yaml:"temperature"`
	Pressure    float64 `yaml:"pressure"`
}

type OxygenConfig struct {
	Gain     float64 `yaml:"gain"`
	Setpoint float64 `yaml:"setpoint"`
}

type AirSupplyConfig struct {
	Kp        float64 `yaml:"kp"`
	Ki        float64 `yaml:"ki"`
	Kd        float64 `yaml:"kd"`
	TargetO2  float64 `yaml:"target_o2"`
	MaxTorque float64 `yaml:"max_torque"`
}

type ThermalConfig struct {
	CoolingOn  float64 `yaml:"cooling_on"`
	CoolingOff float64 `yaml:"cooling_off"`
}

type BatteryConfig struct {
	ChargeBelow    float64 `yaml:"charge_below"`
	DischargeAbove float64 `yaml:"discharge_above"`
}

type TelemetryConfig struct {
	Influx InfluxConfig `yaml:"influx"`
	MQTT   MQTTConfig   `yaml:"mqtt"`
}

type InfluxConfig struct {
	URL    string `yaml:"url"`
	Token  string `yaml:"token"`
	Org    string `yaml:"org"`
	Bucket string `yaml:"bucket"`
}

type MQTTConfig struct {
	Broker string `yaml:"broker"`
	Topic  string `yaml:"topic"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:             DefaultDt,
		Steps:          DefaultSteps,
		Load:           DefaultLoad,
		ChargeLoad:     1.2,
		DischargeSplit: 0.5,
		Disturbance:    0.0,
		InitState: InitStateConfig{
			SoC:         100.0,
			Temperature: 25.0,
			Pressure:    101325.0,
		},
		Oxygen: OxygenConfig{
			Gain:     control.DefaultOxygenGain,
			Setpoint: control.DefaultOxygenSetpoint,
		},
		AirSupply: AirSupplyConfig{
			Kp:        control.DefaultAirSupplyKp,
			Ki:        control.DefaultAirSupplyKi,
			Kd:        control.DefaultAirSupplyKd,
			TargetO2:  control.DefaultO2Target,
			MaxTorque: control.DefaultMaxMotorTorque,
		},
		Thermal: ThermalConfig{
			CoolingOn:  control.DefaultCoolingOnTemp,
			CoolingOff: control.DefaultCoolingOffTemp,
		},
		Battery: BatteryConfig{
			ChargeBelow:    control.DefaultChargeBelowSoC,
			DischargeAbove: control.DefaultDischargeAboveSoC,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EngineConfig maps the yaml view onto the simulation engine configuration.
func (c *Config) EngineConfig() sim.Config {
	ec := sim.DefaultConfig()
	ec.Dt = c.Dt
	ec.BaseLoad = c.Load
	ec.ChargeLoad = c.ChargeLoad
	ec.DischargeSplit = c.DischargeSplit
	ec.DisturbanceAmp = c.Disturbance
	ec.InitialSoC = c.InitState.SoC
	ec.InitialTemp = c.InitState.Temperature
	ec.InitialPressure = c.InitState.Pressure
	ec.OxygenGain = c.Oxygen.Gain
	ec.OxygenSetpoint = c.Oxygen.Setpoint
	ec.AirKp = c.AirSupply.Kp
	ec.AirKi = c.AirSupply.Ki
	ec.AirKd = c.AirSupply.Kd
	ec.AirTargetO2 = c.AirSupply.TargetO2
	ec.AirMaxTorque = c.AirSupply.MaxTorque
	ec.CoolingOnTemp = c.Thermal.CoolingOn
	ec.CoolingOffTemp = c.Thermal.CoolingOff
	ec.ChargeBelowSoC = c.Battery.ChargeBelow
	ec.DischargeAboveSoC = c.Battery.DischargeAbove
	return ec
}
