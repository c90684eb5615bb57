package config

// Presets are named run configurations covering the interesting operating
// regimes. Unset fields fall back to defaults when applied.
var Presets = map[string]*Config{
	"baseline": {
		Dt: 0.5, Steps: 100, Load: 1.0, ChargeLoad: 1.2, DischargeSplit: 0.5,
		InitState: InitStateConfig{SoC: 100.0, Temperature: 25.0, Pressure: 101325.0},
	},
	"hot-start": {
		Dt: 0.5, Steps: 100, Load: 1.0, ChargeLoad: 1.2, DischargeSplit: 0.5,
		InitState: InitStateConfig{SoC: 100.0, Temperature: 50.0, Pressure: 101325.0},
	},
	"charge-cycle": {
		Dt: 0.5, Steps: 400, Load: 1.3, ChargeLoad: 1.2, DischargeSplit: 0.9,
		InitState: InitStateConfig{SoC: 68.0, Temperature: 25.0, Pressure: 101325.0},
	},
	"noisy": {
		Dt: 0.5, Steps: 200, Load: 0.8, ChargeLoad: 1.2, DischargeSplit: 0.5,
		Disturbance: 0.2,
		InitState:   InitStateConfig{SoC: 100.0, Temperature: 25.0, Pressure: 101325.0},
	},
}

// GetPreset returns the named preset merged over the defaults, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Dt = p.Dt
	cfg.Steps = p.Steps
	cfg.Load = p.Load
	cfg.ChargeLoad = p.ChargeLoad
	cfg.DischargeSplit = p.DischargeSplit
	cfg.Disturbance = p.Disturbance
	cfg.InitState = p.InitState
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
