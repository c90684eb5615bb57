package plant

import "testing"

func TestCompressorSpinUp(t *testing.T) {
	c, err := NewCompressor(DefaultCompressorParams())
	if err != nil {
		t.Fatalf("new compressor: %v", err)
	}

	s := c.Update(1.0, 0.0, 0.5)
	if s.Speed <= 0 {
		t.Errorf("expected positive speed after motor torque, got %f", s.Speed)
	}
}

func TestCompressorSpeedNeverNegative(t *testing.T) {
	c, err := NewCompressor(DefaultCompressorParams())
	if err != nil {
		t.Fatalf("new compressor: %v", err)
	}

	// Sustained negative net torque must stall at zero, not reverse.
	c.Update(1.0, 0.0, 0.5)
	for i := 0; i < 20; i++ {
		s := c.Update(-2.0, 1.0, 0.5)
		if s.Speed < 0 {
			t.Fatalf("step %d: speed went negative: %f", i, s.Speed)
		}
	}
	if s := c.State(); s.Speed != 0 {
		t.Errorf("expected stalled compressor, got speed %f", s.Speed)
	}
}

func TestCompressorFlowDropsWithPressureRatio(t *testing.T) {
	c, err := NewCompressor(DefaultCompressorParams())
	if err != nil {
		t.Fatalf("new compressor: %v", err)
	}
	c.Update(5.0, 0.0, 1.0)

	low := c.MassFlow(AmbientPressure, AmbientPressure)
	high := c.MassFlow(AmbientPressure, TargetPressure)
	if high >= low {
		t.Errorf("flow should drop with pressure ratio: %f >= %f", high, low)
	}
}

func TestCompressorLoadTorqueTracksFlow(t *testing.T) {
	c, err := NewCompressor(DefaultCompressorParams())
	if err != nil {
		t.Fatalf("new compressor: %v", err)
	}
	c.Update(5.0, 0.0, 1.0)

	flow := c.MassFlow(AmbientPressure, TargetPressure)
	torque := c.LoadTorque(AmbientPressure, TargetPressure)
	if torque != DefaultTorquePerFlow*flow {
		t.Errorf("load torque %f should be %f times mass flow %f", torque, DefaultTorquePerFlow, flow)
	}
}

func TestCompressorRejectsBadInertia(t *testing.T) {
	p := DefaultCompressorParams()
	p.Inertia = -0.1
	if _, err := NewCompressor(p); err == nil {
		t.Error("expected error for negative inertia")
	}
}
