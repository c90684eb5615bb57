package control

import "testing"

func TestPIDProportionalResponse(t *testing.T) {
	pid, err := NewPID(2.0, 0.0, 0.0, 0.5)
	if err != nil {
		t.Fatalf("new pid: %v", err)
	}

	u := pid.Compute(1.0, 0.5)
	if u != 1.0 {
		t.Errorf("expected pure P output 1.0, got %f", u)
	}
}

func TestPIDIntegralAccumulates(t *testing.T) {
	pid, err := NewPID(0.0, 1.0, 0.0, 0.5)
	if err != nil {
		t.Fatalf("new pid: %v", err)
	}

	u1 := pid.Compute(1.0, 0.0)
	u2 := pid.Compute(1.0, 0.0)
	if u2 <= u1 {
		t.Errorf("integral term should accumulate: %f then %f", u1, u2)
	}

	pid.Reset()
	if u := pid.Compute(1.0, 0.0); u != u1 {
		t.Errorf("after reset expected %f, got %f", u1, u)
	}
}

func TestPIDRejectsBadInterval(t *testing.T) {
	if _, err := NewPID(1, 0, 0, 0); err == nil {
		t.Error("expected error for zero sample interval")
	}
}

func TestAirSupplyTorqueClamped(t *testing.T) {
	as, err := NewAirSupply(100.0, 0, 0, 0.5, DefaultO2Target, DefaultMaxMotorTorque)
	if err != nil {
		t.Fatalf("new air supply: %v", err)
	}

	if torque := as.MotorTorque(0.0); torque != DefaultMaxMotorTorque {
		t.Errorf("starved cathode should saturate torque at %f, got %f", DefaultMaxMotorTorque, torque)
	}
	if torque := as.MotorTorque(2.0); torque != 0 {
		t.Errorf("oversupplied cathode should command zero torque, got %f", torque)
	}
}

func TestOxygenLoadAdjustment(t *testing.T) {
	o := NewOxygen(0.5, 0.9)

	if delta := o.LoadAdjustment(0.9, 0); delta != 0 {
		t.Errorf("at setpoint expected zero delta, got %f", delta)
	}
	if delta := o.LoadAdjustment(0.4, 0); delta <= 0 {
		t.Errorf("starved cathode should raise load, got %f", delta)
	}
	if delta := o.LoadAdjustment(0.9, 0.25); delta != 0.25 {
		t.Errorf("disturbance should pass through, got %f", delta)
	}
}

func TestThermalLatchHysteresis(t *testing.T) {
	th, err := NewThermal(44.0, 40.0)
	if err != nil {
		t.Fatalf("new thermal: %v", err)
	}

	if th.Evaluate(43.0) {
		t.Error("latch should stay idle below the on threshold")
	}
	if !th.Evaluate(44.5) {
		t.Error("latch should arm above 44")
	}
	if !th.Evaluate(42.0) {
		t.Error("latch should hold inside the band")
	}
	if th.Evaluate(39.5) {
		t.Error("latch should disarm below 40")
	}
	if th.Evaluate(42.0) {
		t.Error("latch should stay idle inside the band after disarming")
	}
}

func TestThermalRejectsInvertedThresholds(t *testing.T) {
	if _, err := NewThermal(40.0, 44.0); err == nil {
		t.Error("expected error for off threshold above on threshold")
	}
}

func TestChargeModeHysteresis(t *testing.T) {
	cm, err := NewChargeMode(65.0, 75.0)
	if err != nil {
		t.Fatalf("new charge mode: %v", err)
	}

	if cm.Update(100.0) {
		t.Error("full battery should discharge")
	}
	if cm.Update(70.0) {
		t.Error("mode should hold discharging inside the band")
	}
	if !cm.Update(65.0) {
		t.Error("should switch to charging at the lower threshold")
	}
	if !cm.Update(70.0) {
		t.Error("mode should hold charging inside the band")
	}
	if cm.Update(75.0) {
		t.Error("should switch to discharging at the upper threshold")
	}
}

func TestChargeModeRejectsInvertedThresholds(t *testing.T) {
	if _, err := NewChargeMode(75.0, 65.0); err == nil {
		t.Error("expected error for inverted thresholds")
	}
}
