// Package control provides the feedback controllers closing the loop around
// the plant models: a scalar PID, the air-supply torque controller built on
// it, the stateless oxygen load regulator, the hysteresis thermal manager
// and the battery charge-mode switch.
package control
