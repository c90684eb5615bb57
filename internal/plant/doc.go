// Package plant provides the physical subsystem models of the fuel-cell
// power plant:
//
//   - [FuelCell]: electrochemical, thermal and hydration state of the stack
//   - [Battery]: charge, voltage and thermal state of the buffer battery
//   - [Compressor]: rotational dynamics of the air compressor
//   - [Manifold]: cathode-side air pressure dynamics
//
// Each model owns a plain numeric state record and advances it in place by
// one fixed time increment per Update call. Coupling between models happens
// only through explicit arguments, never through shared state; the sim
// package owns the update order.
package plant
