// Package analysis extracts frequency content from run histories, mainly
// to spot oscillation in the air supply and thermal loops.
package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/stat"
)

func fft(data []complex128) []complex128 {
	n := len(data)
	if n <= 1 {
		return data
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum returns the one-sided amplitude spectrum of a sampled
// signal and the matching frequency axis in Hz. The mean is removed first
// so the DC bin does not swamp the loop dynamics, and the input is
// zero-padded to a power of two.
func PowerSpectrum(values []float64, dt float64) (freqs, power []float64) {
	if len(values) < 2 || dt <= 0 {
		return nil, nil
	}

	mean := stat.Mean(values, nil)

	n := 1
	for n < len(values) {
		n *= 2
	}
	padded := make([]complex128, n)
	for i, v := range values {
		padded[i] = complex(v-mean, 0)
	}

	coeffs := fft(padded)
	half := n / 2
	freqs = make([]float64, half)
	power = make([]float64, half)
	for i := 0; i < half; i++ {
		freqs[i] = float64(i) / (float64(n) * dt)
		power[i] = cmplx.Abs(coeffs[i])
	}
	return freqs, power
}

// DominantFrequency locates the strongest non-DC component. It returns
// zero when the signal has no usable spectrum.
func DominantFrequency(values []float64, dt float64) float64 {
	freqs, power := PowerSpectrum(values, dt)
	if len(power) < 2 {
		return 0
	}
	best := 1
	for i := 2; i < len(power); i++ {
		if power[i] > power[best] {
			best = i
		}
	}
	return freqs[best]
}
