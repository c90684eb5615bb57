// Package export renders stored run series to SVG for reports.
package export

import (
	"fmt"
	"strings"
)

// SeriesToSVG draws one time series as an SVG polyline with 10% padding
// around the data bounds.
func SeriesToSVG(times, values []float64, width, height int, label string) string {
	if len(values) < 2 || len(times) != len(values) {
		return ""
	}

	tLo, tHi := times[0], times[len(times)-1]
	vLo, vHi := values[0], values[0]
	for _, v := range values {
		if v < vLo {
			vLo = v
		}
		if v > vHi {
			vHi = v
		}
	}

	tSpan := tHi - tLo
	vSpan := vHi - vLo
	if tSpan == 0 {
		tSpan = 1
	}
	if vSpan == 0 {
		vSpan = 1
	}
	vLo -= vSpan * 0.1
	vHi += vSpan * 0.1
	vSpan = vHi - vLo

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<text x="8" y="16" fill="#888888" font-family="monospace" font-size="12">%s</text>
<path fill="none" stroke="#00d0ff" stroke-width="1.5" d="M`,
		width, height, width, height, label))

	for i := range values {
		x := (times[i] - tLo) / tSpan * float64(width)
		y := float64(height) - (values[i]-vLo)/vSpan*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
