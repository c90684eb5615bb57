package viz

import "strings"

// Braille cells pack 2x4 dots, unicode offset 0x2800.
var dotMask = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// PhasePlot draws one series against another as a braille scatter, for
// things like the polarization curve (voltage over current).
func PhasePlot(xs, ys []float64, width, height int) string {
	if len(xs) == 0 || len(xs) != len(ys) {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if height < 6 {
		height = 6
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = 0x2800
		}
	}

	xLo, xHi := bounds(xs)
	yLo, yHi := bounds(ys)
	xSpan := xHi - xLo
	ySpan := yHi - yLo
	if xSpan == 0 {
		xSpan = 1
	}
	if ySpan == 0 {
		ySpan = 1
	}

	subW := width * 2
	subH := height * 4
	for i := range xs {
		px := int((xs[i] - xLo) / xSpan * float64(subW-1))
		py := subH - 1 - int((ys[i]-yLo)/ySpan*float64(subH-1))
		col, row := px/2, py/4
		if col < 0 || col >= width || row < 0 || row >= height {
			continue
		}
		grid[row][col] |= dotMask[py%4][px%2]
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func bounds(vs []float64) (lo, hi float64) {
	lo, hi = vs[0], vs[0]
	for _, v := range vs {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
