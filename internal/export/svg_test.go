package export

import (
	"strings"
	"testing"
)

func TestSeriesToSVG(t *testing.T) {
	times := []float64{0, 0.5, 1.0, 1.5}
	values := []float64{25, 27, 29, 31}

	svg := SeriesToSVG(times, values, 400, 200, "temperature")
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("expected xml header")
	}
	if !strings.Contains(svg, "temperature") {
		t.Error("expected label text")
	}
	if !strings.Contains(svg, "<path") {
		t.Error("expected a path element")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected closing svg tag")
	}
}

func TestSeriesToSVGDegenerate(t *testing.T) {
	if svg := SeriesToSVG([]float64{0}, []float64{1}, 400, 200, "x"); svg != "" {
		t.Error("expected empty output for a single sample")
	}
	if svg := SeriesToSVG([]float64{0, 1}, []float64{1}, 400, 200, "x"); svg != "" {
		t.Error("expected empty output for mismatched lengths")
	}
}
