package extractor

import (
	"math"
	"testing"
)

func TestMeasurementConversions(t *testing.T) {
	if Inch(1) != 914400 {
		t.Errorf("1 inch = %g EMU, expected 914400", Inch(1))
	}
	if EMUToPoint(Inch(1)) != 72 {
		t.Errorf("1 inch = %g pt, expected 72", EMUToPoint(Inch(1)))
	}
	if EMUToPixel(Inch(1)) != 96 {
		t.Errorf("1 inch = %g px, expected 96", EMUToPixel(Inch(1)))
	}
}

func TestUnitFactorMatchesConversions(t *testing.T) {
	tests := []struct {
		unit Unit
		want float64
	}{
		{UnitEMU, 1},
		{Unit(""), 1},
		{UnitPoint, EMUToPoint(1)},
		{UnitPixel, EMUToPixel(1)},
	}
	for _, tc := range tests {
		got, err := tc.unit.factor()
		if err != nil {
			t.Errorf("factor(%q): %v", tc.unit, err)
			continue
		}
		if got != tc.want {
			t.Errorf("factor(%q) = %g, want %g", tc.unit, got, tc.want)
		}
	}
}

func TestClampEMU(t *testing.T) {
	if Inch(math.MaxFloat64) != maxEMU {
		t.Error("oversized value not clamped")
	}
	if Inch(-math.MaxFloat64) != -maxEMU {
		t.Error("oversized negative value not clamped")
	}
}
