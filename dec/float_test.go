package dec

import (
	"math"
	"testing"
)

var setFloat64Tests = [...]struct {
	f   float64
	out string
}{
	{0, "0"},
	{1, "1"},
	{-2.5, "-2.5"},
	{0.125, "0.125"},
	{1 << 60, "1152921504606846976"},
	{12.345, "12.3450000000000006394884621840901672840118408203125"},
	{9.995, "9.9949999999999992184029906638897955417633056640625"},
}

func TestSetFloat64(t *testing.T) {
	for i, tt := range setFloat64Tests {
		got := new(Dec).SetFloat64(tt.f).String()
		if got != tt.out {
			t.Errorf("#%d SetFloat64(%v) got %s; expected %s", i, tt.f, got, tt.out)
		}
	}
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if z := new(Dec).SetFloat64(f); z != nil {
			t.Errorf("SetFloat64(%v) got %s; expected nil", f, z)
		}
	}
}

func TestFloat64RoundTrip(t *testing.T) {
	for i, f := range []float64{
		0, 1, -1, 0.1, 1.0 / 3, math.Pi, 1e300, -1e-300,
		math.MaxFloat64, math.SmallestNonzeroFloat64, 5e-324, 2.2250738585072014e-308,
	} {
		x := new(Dec).SetFloat64(f)
		got, exact := x.Float64()
		if got != f || !exact {
			t.Errorf("#%d Float64(SetFloat64(%v)) got %v (exact %v)", i, f, got, exact)
		}
	}
}

func TestFloat64Limits(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1e309", math.Inf(1)},
		{"-1e400", math.Inf(-1)},
		{"1e-400", 0},
		{"2e-324", 0},
		{"3e-324", 5e-324},
		{"1.7976931348623157e308", math.MaxFloat64},
		{"0.1", 0.1},
		{"123456789012345678901234567890", 1.2345678901234568e29},
	}
	for i, tt := range tests {
		x, ok := new(Dec).SetString(tt.in)
		if !ok {
			t.Fatalf("#%d SetString(%q) failed", i, tt.in)
		}
		got, _ := x.Float64()
		if got != tt.want {
			t.Errorf("#%d Float64(%s) got %v; expected %v", i, tt.in, got, tt.want)
		}
	}
	neg, _ := new(Dec).SetString("-1e-999")
	if got, _ := neg.Float64(); got != 0 || !math.Signbit(got) {
		t.Errorf("Float64(-1e-999) got %v; expected -0", got)
	}
}

func TestFloat32(t *testing.T) {
	x, _ := new(Dec).SetString("0.1")
	if got, _ := x.Float32(); got != float32(0.1) {
		t.Errorf("Float32(0.1) got %v", got)
	}
	x, _ = new(Dec).SetString("1e39")
	if got, _ := x.Float32(); !math.IsInf(float64(got), 1) {
		t.Errorf("Float32(1e39) got %v; expected +Inf", got)
	}
}

func TestExponent(t *testing.T) {
	tests := []struct {
		in  string
		exp int
	}{
		{"0", 0},
		{"1", 0},
		{"9.99", 0},
		{"10", 1},
		{"0.001", -3},
		{"0.00999", -3},
		{"-12345.6", 4},
		{"1e100", 100},
	}
	for i, tt := range tests {
		x, _ := new(Dec).SetString(tt.in)
		if got := x.Exponent(); got != tt.exp {
			t.Errorf("#%d Exponent(%s) got %d; expected %d", i, tt.in, got, tt.exp)
		}
	}
}

func TestDecText(t *testing.T) {
	x, _ := new(Dec).SetString("-0.0450")
	b, err := x.MarshalText()
	if err != nil || string(b) != "-0.0450" {
		t.Fatalf("MarshalText got %q, %v", b, err)
	}
	var y Dec
	if err := y.UnmarshalText(b); err != nil || cmpDec(&y, x) != 0 || y.Scale() != 4 {
		t.Fatalf("UnmarshalText got %s (scale %d), %v", &y, y.Scale(), err)
	}
	if err := y.UnmarshalText([]byte("1.2.3")); err == nil {
		t.Errorf("UnmarshalText(1.2.3) expected error")
	}
}
