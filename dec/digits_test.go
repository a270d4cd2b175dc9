package dec

import "testing"

// Expected strings match the output of a C library printf for the same
// float64 values and conversions.
var floatDigitsTests = [...]struct {
	f       float64
	fixed2  string // %.2f
	sci3    string // %.3e
	general string // %g
	altGen  string // %#g
	fixed0  string // %.0f
	sci0    string // %.0e
}{
	{0, "0.00", "0.000e+00", "0", "0.00000", "0", "0e+00"},
	{0.5, "0.50", "5.000e-01", "0.5", "0.500000", "0", "5e-01"},
	{1.5, "1.50", "1.500e+00", "1.5", "1.50000", "2", "2e+00"},
	{2.5, "2.50", "2.500e+00", "2.5", "2.50000", "2", "2e+00"},
	{12.345, "12.35", "1.235e+01", "12.345", "12.3450", "12", "1e+01"},
	{9.995, "9.99", "9.995e+00", "9.995", "9.99500", "10", "1e+01"},
	{9.9999, "10.00", "1.000e+01", "9.9999", "9.99990", "10", "1e+01"},
	{0.1, "0.10", "1.000e-01", "0.1", "0.100000", "0", "1e-01"},
	{123456.789, "123456.79", "1.235e+05", "123457", "123457.", "123457", "1e+05"},
	{1e-05, "0.00", "1.000e-05", "1e-05", "1.00000e-05", "0", "1e-05"},
	{1e20, "100000000000000000000.00", "1.000e+20", "1e+20", "1.00000e+20", "100000000000000000000", "1e+20"},
	{5e-324, "0.00", "4.941e-324", "4.94066e-324", "4.94066e-324", "0", "5e-324"},
	{1.7976931348623157e308, "179769313486231570814527423731704356798070567525844996598917476803157260780028538760589558632766878171540458953514382464234321326889464182768467546703537516986049910576551282076245490090389328944075868508455133942304583236903222948165808559332123348274797826204144723168738177180919299881250404026184124858368.00", "1.798e+308", "1.79769e+308", "1.79769e+308", "179769313486231570814527423731704356798070567525844996598917476803157260780028538760589558632766878171540458953514382464234321326889464182768467546703537516986049910576551282076245490090389328944075868508455133942304583236903222948165808559332123348274797826204144723168738177180919299881250404026184124858368", "2e+308"},
	{0.000123, "0.00", "1.230e-04", "0.000123", "0.000123000", "0", "1e-04"},
	{999.9996, "1000.00", "1.000e+03", "1000", "1000.00", "1000", "1e+03"},
}

func TestFloatDigits(t *testing.T) {
	r := RoundHalfEven
	for i, tt := range floatDigitsTests {
		x := new(Dec).SetFloat64(tt.f)
		check := func(what, got, want string) {
			if got != want {
				t.Errorf("#%d %s(%v) got %s; expected %s", i, what, tt.f, got, want)
			}
		}
		check("fixed2", FixedDigits(x, 2, r).String(), tt.fixed2)
		check("sci3", SciDigits(x, 3, r).String(), tt.sci3)
		check("general", GeneralDigits(x, 6, false, r).String(), tt.general)
		check("altGen", string(GeneralDigits(x, 6, true, r).Append(nil, true, 'e')), tt.altGen)
		check("fixed0", FixedDigits(x, 0, r).String(), tt.fixed0)
		check("sci0", SciDigits(x, 0, r).String(), tt.sci0)
	}
}

func TestDigitsIncrement(t *testing.T) {
	tests := []struct {
		d    Digits
		want string
		exp  int
	}{
		{Digits{buf: []byte("1234"), point: 2}, "12.35", 0},
		{Digits{buf: []byte("999"), point: 1}, "10.00", 0},
		{Digits{buf: []byte("9"), point: 1}, "10", 0},
		{Digits{buf: []byte("9999"), point: 1, sci: true}, "1.000e+01", 1},
		{Digits{buf: []byte("9999"), point: 1, exp: -1, sci: true}, "1.000e+00", 0},
		{Digits{buf: []byte("9999"), point: 1, exp: -5, sci: true}, "1.000e-04", -4},
		{Digits{buf: []byte("129"), point: 1, exp: 3, sci: true}, "1.30e+03", 3},
	}
	for i, tt := range tests {
		d := tt.d
		d.Increment()
		if got := d.String(); got != tt.want || d.Exp() != tt.exp {
			t.Errorf("#%d Increment got %s (exp %d); expected %s (exp %d)", i, got, d.Exp(), tt.want, tt.exp)
		}
	}
}

func TestDigitsTrimZeros(t *testing.T) {
	tests := []struct {
		d     Digits
		plain string
		alt   string
	}{
		{Digits{buf: []byte("0500"), point: 1}, "0.5", "0.5"},
		{Digits{buf: []byte("1000"), point: 1}, "1", "1."},
		{Digits{buf: []byte("1200"), point: 4}, "1200", "1200."},
		{Digits{buf: []byte("1500"), point: 1, exp: -7, sci: true}, "1.5e-07", "1.5e-07"},
		{Digits{buf: []byte("2000"), point: 1, exp: 120, sci: true}, "2e+120", "2.e+120"},
	}
	for i, tt := range tests {
		d := tt.d
		d.TrimZeros()
		if got := string(d.Append(nil, false, 'e')); got != tt.plain {
			t.Errorf("#%d TrimZeros got %s; expected %s", i, got, tt.plain)
		}
		if got := string(d.Append(nil, true, 'e')); got != tt.alt {
			t.Errorf("#%d TrimZeros with point got %s; expected %s", i, got, tt.alt)
		}
	}
}

func TestDecimalDigits(t *testing.T) {
	tests := []struct {
		in   string
		prec int
		r    Rounder
		want string
	}{
		// decimal literals are exact, so the tie rules show
		{"12.345", 2, RoundHalfUp, "12.35"},
		{"9.995", 2, RoundHalfUp, "10.00"},
		{"0.125", 2, RoundHalfEven, "0.12"},
		{"0.125", 2, RoundHalfUp, "0.13"},
		{"-7.25", 1, RoundHalfEven, "7.2"},
		{"123456789012345678901234567890.5", 0, RoundHalfEven, "123456789012345678901234567890"},
		{"1e3", 1, RoundHalfEven, "1000.0"},
		{"0.0000001", 3, RoundHalfEven, "0.000"},
	}
	for i, tt := range tests {
		x, ok := new(Dec).SetString(tt.in)
		if !ok {
			t.Fatalf("#%d SetString(%q) failed", i, tt.in)
		}
		if got := FixedDigits(x, tt.prec, tt.r).String(); got != tt.want {
			t.Errorf("#%d FixedDigits(%s, %d) got %s; expected %s", i, tt.in, tt.prec, got, tt.want)
		}
	}
}

func TestDirectedDigits(t *testing.T) {
	tests := []struct {
		in  string
		r   Rounder
		out string
	}{
		{"1.25", RoundFloor, "1.2"},
		{"1.25", RoundCeil, "1.3"},
		{"-1.25", RoundFloor, "1.3"},
		{"-1.25", RoundCeil, "1.2"},
		{"-0.01", RoundFloor, "0.1"},
		{"-0.01", RoundCeil, "0.0"},
		{"-1.25", RoundUp, "1.3"},
		{"-1.25", RoundDown, "1.2"},
	}
	for i, tt := range tests {
		x, _ := new(Dec).SetString(tt.in)
		if got := FixedDigits(x, 1, tt.r).String(); got != tt.out {
			t.Errorf("#%d FixedDigits(%s, 1) got %s; expected %s", i, tt.in, got, tt.out)
		}
	}
}
