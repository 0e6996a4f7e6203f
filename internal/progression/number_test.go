package progression

import (
	"errors"
	"testing"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"10", 10, true},
		{" 10 ", 10, true},
		{"-3", -3, true},
		{"+3", 3, true},
		{"0.5", 0.5, true},
		{".5", 0.5, true},
		{"0,5", 0.5, true},
		{"-13.5", -13.5, true},
		{"1e2", 100, true},
		{"1/2", 0.5, true},
		{"-3/2", -1.5, true},
		{" 5 / 8 ", 0.625, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"10abc", 0, false},
		{"1/0", 0, false},
		{"1/", 0, false},
		{"1,000.5", 0, false},
		{"inf", 0, false},
		{"NaN", 0, false},
		{"0x10", 0, false},
		{"1e400", 0, false},
	}

	for _, tc := range tests {
		got, err := ParseNumber(tc.input)
		if tc.ok {
			if err != nil {
				t.Errorf("ParseNumber(%q) error: %v", tc.input, err)
				continue
			}
			if got != tc.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tc.input, got, tc.want)
			}
			continue
		}
		if err == nil {
			t.Errorf("ParseNumber(%q) = %v, want error", tc.input, got)
		} else if !errors.Is(err, ErrInvalidNumber) {
			t.Errorf("ParseNumber(%q) error %v does not wrap ErrInvalidNumber", tc.input, err)
		}
	}
}

func TestRound15(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.1 + 0.2, 0.3},
		{0, 0},
		{16, 16},
		{-13.5, -13.5},
		{1.1 * 1.1 * 1.1, 1.331},
	}
	for _, tc := range tests {
		if got := Round15(tc.in); got != tc.want {
			t.Errorf("Round15(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatNumber_RoundTrips(t *testing.T) {
	for _, v := range []float64{4, -3, 0.5, 0.625, 40.5, 60.75, -162} {
		s := FormatNumber(v)
		got, err := ParseNumber(s)
		if err != nil || got != v {
			t.Errorf("FormatNumber(%v) = %q, parses back to %v (%v)", v, s, got, err)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"PA", KindArithmetic, true},
		{"arithmetic", KindArithmetic, true},
		{" a ", KindArithmetic, true},
		{"pg", KindGeometric, true},
		{"Geometric", KindGeometric, true},
		{"", KindUnset, false},
		{"harmonic", KindUnset, false},
	}
	for _, tc := range tests {
		got, ok := ParseKind(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseKind(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSlot(t *testing.T) {
	zero := Visible(0)
	if v, ok := zero.Value(); !ok || v != 0 {
		t.Errorf("Visible(0).Value() = (%v, %v), want (0, true)", v, ok)
	}
	if zero.IsHidden() {
		t.Error("Visible(0) reported hidden")
	}
	if !Hidden().IsHidden() {
		t.Error("Hidden() not hidden")
	}
	if Hidden().String() != "?" {
		t.Errorf("Hidden().String() = %q", Hidden().String())
	}
}
