package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"20", 20, true},
		{"  42", 42, true},
		{"-7", -7, true},
		{"+3", 3, true},
		{"12abc", 12, true},
		{"12.9", 12, true},
		{"0x1A", 26, true},
		{"-0x1a", -26, true},
		{"1e3", 1, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"0x", 0, false},
		{"99999999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseInt(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseInt(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"0.1", 0.1, true},
		{"  2.5kg", 2.5, true},
		{".5", 0.5, true},
		{"-1.5e2", -150, true},
		{"3e", 3, true},
		{"7.", 7, true},
		{"Infinity", math.Inf(1), true},
		{"-Infinity", math.Inf(-1), true},
		{"1e400", math.Inf(1), true},
		{"kg", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFloat(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseFloat(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseFloat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLooseID(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"11", 11, true},
		{" 11 ", 11, true},
		{"11.0", 11, true},
		{"1.1e1", 11, true},
		{"0xB", 11, true},
		{"0b1011", 11, true},
		{"0o13", 11, true},
		{"", 0, true},
		{"11abc", 0, false},
		{"11.5", 0, false},
		{"Infinity", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := LooseID(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("LooseID(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want NullInt
	}{
		{"integer", `20`, IntOf(20)},
		{"zero", `0`, IntOf(0)},
		{"fraction truncates", `20.9`, IntOf(20)},
		{"negative fraction truncates toward zero", `-2.5`, IntOf(-2)},
		{"numeric string", `"15"`, IntOf(15)},
		{"string with suffix", `"15 units"`, IntOf(15)},
		{"tiny number reads exponent form", `5e-7`, IntOf(5)},
		{"huge number reads exponent form", `2e21`, IntOf(2)},
		{"invalid string", `"lots"`, NullInt{}},
		{"null", `null`, NullInt{}},
		{"boolean", `true`, NullInt{}},
		{"object", `{}`, NullInt{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceInt(json.RawMessage(tt.raw))
			if got != tt.want {
				t.Errorf("CoerceInt(%s) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		want       float64
		wantFinite bool
	}{
		{"number", `0.1`, 0.1, true},
		{"zero", `0`, 0, true},
		{"numeric string", `"2.5"`, 2.5, true},
		{"string with suffix", `"2.5kg"`, 2.5, true},
		{"invalid string", `"heavy"`, 0, false},
		{"infinity string", `"Infinity"`, 0, false},
		{"null", `null`, 0, false},
		{"boolean", `false`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceFloat(json.RawMessage(tt.raw))
			if got.Finite() != tt.wantFinite {
				t.Fatalf("CoerceFloat(%s).Finite() = %v, want %v", tt.raw, got.Finite(), tt.wantFinite)
			}
			if tt.wantFinite && got.Value != tt.want {
				t.Errorf("CoerceFloat(%s) = %v, want %v", tt.raw, got.Value, tt.want)
			}
		})
	}
}
