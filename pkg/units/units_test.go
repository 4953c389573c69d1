package units

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	errs "github.com/matzehuels/racklayout/pkg/errors"
)

const tolerance = 1e-9

func TestToCanonical(t *testing.T) {
	tests := []struct {
		name  string
		value any
		unit  string
		mode  Mode
		want  float64
		code  errs.Code
	}{
		{name: "millimeters", value: 10.0, unit: "mm", want: 1},
		{name: "centimeters", value: 42, unit: "cm", want: 42},
		{name: "meters", value: 3.5, unit: "m", want: 350},
		{name: "kilometers", value: 1, unit: "km", want: 100000},
		{name: "inches", value: 1, unit: "in", want: 2.54},
		{name: "feet", value: 2, unit: "ft", want: 60.96},
		{name: "yards", value: 1, unit: "yd", want: 91.44},
		{name: "upper case unit", value: 1, unit: "M", want: 100},
		{name: "numeric string", value: " 12.5 ", unit: "cm", want: 12.5},
		{name: "int64 from toml", value: int64(7), unit: "m", want: 700},
		{name: "json number", value: json.Number("2"), unit: "m", want: 200},
		{name: "nil strict", value: nil, unit: "furlong", want: 0},
		{name: "nil permissive", value: nil, unit: "cm", mode: Permissive, want: 0},
		{name: "unknown unit strict", value: 5, unit: "furlong", code: errs.ErrCodeInvalidUnit},
		{name: "unknown unit permissive", value: 5, unit: "furlong", mode: Permissive, want: 5},
		{name: "empty unit strict", value: 5, unit: "", code: errs.ErrCodeInvalidUnit},
		{name: "non-numeric strict", value: "wide", unit: "cm", code: errs.ErrCodeInvalidInput},
		{name: "non-numeric permissive", value: "wide", unit: "cm", mode: Permissive, want: 0},
		{name: "bool strict", value: true, unit: "cm", code: errs.ErrCodeInvalidInput},
		{name: "NaN string strict", value: "NaN", unit: "cm", code: errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToCanonical(tt.value, tt.unit, tt.mode)
			if tt.code != "" {
				if !errs.Is(err, tt.code) {
					t.Fatalf("ToCanonical() error = %v, want code %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToCanonical() unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > tolerance {
				t.Errorf("ToCanonical(%v, %q) = %v, want %v", tt.value, tt.unit, got, tt.want)
			}
		})
	}
}

func TestScaleFactor(t *testing.T) {
	for _, u := range ValidUnits {
		if _, ok := ScaleFactor(u); !ok {
			t.Errorf("ScaleFactor(%q) not recognized", u)
		}
		if !IsValid(u) {
			t.Errorf("IsValid(%q) = false", u)
		}
	}
	if f, ok := ScaleFactor("parsec"); ok || f != 1 {
		t.Errorf("ScaleFactor(parsec) = %v, %v; want 1, false", f, ok)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", Strict, false},
		{"strict", Strict, false},
		{"Permissive", Permissive, false},
		{"lenient", Permissive, false},
		{"chaotic", Strict, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if Permissive.String() != "permissive" || Strict.String() != "strict" {
		t.Error("Mode.String mismatch")
	}
}

// Property: meters and centimeters agree, x m == 100x cm.
func TestToCanonical_PropertyMetersRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("to_canonical(x, m) == to_canonical(100x, cm)", prop.ForAll(
		func(x float64) bool {
			a, err := ToCanonical(x, M, Strict)
			if err != nil {
				return false
			}
			b, err := ToCanonical(x*100, CM, Strict)
			if err != nil {
				return false
			}
			return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(a))
		},
		gen.Float64Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}
