package layout

import (
	"math"
	"testing"

	errs "github.com/matzehuels/racklayout/pkg/errors"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name      string
		b         Bounds
		n         int
		gap       float64
		wantWidth float64
		wantXs    []float64
		wantH     float64
		code      errs.Code
	}{
		{
			name:      "single",
			b:         Bounds{Width: 6000, Length: 3000, Height: 1500, HeightSafetyMargin: 300},
			n:         1,
			gap:       100,
			wantWidth: 6000,
			wantXs:    []float64{0},
			wantH:     1200,
		},
		{
			name:      "three with gaps",
			b:         Bounds{Width: 1000, Length: 500, Height: 400},
			n:         3,
			gap:       50,
			wantWidth: 300,
			wantXs:    []float64{0, 350, 700},
			wantH:     400,
		},
		{name: "zero workstations", b: Bounds{Width: 100}, n: 0, code: errs.ErrCodeInvalidInput},
		{name: "negative count", b: Bounds{Width: 100}, n: -2, code: errs.ErrCodeInvalidInput},
		{name: "gaps overflow", b: Bounds{Width: 100, Height: 10}, n: 3, gap: 60, code: errs.ErrCodeGeometryOverflow},
		{name: "margin overflow", b: Bounds{Width: 100, Height: 10, HeightSafetyMargin: 11}, n: 1, code: errs.ErrCodeGeometryOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zones, err := Partition(tt.b, tt.n, tt.gap)
			if tt.code != "" {
				if !errs.Is(err, tt.code) {
					t.Fatalf("Partition: got %v, want code %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("Partition: %v", err)
			}
			if len(zones) != tt.n {
				t.Fatalf("zones = %d, want %d", len(zones), tt.n)
			}
			for i, z := range zones {
				if z.Index != i || math.Abs(z.X-tt.wantXs[i]) > eps || math.Abs(z.Width-tt.wantWidth) > eps {
					t.Errorf("zone %d = %+v", i, z)
				}
				if z.UsableHeight != tt.wantH || z.Height != tt.b.Height || z.Length != tt.b.Length {
					t.Errorf("zone %d heights = %+v", i, z)
				}
			}
		})
	}
}

func TestZoneSideWidth(t *testing.T) {
	z := Zone{Width: 1000}
	w, err := z.SideWidth(200)
	if err != nil || w != 400 {
		t.Errorf("SideWidth(200) = %v, %v; want 400", w, err)
	}
	if _, err := z.SideWidth(1200); !errs.Is(err, errs.ErrCodeGeometryOverflow) {
		t.Errorf("SideWidth(1200) = %v, want GEOMETRY_OVERFLOW", err)
	}
}
