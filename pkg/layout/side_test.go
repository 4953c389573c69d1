package layout

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/racklayout/pkg/config"
	errs "github.com/matzehuels/racklayout/pkg/errors"
)

func sideInput(cfg config.ResolvedSide) SideInput {
	return SideInput{
		Config: cfg,
		Side:   config.SideLeft,
		Width:  10000,
		Length: 5000,
		Height: 1200,
	}
}

func countTypes(cells []Cell) map[string]int {
	out := make(map[string]int)
	for _, c := range cells {
		out[c.Type]++
	}
	return out
}

func TestGenerateSideSingleGroupDeep(t *testing.T) {
	cells, err := GenerateSide(sideInput(config.ResolvedSide{
		NumFloors: 1, NumRows: 1, NumAisles: 1, Deep: 2,
		DeepGaps: []float64{50},
	}))
	if err != nil {
		t.Fatalf("GenerateSide: %v", err)
	}
	got := countTypes(cells)
	if got[CellStorageAisle] != 2 || got[CellAisleGap] != 0 || got[CellDeepGap] != 1 {
		t.Fatalf("counts = %v, want 2 storage, 0 aisle gaps, 1 deep gap", got)
	}

	gap := cells[1]
	if gap.Type != CellDeepGap || gap.Dimensions.Width != 50 {
		t.Fatalf("cells[1] = %s width %v, want deep gap of 50", gap.Type, gap.Dimensions.Width)
	}
	if gap.ID != "deep-gap-0-left-0-1-1-0" {
		t.Errorf("gap ID = %q", gap.ID)
	}
	if gi := gap.GapInfo; gi == nil || gi.BetweenStorageAisles[0] != 1 || gi.BetweenStorageAisles[1] != 2 ||
		gi.Description != "Deep gap 50cm between storage aisle 1 and 2" {
		t.Errorf("gap info = %+v", gap.GapInfo)
	}
	if idx := gap.Indices; idx.AisleGroup != 1 || idx.DepthGapIndex != 1 || idx.Row != 1 || idx.Floor != 1 {
		t.Errorf("gap indices = %+v", idx)
	}
}

func TestGenerateSideAisleGapMetadata(t *testing.T) {
	cells, err := GenerateSide(sideInput(config.ResolvedSide{
		NumFloors: 1, NumRows: 1, NumAisles: 3, Deep: 1,
		AisleGaps: []float64{12.5, 30},
	}))
	if err != nil {
		t.Fatalf("GenerateSide: %v", err)
	}
	var gaps []Cell
	for _, c := range cells {
		if c.Type == CellAisleGap {
			gaps = append(gaps, c)
		}
	}
	if len(gaps) != 2 {
		t.Fatalf("aisle gaps = %d, want 2", len(gaps))
	}
	g := gaps[0]
	if g.ID != "aisle-gap-0-left-0-1-0" || g.Label != "Aisle Gap 12.5cm" {
		t.Errorf("gap = %q %q", g.ID, g.Label)
	}
	if g.GapInfo.Description != "Aisle gap 12.5cm between Aisle 1 and Aisle 2" || g.Indices.AisleGapIndex != 1 {
		t.Errorf("gap info = %+v indices = %+v", g.GapInfo, g.Indices)
	}
	if gaps[1].GapInfo.BetweenAisleGroups[0] != 2 || gaps[1].GapInfo.BetweenAisleGroups[1] != 3 {
		t.Errorf("second gap between = %v", gaps[1].GapInfo.BetweenAisleGroups)
	}
}

func TestGenerateSideFloorsAndRows(t *testing.T) {
	cells, err := GenerateSide(SideInput{
		Config: config.ResolvedSide{
			NumFloors: 3, NumRows: 2, NumAisles: 1, Deep: 1,
			GapFront: 10, GapBack: 10, GapLeft: 5, GapRight: 5,
		},
		Side:        config.SideRight,
		Workstation: 2,
		StartX:      1000,
		Width:       210,
		Length:      420,
		Height:      900,
	})
	if err != nil {
		t.Fatalf("GenerateSide: %v", err)
	}
	if len(cells) != 6 {
		t.Fatalf("cells = %d, want 6", len(cells))
	}
	for i, c := range cells {
		r, f := i/3, i%3
		if c.Indices.Row != r+1 || c.Indices.Floor != f+1 {
			t.Errorf("cell %d indices = %+v", i, c.Indices)
		}
		want := Position{X: 1005, Y: 10 + float64(r)*200, Z: float64(f) * 300}
		if c.Position != want {
			t.Errorf("cell %d position = %+v, want %+v", i, c.Position, want)
		}
		if c.Dimensions != (Dimensions{Width: 200, Length: 200, Height: 300}) {
			t.Errorf("cell %d dimensions = %+v", i, c.Dimensions)
		}
	}
	if cells[5].ID != "aisle-2-right-1-1-2" {
		t.Errorf("last ID = %q", cells[5].ID)
	}
}

func TestGenerateSidePadsAndTruncatesGaps(t *testing.T) {
	cells, err := GenerateSide(sideInput(config.ResolvedSide{
		NumFloors: 1, NumRows: 1, NumAisles: 3, Deep: 2,
		AisleGaps: []float64{40},
		DeepGaps:  []float64{10, 99, 99},
	}))
	if err != nil {
		t.Fatalf("GenerateSide: %v", err)
	}
	got := countTypes(cells)
	if got[CellAisleGap] != 2 || got[CellDeepGap] != 3 {
		t.Fatalf("counts = %v", got)
	}
	for _, c := range cells {
		switch {
		case c.Type == CellAisleGap && c.Indices.AisleGapIndex == 2 && c.Dimensions.Width != 0:
			t.Errorf("padded aisle gap width = %v, want 0", c.Dimensions.Width)
		case c.Type == CellDeepGap && c.Dimensions.Width != 10:
			t.Errorf("deep gap width = %v, want 10", c.Dimensions.Width)
		}
	}
}

func TestGenerateSideErrors(t *testing.T) {
	tests := []struct {
		name string
		in   SideInput
		code errs.Code
	}{
		{"zero floors", sideInput(config.ResolvedSide{NumRows: 1, NumAisles: 1, Deep: 1}), errs.ErrCodeInvalidInput},
		{"zero aisles", sideInput(config.ResolvedSide{NumFloors: 1, NumRows: 1, Deep: 1}), errs.ErrCodeInvalidInput},
		{"wall gaps too wide", SideInput{
			Config: config.ResolvedSide{NumFloors: 1, NumRows: 1, NumAisles: 1, Deep: 1, GapLeft: 60, GapRight: 60},
			Width:  100, Length: 100, Height: 100,
		}, errs.ErrCodeGeometryOverflow},
		{"gaps too wide", SideInput{
			Config: config.ResolvedSide{NumFloors: 1, NumRows: 1, NumAisles: 2, Deep: 1, AisleGaps: []float64{150}},
			Width:  100, Length: 100, Height: 100,
		}, errs.ErrCodeGeometryOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSide(tt.in)
			if !errs.Is(err, tt.code) {
				t.Errorf("GenerateSide: got %v, want code %s", err, tt.code)
			}
		})
	}
}

type sideShape struct {
	aisles, deep, floors, rows int
}

func genSideShape() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1, 6),
		gen.IntRange(1, 4),
		gen.IntRange(1, 4),
		gen.IntRange(1, 3),
	).Map(func(vs []any) sideShape {
		return sideShape{aisles: vs[0].(int), deep: vs[1].(int), floors: vs[2].(int), rows: vs[3].(int)}
	})
}

func shapeInput(s sideShape) SideInput {
	aisleGaps := make([]float64, s.aisles-1)
	for i := range aisleGaps {
		aisleGaps[i] = 20
	}
	deepGaps := make([]float64, s.deep-1)
	for i := range deepGaps {
		deepGaps[i] = 5
	}
	return sideInput(config.ResolvedSide{
		NumFloors: s.floors, NumRows: s.rows, NumAisles: s.aisles, Deep: s.deep,
		AisleGaps: aisleGaps, DeepGaps: deepGaps,
	})
}

func TestGenerateSideProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("cell counts follow the grid shape", prop.ForAll(
		func(s sideShape) bool {
			cells, err := GenerateSide(shapeInput(s))
			if err != nil {
				return false
			}
			got := countTypes(cells)
			per := s.floors * s.rows
			return got[CellStorageAisle] == s.aisles*s.deep*per &&
				got[CellAisleGap] == (s.aisles-1)*per &&
				got[CellDeepGap] == s.aisles*(s.deep-1)*per
		},
		genSideShape(),
	))

	properties.Property("col is contiguous per row and floor in traversal order", prop.ForAll(
		func(s sideShape) bool {
			cells, err := GenerateSide(shapeInput(s))
			if err != nil {
				return false
			}
			type rf struct{ row, floor int }
			next := make(map[rf]int)
			for _, c := range cells {
				if !c.IsStorage() {
					continue
				}
				k := rf{c.Indices.Row, c.Indices.Floor}
				next[k]++
				if c.Indices.Col != next[k] {
					return false
				}
				// group-then-depth traversal
				if c.Indices.Col != (c.Indices.Aisle-1)*s.deep+c.Indices.Depth {
					return false
				}
			}
			for _, n := range next {
				if n != s.aisles*s.deep {
					return false
				}
			}
			return len(next) == s.rows*s.floors
		},
		genSideShape(),
	))

	properties.Property("cells sharing an aisle-group share a label", prop.ForAll(
		func(s sideShape) bool {
			cells, err := GenerateSide(shapeInput(s))
			if err != nil {
				return false
			}
			labels := make(map[int]string)
			for _, c := range cells {
				if !c.IsStorage() {
					continue
				}
				if l, ok := labels[c.Indices.Aisle]; ok && l != c.Label {
					return false
				}
				labels[c.Indices.Aisle] = c.Label
			}
			return len(labels) == s.aisles
		},
		genSideShape(),
	))

	properties.Property("gaps sit exactly between neighbouring cells", prop.ForAll(
		func(s sideShape) bool {
			cells, err := GenerateSide(shapeInput(s))
			if err != nil {
				return false
			}
			// Walk floor 1 of row 1: every cell starts where the previous one ends.
			x := math.NaN()
			for _, c := range cells {
				if c.Indices.Row != 1 || c.Indices.Floor != 1 {
					continue
				}
				if !math.IsNaN(x) && math.Abs(c.Position.X-x) > 1e-6 {
					return false
				}
				if c.Dimensions.Width < 0 {
					return false
				}
				x = c.Position.X + c.Dimensions.Width
			}
			return true
		},
		genSideShape(),
	))

	properties.TestingRun(t)
}
