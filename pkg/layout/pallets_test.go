package layout

import (
	"testing"

	"github.com/matzehuels/racklayout/pkg/config"
	errs "github.com/matzehuels/racklayout/pkg/errors"
)

func storageCell(id, side string, row, floor, depth, col int) Cell {
	return Cell{
		ID:      id,
		Type:    CellStorageAisle,
		Side:    side,
		Indices: &Indices{Row: row, Floor: floor, Depth: depth, Col: col, Aisle: 1},
	}
}

func TestAssignPallets(t *testing.T) {
	pos := func(side string, row, floor, depth, col int) *config.PalletPosition {
		return &config.PalletPosition{Side: side, Row: intp(row), Floor: intp(floor), Depth: intp(depth), Col: intp(col)}
	}

	tests := []struct {
		name      string
		pallets   []config.ResolvedPallet
		wantIn    map[string]int // cell ID -> pallet count
		wantCodes []errs.Code
	}{
		{
			name:    "exact match",
			pallets: []config.ResolvedPallet{{Index: 0, Type: "wooden", Position: pos("left", 1, 1, 1, 1)}},
			wantIn:  map[string]int{"a": 1},
		},
		{
			name:    "side must match",
			pallets: []config.ResolvedPallet{{Index: 0, Position: pos("right", 1, 1, 1, 2)}},
			wantIn:  map[string]int{"c": 1},
		},
		{
			name:    "first duplicate wins",
			pallets: []config.ResolvedPallet{{Index: 0, Position: pos("left", 1, 1, 1, 2)}},
			wantIn:  map[string]int{"b": 1},
		},
		{
			name: "two pallets same cell",
			pallets: []config.ResolvedPallet{
				{Index: 0, Position: pos("left", 1, 1, 1, 1)},
				{Index: 1, Position: pos("left", 1, 1, 1, 1)},
			},
			wantIn: map[string]int{"a": 2},
		},
		{
			name:      "no match",
			pallets:   []config.ResolvedPallet{{Index: 0, Position: pos("left", 2, 1, 1, 1)}},
			wantIn:    map[string]int{},
			wantCodes: []errs.Code{errs.ErrCodeUnmatchedPallet},
		},
		{
			name: "missing and incomplete positions",
			pallets: []config.ResolvedPallet{
				{Index: 0},
				{Index: 1, Position: &config.PalletPosition{Side: "left", Row: intp(1)}},
				{Index: 2, Position: pos("left", 1, 1, 1, 1)},
			},
			wantIn:    map[string]int{"a": 1},
			wantCodes: []errs.Code{errs.ErrCodeInvalidInput, errs.ErrCodeInvalidInput},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := []Cell{
				{ID: "central", Type: CellCentralAisle},
				storageCell("a", "left", 1, 1, 1, 1),
				{ID: "gap", Type: CellAisleGap, Side: "left", Indices: &Indices{Row: 1, Floor: 1, AisleGapIndex: 1}},
				storageCell("b", "left", 1, 1, 1, 2),
				storageCell("b-dup", "left", 1, 1, 1, 2),
				storageCell("c", "right", 1, 1, 1, 2),
			}

			warnings := AssignPallets(tt.pallets, cells, 3)

			for _, c := range cells {
				if got, want := len(c.Pallets), tt.wantIn[c.ID]; got != want {
					t.Errorf("cell %s has %d pallets, want %d", c.ID, got, want)
				}
			}
			if len(warnings) != len(tt.wantCodes) {
				t.Fatalf("warnings = %+v, want codes %v", warnings, tt.wantCodes)
			}
			for i, w := range warnings {
				if w.Code != tt.wantCodes[i] {
					t.Errorf("warning %d code = %s, want %s", i, w.Code, tt.wantCodes[i])
				}
				if w.Workstation != 3 {
					t.Errorf("warning %d workstation = %d, want 3", i, w.Workstation)
				}
			}
		})
	}
}

func TestAssignPalletsCopiesAttributes(t *testing.T) {
	cells := []Cell{storageCell("a", "left", 1, 1, 2, 5)}
	pallets := []config.ResolvedPallet{{
		Type: "plastic", Color: "#336699", Length: 120, Width: 80, Height: 14.5,
		Position: &config.PalletPosition{Side: "left", Row: intp(1), Floor: intp(1), Depth: intp(2), Col: intp(5)},
	}}

	if w := AssignPallets(pallets, cells, 0); len(w) != 0 {
		t.Fatalf("unexpected warnings: %+v", w)
	}
	want := Pallet{Type: "plastic", Color: "#336699", Dims: PalletDims{Length: 120, Width: 80, Height: 14.5}}
	if len(cells[0].Pallets) != 1 || cells[0].Pallets[0] != want {
		t.Errorf("pallets = %+v, want [%+v]", cells[0].Pallets, want)
	}
}
