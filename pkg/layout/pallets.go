package layout

import (
	"fmt"

	"github.com/matzehuels/racklayout/pkg/config"
	errs "github.com/matzehuels/racklayout/pkg/errors"
)

// slotKey identifies a storage cell for pallet matching.
type slotKey struct {
	side                   string
	row, floor, depth, col int
}

// AssignPallets places each pallet on the storage cell in cells whose
// (side, row, floor, depth, col) equals the pallet position, appending to that
// cell's Pallets. ws is the workstation index reported in warnings.
//
// A pallet without a complete position, or whose position matches no storage
// cell, is skipped and reported as a Warning. If several cells share a key the
// first one in cells wins.
func AssignPallets(pallets []config.ResolvedPallet, cells []Cell, ws int) []Warning {
	if len(pallets) == 0 {
		return nil
	}

	index := make(map[slotKey]int, len(cells))
	for i := range cells {
		c := &cells[i]
		if !c.IsStorage() || c.Indices == nil {
			continue
		}
		k := slotKey{c.Side, c.Indices.Row, c.Indices.Floor, c.Indices.Depth, c.Indices.Col}
		if _, dup := index[k]; !dup {
			index[k] = i
		}
	}

	var warnings []Warning
	for _, p := range pallets {
		pos := p.Position
		if pos == nil {
			warnings = append(warnings, Warning{
				Code:        errs.ErrCodeInvalidInput,
				Workstation: ws,
				Pallet:      p.Index,
				Message:     "pallet has no position",
			})
			continue
		}
		if !pos.Complete() {
			warnings = append(warnings, Warning{
				Code:        errs.ErrCodeInvalidInput,
				Workstation: ws,
				Pallet:      p.Index,
				Message:     "pallet position is incomplete: side, row, floor, depth and col are required",
			})
			continue
		}

		k := slotKey{pos.Side, *pos.Row, *pos.Floor, *pos.Depth, *pos.Col}
		i, ok := index[k]
		if !ok {
			warnings = append(warnings, Warning{
				Code:        errs.ErrCodeUnmatchedPallet,
				Workstation: ws,
				Pallet:      p.Index,
				Message: fmt.Sprintf("no storage cell at side=%s row=%d floor=%d depth=%d col=%d",
					k.side, k.row, k.floor, k.depth, k.col),
			})
			continue
		}
		cells[i].Pallets = append(cells[i].Pallets, Pallet{
			Type:  p.Type,
			Color: p.Color,
			Dims:  PalletDims{Length: p.Length, Width: p.Width, Height: p.Height},
		})
	}
	return warnings
}
