package layout

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/racklayout/pkg/config"
	errs "github.com/matzehuels/racklayout/pkg/errors"
)

// SideInput is everything GenerateSide needs to lay out one side.
type SideInput struct {
	Config      config.ResolvedSide
	Side        string  // config.SideLeft or config.SideRight
	Workstation int     // 0-based workstation index, used in cell IDs
	StartX      float64 // left edge of the side
	Width       float64 // side width before wall gaps
	Length      float64 // side length before wall gaps
	Height      float64 // usable height shared by all floors
}

// GenerateSide lays out the storage and gap cells of one side.
//
// Cells are returned in generation order: rows outermost, then aisle-groups,
// then depths, with one cell per floor at each step. A deep gap precedes every
// depth after the first in a group, and an aisle gap follows every group but
// the last.
//
// The storage cell width is
//
//	(width - wall gaps - sum(aisle_gaps) - sum(deep_gaps)) / (num_aisles * deep)
//
// The deep gaps are subtracted once for the whole side although every
// aisle-group repeats them, so with several aisle-groups and deep > 1 the row
// ends (num_aisles-1)*sum(deep_gaps) past the right wall gap.
func GenerateSide(in SideInput) ([]Cell, error) {
	cfg := in.Config
	for _, c := range []struct {
		field string
		n     int
	}{
		{"num_floors", cfg.NumFloors},
		{"num_rows", cfg.NumRows},
		{"num_aisles", cfg.NumAisles},
		{"deep", cfg.Deep},
	} {
		if err := errs.RequirePositive(c.field, c.n); err != nil {
			return nil, err
		}
	}

	aisleGaps := padGaps(cfg.AisleGaps, cfg.NumAisles-1)
	deepGaps := padGaps(cfg.DeepGaps, cfg.Deep-1)

	availWidth := in.Width - cfg.GapLeft - cfg.GapRight
	if availWidth < 0 {
		return nil, errs.Overflow(in.Side+" side width after wall gaps", availWidth)
	}
	availLength := in.Length - cfg.GapFront - cfg.GapBack
	if availLength < 0 {
		return nil, errs.Overflow(in.Side+" side length after wall gaps", availLength)
	}

	var totalGaps float64
	if cfg.NumAisles > 1 {
		totalGaps += floats.Sum(aisleGaps)
	}
	if cfg.Deep > 1 {
		totalGaps += floats.Sum(deepGaps)
	}

	b := sideBuilder{
		in:     in,
		width:  (availWidth - totalGaps) / float64(cfg.NumAisles*cfg.Deep),
		length: availLength / float64(cfg.NumRows),
		height: in.Height / float64(cfg.NumFloors),
	}
	if b.width < 0 {
		return nil, errs.Overflow(in.Side+" storage cell width", b.width)
	}

	perRow := cfg.NumAisles*cfg.Deep + (cfg.NumAisles - 1) + cfg.NumAisles*(cfg.Deep-1)
	cells := make([]Cell, 0, perRow*cfg.NumRows*cfg.NumFloors)

	for r := 0; r < cfg.NumRows; r++ {
		y := cfg.GapFront + float64(r)*b.length
		x := in.StartX + cfg.GapLeft
		seq := 1

		for g := 1; g <= cfg.NumAisles; g++ {
			for d := 0; d < cfg.Deep; d++ {
				if d > 0 {
					size := deepGaps[d-1]
					for f := 0; f < cfg.NumFloors; f++ {
						cells = append(cells, b.deepGap(x, y, r, f, g, d, seq, size))
					}
					x += size
				}
				for f := 0; f < cfg.NumFloors; f++ {
					cells = append(cells, b.storage(x, y, r, f, g, d, seq))
				}
				x += b.width
				seq++
			}
			if g < cfg.NumAisles {
				size := aisleGaps[g-1]
				for f := 0; f < cfg.NumFloors; f++ {
					cells = append(cells, b.aisleGap(x, y, r, f, g, size))
				}
				x += size
			}
		}
	}
	return cells, nil
}

// padGaps returns exactly n gaps, zero-padding or truncating gs.
func padGaps(gs []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	copy(out, gs)
	return out
}

// sideBuilder holds the per-side cell size shared by every emitted cell.
type sideBuilder struct {
	in     SideInput
	width  float64
	length float64
	height float64
}

func (b *sideBuilder) geometry(x, y float64, f int, width float64) (Position, Dimensions) {
	return Position{X: x, Y: y, Z: float64(f) * b.height},
		Dimensions{Width: width, Length: b.length, Height: b.height}
}

func (b *sideBuilder) storage(x, y float64, r, f, g, d, seq int) Cell {
	pos, dims := b.geometry(x, y, f, b.width)
	return Cell{
		ID:         fmt.Sprintf("aisle-%d-%s-%d-%d-%d", b.in.Workstation, b.in.Side, r, seq, f),
		Type:       CellStorageAisle,
		Side:       b.in.Side,
		Position:   pos,
		Dimensions: dims,
		Indices: &Indices{
			Row:   r + 1,
			Floor: f + 1,
			Col:   seq,
			Depth: d + 1,
			Aisle: g,
		},
		Label:   fmt.Sprintf("Aisle %d", g),
		Pallets: []Pallet{},
	}
}

// deepGap is placed before the storage cell numbered seq, so it separates
// seq-1 and seq.
func (b *sideBuilder) deepGap(x, y float64, r, f, g, d, seq int, size float64) Cell {
	pos, dims := b.geometry(x, y, f, size)
	s := formatSize(size)
	return Cell{
		ID:         fmt.Sprintf("deep-gap-%d-%s-%d-%d-%d-%d", b.in.Workstation, b.in.Side, r, g, d, f),
		Type:       CellDeepGap,
		Side:       b.in.Side,
		Position:   pos,
		Dimensions: dims,
		GapInfo: &GapInfo{
			GapType:              CellDeepGap,
			Size:                 size,
			BetweenStorageAisles: []int{seq - 1, seq},
			Description:          fmt.Sprintf("Deep gap %scm between storage aisle %d and %d", s, seq-1, seq),
		},
		Indices: &Indices{
			Row:           r + 1,
			Floor:         f + 1,
			AisleGroup:    g,
			DepthGapIndex: d,
		},
		Label: fmt.Sprintf("Deep Gap %scm", s),
	}
}

func (b *sideBuilder) aisleGap(x, y float64, r, f, g int, size float64) Cell {
	pos, dims := b.geometry(x, y, f, size)
	s := formatSize(size)
	return Cell{
		ID:         fmt.Sprintf("aisle-gap-%d-%s-%d-%d-%d", b.in.Workstation, b.in.Side, r, g, f),
		Type:       CellAisleGap,
		Side:       b.in.Side,
		Position:   pos,
		Dimensions: dims,
		GapInfo: &GapInfo{
			GapType:            CellAisleGap,
			Size:               size,
			BetweenAisleGroups: []int{g, g + 1},
			Description:        fmt.Sprintf("Aisle gap %scm between Aisle %d and Aisle %d", s, g, g+1),
		},
		Indices: &Indices{
			Row:           r + 1,
			Floor:         f + 1,
			AisleGapIndex: g,
		},
		Label: fmt.Sprintf("Aisle Gap %scm", s),
	}
}

// formatSize prints a length without trailing zeros ("50", "12.5").
func formatSize(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
