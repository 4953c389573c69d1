package config

import (
	"fmt"

	errs "github.com/matzehuels/racklayout/pkg/errors"
	"github.com/matzehuels/racklayout/pkg/units"
)

// Pallet defaults applied when a record omits them.
const (
	DefaultPalletType  = "wooden"
	DefaultPalletColor = "#8B4513"
)

// Resolved is a validated warehouse with every length in centimeters.
type Resolved struct {
	Length             float64
	Width              float64
	Height             float64
	HeightSafetyMargin float64
	NumWorkstations    int
	WorkstationGap     float64
	Workstations       []ResolvedWorkstation
}

// ResolvedWorkstation is one workstation in centimeters.
type ResolvedWorkstation struct {
	AisleSpace float64
	Left       ResolvedSide
	Right      ResolvedSide
	Pallets    []ResolvedPallet
}

// ResolvedSide is a side grid in centimeters. AisleGaps has exactly
// NumAisles-1 entries and DeepGaps exactly Deep-1 entries.
type ResolvedSide struct {
	NumFloors int
	NumRows   int
	NumAisles int
	Deep      int
	AisleGaps []float64
	DeepGaps  []float64
	GapFront  float64
	GapBack   float64
	GapLeft   float64
	GapRight  float64
}

// ResolvedPallet is a pallet record with defaults applied. Index is the
// record's position in its workstation's pallet_configs list.
type ResolvedPallet struct {
	Index    int
	Type     string
	Color    string
	Length   float64
	Width    float64
	Height   float64
	Position *PalletPosition
}

// resolver converts values under one mode and names the offending field on error.
type resolver struct {
	mode units.Mode
}

func (r resolver) length(field string, v Value, unit string) (float64, error) {
	cm, err := units.ToCanonical(v.Interface(), unit, r.mode)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if err := errs.RequireNonNegative(field, cm); err != nil {
		return 0, err
	}
	return cm, nil
}

// gaps converts a gap list and pads or truncates it to exactly n entries.
func (r resolver) gaps(field string, vs []Value, unit string, n int) ([]float64, error) {
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := 0; i < n && i < len(vs); i++ {
		cm, err := r.length(fmt.Sprintf("%s[%d]", field, i), vs[i], unit)
		if err != nil {
			return nil, err
		}
		out[i] = cm
	}
	return out, nil
}

// Resolve validates c and converts it to centimeters under mode.
//
// Gap lists shorter than required are padded with zero-width gaps; entries
// beyond what the grid needs are ignored.
func (c *WarehouseConfig) Resolve(mode units.Mode) (*Resolved, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	r := resolver{mode: mode}
	d := c.Dimensions

	out := &Resolved{NumWorkstations: c.NumWorkstations}
	var err error
	if out.Length, err = r.length("warehouse_dimensions.length", d.Length, d.Unit); err != nil {
		return nil, err
	}
	if out.Width, err = r.length("warehouse_dimensions.width", d.Width, d.Unit); err != nil {
		return nil, err
	}
	if out.Height, err = r.length("warehouse_dimensions.height", d.Height, d.Unit); err != nil {
		return nil, err
	}
	if out.HeightSafetyMargin, err = r.length("warehouse_dimensions.height_safety_margin", d.HeightSafetyMargin, d.Unit); err != nil {
		return nil, err
	}
	if out.WorkstationGap, err = r.length("workstation_gap", c.WorkstationGap, c.WorkstationGapUnit); err != nil {
		return nil, err
	}

	out.Workstations = make([]ResolvedWorkstation, len(c.Workstations))
	for i := range c.Workstations {
		ws, err := r.workstation(&c.Workstations[i])
		if err != nil {
			return nil, fmt.Errorf("workstation_configs[%d]: %w", i, err)
		}
		out.Workstations[i] = ws
	}
	return out, nil
}

func (r resolver) workstation(ws *WorkstationConfig) (ResolvedWorkstation, error) {
	unit := ws.AisleSpaceUnit
	if unit == "" {
		unit = units.CM
	}
	aisle, err := r.length("aisle_space", ws.AisleSpace, unit)
	if err != nil {
		return ResolvedWorkstation{}, err
	}
	left, err := r.side(&ws.Left)
	if err != nil {
		return ResolvedWorkstation{}, fmt.Errorf("left_side_config: %w", err)
	}
	right, err := r.side(&ws.Right)
	if err != nil {
		return ResolvedWorkstation{}, fmt.Errorf("right_side_config: %w", err)
	}

	pallets := make([]ResolvedPallet, 0, len(ws.Pallets))
	for j := range ws.Pallets {
		p, err := r.pallet(j, &ws.Pallets[j])
		if err != nil {
			return ResolvedWorkstation{}, fmt.Errorf("pallet_configs[%d]: %w", j, err)
		}
		pallets = append(pallets, p)
	}

	return ResolvedWorkstation{AisleSpace: aisle, Left: left, Right: right, Pallets: pallets}, nil
}

func (r resolver) side(s *SideConfig) (ResolvedSide, error) {
	out := ResolvedSide{
		NumFloors: s.NumFloors,
		NumRows:   s.NumRows,
		NumAisles: s.NumAisles,
		Deep:      s.Deep,
	}
	u := s.WallGapUnit
	var err error
	if out.GapFront, err = r.length("gap_front", s.GapFront, u); err != nil {
		return out, err
	}
	if out.GapBack, err = r.length("gap_back", s.GapBack, u); err != nil {
		return out, err
	}
	if out.GapLeft, err = r.length("gap_left", s.GapLeft, u); err != nil {
		return out, err
	}
	if out.GapRight, err = r.length("gap_right", s.GapRight, u); err != nil {
		return out, err
	}
	if out.AisleGaps, err = r.gaps("aisle_gaps", s.AisleGaps, u, s.NumAisles-1); err != nil {
		return out, err
	}
	if out.DeepGaps, err = r.gaps("deep_gaps", s.DeepGaps, u, s.Deep-1); err != nil {
		return out, err
	}
	return out, nil
}

func (r resolver) pallet(i int, p *PalletConfig) (ResolvedPallet, error) {
	out := ResolvedPallet{
		Index:    i,
		Type:     p.Type,
		Color:    p.Color,
		Position: p.Position,
	}
	if out.Type == "" {
		out.Type = DefaultPalletType
	}
	if out.Color == "" {
		out.Color = DefaultPalletColor
	}
	var err error
	if out.Length, err = r.length("length_cm", p.LengthCM, units.CM); err != nil {
		return out, err
	}
	if out.Width, err = r.length("width_cm", p.WidthCM, units.CM); err != nil {
		return out, err
	}
	if out.Height, err = r.length("height_cm", p.HeightCM, units.CM); err != nil {
		return out, err
	}
	return out, nil
}
