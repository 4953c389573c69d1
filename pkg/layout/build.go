package layout

import (
	"fmt"

	"github.com/matzehuels/racklayout/pkg/config"
	"github.com/matzehuels/racklayout/pkg/units"
)

// Option configures Build.
type Option func(*options)

type options struct {
	mode units.Mode
	id   string
}

// WithMode selects how unknown units and non-numeric values are treated.
// The default is units.Strict.
func WithMode(m units.Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithID sets the layout ID, overriding the configuration's id.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// Build computes the warehouse layout for cfg.
func Build(cfg *config.WarehouseConfig, opts ...Option) (*WarehouseLayout, error) {
	o := options{mode: units.Strict}
	for _, opt := range opts {
		opt(&o)
	}

	r, err := cfg.Resolve(o.mode)
	if err != nil {
		return nil, err
	}
	l, err := Assemble(r)
	if err != nil {
		return nil, err
	}

	l.ID = cfg.ID
	if o.id != "" {
		l.ID = o.id
	}
	return l, nil
}

// Assemble lays out an already resolved warehouse.
func Assemble(r *config.Resolved) (*WarehouseLayout, error) {
	zones, err := Partition(Bounds{
		Width:              r.Width,
		Length:             r.Length,
		Height:             r.Height,
		HeightSafetyMargin: r.HeightSafetyMargin,
	}, r.NumWorkstations, r.WorkstationGap)
	if err != nil {
		return nil, err
	}

	out := &WarehouseLayout{
		WarehouseDimensions: Dimensions{Width: r.Width, Length: r.Length, Height: r.Height},
		Workstations:        make([]Workstation, 0, len(zones)),
	}
	for i, z := range zones {
		ws, warnings, err := assembleWorkstation(z, &r.Workstations[i])
		if err != nil {
			return nil, fmt.Errorf("workstation %d: %w", i, err)
		}
		out.Workstations = append(out.Workstations, ws)
		out.Warnings = append(out.Warnings, warnings...)
	}
	return out, nil
}

func assembleWorkstation(z Zone, ws *config.ResolvedWorkstation) (Workstation, []Warning, error) {
	sideWidth, err := z.SideWidth(ws.AisleSpace)
	if err != nil {
		return Workstation{}, nil, err
	}

	cells := []Cell{{
		ID:       fmt.Sprintf("central-aisle-%d", z.Index),
		Type:     CellCentralAisle,
		Position: Position{X: z.X + sideWidth},
		Dimensions: Dimensions{
			Width:  ws.AisleSpace,
			Length: z.Length,
			Height: z.UsableHeight,
		},
	}}

	sides := []struct {
		name   string
		cfg    config.ResolvedSide
		startX float64
	}{
		{config.SideLeft, ws.Left, z.X},
		{config.SideRight, ws.Right, z.X + sideWidth + ws.AisleSpace},
	}
	for _, s := range sides {
		side, err := GenerateSide(SideInput{
			Config:      s.cfg,
			Side:        s.name,
			Workstation: z.Index,
			StartX:      s.startX,
			Width:       sideWidth,
			Length:      z.Length,
			Height:      z.UsableHeight,
		})
		if err != nil {
			return Workstation{}, nil, fmt.Errorf("%s side: %w", s.name, err)
		}
		cells = append(cells, side...)
	}

	warnings := AssignPallets(ws.Pallets, cells, z.Index)

	return Workstation{
		ID:       fmt.Sprintf("workstation_%d", z.Index+1),
		Position: Position{X: z.X},
		Dimensions: Dimensions{
			Width:  z.Width,
			Length: z.Length,
			Height: z.Height,
		},
		Aisles: cells,
	}, warnings, nil
}
