// Package config defines the warehouse configuration records accepted by the
// layout core, and decodes them from JSON, TOML or YAML documents.
//
// The records mirror the configuration documents one-to-one (snake_case keys,
// lengths as value plus unit tag). Two passes turn a document into something
// the core can use:
//
//  1. Validate checks structure: counts, the workstation list, pallet positions.
//  2. Resolve converts every length to centimeters under a units.Mode and pads
//     gap lists, producing a Resolved warehouse.
//
// # Example document (JSON)
//
//	{
//	  "warehouse_dimensions": {"length": 30, "width": 60, "height": 15,
//	                           "height_safety_margin": 3, "unit": "m"},
//	  "num_workstations": 1,
//	  "workstation_gap": 100, "workstation_gap_unit": "cm",
//	  "workstation_configs": [{
//	    "aisle_space": 500, "aisle_space_unit": "cm",
//	    "left_side_config":  {"num_floors": 1, "num_rows": 1, "num_aisles": 2, "deep": 1,
//	                          "aisle_gaps": [50], "gap_front": 100, "gap_back": 100,
//	                          "gap_left": 100, "gap_right": 100, "wall_gap_unit": "cm"},
//	    "right_side_config": {...},
//	    "pallet_configs": [{"type": "wooden", "length_cm": 120, "width_cm": 80, "height_cm": 15,
//	                        "position": {"side": "left", "row": 1, "floor": 1, "depth": 1, "col": 2}}]
//	  }]
//	}
package config

import (
	"fmt"

	errs "github.com/matzehuels/racklayout/pkg/errors"
)

// Side names.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// WarehouseConfig is the top-level layout input.
type WarehouseConfig struct {
	ID                 string              `json:"id,omitempty" toml:"id" yaml:"id,omitempty"`
	Dimensions         WarehouseDimensions `json:"warehouse_dimensions" toml:"warehouse_dimensions" yaml:"warehouse_dimensions"`
	NumWorkstations    int                 `json:"num_workstations" toml:"num_workstations" yaml:"num_workstations"`
	WorkstationGap     Value               `json:"workstation_gap" toml:"workstation_gap" yaml:"workstation_gap"`
	WorkstationGapUnit string              `json:"workstation_gap_unit" toml:"workstation_gap_unit" yaml:"workstation_gap_unit"`
	Workstations       []WorkstationConfig `json:"workstation_configs" toml:"workstation_configs" yaml:"workstation_configs"`
}

// WarehouseDimensions holds the outer dimensions, all sharing one unit.
type WarehouseDimensions struct {
	Length             Value  `json:"length" toml:"length" yaml:"length"`
	Width              Value  `json:"width" toml:"width" yaml:"width"`
	Height             Value  `json:"height" toml:"height" yaml:"height"`
	HeightSafetyMargin Value  `json:"height_safety_margin" toml:"height_safety_margin" yaml:"height_safety_margin"`
	Unit               string `json:"unit" toml:"unit" yaml:"unit"`
}

// WorkstationConfig configures one workstation zone: a central aisle flanked
// by a left and a right racking side.
type WorkstationConfig struct {
	Index          *int           `json:"workstation_index,omitempty" toml:"workstation_index" yaml:"workstation_index,omitempty"`
	AisleSpace     Value          `json:"aisle_space" toml:"aisle_space" yaml:"aisle_space"`
	AisleSpaceUnit string         `json:"aisle_space_unit,omitempty" toml:"aisle_space_unit" yaml:"aisle_space_unit,omitempty"`
	Left           SideConfig     `json:"left_side_config" toml:"left_side_config" yaml:"left_side_config"`
	Right          SideConfig     `json:"right_side_config" toml:"right_side_config" yaml:"right_side_config"`
	Pallets        []PalletConfig `json:"pallet_configs,omitempty" toml:"pallet_configs" yaml:"pallet_configs,omitempty"`
}

// SideConfig configures the racking grid on one side of a central aisle.
// AisleGaps separate consecutive aisle-groups; DeepGaps separate consecutive
// depths inside every group. Both share WallGapUnit with the wall gaps.
type SideConfig struct {
	NumFloors   int     `json:"num_floors" toml:"num_floors" yaml:"num_floors"`
	NumRows     int     `json:"num_rows" toml:"num_rows" yaml:"num_rows"`
	NumAisles   int     `json:"num_aisles" toml:"num_aisles" yaml:"num_aisles"`
	Deep        int     `json:"deep" toml:"deep" yaml:"deep"`
	AisleGaps   []Value `json:"aisle_gaps,omitempty" toml:"aisle_gaps" yaml:"aisle_gaps,omitempty"`
	DeepGaps    []Value `json:"deep_gaps,omitempty" toml:"deep_gaps" yaml:"deep_gaps,omitempty"`
	GapFront    Value   `json:"gap_front" toml:"gap_front" yaml:"gap_front"`
	GapBack     Value   `json:"gap_back" toml:"gap_back" yaml:"gap_back"`
	GapLeft     Value   `json:"gap_left" toml:"gap_left" yaml:"gap_left"`
	GapRight    Value   `json:"gap_right" toml:"gap_right" yaml:"gap_right"`
	WallGapUnit string  `json:"wall_gap_unit" toml:"wall_gap_unit" yaml:"wall_gap_unit"`
}

// PalletConfig is an external pallet record to be placed onto a storage cell.
type PalletConfig struct {
	Type     string          `json:"type,omitempty" toml:"type" yaml:"type,omitempty"`
	Color    string          `json:"color,omitempty" toml:"color" yaml:"color,omitempty"`
	LengthCM Value           `json:"length_cm" toml:"length_cm" yaml:"length_cm"`
	WidthCM  Value           `json:"width_cm" toml:"width_cm" yaml:"width_cm"`
	HeightCM Value           `json:"height_cm" toml:"height_cm" yaml:"height_cm"`
	Position *PalletPosition `json:"position,omitempty" toml:"position" yaml:"position,omitempty"`
}

// PalletPosition is the composite key matched against storage cells.
// Fields are pointers so that an absent field can be told apart from zero.
type PalletPosition struct {
	Side  string `json:"side,omitempty" toml:"side" yaml:"side,omitempty"`
	Row   *int   `json:"row,omitempty" toml:"row" yaml:"row,omitempty"`
	Floor *int   `json:"floor,omitempty" toml:"floor" yaml:"floor,omitempty"`
	Depth *int   `json:"depth,omitempty" toml:"depth" yaml:"depth,omitempty"`
	Col   *int   `json:"col,omitempty" toml:"col" yaml:"col,omitempty"`
}

// Complete reports whether every key field is present.
func (p *PalletPosition) Complete() bool {
	return p != nil && p.Side != "" && p.Row != nil && p.Floor != nil && p.Depth != nil && p.Col != nil
}

// Validate checks the structure of the configuration. Length values and units
// are checked by Resolve, since their treatment depends on the units.Mode.
func (c *WarehouseConfig) Validate() error {
	if c == nil {
		return errs.New(errs.ErrCodeInvalidInput, "configuration is required")
	}
	if err := errs.RequirePositive("num_workstations", c.NumWorkstations); err != nil {
		return err
	}
	if len(c.Workstations) != c.NumWorkstations {
		return errs.New(errs.ErrCodeInvalidInput,
			"workstation_configs has %d entries, num_workstations is %d", len(c.Workstations), c.NumWorkstations)
	}
	if !c.Dimensions.Length.IsSet() || !c.Dimensions.Width.IsSet() || !c.Dimensions.Height.IsSet() {
		return errs.New(errs.ErrCodeInvalidInput, "warehouse_dimensions requires length, width and height")
	}
	for i := range c.Workstations {
		ws := &c.Workstations[i]
		if !ws.AisleSpace.IsSet() {
			return errs.New(errs.ErrCodeInvalidInput, "workstation_configs[%d] requires aisle_space", i)
		}
		if err := ws.Left.validate(); err != nil {
			return fmt.Errorf("workstation_configs[%d].left_side_config: %w", i, err)
		}
		if err := ws.Right.validate(); err != nil {
			return fmt.Errorf("workstation_configs[%d].right_side_config: %w", i, err)
		}
	}
	return nil
}

func (s *SideConfig) validate() error {
	if err := errs.RequirePositive("num_floors", s.NumFloors); err != nil {
		return err
	}
	if err := errs.RequirePositive("num_rows", s.NumRows); err != nil {
		return err
	}
	if err := errs.RequirePositive("num_aisles", s.NumAisles); err != nil {
		return err
	}
	return errs.RequirePositive("deep", s.Deep)
}
