package layout

import (
	errs "github.com/matzehuels/racklayout/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

// Cell types.
const (
	CellStorageAisle = "storage_aisle"
	CellAisleGap     = "aisle_gap"
	CellDeepGap      = "deep_gap"
	CellCentralAisle = "central_aisle"
)

// Minimum storage cell sizes, in centimeters. Smaller cells are legal but
// reported by CheckMinimums.
const (
	MinRackWidth   = 1.0
	MinRackLength  = 1.0
	MinFloorHeight = 10.0
)

// =============================================================================
// Geometry
// =============================================================================

// Position is the corner of a box with the smallest coordinates.
// X runs across the warehouse width, Y along its length, Z upward.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Dimensions is the extent of a box along X (Width), Y (Length) and Z (Height).
type Dimensions struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

// =============================================================================
// Cell - storage aisles, gaps and central aisles
// =============================================================================

// Cell is one box in a workstation. Type decides which optional fields are set:
// storage cells carry Indices and Pallets, gap cells carry Indices and GapInfo,
// central aisles carry geometry only. Storage cells always serialize a
// "pallets" array, empty until pallets are assigned.
type Cell struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Side       string     `json:"side,omitempty"`
	Position   Position   `json:"position"`
	Dimensions Dimensions `json:"dimensions"`
	GapInfo    *GapInfo   `json:"gap_info,omitempty"`
	Indices    *Indices   `json:"indices,omitempty"`
	Label      string     `json:"label,omitempty"`
	Pallets    []Pallet   `json:"pallets,omitempty"`
}

// IsStorage reports whether c is a storage aisle.
func (c *Cell) IsStorage() bool { return c.Type == CellStorageAisle }

// IsGap reports whether c is an aisle gap or a deep gap.
func (c *Cell) IsGap() bool { return c.Type == CellAisleGap || c.Type == CellDeepGap }

// Indices locates a cell in its side grid. Row and Floor are always set
// (1-based); the remaining fields depend on the cell type.
type Indices struct {
	Row   int `json:"row"`
	Floor int `json:"floor"`

	// storage_aisle
	Col   int `json:"col,omitempty"`
	Depth int `json:"depth,omitempty"`
	Aisle int `json:"aisle,omitempty"`

	// deep_gap
	AisleGroup    int `json:"aisle_group,omitempty"`
	DepthGapIndex int `json:"depth_gap_index,omitempty"`

	// aisle_gap
	AisleGapIndex int `json:"aisle_gap_index,omitempty"`
}

// GapInfo describes what a gap cell separates. Deep gaps name the Col numbers
// of the storage cells on either side; aisle gaps name the aisle-group ids.
type GapInfo struct {
	GapType              string  `json:"gap_type"`
	Size                 float64 `json:"size"`
	BetweenStorageAisles []int   `json:"between_storage_aisles,omitempty"`
	BetweenAisleGroups   []int   `json:"between_aisle_groups,omitempty"`
	Description          string  `json:"description"`
}

// Pallet is a pallet placed on a storage cell.
type Pallet struct {
	Type  string     `json:"type"`
	Color string     `json:"color"`
	Dims  PalletDims `json:"dims"`
}

// PalletDims is a pallet footprint and height in centimeters.
type PalletDims struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// =============================================================================
// Workstation and WarehouseLayout
// =============================================================================

// Workstation is one zone of the warehouse. Aisles holds the central aisle
// followed by the left-side cells and then the right-side cells.
type Workstation struct {
	ID         string     `json:"id"`
	Position   Position   `json:"position"`
	Dimensions Dimensions `json:"dimensions"`
	Aisles     []Cell     `json:"aisles"`
}

// WarehouseLayout is the result of Build.
type WarehouseLayout struct {
	ID                  string        `json:"id,omitempty"`
	WarehouseDimensions Dimensions    `json:"warehouse_dimensions"`
	Workstations        []Workstation `json:"workstations"`
	Warnings            []Warning     `json:"warnings,omitempty"`
}

// Warning is a non-fatal diagnostic. Workstation and Pallet are 0-based
// indexes into workstation_configs and its pallet_configs.
type Warning struct {
	Code        errs.Code `json:"code"`
	Workstation int       `json:"workstation"`
	Pallet      int       `json:"pallet"`
	Message     string    `json:"message"`
}
