// Package layout computes the 3D geometry of a warehouse from a configuration.
//
// A layout is a pure function of its input: the same configuration always
// yields the same cells, positions and labels, and nothing is shared between
// calls. Every length in the output is in centimeters.
//
// # Pipeline
//
// [Build] runs the stages in dependency order:
//
//  1. config.Resolve converts every length to centimeters (units.Mode decides
//     how unknown units and non-numeric values are treated).
//  2. [Partition] splits the warehouse width into equal workstation zones
//     separated by the workstation gap, and removes the height safety margin.
//  3. Each zone gets a central aisle plus a left and a right side; [GenerateSide]
//     lays out each side as a flat, ordered list of storage and gap cells.
//  4. [AssignPallets] places pallet records onto storage cells by their
//     (side, row, floor, depth, col) key.
//
// # Cells
//
// A [Cell] is a discriminated union on Type:
//
//	storage_aisle  Indices{Row, Floor, Col, Depth, Aisle}, Label "Aisle {g}", Pallets
//	deep_gap       Indices{Row, Floor, AisleGroup, DepthGapIndex}, GapInfo, Label "Deep Gap {size}cm"
//	aisle_gap      Indices{Row, Floor, AisleGapIndex}, GapInfo, Label "Aisle Gap {size}cm"
//	central_aisle  geometry only
//
// Within a side, storage cells of one (row, floor) are numbered by Col
// contiguously from 1 to num_aisles*deep in traversal order (aisle-group
// outer, depth inner). Gaps sit strictly between the cells they separate and
// never take a Col number. Row and floor indices are 1-based; cell IDs use
// 0-based row and floor numbers:
//
//	central-aisle-{ws}
//	aisle-{ws}-{side}-{row}-{col}-{floor}
//	deep-gap-{ws}-{side}-{row}-{group}-{depthIdx}-{floor}
//	aisle-gap-{ws}-{side}-{row}-{group}-{floor}
//
// # Errors
//
// Configuration problems abort the layout with an INVALID_* code, and derived
// dimensions that would go negative abort it with GEOMETRY_OVERFLOW (see
// pkg/errors). Pallets that cannot be placed never abort; they are reported
// as [Warning] values on the result.
//
// # Serialization
//
// [Marshal], [Unmarshal], [WriteFile] and [ReadFile] read and write the JSON
// form of a [WarehouseLayout].
package layout
