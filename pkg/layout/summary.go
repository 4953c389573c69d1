package layout

import (
	"fmt"
	"math"

	errs "github.com/matzehuels/racklayout/pkg/errors"
)

// Summary counts what a layout contains.
type Summary struct {
	Workstations  int `json:"workstations"`
	CentralAisles int `json:"central_aisles"`
	StorageCells  int `json:"storage_cells"`
	AisleGaps     int `json:"aisle_gaps"`
	DeepGaps      int `json:"deep_gaps"`
	Pallets       int `json:"pallets"`
	Warnings      int `json:"warnings"`

	// SmallestCell holds the smallest width, length and height seen across
	// storage cells, each taken independently. Zero when there are none.
	SmallestCell Dimensions `json:"smallest_cell"`
}

// Cells returns the total number of cells of every type.
func (s Summary) Cells() int {
	return s.CentralAisles + s.StorageCells + s.AisleGaps + s.DeepGaps
}

// Summarize counts the cells, pallets and warnings of l.
func Summarize(l *WarehouseLayout) Summary {
	var s Summary
	if l == nil {
		return s
	}
	s.Workstations = len(l.Workstations)
	s.Warnings = len(l.Warnings)
	smallest := Dimensions{Width: math.Inf(1), Length: math.Inf(1), Height: math.Inf(1)}
	for i := range l.Workstations {
		s.add(&l.Workstations[i], &smallest)
	}
	if s.StorageCells > 0 {
		s.SmallestCell = smallest
	}
	return s
}

// SummarizeWorkstation counts the cells and pallets of one workstation.
func SummarizeWorkstation(ws *Workstation) Summary {
	s := Summary{Workstations: 1}
	smallest := Dimensions{Width: math.Inf(1), Length: math.Inf(1), Height: math.Inf(1)}
	s.add(ws, &smallest)
	if s.StorageCells > 0 {
		s.SmallestCell = smallest
	}
	return s
}

func (s *Summary) add(ws *Workstation, smallest *Dimensions) {
	for i := range ws.Aisles {
		c := &ws.Aisles[i]
		switch c.Type {
		case CellCentralAisle:
			s.CentralAisles++
		case CellAisleGap:
			s.AisleGaps++
		case CellDeepGap:
			s.DeepGaps++
		case CellStorageAisle:
			s.StorageCells++
			s.Pallets += len(c.Pallets)
			smallest.Width = math.Min(smallest.Width, c.Dimensions.Width)
			smallest.Length = math.Min(smallest.Length, c.Dimensions.Length)
			smallest.Height = math.Min(smallest.Height, c.Dimensions.Height)
		}
	}
}

// CheckMinimums reports storage cells smaller than MinRackWidth,
// MinRackLength or MinFloorHeight. It returns one warning per dimension that
// falls short, with Workstation and Pallet set to -1.
func CheckMinimums(s Summary) []Warning {
	if s.StorageCells == 0 {
		return nil
	}
	checks := []struct {
		name     string
		got, min float64
	}{
		{"width", s.SmallestCell.Width, MinRackWidth},
		{"length", s.SmallestCell.Length, MinRackLength},
		{"height", s.SmallestCell.Height, MinFloorHeight},
	}
	var out []Warning
	for _, c := range checks {
		if c.got < c.min {
			out = append(out, Warning{
				Code:        errs.ErrCodeUndersizedCell,
				Workstation: -1,
				Pallet:      -1,
				Message:     fmt.Sprintf("smallest storage cell %s is %scm, below the %scm minimum", c.name, formatSize(c.got), formatSize(c.min)),
			})
		}
	}
	return out
}
