package layout

import (
	errs "github.com/matzehuels/racklayout/pkg/errors"
)

// Bounds are the outer warehouse dimensions in centimeters.
type Bounds struct {
	Width              float64
	Length             float64
	Height             float64
	HeightSafetyMargin float64
}

// Zone is the slice of the warehouse given to one workstation.
type Zone struct {
	Index        int
	X            float64
	Width        float64
	Length       float64
	Height       float64 // full warehouse height
	UsableHeight float64 // height minus the safety margin
}

// Partition divides the warehouse width into n equal zones separated by gap.
func Partition(b Bounds, n int, gap float64) ([]Zone, error) {
	if err := errs.RequirePositive("num_workstations", n); err != nil {
		return nil, err
	}
	width := (b.Width - gap*float64(n-1)) / float64(n)
	if width < 0 {
		return nil, errs.Overflow("workstation width", width)
	}
	usable := b.Height - b.HeightSafetyMargin
	if usable < 0 {
		return nil, errs.Overflow("usable height", usable)
	}

	zones := make([]Zone, n)
	for i := range zones {
		zones[i] = Zone{
			Index:        i,
			X:            float64(i) * (width + gap),
			Width:        width,
			Length:       b.Length,
			Height:       b.Height,
			UsableHeight: usable,
		}
	}
	return zones, nil
}

// SideWidth returns the width left for each side once the central aisle is
// taken out of the zone.
func (z Zone) SideWidth(aisle float64) (float64, error) {
	w := (z.Width - aisle) / 2
	if w < 0 {
		return 0, errs.Overflow("side width", w)
	}
	return w, nil
}
