package layout_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/racklayout/pkg/config"
	"github.com/matzehuels/racklayout/pkg/layout"
)

func ExampleBuild() {
	doc := `{
	  "warehouse_dimensions": {"length": 5, "width": 10, "height": 3, "height_safety_margin": 0.5, "unit": "m"},
	  "num_workstations": 1,
	  "workstation_gap": 0, "workstation_gap_unit": "cm",
	  "workstation_configs": [{
	    "aisle_space": 2, "aisle_space_unit": "m",
	    "left_side_config":  {"num_floors": 1, "num_rows": 1, "num_aisles": 2, "deep": 1,
	                          "aisle_gaps": [20], "wall_gap_unit": "cm"},
	    "right_side_config": {"num_floors": 1, "num_rows": 1, "num_aisles": 1, "deep": 1,
	                          "wall_gap_unit": "cm"},
	    "pallet_configs": [{"length_cm": 120, "width_cm": 80, "height_cm": 15,
	                        "position": {"side": "left", "row": 1, "floor": 1, "depth": 1, "col": 2}}]
	  }]
	}`

	cfg, err := config.Decode(strings.NewReader(doc), config.FormatJSON)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	l, err := layout.Build(cfg)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, c := range l.Workstations[0].Aisles {
		fmt.Printf("%s x=%g w=%g %q\n", c.ID, c.Position.X, c.Dimensions.Width, c.Label)
	}
	s := layout.Summarize(l)
	fmt.Printf("storage=%d gaps=%d pallets=%d warnings=%d\n", s.StorageCells, s.AisleGaps+s.DeepGaps, s.Pallets, s.Warnings)
	// Output:
	// central-aisle-0 x=400 w=200 ""
	// aisle-0-left-0-1-0 x=0 w=190 "Aisle 1"
	// aisle-gap-0-left-0-1-0 x=190 w=20 "Aisle Gap 20cm"
	// aisle-0-left-0-2-0 x=210 w=190 "Aisle 2"
	// aisle-0-right-0-1-0 x=600 w=400 "Aisle 1"
	// storage=3 gaps=1 pallets=1 warnings=0
}
