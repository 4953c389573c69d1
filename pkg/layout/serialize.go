package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// MarshalJSON writes storage cells with a "pallets" array even when no pallet
// was assigned; other cell types omit the key.
func (c Cell) MarshalJSON() ([]byte, error) {
	type cell Cell
	if c.Type != CellStorageAisle {
		return json.Marshal(cell(c))
	}
	pallets := c.Pallets
	if pallets == nil {
		pallets = []Pallet{}
	}
	return json.Marshal(struct {
		cell
		Pallets []Pallet `json:"pallets"`
	}{cell(c), pallets})
}

// Marshal serializes a layout to pretty-printed JSON bytes.
func Marshal(l *WarehouseLayout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a layout.
func Unmarshal(data []byte) (*WarehouseLayout, error) {
	var l WarehouseLayout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("unmarshal layout: %w", err)
	}
	if len(l.Workstations) == 0 {
		return nil, fmt.Errorf("layout must contain workstations")
	}
	return &l, nil
}

// Write encodes l as indented JSON to w.
func Write(l *WarehouseLayout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a layout to a JSON file.
func WriteFile(l *WarehouseLayout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a layout from a JSON file.
func ReadFile(path string) (*WarehouseLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
