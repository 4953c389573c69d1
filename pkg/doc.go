// Package pkg provides the core libraries for racklayout warehouse layouts.
//
// # Overview
//
// Racklayout turns a warehouse configuration into a 3D layout: the warehouse
// floor is split into workstations, each with a central aisle and a rack side
// on either hand, and every rack side is cut into storage cells and gaps with
// exact positions and sizes. Pallets from the configuration are placed onto
// the storage cells they address.
//
// # Architecture
//
// The typical data flow:
//
//	JSON / TOML / YAML configuration
//	         ↓
//	    [config] package (decode, validate, resolve to centimeters)
//	         ↓
//	    [layout] package (partition → sides → pallets → assemble)
//	         ↓
//	    layout.json
//
// [pipeline] wraps this flow with caching, logging and observability and is
// shared by the CLI and the HTTP API so that both behave identically.
//
// # Quick Start
//
//	cfg, _ := config.Load("warehouse.toml")
//	l, err := layout.Build(cfg, layout.WithMode(units.Strict))
//	if err != nil {
//	    // errs.GetCode(err) is INVALID_INPUT, INVALID_UNIT or GEOMETRY_OVERFLOW
//	}
//	_ = layout.WriteFile(l, "warehouse.layout.json")
//
// # Main Packages
//
// [units] - Length units (mm, cm, m, in, ft) and conversion to centimeters,
// with strict and permissive handling of unknown units and non-numeric values.
//
// [config] - The warehouse configuration document and its decoders.
//
// [layout] - Workstation partitioning, side generation, pallet assignment and
// the serializable layout types.
//
// [pipeline] - Cached layout computation and validation reports.
//
// [cache] - File, Redis and MongoDB cache backends behind one interface.
//
// [errors] - Error codes shared by every package.
//
// [observability] - Hooks for layout, cache and HTTP events.
//
// [buildinfo] - Version information set at build time.
package pkg
