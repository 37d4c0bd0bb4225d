// Package pkg provides the core libraries for Parcelview parcel previews.
//
// # Overview
//
// Parcelview turns a shopping cart into a picture of the parcel it ships in:
// a box of the estimated (or engine-packed) size, the items inside it, and a
// familiar object beside it for scale. The pkg directory is organized into
// four main areas:
//
//  1. Domain - [catalog], [parcel], [reference]
//  2. Geometry - [geom], [viewport], [scene]
//  3. Integration - [engine] (packing engine client), [io], [config]
//  4. Orchestration - [pipeline] (estimate → pack → scene → render)
//
// # Architecture
//
// The typical data flow:
//
//	Cart file / API request
//	         ↓
//	    [catalog] resolve product IDs to items
//	         ↓
//	    [parcel] aggregate the envelope (footprint max, stacked height)
//	         ↓
//	    [engine] pack with the external engine (optional, falls back)
//	         ↓
//	    [scene] bounds, scale, coordinate mapping, reference object
//	         ↓
//	    [render/sink] SVG/PDF/PNG/JSON output
//
// # Quick Start
//
//	cat, _ := catalog.Default()
//	lines, _ := cat.Resolve([]catalog.Request{{ProductID: 101, Quantity: 2}})
//
//	runner := pipeline.NewRunner(nil, logger, pipeline.DefaultOptions())
//	res, _ := runner.Preview(ctx, lines)
//	artifacts, _ := runner.Render(ctx, res, []string{"svg"})
//
// # Coordinates
//
// Packing space is millimeters with z up. Render space swaps the vertical
// axis to Y, scales by a viewport factor and centers the scene on the
// origin. See [geom] and [viewport].
//
// # Error Handling
//
// Errors carry a machine-readable code from [errors]; the HTTP server maps
// codes to status codes and the CLI prints the message.
//
// [catalog]: github.com/matzehuels/parcelview/pkg/catalog
// [parcel]: github.com/matzehuels/parcelview/pkg/parcel
// [reference]: github.com/matzehuels/parcelview/pkg/reference
// [geom]: github.com/matzehuels/parcelview/pkg/geom
// [viewport]: github.com/matzehuels/parcelview/pkg/viewport
// [scene]: github.com/matzehuels/parcelview/pkg/scene
// [engine]: github.com/matzehuels/parcelview/pkg/engine
// [io]: github.com/matzehuels/parcelview/pkg/io
// [config]: github.com/matzehuels/parcelview/pkg/config
// [pipeline]: github.com/matzehuels/parcelview/pkg/pipeline
// [render/sink]: github.com/matzehuels/parcelview/pkg/render/sink
// [errors]: github.com/matzehuels/parcelview/pkg/errors
package pkg
