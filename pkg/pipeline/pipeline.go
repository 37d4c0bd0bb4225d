// Package pipeline provides the preview pipeline for parcelview.
//
// This package implements the estimate → pack → scene → render flow used by
// the CLI and the HTTP API. Centralizing it keeps fallback behavior and
// render options identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Estimate: aggregate cart lines into a local envelope ([parcel.Aggregate])
//  2. Pack: ask the packing engine for item placements (optional)
//  3. Scene: compute bounds, scale, coordinates and the reference object
//  4. Render: generate output in various formats (JSON, SVG, PNG, PDF)
//
// When no engine is configured, or the engine fails, stage 3 uses the
// estimate as a single box and the result is marked as a fallback.
//
// # Usage
//
//	runner := pipeline.NewRunner(client, logger, pipeline.DefaultOptions())
//	res, err := runner.Preview(ctx, lines)
//	if err != nil {
//	    return err
//	}
//	artifacts, err := runner.Render(ctx, res, []string{"svg"})
package pipeline

import (
	"fmt"
	"math"
	"time"

	"github.com/matzehuels/parcelview/pkg/errors"
	"github.com/matzehuels/parcelview/pkg/parcel"
	"github.com/matzehuels/parcelview/pkg/render/sink"
	"github.com/matzehuels/parcelview/pkg/scene"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// DefaultFormats is used when no format is requested.
var DefaultFormats = []string{FormatSVG}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the preview pipeline.
type Options struct {
	// Estimate options
	Policy parcel.Policy

	// Scene options
	Scene scene.Options

	// Render options
	Formats  []string
	Views    []sink.View
	Labels   bool
	Title    string  // empty uses Result.Title
	PNGScale float64 // 0 uses the sink default
}

// DefaultOptions returns options with package defaults.
func DefaultOptions() Options {
	return Options{
		Policy:  parcel.DefaultPolicy(),
		Scene:   scene.DefaultOptions(),
		Formats: DefaultFormats,
	}
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be svg, png, pdf, or json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// maxPNGScale bounds the PNG zoom factor passed to the converter.
const maxPNGScale = 8

// Validate checks formats, views and the PNG scale.
func (o *Options) Validate() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if math.IsNaN(o.PNGScale) || o.PNGScale < 0 || o.PNGScale > maxPNGScale {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be between 0 and %d, got %v", maxPNGScale, o.PNGScale)
	}
	for _, v := range o.Views {
		if _, err := sink.ParseView(string(v)); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a preview run.
type Result struct {
	// Estimate is the local envelope. HasEstimate is false for an empty cart.
	Estimate    parcel.Estimate
	HasEstimate bool

	// Packed is the engine's envelope when the engine answered.
	Packed *parcel.Estimate

	// Scene is always set; it is empty for an empty cart.
	Scene *scene.Scene

	// Fallback is true when Scene was built from Estimate instead of engine
	// placements. Err holds the engine failure, if any.
	Fallback bool
	Err      error

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Placements int
	PackTime   time.Duration
	SceneTime  time.Duration
}

// Envelope returns the engine envelope when present, else the estimate.
func (r *Result) Envelope() parcel.Estimate {
	if r.Packed != nil {
		return *r.Packed
	}
	return r.Estimate
}

// Title describes the envelope for captions, e.g. "30 x 25 x 6 cm, 400 g".
func (r *Result) Title() string {
	if !r.HasEstimate && r.Packed == nil {
		return "Empty cart"
	}
	e := r.Envelope()
	return fmt.Sprintf("%g x %g x %g cm, %d g", e.LengthCm, e.WidthCm, e.HeightCm, e.WeightG)
}
