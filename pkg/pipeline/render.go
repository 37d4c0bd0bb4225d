package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/parcelview/pkg/observability"
	"github.com/matzehuels/parcelview/pkg/render/sink"
)

// Render generates artifacts for res in the requested formats. Nil or
// empty formats use the runner's configured formats. Formats render
// concurrently; the first failure cancels the rest.
func (r *Runner) Render(ctx context.Context, res *Result, formats []string) (map[string][]byte, error) {
	if len(formats) == 0 {
		formats = r.Options.Formats
	}
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()

	out := make([][]byte, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			data, err := r.renderFormat(gctx, res, format)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			out[i] = data
			return nil
		})
	}
	err := g.Wait()
	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(formats))
	for i, format := range formats {
		artifacts[format] = out[i]
	}
	r.Logger.Debug("rendered outputs", "formats", formats, "duration", time.Since(start))
	return artifacts, nil
}

func (r *Runner) renderFormat(ctx context.Context, res *Result, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return sink.RenderJSON(res.Scene, r.jsonOptions(res)...)
	case FormatSVG:
		return sink.RenderSVG(res.Scene, r.svgOptions(res)...), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, res.Scene, r.pngOptions(res)...)
	case FormatPDF:
		return sink.RenderPDF(ctx, res.Scene, r.svgOptions(res)...)
	}
	return nil, ValidateFormat(format)
}

func (r *Runner) title(res *Result) string {
	if r.Options.Title != "" {
		return r.Options.Title
	}
	return res.Title()
}

func (r *Runner) svgOptions(res *Result) []sink.SVGOption {
	opts := []sink.SVGOption{sink.WithTitle(r.title(res))}
	if len(r.Options.Views) > 0 {
		opts = append(opts, sink.WithViews(r.Options.Views...))
	}
	if r.Options.Labels {
		opts = append(opts, sink.WithLabels())
	}
	return opts
}

func (r *Runner) pngOptions(res *Result) []sink.PNGOption {
	opts := []sink.PNGOption{sink.WithPNGSVGOptions(r.svgOptions(res)...)}
	if r.Options.PNGScale > 0 {
		opts = append(opts, sink.WithScale(r.Options.PNGScale))
	}
	return opts
}

func (r *Runner) jsonOptions(res *Result) []sink.JSONOption {
	opts := []sink.JSONOption{sink.WithJSONTitle(r.title(res))}
	if res.HasEstimate || res.Packed != nil {
		opts = append(opts, sink.WithJSONEstimate(res.Envelope()))
	}
	if res.Fallback {
		opts = append(opts, sink.WithJSONFallback())
	}
	return opts
}
