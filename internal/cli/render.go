package cli

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/parcelview/pkg/io"
	"github.com/matzehuels/parcelview/pkg/pipeline"
	"github.com/matzehuels/parcelview/pkg/render/sink"
)

// renderOpts holds the output flags shared by every command that draws a scene.
type renderOpts struct {
	output  string  // output file (single format) or base path (multiple)
	formats string  // comma-separated: svg (default), json, png, pdf
	views   string  // comma-separated: front, top
	labels  bool    // print item names inside their boxes
	title   string  // heading; empty derives one from the envelope
	scale   float64 // PNG zoom factor; 0 keeps the default
}

// addRenderFlags registers the shared output flags on cmd.
func addRenderFlags(cmd *cobra.Command, opts *renderOpts) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.views, "views", "", "views to draw: front, top (comma-separated, default both)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label boxes with item names")
	cmd.Flags().StringVar(&opts.title, "title", "", "image title (default: parcel size and weight)")
	cmd.Flags().Float64Var(&opts.scale, "png-scale", 0, "PNG zoom factor, up to 8 (default 2)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeList(formatNames()))
	_ = cmd.RegisterFlagCompletionFunc("views", completeList(viewNames()))
}

// apply copies the flags onto the runner's render options.
func (o *renderOpts) apply(r *pipeline.Runner) ([]string, error) {
	formats := parseFormats(o.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return nil, err
	}
	if o.views != "" {
		var views []sink.View
		for _, s := range strings.Split(o.views, ",") {
			v, err := sink.ParseView(s)
			if err != nil {
				return nil, err
			}
			views = append(views, v)
		}
		r.Options.Views = views
	}
	r.Options.Labels = o.labels
	r.Options.Title = o.title
	r.Options.PNGScale = o.scale
	if err := r.Options.Validate(); err != nil {
		return nil, err
	}
	return formats, nil
}

// writeResult renders res in every requested format and writes the files.
// input names the source file; it seeds the output name when -o is unset.
func (c *CLI) writeResult(ctx context.Context, r *pipeline.Runner, res *pipeline.Result, input string, opts *renderOpts) error {
	formats, err := opts.apply(r)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	artifacts, err := r.Render(ctx, res, formats)
	if err != nil {
		return err
	}

	// Single format with explicit -o writes exactly that file.
	if len(formats) == 1 && opts.output != "" {
		if err := io.ExportArtifact(opts.output, artifacts[formats[0]]); err != nil {
			return err
		}
		printFile(opts.output)
		prog.done("Rendered", "format", formats[0], "bytes", len(artifacts[formats[0]]))
		return nil
	}

	base := basePath(opts.output, input)
	keys := make([]string, 0, len(artifacts))
	for f := range artifacts {
		keys = append(keys, f)
	}
	slices.Sort(keys)
	for _, f := range keys {
		path := base + "." + f
		if err := io.ExportArtifact(path, artifacts[f]); err != nil {
			return err
		}
		printFile(path)
	}
	prog.done("Rendered", "formats", strings.Join(keys, ","), "items", len(res.Scene.Items))
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
