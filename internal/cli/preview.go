package cli

import (
	"github.com/spf13/cobra"
)

// previewCommand packs a cart with the engine and renders the result.
func (c *CLI) previewCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "preview <cart>",
		Short: "Render a 3D parcel preview for a cart file",
		Long: `Render a parcel preview for a cart file.

When a packing engine is configured the preview shows the packed item
placements. Without one, or when the engine fails, it falls back to a single
box of the estimated size. A reference object is drawn beside the parcel for
scale. Engines that quote shipping rates also list the carrier options.`,
		Example: `  parcelview preview cart.toml
  parcelview preview cart.json -f svg,png -o out/parcel --labels
  parcelview preview cart.yaml --engine http://localhost:8000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lines, err := c.resolveCartFile(ctx, args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner()
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Packing cart...")
			if runner.Engine != nil {
				spinner.Start()
			}
			res, err := runner.Preview(ctx, lines)
			spinner.Stop()
			if err != nil {
				return err
			}

			if res.HasEstimate {
				printEstimate(res.Envelope())
			}
			printResult(res)
			if rates, err := runner.Rates(ctx, lines); err != nil {
				printWarning("Shipping rates unavailable: %v", err)
			} else {
				printRates(rates)
			}
			return c.writeResult(ctx, runner, res, args[0], &opts)
		},
	}

	addRenderFlags(cmd, &opts)
	return cmd
}
