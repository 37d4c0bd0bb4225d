package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/parcelview/pkg/parcel"
)

// manualOpts holds the dimensions for the manual command.
type manualOpts struct {
	length, width, height float64 // centimeters
	weight                float64 // grams
}

// manualCommand previews a parcel whose size the user enters directly.
func (c *CLI) manualCommand() *cobra.Command {
	var (
		dims manualOpts
		opts renderOpts
	)

	cmd := &cobra.Command{
		Use:   "manual",
		Short: "Render a preview for manually entered parcel dimensions",
		Example: `  parcelview manual --length 30 --width 20 --height 10 --weight 500
  parcelview manual -l 120 -w 40 -H 40 -f png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := parcel.Manual(dims.length, dims.width, dims.height, dims.weight)
			if err != nil {
				return err
			}
			runner, err := c.newRunner()
			if err != nil {
				return err
			}

			res := runner.Manual(ctx, e)
			printEstimate(e)
			printResult(res)
			if rates, err := runner.ManualRates(ctx, e); err != nil {
				printWarning("Shipping rates unavailable: %v", err)
			} else {
				printRates(rates)
			}
			return c.writeResult(ctx, runner, res, "parcel", &opts)
		},
	}

	cmd.Flags().Float64VarP(&dims.length, "length", "l", 0, "length in cm")
	cmd.Flags().Float64VarP(&dims.width, "width", "w", 0, "width in cm")
	cmd.Flags().Float64VarP(&dims.height, "height", "H", 0, "height in cm")
	cmd.Flags().Float64Var(&dims.weight, "weight", 0, "weight in g")
	_ = cmd.MarkFlagRequired("length")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
	_ = cmd.MarkFlagRequired("weight")
	addRenderFlags(cmd, &opts)
	return cmd
}
