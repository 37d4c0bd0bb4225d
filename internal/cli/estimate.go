package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/parcelview/pkg/catalog"
	"github.com/matzehuels/parcelview/pkg/io"
)

// estimateCommand prints the local parcel estimate for a cart file.
func (c *CLI) estimateCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "estimate <cart>",
		Short: "Estimate the parcel envelope for a cart file",
		Long: `Estimate the parcel envelope for a cart file without calling the packing engine.

The footprint is the largest item footprint in the cart; heights stack, with
textiles and plush toys compressed by the configured factors.`,
		Example: `  parcelview estimate cart.toml
  parcelview estimate cart.json --json`,
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

			e, ok := runner.Estimate(ctx, lines)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if !ok {
					fmt.Println("null")
					return nil
				}
				return enc.Encode(e)
			}
			if !ok {
				printWarning("Cart is empty")
				return nil
			}
			printEstimate(e)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the estimate as JSON")
	return cmd
}

// importCart reads a cart file in any supported format.
func importCart(path string) ([]catalog.Request, error) {
	return io.ImportCart(path)
}
