package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/parcelview/pkg/catalog"
	"github.com/matzehuels/parcelview/pkg/io"
)

// cartCommand opens the interactive cart editor.
func (c *CLI) cartCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "cart [cart]",
		Short: "Build a cart interactively with a live parcel estimate",
		Long: `Browse the catalog, adjust quantities and watch the parcel estimate update.
With a packing engine configured, the packed envelope replaces the estimate
once you stop typing.

Pressing enter writes the cart as JSON to --output (default stdout).`,
		Example: `  parcelview cart
  parcelview cart cart.json -o cart.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := c.newCatalog()
			if err != nil {
				return err
			}
			runner, err := c.newRunner()
			if err != nil {
				return err
			}

			cart := catalog.NewCart()
			if len(args) == 1 {
				lines, err := c.resolveCartFile(ctx, args[0])
				if err != nil {
					return err
				}
				cart = catalog.NewCart(lines...)
			}

			m := NewCartModel(ctx, runner, cat.Items(""), cart)
			final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(os.Stderr)).Run()
			if err != nil {
				return err
			}

			fm, ok := final.(CartModel)
			if !ok || !fm.Saved {
				printDetail("Cart discarded")
				return nil
			}
			if output == "" {
				return io.WriteCart(os.Stdout, fm.Cart.Requests())
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := io.WriteCart(f, fm.Cart.Requests()); err != nil {
				return err
			}
			printSuccess("Saved cart with %d items", fm.Cart.Count())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the cart to this file")
	return cmd
}
