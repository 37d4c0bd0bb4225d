package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/matzehuels/parcelview/pkg/reference"
)

// tiersCommand prints the reference object table.
func (c *CLI) tiersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Show which reference object is drawn for each parcel size",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(renderTable(
				[]string{"Longest edge", "Object", "W × H × D cm"},
				tierRows(reference.Tiers),
			))
		},
	}
}

func tierRows(tiers []reference.Tier) [][]string {
	rows := make([][]string, 0, len(tiers))
	lower := 0.0
	for _, t := range tiers {
		edge := fmt.Sprintf("%s – %s cm", formatCm(lower), formatCm(t.UpperCm))
		if math.IsInf(t.UpperCm, 1) {
			edge = fmt.Sprintf("≥ %s cm", formatCm(lower))
		}
		s := t.Model.Size
		rows = append(rows, []string{
			edge,
			t.Model.Label,
			fmt.Sprintf("%s × %s × %s", formatCm(s.Width), formatCm(s.Height), formatCm(s.Depth)),
		})
		lower = t.UpperCm
	}
	return rows
}
