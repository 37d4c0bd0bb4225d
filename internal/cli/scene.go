package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/parcelview/pkg/io"
)

// sceneCommand renders placements that were packed elsewhere.
func (c *CLI) sceneCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "scene <placements.json>",
		Short: "Render packed placements from a JSON file",
		Long: `Render packed item placements, as returned by the packing engine, without
calling it. The file may hold a bare array of placements or an object with a
"placements" field.`,
		Example: `  parcelview scene placements.json
  parcelview scene placements.json -f json -o scene.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			placements, err := io.ImportPlacements(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner()
			if err != nil {
				return err
			}

			res := runner.Placements(ctx, placements)
			printResult(res)
			return c.writeResult(ctx, runner, res, args[0], &opts)
		},
	}

	addRenderFlags(cmd, &opts)
	return cmd
}
