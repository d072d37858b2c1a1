package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/slicer/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [root-keys...]",
		Short: "Print the slice directory for each root",
		Long: "Print the slice directory for each root, allocating a new slice for roots\n" +
			"seen for the first time. Each line has the slice ID and its directory.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			onlyExisting, _ := cmd.Flags().GetBool("only-existing")
			paths, _ := cmd.Flags().GetBool("path")

			results, err := c.app.Resolve(cmd.Context(), args, app.ResolveOptions{
				OnlyExisting: onlyExisting,
				Paths:        paths,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				if !r.Found {
					continue
				}
				_, _ = fmt.Fprintf(out, "%s\t%s\n", r.Slice.ID, r.Slice.Dir)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("only-existing", "e", false, "Only report roots that already have a slice")
	cmd.Flags().BoolP("path", "p", false, "Treat arguments as directories instead of root keys")
	return cmd
}
