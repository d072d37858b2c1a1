package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newRootOfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "root-of <slice-dir>",
		Short: "Print the root key a slice directory belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := c.app.RootOf(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}
