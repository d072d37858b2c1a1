package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newRootsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roots <prefix>",
		Short: "List known root keys starting with a prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := c.app.Roots(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printLines(cmd, keys)
		},
	}
}

func (c *CLI) newRootsUnderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roots-under <dir>",
		Short: "List existing directories below dir that have a slice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, err := c.app.RootsUnder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printLines(cmd, dirs)
		},
	}
}

func printLines(cmd *cobra.Command, lines []string) error {
	out := cmd.OutOrStdout()
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
