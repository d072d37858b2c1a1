package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every slice and its root key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			segs, err := c.app.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range segs {
				_, _ = fmt.Fprintf(out, "%s=%s\n", s.SliceID, s.RootKey)
			}
			return nil
		},
	}
}

func (c *CLI) newCacheRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cache-root",
		Short: "Print the cache root directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := c.app.CacheRoot(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), root)
			return nil
		},
	}
}
