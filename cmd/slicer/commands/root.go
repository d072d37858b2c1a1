// Package commands implements the CLI commands for slicer.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/slicer/internal/app"
	"go.trai.ch/slicer/internal/build"
	"go.trai.ch/slicer/internal/core/domain"
)

// CLI represents the command line interface for slicer.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	UseCacheDir(dir string) error
	CacheRoot(ctx context.Context) (string, error)
	Resolve(ctx context.Context, args []string, opts app.ResolveOptions) ([]app.Resolution, error)
	RootOf(ctx context.Context, sliceDir string) (string, error)
	Roots(ctx context.Context, prefix string) ([]string, error)
	RootsUnder(ctx context.Context, dir string) ([]string, error)
	List(ctx context.Context) ([]domain.Segment, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "slicer",
		Short:         "Allocate stable cache directories for project roots",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("cache-dir")
			if dir == "" {
				return nil
			}
			return c.app.UseCacheDir(dir)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("cache-dir", "", "Use this directory as the cache root")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newRootOfCmd())
	rootCmd.AddCommand(c.newRootsCmd())
	rootCmd.AddCommand(c.newRootsUnderCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newCacheRootCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
