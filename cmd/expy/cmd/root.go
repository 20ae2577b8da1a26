// Package cmd provides the expy command tree.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"expy/internal/cli"
	"expy/internal/config"
	"expy/internal/log"
	"expy/internal/storage"
)

// app carries what every subcommand needs once the root pre-run is done.
type app struct {
	envFile string
	dbPath  string
	debug   bool

	out      io.Writer
	errOut   io.Writer
	logger   *log.Logger
	registry *storage.Registry
	store    *storage.Store
}

// NewRootCommand builds the command tree. Output goes to out, logs and
// errors to errOut.
func NewRootCommand(out, errOut io.Writer) (*cobra.Command, func() error) {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "expy",
		Short: "Track personal finance transactions",
		Long: `expy stores personal finance transactions in a local SQLite file
and lets you add, inspect, filter, change and remove them.

Amounts are entered and shown in dollars and stored as cents.

Example:
  expy add --date 2024-03-01 --category Groceries --value 54.20
  expy list --from 2024-01-01 --to 2024-03-31 --category Groceries --min 10
  expy stats`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context())
		},
	}

	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.envFile, "env", "", "env file to load (default is .env if present)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "database file, or :memory: (overrides EXPY_DB_PATH)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newAddCommand(a),
		newGetCommand(a),
		newListCommand(a),
		newUpdateCommand(a),
		newDeleteCommand(a),
		newStatsCommand(a),
	)

	return root, a.close
}

// Execute runs the command tree against the process arguments.
func Execute() error {
	root, closeApp := NewRootCommand(os.Stdout, os.Stderr)
	err := root.ExecuteContext(context.Background())
	if cerr := closeApp(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func (a *app) init(ctx context.Context) error {
	if err := cli.LoadEnvFile(a.envFile); err != nil {
		return err
	}

	cfg, err := cli.LoadAndValidateConfig(func(c *config.Config) {
		if a.dbPath != "" {
			c.DBPath = a.dbPath
		}
	})
	if err != nil {
		return err
	}

	a.logger = cli.SetupLogger(cfg, a.debug, a.errOut)
	a.registry = cli.NewRegistry(cfg, a.logger)

	a.store, err = cli.OpenStore(ctx, a.registry, cfg, a.logger)
	return err
}

func (a *app) close() error {
	if a.registry == nil {
		return nil
	}
	return a.registry.CloseAll()
}

// describeFault tells a storage fault apart from other errors for the user.
func describeFault(err error, action string) error {
	switch {
	case storage.IsConstraint(err):
		return fmt.Errorf("%s: conflicts with an existing transaction: %w", action, err)
	case errors.Is(err, storage.ErrStorage):
		return fmt.Errorf("%s: storage fault: %w", action, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}
