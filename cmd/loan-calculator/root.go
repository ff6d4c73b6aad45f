package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "loan-calculator",
		Short:         "Fixed-rate loan amortization calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		newScheduleCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadConfiguration reads the configuration file. The default file may be
// absent, in which case defaults and environment overrides apply; an
// explicitly named file must exist.
func (o *rootOptions) loadConfiguration(explicit bool) (*config.Configuration, error) {
	if _, err := os.Stat(o.configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return config.DefaultConfiguration()
		}
		return nil, fmt.Errorf("failed to load configuration at %s: %w", o.configPath, err)
	}
	return config.LoadConfiguration(o.configPath)
}
