// Package governor implements the governor command line tool.
package governor

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smartcontractkit/governor/config"
	"github.com/smartcontractkit/governor/sdk"
)

type rootOptions struct {
	configPath string
	envFile    string
	verbose    bool
}

func BuildGovernorCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := cobra.Command{
		Use:           "governor",
		Short:         "Simulate and inspect DAO governance",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := zapcore.InfoLevel
			if opts.verbose {
				level = zapcore.DebugLevel
			}

			zapConfig := zap.NewDevelopmentConfig()
			zapConfig.Level = zap.NewAtomicLevelAt(level)
			logger, err := zapConfig.Build()
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			cmd.SetContext(sdk.WithLogger(cmd.Context(), logger.Sugar()))

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML or JSON configuration file, defaults apply when empty")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Path to a .env file with GOVERNOR_ overrides")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log at debug level")

	cmd.AddCommand(newSimulateCmd(opts))
	cmd.AddCommand(newHashActionsCmd())
	cmd.AddCommand(newEventsCmd())
	cmd.AddCommand(newConfigCmd(opts))

	return &cmd
}

// loadConfig reads the configuration file, or the defaults, and applies environment overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(o.envFile); err != nil {
		return nil, err
	}

	c := config.Default()
	if o.configPath != "" {
		var err error
		if c, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	if err := c.ApplyEnv(nil); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return c, nil
}
