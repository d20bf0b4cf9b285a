// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/xataio/holocron/cmd/config"
	"github.com/xataio/holocron/internal/log/zerolog"
	"github.com/xataio/holocron/pkg/pipeline"
)

// Version is the holocron version
var (
	Version = "development"
	Env     string
)

const trueStr = "true"

func Prepare() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "holocron",
		Short:        "Normalises Star Wars catalog records into canonical JSON",
		SilenceUsage: true,
		Version:      version(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			return nil
		},
	}

	// configuration keys carry the HOLOCRON_ prefix themselves, so they can
	// be shared between the environment and .env config files.
	viper.AutomaticEnv()

	// Flag definition

	// root cmd
	rootCmd.PersistentFlags().StringP("config", "c", "", ".env or .yaml config file to use with holocron if any")
	rootCmd.PersistentFlags().String("log-level", "info", "log level for the application. One of trace, debug, info, warn, error, fatal, panic")

	// Flag binding for root cmd
	rootFlagBinding(rootCmd)

	// register subcommands
	rootCmd.AddCommand(newTransformCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newValidateCmd())
	return rootCmd
}

// Execute executes the root command.
func Execute() error {
	cmd := Prepare()
	return cmd.Execute()
}

type runFn func(ctx context.Context, cmd *cobra.Command, args []string) error

func withSignalWatcher(fn runFn) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc,
			syscall.SIGHUP,
			syscall.SIGINT,
			syscall.SIGTERM,
			syscall.SIGQUIT)
		defer signal.Stop(sigc)
		go func() {
			select {
			case <-sigc:
				cancel()
			case <-ctx.Done():
			}
		}()

		return fn(ctx, cmd, args)
	}
}

// pipelineFlags registers the flags that override the pipeline configuration.
func pipelineFlags(cmd *cobra.Command) {
	cmd.Flags().AddFlagSet(pipelineFlagSet())
	cmd.PreRun = pipelineFlagBinding
}

func pipelineFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("pipeline", pflag.ContinueOnError)
	fs.String("mapping-file", "", "JSON or YAML mapping table. Defaults to the built in table")
	fs.String("cache-store", "", "Cache store type. One of file, redis, memory")
	fs.String("cache-path", "", "Cache file used by the file store. Defaults to CACHE.json")
	fs.String("reference-policy", "", "What to do when a referenced resource cannot be fetched. One of strict, lenient")
	return fs
}

func pipelineFlagBinding(cmd *cobra.Command, _ []string) {
	// to be able to overwrite configuration with flags when yaml config file is
	// provided
	if cmd.Flags().Lookup("mapping-file").Changed {
		viper.BindPFlag("mappings.file", cmd.Flags().Lookup("mapping-file"))
	}
	if cmd.Flags().Lookup("cache-store").Changed {
		viper.BindPFlag("cache.store", cmd.Flags().Lookup("cache-store"))
	}
	if cmd.Flags().Lookup("cache-path").Changed {
		viper.BindPFlag("cache.path", cmd.Flags().Lookup("cache-path"))
	}
	if cmd.Flags().Lookup("reference-policy").Changed {
		viper.BindPFlag("references.policy", cmd.Flags().Lookup("reference-policy"))
	}

	// to be able to overwrite configuration with flags when env config file is
	// provided or when no configuration is provided
	viper.BindPFlag("HOLOCRON_MAPPING_FILE", cmd.Flags().Lookup("mapping-file"))
	viper.BindPFlag("HOLOCRON_CACHE_STORE", cmd.Flags().Lookup("cache-store"))
	viper.BindPFlag("HOLOCRON_CACHE_PATH", cmd.Flags().Lookup("cache-path"))
	viper.BindPFlag("HOLOCRON_REFERENCE_POLICY", cmd.Flags().Lookup("reference-policy"))
}

func rootFlagBinding(cmd *cobra.Command) {
	viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("HOLOCRON_LOG_LEVEL", cmd.PersistentFlags().Lookup("log-level"))
}

func version() string {
	if Env != "" {
		return Env + " (" + Version + ")"
	}
	return Version
}

// newPipeline builds the pipeline from the loaded configuration. Callers must
// close it.
func newPipeline(ctx context.Context, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	logger := zerolog.NewLogger(&zerolog.Config{
		LogLevel: config.LogLevel(),
	})
	zerolog.SetGlobalLogger(logger)

	pipelineConfig, err := config.ParsePipelineConfig()
	if err != nil {
		return nil, fmt.Errorf("parsing pipeline config: %w", err)
	}

	opts = append([]pipeline.Option{pipeline.WithLogger(zerolog.NewStdLogger(logger))}, opts...)
	return pipeline.New(ctx, pipelineConfig, opts...)
}
