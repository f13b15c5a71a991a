package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexhholmes/vertex/internal/config"
	"github.com/alexhholmes/vertex/internal/logging"
	"github.com/alexhholmes/vertex/internal/watch"
)

type rootFlags struct {
	output       string
	configPath   string
	watch        bool
	noAssertions bool
	verbose      bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "vertexgen [flags] <file.go>...",
		Short: "Generate vertex descriptor methods for @vertex structs",
		Args:  cobra.MinimumNArgs(1),
		// errors are logged once by RunE, not echoed by cobra
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				logging.Error("config", "err", err)
				return err
			}
			if flags.output != "" && len(args) > 1 {
				err := errors.New("-o can only be used with a single input file")
				logging.Error("usage", "err", err)
				return err
			}

			var failed error
			for _, path := range args {
				if err := generate(path, flags.output, cfg); err != nil {
					logging.Error("generate", "file", path, "err", err)
					failed = err
				}
			}

			if !flags.watch {
				return failed
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchAndGenerate(ctx, args, flags.output, cfg)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "TOML config file (default "+config.DefaultFile+" if present)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single input only)")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "regenerate when an input changes")
	cmd.Flags().BoolVar(&flags.noAssertions, "no-assertions", false, "skip the compile-time layout check")

	cmd.AddCommand(newInspectCmd(&flags))

	return cmd
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(cmd *cobra.Command, flags rootFlags) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.Load(flags.configPath)
	} else {
		cfg, err = config.LoadDefault("")
	}
	if err != nil {
		return config.Config{}, err
	}

	if flags.noAssertions {
		cfg.Assertions = false
	}
	if flags.verbose {
		cfg.LogLevel = "debug"
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return config.Config{}, fmt.Errorf("log level: %w", err)
	}
	logging.SetOutput(cmd.ErrOrStderr())

	logging.Debug("config loaded", "suffix", cfg.Suffix, "tag", cfg.Tag, "annotation", cfg.Annotation, "assertions", cfg.Assertions)
	return cfg, nil
}

func watchAndGenerate(ctx context.Context, files []string, output string, cfg config.Config) error {
	w, err := watch.New(files)
	if err != nil {
		logging.Error("watch", "err", err)
		return err
	}

	logging.Info("watching", "files", len(files))
	return w.Run(ctx, func(path string) {
		if err := generate(path, output, cfg); err != nil {
			logging.Error("generate", "file", path, "err", err)
		}
	})
}
