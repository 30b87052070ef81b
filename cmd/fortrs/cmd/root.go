// SPDX-License-Identifier: MIT

// Package cmd holds the fortrs commands.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	verbose  bool

	config *Config
	logger = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "fortrs",
	Short: "Translate a Fortran subset into Rust",
	Long: `fortrs translates programs written in a small Fortran subset into Rust.

Commands:
  lex        - tokenize numeric & operator text
  translate  - translate Fortran sources into Rust
  parse      - print the parse tree of a Fortran source`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command, cancelling its context on SIGINT or SIGTERM.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Warnf("received %v, cancelling", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: "+DefConfigFile+" when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (default: "+DefLogLevel+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup loads the configuration & configures the logger, flags override the config file.
func setup(cmd *cobra.Command, _ []string) (err error) {
	if config, err = LoadConfig(cfgFile); err != nil {
		return
	}

	if cmd.Flags().Changed("log-level") {
		config.LogLevel = logLevel
	}
	if verbose {
		config.Debug, config.LogLevel = true, logrus.DebugLevel.String()
	}

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return
	}
	logger.SetLevel(level)

	if config.Debug {
		logger.Debugf("configuration: %+v", *config)
	}

	return
}
