package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/decompose/internal/cli"
	"github.com/aretw0/decompose/internal/logging"
	"github.com/spf13/cobra"
)

var globalOpts cli.Options

var rootCmd = &cobra.Command{
	Use:   "decompose",
	Short: "Recursive theory-of-mind question answering and evaluation",
	Long: `decompose answers nested-belief questions by peeling one belief layer at a
time, filtering the story to what each agent could know.

It evaluates four answering methods (baseline, cot, simtom, decompose) on the
FANToM and HiToM benchmarks, and serves the engine over HTTP and MCP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVarP(&globalOpts.ConfigPath, "config", "c", "decompose.yaml", "Config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringArrayVar(&globalOpts.Sets, "set", nil, "Override a config key (key=value, repeatable)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.Debug, "debug", false, "Enable debug logs and per-layer trace hooks")
}

// setup loads the config and builds the shared stack for a command.
func setup(ctx context.Context) (*cli.Stack, error) {
	cfg, err := cli.LoadConfig(globalOpts, os.Getenv)
	if err != nil {
		return nil, err
	}
	level, err := cli.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)
	return cli.NewStack(ctx, cfg, logger, globalOpts.Debug)
}
