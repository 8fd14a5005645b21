// Package main provides the entry point for the wellfang CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/wellfang/cmd/wellfang/commands"
	"github.com/Sumatoshi-tech/wellfang/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wellfang",
		Short: "Wellfang - well-log curve anomaly detection and plotting",
		Long: `Wellfang analyzes LAS 2.0 well-log files.

Commands:
  detect    Flag anomalous curve samples (prior-rule, 3-sigma, IQR)
  plot      Render a multi-track depth plot with horizon overlays
  rules     Show the built-in physical-range rule table
  mcp       Serve detection tools over the Model Context Protocol`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewPlotCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintln(os.Stdout, version.String())
		},
	}
}
