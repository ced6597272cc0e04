package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var logLevel string
	var logFile string

	var rootCmd = &cobra.Command{
		Use:   "gpadmin",
		Short: "Admin CLI tool for group project activities",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeLogger(logLevel, logFile)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level [debug, info, warn, error]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(newManifestCmd())
	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newSubmissionsCmd())
	rootCmd.AddCommand(newFilesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
