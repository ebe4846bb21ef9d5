package main

import (
	"fmt"

	"liveness/internal/core/version"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Info().String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
