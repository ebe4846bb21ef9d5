package main

import (
	"os"

	"github.com/spf13/cobra"
)

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve MCP over stdin and stdout",
	RunE:  runStdio,
}

func runStdio(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	a, _, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return quiet(a.Host.ServeStdio(ctx, os.Stdin, os.Stdout))
}

func init() {
	rootCmd.AddCommand(stdioCmd)
}
