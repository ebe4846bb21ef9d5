package main

import (
	"encoding/json"
	"fmt"

	lhttp "liveness/internal/services/liveness/http"

	"github.com/spf13/cobra"
)

var resultJSON bool

var resultCmd = &cobra.Command{
	Use:   "result <sessionId>",
	Short: "Look up a liveness session once and print the verdict",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		a, _, err := buildApp()
		if err != nil {
			return err
		}
		defer a.Close()

		v, out, err := a.Results.Result(ctx, args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if !resultJSON {
			_, err = fmt.Fprintln(w, v.Text)
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(lhttp.ToResponse(v, out))
	},
}

func init() {
	rootCmd.AddCommand(resultCmd)
	resultCmd.Flags().BoolVar(&resultJSON, "json", false, "Print the full observation as JSON")
}
