package main

import (
	"encoding/json"

	"liveness/internal/modkit/toolkit"

	"github.com/spf13/cobra"
)

// toolEntry is one line of the tools listing
type toolEntry struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
	Enabled     bool            `json:"enabled"`
}

func toolEntries(all []toolkit.Descriptor) []toolEntry {
	out := make([]toolEntry, 0, len(all))
	for _, d := range all {
		out = append(out, toolEntry{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: json.RawMessage(d.InputSchema),
			Metadata:    d.Metadata,
			Enabled:     d.Enabled,
		})
	}
	return out
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the registered tools as JSON, disabled ones included",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, _, err := buildApp()
		if err != nil {
			return err
		}
		defer a.Close()

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(toolEntries(a.Registry.All()))
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
