package client

import (
	"fmt"

	"github.com/spf13/cobra"

	v1alpha1 "github.com/KirkDiggler/coc-api/internal/handlers/sheet/v1alpha1"
)

var historyCmd = &cobra.Command{
	Use:   "history [sheet-id]",
	Short: "List every version in a sheet's tree",
	Long: `List the versions of the tree the sheet belongs to, root first.

  Example: history sheet-abc123`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func runHistory(_ *cobra.Command, args []string) error {
	resp, err := call(v1alpha1.MethodHistory, map[string]any{"sheet_id": args[0]})
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	versions, _ := resp["versions"].([]any)
	fmt.Printf("\n📜 Version History (%d versions, %v sessions):\n", len(versions), resp["cumulative_session_count"])
	fmt.Printf("==========================================\n")

	for _, v := range versions {
		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}
		parent := "-"
		if p, ok := entry["parent_id"].(string); ok && p != "" {
			parent = p
		}
		fmt.Printf("v%-3v %-40v parent=%-40s sessions=%v\n", entry["version"], entry["id"], parent, entry["session_count"])
		if note, ok := entry["version_note"].(string); ok && note != "" {
			fmt.Printf("     %s\n", note)
		}
	}

	return nil
}
