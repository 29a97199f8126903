package client

import (
	"fmt"

	"github.com/spf13/cobra"

	v1alpha1 "github.com/KirkDiggler/coc-api/internal/handlers/sheet/v1alpha1"
)

var getSheetCmd = &cobra.Command{
	Use:   "get-sheet [sheet-id]",
	Short: "Show a sheet with its skills",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodGetSheet, map[string]any{"sheet_id": args[0]})
		if err != nil {
			return fmt.Errorf("failed to get sheet: %w", err)
		}
		return printJSON(resp)
	},
}
