package client

import (
	"fmt"

	"github.com/spf13/cobra"

	v1alpha1 "github.com/KirkDiggler/coc-api/internal/handlers/sheet/v1alpha1"
)

var exportVTTCmd = &cobra.Command{
	Use:   "export-vtt [sheet-id...]",
	Short: "Export sheets as CCFOLIA character objects",
	Long: `Export one sheet, or several in one bulk request. In bulk mode a sheet
that cannot be exported is reported as an error object in its slot.

  Example: export-vtt sheet-abc123
  Example: export-vtt sheet-abc123 sheet-def456`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExportVTT,
}

func runExportVTT(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		resp, err := call(v1alpha1.MethodExportVTT, map[string]any{"sheet_id": args[0]})
		if err != nil {
			return fmt.Errorf("failed to export sheet: %w", err)
		}
		return printJSON(resp)
	}

	resp, err := call(v1alpha1.MethodExportVTTBulk, map[string]any{"sheet_ids": toAnySlice(args)})
	if err != nil {
		return fmt.Errorf("failed to export sheets: %w", err)
	}
	return printJSON(resp["results"])
}
