package client

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	v1alpha1 "github.com/KirkDiggler/coc-api/internal/handlers/sheet/v1alpha1"
)

var (
	ownerID         string
	sheetName       string
	edition         string
	abilityValues   map[string]int
	fromRollSession bool
)

var createSheetCmd = &cobra.Command{
	Use:   "create-sheet",
	Short: "Create a new character sheet",
	Long: `Create version 1 of a new character sheet.

  Example: create-sheet --owner-id user-1 --name "Harvey Walters" \
    --ability str=65,con=70,pow=55,dex=65,app=50,siz=60,int=75,edu=80
  Example: create-sheet --owner-id user-1 --name "Harvey Walters" --from-roll-session`,
	RunE: runCreateSheet,
}

func init() {
	createSheetCmd.Flags().StringVar(&ownerID, "owner-id", "", "Owner ID (required)")
	createSheetCmd.Flags().StringVar(&sheetName, "name", "", "Sheet name (required)")
	createSheetCmd.Flags().StringVar(&edition, "edition", "", "Edition: 6th or 7th (server default when empty)")
	createSheetCmd.Flags().StringToIntVar(&abilityValues, "ability", nil, "Abilities as tag=value pairs")
	createSheetCmd.Flags().BoolVar(&fromRollSession, "from-roll-session", false, "Use the abilities from roll-abilities")
	_ = createSheetCmd.MarkFlagRequired("owner-id") // nolint:errcheck // safe to ignore in init
	_ = createSheetCmd.MarkFlagRequired("name")     // nolint:errcheck // safe to ignore in init
}

func runCreateSheet(_ *cobra.Command, _ []string) error {
	abilities := make(map[string]any, len(abilityValues))
	for tag, v := range abilityValues {
		abilities[tag] = v
	}

	body := map[string]any{
		"owner_id":          ownerID,
		"name":              sheetName,
		"abilities":         abilities,
		"from_roll_session": fromRollSession,
	}
	if edition != "" {
		body["edition"] = edition
	}

	log.Printf("Creating sheet %q for %s...", sheetName, ownerID)

	resp, err := call(v1alpha1.MethodCreateSheet, body)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	sheet, _ := resp["sheet"].(map[string]any)
	fmt.Printf("✅ Sheet created: %v (v%v)\n\n", sheet["id"], sheet["version"])
	return printJSON(resp)
}
