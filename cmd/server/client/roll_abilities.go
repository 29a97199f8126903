package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	v1alpha1 "github.com/KirkDiggler/coc-api/internal/handlers/sheet/v1alpha1"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/dice"
)

var settingID string

var rollAbilitiesCmd = &cobra.Command{
	Use:   "roll-abilities [owner-id]",
	Short: "Roll all eight abilities",
	Long: `Roll all eight abilities with the owner's default dice setting, or the
setting given by --setting-id.

  Example: roll-abilities user-1`,
	Args: cobra.ExactArgs(1),
	RunE: rollAbilities,
}

func init() {
	rollAbilitiesCmd.Flags().StringVar(&settingID, "setting-id", "", "Dice setting to roll with")
}

func rollAbilities(_ *cobra.Command, args []string) error {
	owner := args[0]

	body := map[string]any{"owner_id": owner}
	if settingID != "" {
		body["setting_id"] = settingID
	}

	fmt.Printf("Rolling abilities for %s...\n", owner)

	resp, err := call(v1alpha1.MethodRollAbilities, body)
	if err != nil {
		return fmt.Errorf("failed to roll abilities: %w", err)
	}

	fmt.Printf("\n🎲 Ability Rolls (setting %v):\n", resp["setting_id"])
	fmt.Printf("=========================================\n")

	rolls, _ := resp["rolls"].([]any)
	for _, r := range rolls {
		roll, ok := r.(map[string]any)
		if !ok {
			continue
		}
		fmt.Printf("  %-4v %-8v dice=%v total=%v\n", roll["ability"], roll["notation"], roll["dice"], roll["total"])
	}

	fmt.Printf("\nSession expires at: %v\n", resp["expires_at"])
	fmt.Printf("\n💡 These rolls are stored for %s so you can create a sheet from them.\n", dice.DefaultSessionTTL)
	fmt.Printf("💡 Use 'create-sheet --owner-id %s --name NAME --from-roll-session' to apply them.\n", owner)
	fmt.Printf("💡 Stored values are raw x5, e.g. %s 12 becomes 60.\n", coc.AbilitySTR)

	return nil
}
