package testutils

import (
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
)

// Common fixture values
const (
	TestOwnerID   = "user-test-001"
	TestSheetName = "Harvey Walters"
	TestPlayer    = "Alice"
)

// SixthEditionAbilities returns stored 6th edition abilities (raw x5):
// hp 13, mp 11, idea 375, luck 275, know 400, damage bonus +1d4
func SixthEditionAbilities() coc.Abilities {
	return coc.Abilities{
		STR: 65,
		CON: 70,
		POW: 55,
		DEX: 65,
		APP: 50,
		SIZ: 60,
		INT: 75,
		EDU: 80,
	}
}

// SeventhEditionAbilities returns 7th edition abilities:
// build 0, damage bonus +0, dodge 30, move 7 at age 45
func SeventhEditionAbilities() coc.Abilities {
	return coc.Abilities{
		STR: 60,
		CON: 50,
		POW: 50,
		DEX: 60,
		APP: 45,
		SIZ: 60,
		INT: 70,
		EDU: 65,
	}
}

// CreateTestSheet creates an unsaved sheet for the edition with sensible
// defaults and derived stats matching its abilities
func CreateTestSheet(edition coc.Edition) *coc.Sheet {
	s := &coc.Sheet{
		ID:         "sheet-test-001",
		OwnerID:    TestOwnerID,
		Name:       TestSheetName,
		Version:    coc.FirstVersionNumber,
		Edition:    edition,
		PlayerName: TestPlayer,
		Occupation: "Professor",
		IsActive:   true,
	}

	switch edition {
	case coc.EditionSeventh:
		s.Age = 45
		s.Abilities = SeventhEditionAbilities()
		s.HPMax, s.HPCurrent = 11, 11
		s.MPMax, s.MPCurrent = 10, 10
		s.SanStarting, s.SanMax, s.SanCurrent = 50, 50, 50
		s.Seventh = &coc.SeventhEdition{
			LuckPoints:  50,
			Build:       0,
			MoveRate:    7,
			Dodge:       30,
			DamageBonus: "+0",
		}
	default:
		s.Age = 35
		s.Abilities = SixthEditionAbilities()
		s.HPMax, s.HPCurrent = 13, 13
		s.MPMax, s.MPCurrent = 11, 11
		s.SanStarting, s.SanMax, s.SanCurrent = 55, 55, 55
		s.Sixth = &coc.SixthEdition{
			IdeaRoll:    375,
			LuckRoll:    275,
			KnowRoll:    400,
			DamageBonus: "+1d4",
		}
	}

	return s
}

// CreateTestSkill creates an unsaved skill with the given pools summed into current
func CreateTestSkill(sheetID, name string, base, occupation, interest int) *coc.Skill {
	k := &coc.Skill{
		ID:         "skill-" + name,
		SheetID:    sheetID,
		Name:       name,
		Category:   coc.SkillCategoryExploration,
		Base:       base,
		Occupation: occupation,
		Interest:   interest,
	}
	k.Recompute(coc.EditionSixth)
	return k
}
