package conversion

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
)

// VTTKindCharacter is the kind of every exported VTT object
const VTTKindCharacter = "character"

// VTTCharacter is the CCFOLIA-style character object
type VTTCharacter struct {
	Kind string  `json:"kind"`
	Data VTTData `json:"data"`
}

// VTTData is the body of a VTT character. Status always holds HP, MP and SAN;
// Params always holds the eight abilities in sheet order.
type VTTData struct {
	Name       string      `json:"name"`
	Initiative int         `json:"initiative"`
	Status     []VTTStatus `json:"status"`
	Params     []VTTParam  `json:"params"`
	Commands   string      `json:"commands"`
}

// VTTStatus is a resource bar
type VTTStatus struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Max   int    `json:"max"`
}

// VTTParam is a named parameter; values are strings on the wire
type VTTParam struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Command is one percentile roll line of a VTT chat palette
type Command struct {
	Target int
	Label  string
}

// String renders the command, e.g. "CCB<=45 【Library Use】"
func (c Command) String() string {
	return fmt.Sprintf("CCB<=%d 【%s】", c.Target, c.Label)
}

// JoinCommands renders commands one per line
func JoinCommands(cmds []Command) string {
	lines := make([]string, 0, len(cmds))
	for _, c := range cmds {
		lines = append(lines, c.String())
	}
	return strings.Join(lines, "\n")
}

func (c *converter) ToVTT(sheet *coc.Sheet, skills []*coc.Skill) (*VTTCharacter, error) {
	if sheet == nil {
		return nil, errors.InvalidArgument("sheet is required")
	}

	cmds, err := c.commands(sheet, skills)
	if err != nil {
		return nil, err
	}

	params := make([]VTTParam, 0, len(coc.AllAbilities()))
	for _, tag := range coc.AllAbilities() {
		v, _ := sheet.Abilities.Get(tag)
		params = append(params, VTTParam{
			Label: strings.ToUpper(tag.String()),
			Value: strconv.Itoa(v),
		})
	}

	return &VTTCharacter{
		Kind: VTTKindCharacter,
		Data: VTTData{
			Name:       sheet.Name,
			Initiative: sheet.Abilities.DEX,
			Status: []VTTStatus{
				{Label: "HP", Value: sheet.HPCurrent, Max: sheet.HPMax},
				{Label: "MP", Value: sheet.MPCurrent, Max: sheet.MPMax},
				{Label: "SAN", Value: sheet.SanCurrent, Max: sheet.SanMax},
			},
			Params:   params,
			Commands: JoinCommands(cmds),
		},
	}, nil
}

// commands lists the four basic rolls followed by every skill above zero,
// sorted by name
func (c *converter) commands(sheet *coc.Sheet, skills []*coc.Skill) ([]Command, error) {
	var idea, luck, know int
	switch sheet.Edition {
	case coc.EditionSixth:
		if sheet.Sixth == nil {
			return nil, errors.InvalidArgumentf("sheet %s has no 6th edition record", sheet.ID)
		}
		idea, luck, know = sheet.Sixth.IdeaRoll, sheet.Sixth.LuckRoll, sheet.Sixth.KnowRoll
	case coc.EditionSeventh:
		if sheet.Seventh == nil {
			return nil, errors.InvalidArgumentf("sheet %s has no 7th edition record", sheet.ID)
		}
		idea, luck, know = sheet.Abilities.INT, sheet.Seventh.LuckPoints, sheet.Abilities.EDU
	default:
		return nil, errors.InvalidArgumentf("sheet %s has unknown edition %q", sheet.ID, sheet.Edition)
	}

	cmds := []Command{
		{Target: sheet.SanCurrent, Label: c.labels.Sanity},
		{Target: idea, Label: c.labels.Idea},
		{Target: luck, Label: c.labels.Luck},
		{Target: know, Label: c.labels.Knowledge},
	}

	ranked := make([]*coc.Skill, 0, len(skills))
	for _, k := range skills {
		if k.Current > 0 {
			ranked = append(ranked, k)
		}
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Name < ranked[j].Name })
	for _, k := range ranked {
		cmds = append(cmds, Command{Target: k.Current, Label: k.Name})
	}

	return cmds, nil
}
