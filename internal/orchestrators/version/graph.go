package version

import (
	"fmt"
	"sort"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
)

// PreOrder returns the tree's nodes starting at its root, visiting children
// in ascending version order. Nodes unreachable from the root are dropped.
func PreOrder(nodes []*coc.Sheet) ([]*coc.Sheet, error) {
	var root *coc.Sheet
	children := make(map[string][]*coc.Sheet, len(nodes))
	for _, n := range nodes {
		if n.IsRoot() {
			if root != nil {
				return nil, errors.Internalf("tree %q has more than one root", n.Name)
			}
			root = n
			continue
		}
		children[n.ParentID] = append(children[n.ParentID], n)
	}
	if root == nil {
		return nil, errors.Internal("tree has no root")
	}
	for _, c := range children {
		sortByVersion(c)
	}

	out := make([]*coc.Sheet, 0, len(nodes))
	visited := make(map[string]bool, len(nodes))
	stack := []*coc.Sheet{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[n.ID] {
			return nil, errors.CyclicParent(fmt.Sprintf("node %s is reachable twice", n.ID))
		}
		visited[n.ID] = true
		out = append(out, n)

		kids := children[n.ID]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}

	return out, nil
}

// Latest returns the node with the highest version
func Latest(nodes []*coc.Sheet) *coc.Sheet {
	var latest *coc.Sheet
	for _, n := range nodes {
		if latest == nil || n.Version > latest.Version {
			latest = n
		}
	}
	return latest
}

// Children returns the direct children of parentID sorted by version
func Children(nodes []*coc.Sheet, parentID string) []*coc.Sheet {
	var out []*coc.Sheet
	for _, n := range nodes {
		if n.ParentID == parentID {
			out = append(out, n)
		}
	}
	sortByVersion(out)
	return out
}

// Compare lists the abilities and skills that differ from a to b
func Compare(a, b *coc.Sheet, aSkills, bSkills []*coc.Skill) *Diff {
	d := &Diff{
		Abilities: make(map[coc.Ability]Change),
		Skills: SkillDiff{
			Added:   []string{},
			Removed: []string{},
			Changed: make(map[string]Change),
		},
	}

	for _, tag := range coc.AllAbilities() {
		oldValue, _ := a.Abilities.Get(tag)
		newValue, _ := b.Abilities.Get(tag)
		if oldValue != newValue {
			d.Abilities[tag] = Change{Old: oldValue, New: newValue, Delta: newValue - oldValue}
		}
	}

	before := make(map[string]int, len(aSkills))
	for _, k := range aSkills {
		before[k.Name] = k.Current
	}
	after := make(map[string]int, len(bSkills))
	for _, k := range bSkills {
		after[k.Name] = k.Current
	}

	for name, newValue := range after {
		oldValue, ok := before[name]
		switch {
		case !ok:
			d.Skills.Added = append(d.Skills.Added, name)
		case oldValue != newValue:
			d.Skills.Changed[name] = Change{Old: oldValue, New: newValue, Delta: newValue - oldValue}
		}
	}
	for name := range before {
		if _, ok := after[name]; !ok {
			d.Skills.Removed = append(d.Skills.Removed, name)
		}
	}
	sort.Strings(d.Skills.Added)
	sort.Strings(d.Skills.Removed)

	return d
}

func sortByVersion(nodes []*coc.Sheet) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Version < nodes[j].Version
	})
}
