// Package coc contains the Call of Cthulhu character sheet data model.
// Types here are plain records; behaviour lives in engine and the orchestrators.
package coc

// Edition is the ruleset variant governing ability semantics and derived stats
type Edition string

// Supported editions
const (
	EditionSixth   Edition = "6th"
	EditionSeventh Edition = "7th"
)

// String returns the string representation of the edition
func (e Edition) String() string {
	return string(e)
}

// IsValid checks if the edition is supported
func (e Edition) IsValid() bool {
	switch e {
	case EditionSixth, EditionSeventh:
		return true
	default:
		return false
	}
}

// EditionFromString converts a string to an Edition.
// Returns the edition and true if valid, empty edition and false if invalid.
func EditionFromString(s string) (Edition, bool) {
	edition := Edition(s)
	if edition.IsValid() {
		return edition, true
	}
	return "", false
}

// AllEditions returns every supported edition
func AllEditions() []Edition {
	return []Edition{EditionSixth, EditionSeventh}
}

// EditionStrings returns the supported editions as strings, for enum validation
func EditionStrings() []string {
	return []string{string(EditionSixth), string(EditionSeventh)}
}
