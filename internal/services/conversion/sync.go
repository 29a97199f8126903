package conversion

// Sync conflict policies
const (
	PolicyManualMerge = "manual_merge"
	PolicyLocalWins   = "local_wins"
	PolicyRemoteWins  = "remote_wins"
)

// Conflicting field groups with a fixed policy
const (
	FieldAbilities = "abilities"
	FieldSkills    = "skills"
)

// Resolution is the policy record for a set of conflicting fields. Strategy is
// the strictest policy any field needs: manual_merge, then local_wins, then remote_wins.
type Resolution struct {
	Strategy string            `json:"strategy"`
	Fields   map[string]string `json:"fields"`
}

var policyRank = map[string]int{
	PolicyRemoteWins:  0,
	PolicyLocalWins:   1,
	PolicyManualMerge: 2,
}

// ResolveSyncConflict assigns each conflicting field its policy: abilities
// need a manual merge, skills keep the local value and anything else takes
// the remote value
func ResolveSyncConflict(conflictFields []string) *Resolution {
	out := &Resolution{
		Strategy: PolicyRemoteWins,
		Fields:   make(map[string]string, len(conflictFields)),
	}

	for _, f := range conflictFields {
		policy := PolicyRemoteWins
		switch f {
		case FieldAbilities:
			policy = PolicyManualMerge
		case FieldSkills:
			policy = PolicyLocalWins
		}
		out.Fields[f] = policy
		if policyRank[policy] > policyRank[out.Strategy] {
			out.Strategy = policy
		}
	}

	return out
}
