package elections

import "github.com/saxenaaman628/settlement-elections/internal/models"

// CanVote reports whether voter is a citizen of settlement. A nil voter is a
// citizen of nothing. Citizenship can change between calls, so callers must not
// keep the answer past one decision.
func CanVote(voter Voter, settlement *models.Settlement) bool {
	if voter == nil || settlement == nil || settlement.Citizens == nil {
		return false
	}
	return settlement.Citizens.Contains(voter.UserID())
}

// voterID is the voter's user ID, or "" for a nil voter.
func voterID(voter Voter) string {
	if voter == nil {
		return ""
	}
	return voter.UserID()
}
