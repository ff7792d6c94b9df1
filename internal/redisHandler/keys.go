package redishandler

const (
	settlementsKey = "settlements"
	abstainField   = "abstain"
)

func settlementKey(id string) string          { return "settlement:" + id }
func settlementCitizensKey(id string) string  { return "settlement:" + id + ":citizens" }
func settlementElectionsKey(id string) string { return "settlement:" + id + ":elections" }
func electionKey(id string) string            { return "election:" + id }
func electionChoicesKey(id string) string     { return "election:" + id + ":choices" }
func electionVotersKey(id string) string      { return "election:" + id + ":voters" }
func electionVotesKey(id string) string       { return "election:" + id + ":votes" }
func userVotesKey(userID string) string       { return "user:" + userID + ":votes" }
