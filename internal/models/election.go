package models

// Choice is one candidate of an election. IDs are unique per election and
// never negative.
type Choice struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// VoteResult is what the vote-acceptance authority answers for a submission.
type VoteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func Accepted() VoteResult {
	return VoteResult{Success: true}
}

func Rejected(message string) VoteResult {
	return VoteResult{Success: false, Message: message}
}
