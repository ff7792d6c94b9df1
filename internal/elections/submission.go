package elections

// NoChoice is the candidate ID that requests an abstention. It is always an
// abstention, even if an authority were to use -1 as a candidate ID.
const NoChoice = -1

// Submission is a single vote attempt. A nil Choice is an abstention.
type Submission struct {
	VoterID    string
	ElectionID string
	Choice     *int
}

func NewSubmission(voterID, electionID string, choiceID int) Submission {
	submission := Submission{VoterID: voterID, ElectionID: electionID}
	if choiceID != NoChoice {
		id := choiceID
		submission.Choice = &id
	}
	return submission
}

func (s Submission) Abstains() bool {
	return s.Choice == nil
}
