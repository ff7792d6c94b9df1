package elections

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// CastVote resolves electionIndex against a fresh index, checks citizenship and
// forwards exactly one submission to the election. Candidate IDs are passed
// through unchecked; the election rejects unknown ones itself.
func (s *Service) CastVote(ctx context.Context, voter Voter, electionIndex int, choiceID int) Outcome {
	logger := log.New("user", voterID(voter), "index", electionIndex, "choice", choiceID)

	index, err := s.BuildIndex(ctx)
	if err != nil {
		logger.Error("failed to build election index", "error", err)
		return unavailable()
	}

	entry, ok := index.At(electionIndex)
	if !ok {
		logger.Debug("election index out of range", "count", index.Len())
		return Outcome{
			Kind:    OutcomeInvalidIndex,
			Message: invalidIndexMessage(electionIndex, index.Len(), s.listCommand()),
			Err:     ErrInvalidIndex,
		}
	}

	if !CanVote(voter, entry.Settlement) {
		logger.Debug("voter is not a citizen", "settlement", entry.Settlement.ID)
		return Outcome{
			Kind:    OutcomeNotEligible,
			Message: fmt.Sprintf("You are not eligible to vote in election for settlement '%s'.", entry.Settlement.Name),
			Err:     ErrNotEligible,
			Entry:   &entry,
		}
	}

	submission := NewSubmission(voterID(voter), entry.Election.ID(), choiceID)
	result := entry.Election.Vote(ctx, submission)
	if !result.Success {
		logger.Info("vote rejected", "election", entry.Election.ID(), "reason", result.Message)
		return Outcome{
			Kind:    OutcomeVoteRejected,
			Message: fmt.Sprintf("Failed to vote: %s", result.Message),
			Err:     errors.Wrap(ErrVoteRejected, result.Message),
			Entry:   &entry,
		}
	}

	if submission.Abstains() {
		logger.Info("abstention recorded", "election", entry.Election.ID())
		return Outcome{
			Kind:    OutcomeAbstained,
			Message: fmt.Sprintf("Successfully abstained (choice %d) in election for settlement '%s'.", NoChoice, entry.Settlement.Name),
			Entry:   &entry,
		}
	}

	logger.Info("vote recorded", "election", entry.Election.ID())
	return Outcome{
		Kind:    OutcomeVoted,
		Message: fmt.Sprintf("Successfully voted for %d in election for settlement '%s'.", choiceID, entry.Settlement.Name),
		Entry:   &entry,
	}
}

func invalidIndexMessage(electionIndex, count int, listCommand string) string {
	if count == 0 {
		return fmt.Sprintf("Invalid election index %d. There are no ongoing elections. Use %s to list available elections.", electionIndex, listCommand)
	}
	return fmt.Sprintf("Invalid election index %d. Valid range is 0-%d. Use %s to list available elections.", electionIndex, count-1, listCommand)
}
