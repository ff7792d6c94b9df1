package elections

import (
	"context"
	"fmt"
	"strings"
)

const noEligibleMessage = "There are no ongoing elections you can vote in."

// RenderListing lists every open election once the voter can vote in at least
// one of them. Elections in other settlements are listed too.
func (s *Service) RenderListing(ctx context.Context, voter Voter) Outcome {
	index, err := s.BuildIndex(ctx)
	if err != nil {
		log.Error("failed to build election index", "user", voterID(voter), "error", err)
		return unavailable()
	}

	if len(index.Eligible(voter)) == 0 {
		return Outcome{
			Kind:    OutcomeNoEligibleElections,
			Message: noEligibleMessage,
		}
	}

	return Outcome{
		Kind:    OutcomeListed,
		Message: FormatListing(index),
	}
}

// FormatListing renders a header with the total count, then per entry its
// settlement, position and name followed by one line per candidate.
func FormatListing(index Index) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ongoing elections count: %d", index.Len())
	for _, entry := range index {
		fmt.Fprintf(&b, "\nSettlement: %s, Election index: %d, Election name: %s",
			entry.Settlement.Name, entry.Position, entry.Election.Name())
		for _, choice := range entry.Election.Choices() {
			fmt.Fprintf(&b, "\nCandidateName: %s, ID: %d", choice.Name, choice.ID)
		}
	}
	return b.String()
}
