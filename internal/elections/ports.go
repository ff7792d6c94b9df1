package elections

import (
	"context"

	"github.com/saxenaaman628/settlement-elections/internal/models"
)

// Voter is the invoking user: an identity plus a messaging sink.
type Voter interface {
	UserID() string
	Send(message string)
}

// Election is an open election owned by the authority. Vote is its
// vote-acceptance operation and the final judge of a submission.
type Election interface {
	ID() string
	Name() string
	Choices() []models.Choice
	Vote(ctx context.Context, submission Submission) models.VoteResult
}

type SettlementRegistry interface {
	AllSettlements(ctx context.Context) ([]*models.Settlement, error)
}

type ElectionSource interface {
	OpenElectionsFor(ctx context.Context, settlement *models.Settlement) ([]Election, error)
}

// Recorder observes command outcomes, e.g. for metrics.
type Recorder interface {
	Observe(command string, kind OutcomeKind)
}

type nopRecorder struct{}

func (nopRecorder) Observe(string, OutcomeKind) {}
