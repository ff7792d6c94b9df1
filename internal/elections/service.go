package elections

import "context"

const DefaultListCommand = "/elections"

// Service exposes the Vote and ListElections commands. It holds only its
// collaborators; every call rebuilds the index from them.
type Service struct {
	Settlements SettlementRegistry
	Elections   ElectionSource
	Recorder    Recorder

	// ListCommand is named in hints sent to voters.
	ListCommand string
}

func NewService(settlements SettlementRegistry, source ElectionSource) *Service {
	return &Service{
		Settlements: settlements,
		Elections:   source,
		Recorder:    nopRecorder{},
		ListCommand: DefaultListCommand,
	}
}

func (s *Service) BuildIndex(ctx context.Context) (Index, error) {
	return BuildIndex(ctx, s.Settlements, s.Elections)
}

// Vote casts a vote for candidateID (NoChoice to abstain) in the election at
// electionIndex and sends the result to voter.
func (s *Service) Vote(ctx context.Context, voter Voter, electionIndex int, candidateID int) Outcome {
	outcome := s.CastVote(ctx, voter, electionIndex, candidateID)
	send(voter, outcome)
	s.recorder().Observe("vote", outcome.Kind)
	return outcome
}

// ListElections sends voter the listing of every open election.
func (s *Service) ListElections(ctx context.Context, voter Voter) Outcome {
	outcome := s.RenderListing(ctx, voter)
	send(voter, outcome)
	s.recorder().Observe("elections", outcome.Kind)
	return outcome
}

func send(voter Voter, outcome Outcome) {
	if voter != nil {
		voter.Send(outcome.Message)
	}
}

func (s *Service) recorder() Recorder {
	if s.Recorder == nil {
		return nopRecorder{}
	}
	return s.Recorder
}

func (s *Service) listCommand() string {
	if s.ListCommand == "" {
		return DefaultListCommand
	}
	return s.ListCommand
}
