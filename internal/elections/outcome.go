package elections

type OutcomeKind string

const (
	OutcomeVoted               OutcomeKind = "voted"
	OutcomeAbstained           OutcomeKind = "abstained"
	OutcomeInvalidIndex        OutcomeKind = "invalid_index"
	OutcomeNotEligible         OutcomeKind = "not_eligible"
	OutcomeVoteRejected        OutcomeKind = "vote_rejected"
	OutcomeNoEligibleElections OutcomeKind = "no_eligible_elections"
	OutcomeListed              OutcomeKind = "listed"
	OutcomeUnavailable         OutcomeKind = "unavailable"
)

// Outcome is the user-facing result of one command. Message is what gets sent
// to the voter; Err holds the matching sentinel for failure kinds.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Err     error
	Entry   *Entry
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

const unavailableMessage = "Elections are unavailable right now, try again later."

func unavailable() Outcome {
	return Outcome{Kind: OutcomeUnavailable, Message: unavailableMessage, Err: ErrUnavailable}
}
