package elections

import (
	"context"

	"github.com/saxenaaman628/settlement-elections/internal/models"
)

type fakeVoter struct {
	id       string
	messages []string
}

func (v *fakeVoter) UserID() string { return v.id }

func (v *fakeVoter) Send(message string) { v.messages = append(v.messages, message) }

type fakeElection struct {
	id          string
	name        string
	choices     []models.Choice
	result      models.VoteResult
	submissions []Submission
}

func (e *fakeElection) ID() string { return e.id }

func (e *fakeElection) Name() string { return e.name }

func (e *fakeElection) Choices() []models.Choice { return e.choices }

func (e *fakeElection) Vote(_ context.Context, submission Submission) models.VoteResult {
	e.submissions = append(e.submissions, submission)
	return e.result
}

type fakeRegistry struct {
	settlements []*models.Settlement
	err         error
	calls       int
}

func (r *fakeRegistry) AllSettlements(context.Context) ([]*models.Settlement, error) {
	r.calls++
	return r.settlements, r.err
}

type fakeSource struct {
	open map[string][]Election
	err  error
}

func (s *fakeSource) OpenElectionsFor(_ context.Context, settlement *models.Settlement) ([]Election, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.open[settlement.ID], nil
}

// scenario is settlements [A, B]; A has E1 {10: Alice, 20: Bob}, B has nothing
// unless a test opens E2.
type scenario struct {
	a, b     *models.Settlement
	e1, e2   *fakeElection
	registry *fakeRegistry
	source   *fakeSource
	service  *Service
}

func newScenario(citizensA, citizensB []string) *scenario {
	sc := &scenario{
		a: &models.Settlement{ID: "a", Name: "A", Citizens: models.NewCitizenSet(citizensA...)},
		b: &models.Settlement{ID: "b", Name: "B", Citizens: models.NewCitizenSet(citizensB...)},
		e1: &fakeElection{
			id:      "e1",
			name:    "E1",
			choices: []models.Choice{{ID: 10, Name: "Alice"}, {ID: 20, Name: "Bob"}},
			result:  models.Accepted(),
		},
		e2: &fakeElection{
			id:      "e2",
			name:    "E2",
			choices: []models.Choice{{ID: 1, Name: "Carol"}},
			result:  models.Accepted(),
		},
	}
	sc.registry = &fakeRegistry{settlements: []*models.Settlement{sc.a, sc.b}}
	sc.source = &fakeSource{open: map[string][]Election{"a": {sc.e1}}}
	sc.service = NewService(sc.registry, sc.source)
	return sc
}

func (sc *scenario) openE2() {
	sc.source.open["b"] = []Election{sc.e2}
}

type countingRecorder struct {
	observed map[string][]OutcomeKind
}

func (r *countingRecorder) Observe(command string, kind OutcomeKind) {
	if r.observed == nil {
		r.observed = map[string][]OutcomeKind{}
	}
	r.observed[command] = append(r.observed[command], kind)
}
