package elections

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saxenaaman628/settlement-elections/internal/models"
)

func TestCanVote(t *testing.T) {
	settlement := &models.Settlement{ID: "a", Name: "A", Citizens: models.NewCitizenSet("1", "2")}

	require.True(t, CanVote(&fakeVoter{id: "1"}, settlement))
	require.True(t, CanVote(&fakeVoter{id: "2"}, settlement))
	require.False(t, CanVote(&fakeVoter{id: "3"}, settlement))
}

func TestCanVoteNilSettlement(t *testing.T) {
	require.False(t, CanVote(&fakeVoter{id: "1"}, nil))
	require.False(t, CanVote(&fakeVoter{id: "1"}, &models.Settlement{ID: "a"}))
	require.False(t, CanVote(nil, &models.Settlement{ID: "a", Citizens: models.NewCitizenSet("1")}))
}

func TestCanVoteFollowsCitizenshipChanges(t *testing.T) {
	citizens := models.NewCitizenSet()
	settlement := &models.Settlement{ID: "a", Name: "A", Citizens: citizens}
	voter := &fakeVoter{id: "1"}

	require.False(t, CanVote(voter, settlement))
	citizens["1"] = struct{}{}
	require.True(t, CanVote(voter, settlement))
	delete(citizens, "1")
	require.False(t, CanVote(voter, settlement))
}
