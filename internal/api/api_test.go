package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/saxenaaman628/settlement-elections/internal/elections"
	"github.com/saxenaaman628/settlement-elections/internal/metrics"
	"github.com/saxenaaman628/settlement-elections/internal/models"
	redishandler "github.com/saxenaaman628/settlement-elections/internal/redisHandler"
	"github.com/saxenaaman628/settlement-elections/internal/utils"
)

var secret = []byte("api-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

type response struct {
	Outcome  elections.OutcomeKind `json:"outcome"`
	Messages []string              `json:"messages"`
	Error    string                `json:"error"`
}

type testServer struct {
	router *gin.Engine
	store  *redishandler.Store
	redis  *miniredis.Miniredis
}

// newTestServer seeds settlements A and B; user 1 (ada) is a citizen of A,
// where E1 {10: Alice, 20: Bob} is open.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	server := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := redishandler.NewStore(rdb)
	ctx := context.Background()
	require.NoError(t, store.SaveSettlement(ctx, models.Settlement{ID: "a", Name: "A"}))
	require.NoError(t, store.SaveSettlement(ctx, models.Settlement{ID: "b", Name: "B"}))
	require.NoError(t, store.AddCitizens(ctx, "a", "1"))
	_, err := store.SaveElection(ctx, redishandler.ElectionSpec{
		ID:           "e1",
		SettlementID: "a",
		Name:         "E1",
		Choices:      []models.Choice{{ID: 10, Name: "Alice"}, {ID: 20, Name: "Bob"}},
	})
	require.NoError(t, err)

	service := elections.NewService(store, store)
	recorder := metrics.NewRecorder()
	service.Recorder = recorder

	router := NewRouter(Dependencies{
		Service:   service,
		JWTSecret: secret,
		TokenTTL:  time.Hour,
		Metrics:   recorder.Handler(),
		Health:    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	})
	return &testServer{router: router, store: store, redis: server}
}

func (s *testServer) do(t *testing.T, method, path, userID string, body interface{}) (int, response) {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		token, err := utils.GenerateJWTToken(secret, time.Hour, userID, "user"+userID, models.RoleUser)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp response
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w.Code, resp
}

func vote(index, candidate int) VoteRequest {
	return VoteRequest{ElectionIndex: &index, CandidateID: &candidate}
}

func TestListElectionsScenario(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodGet, "/api/elections", "1", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, elections.OutcomeListed, resp.Outcome)
	require.Equal(t, []string{
		"Ongoing elections count: 1\n" +
			"Settlement: A, Election index: 0, Election name: E1\n" +
			"CandidateName: Alice, ID: 10\n" +
			"CandidateName: Bob, ID: 20",
	}, resp.Messages)
}

func TestVoteScenario(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodPost, "/api/vote", "1", vote(0, 10))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, elections.OutcomeVoted, resp.Outcome)
	require.Equal(t, []string{"Successfully voted for 10 in election for settlement 'A'."}, resp.Messages)

	tally, err := s.store.Tally(context.Background(), "e1")
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"10": 1}, tally)
}

func TestAbstainScenario(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodPost, "/api/vote", "1", vote(0, -1))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, elections.OutcomeAbstained, resp.Outcome)

	tally, err := s.store.Tally(context.Background(), "e1")
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"abstain": 1}, tally)
}

func TestNoEligibleElectionsScenario(t *testing.T) {
	s := newTestServer(t)
	_, err := s.store.SaveElection(context.Background(), redishandler.ElectionSpec{ID: "e2", SettlementID: "b", Name: "E2"})
	require.NoError(t, err)

	code, resp := s.do(t, http.MethodGet, "/api/elections", "2", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, elections.OutcomeNoEligibleElections, resp.Outcome)
	require.Equal(t, []string{"There are no ongoing elections you can vote in."}, resp.Messages)
}

func TestInvalidIndexScenario(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodPost, "/api/vote", "1", vote(5, 10))
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, elections.OutcomeInvalidIndex, resp.Outcome)
	require.Equal(t, []string{"Invalid election index 5. Valid range is 0-0. Use /elections to list available elections."}, resp.Messages)

	tally, err := s.store.Tally(context.Background(), "e1")
	require.NoError(t, err)
	require.Empty(t, tally)
}

func TestAlreadyVotedScenario(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodPost, "/api/vote", "1", vote(0, 10))
	require.Equal(t, http.StatusOK, code)

	code, resp := s.do(t, http.MethodPost, "/api/vote", "1", vote(0, 20))
	require.Equal(t, http.StatusConflict, code)
	require.Equal(t, elections.OutcomeVoteRejected, resp.Outcome)
	require.Equal(t, []string{"Failed to vote: You have already voted in this election"}, resp.Messages)
}

func TestNotEligibleVote(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodPost, "/api/vote", "2", vote(0, 10))
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, elections.OutcomeNotEligible, resp.Outcome)

	require.False(t, s.redis.Exists("election:e1:voters"))
}

func TestVoteRequiresPayload(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodPost, "/api/vote", "1", map[string]int{"election_index": 0})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "Invalid vote payload", resp.Error)
}

func TestCommandEndpoint(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodPost, "/api/commands", "1", CommandRequest{Text: "/vote1 0 20"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, elections.OutcomeVoted, resp.Outcome)

	code, resp = s.do(t, http.MethodPost, "/api/commands", "1", CommandRequest{Text: "/elections"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, elections.OutcomeListed, resp.Outcome)

	code, resp = s.do(t, http.MethodPost, "/api/commands", "1", CommandRequest{Text: "/vote zero"})
	require.Equal(t, http.StatusBadRequest, code)
	require.NotEmpty(t, resp.Error)
	require.Len(t, resp.Messages, 1)
}

func TestUnavailable(t *testing.T) {
	s := newTestServer(t)
	s.redis.Close()

	code, resp := s.do(t, http.MethodGet, "/api/elections", "1", nil)
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.Equal(t, elections.OutcomeUnavailable, resp.Outcome)

	code, _ = s.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, code)
}

func TestRequiresAuthentication(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodGet, "/api/elections", "", nil)
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	var payload bytes.Buffer
	require.NoError(t, json.NewEncoder(&payload).Encode(LoginRequest{Username: "ada", Password: "pass1"}))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", &payload))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	claims, err := utils.ParseJWTToken(secret, body.Token)
	require.NoError(t, err)
	require.Equal(t, "1", claims.Subject)

	payload.Reset()
	require.NoError(t, json.NewEncoder(&payload).Encode(LoginRequest{Username: "ada", Password: "nope"}))
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", &payload))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/vote", "1", vote(3, 10))

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `outcome="invalid_index"`)
}

func TestStatusFor(t *testing.T) {
	require.Equal(t, http.StatusOK, statusFor(elections.OutcomeVoted))
	require.Equal(t, http.StatusOK, statusFor(elections.OutcomeNoEligibleElections))
	require.Equal(t, http.StatusBadRequest, statusFor(elections.OutcomeInvalidIndex))
	require.Equal(t, http.StatusForbidden, statusFor(elections.OutcomeNotEligible))
	require.Equal(t, http.StatusConflict, statusFor(elections.OutcomeVoteRejected))
	require.Equal(t, http.StatusServiceUnavailable, statusFor(elections.OutcomeUnavailable))
}
