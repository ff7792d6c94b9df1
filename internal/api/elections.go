package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saxenaaman628/settlement-elections/internal/command"
	"github.com/saxenaaman628/settlement-elections/internal/elections"
)

type VoteRequest struct {
	ElectionIndex *int `json:"election_index" binding:"required"`
	CandidateID   *int `json:"candidate_id" binding:"required"`
}

type CommandRequest struct {
	Text string `json:"text" binding:"required"`
}

type electionHandlers struct {
	service *elections.Service
}

func (h electionHandlers) ListElections(c *gin.Context) {
	voter := newRequestVoter(c)
	outcome := h.service.ListElections(c.Request.Context(), voter)
	respond(c, outcome, voter)
}

func (h electionHandlers) Vote(c *gin.Context) {
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote payload"})
		return
	}

	voter := newRequestVoter(c)
	outcome := h.service.Vote(c.Request.Context(), voter, *req.ElectionIndex, *req.CandidateID)
	respond(c, outcome, voter)
}

func (h electionHandlers) Command(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid command payload"})
		return
	}

	voter := newRequestVoter(c)
	outcome, err := command.Dispatch(c.Request.Context(), h.service, voter, req.Text)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "messages": voter.messages})
		return
	}
	respond(c, outcome, voter)
}

func respond(c *gin.Context, outcome elections.Outcome, voter *requestVoter) {
	c.JSON(statusFor(outcome.Kind), gin.H{
		"outcome":  outcome.Kind,
		"messages": voter.messages,
	})
}

func statusFor(kind elections.OutcomeKind) int {
	switch kind {
	case elections.OutcomeInvalidIndex:
		return http.StatusBadRequest
	case elections.OutcomeNotEligible:
		return http.StatusForbidden
	case elections.OutcomeVoteRejected:
		return http.StatusConflict
	case elections.OutcomeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}
