package redishandler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/saxenaaman628/settlement-elections/internal/elections"
	"github.com/saxenaaman628/settlement-elections/internal/models"
)

// maxWatchAttempts bounds optimistic-lock retries when concurrent voters touch
// the same election.
const maxWatchAttempts = 5

type election struct {
	store   *Store
	record  electionRecord
	choices []models.Choice
}

func (e *election) ID() string { return e.record.ID }

func (e *election) Name() string { return e.record.Name }

func (e *election) Choices() []models.Choice {
	choices := make([]models.Choice, len(e.choices))
	copy(choices, e.choices)
	return choices
}

// Vote is the authority of record for a submission. It re-reads the election
// inside a WATCH so a close, a double vote or an unknown candidate racing with
// this call is still rejected.
func (e *election) Vote(ctx context.Context, submission elections.Submission) models.VoteResult {
	id := e.record.ID
	logger := log.New("election", id, "user", submission.VoterID)

	if submission.VoterID == "" {
		return models.Rejected("Unknown voter")
	}

	field := abstainField
	if !submission.Abstains() {
		field = strconv.Itoa(*submission.Choice)
	}

	var result models.VoteResult
	txf := func(tx *goredis.Tx) error {
		data, err := tx.HGetAll(ctx, electionKey(id)).Result()
		if err != nil {
			return err
		}
		if len(data) == 0 {
			result = models.Rejected("Election not found")
			return nil
		}
		var record electionRecord
		if err := decodeHash(data, &record); err != nil {
			return err
		}
		if record.closed(e.store.now()) {
			result = models.Rejected("Election is closed")
			return nil
		}

		if !submission.Abstains() {
			known, err := tx.HExists(ctx, electionChoicesKey(id), field).Result()
			if err != nil {
				return err
			}
			if !known {
				result = models.Rejected(fmt.Sprintf("No candidate found with ID %d", *submission.Choice))
				return nil
			}
		}

		voted, err := tx.SIsMember(ctx, electionVotersKey(id), submission.VoterID).Result()
		if err != nil {
			return err
		}
		if voted {
			result = models.Rejected("You have already voted in this election")
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.SAdd(ctx, electionVotersKey(id), submission.VoterID)
			pipe.HIncrBy(ctx, electionVotesKey(id), field, 1)
			pipe.HSet(ctx, userVotesKey(submission.VoterID), id, field)
			return nil
		})
		if err != nil {
			return err
		}
		result = models.Accepted()
		return nil
	}

	for attempt := 1; attempt <= maxWatchAttempts; attempt++ {
		err := e.store.rdb.Watch(ctx, txf, electionKey(id), electionChoicesKey(id), electionVotersKey(id))
		if err == nil {
			if result.Success {
				logger.Info("ballot recorded", "choice", field)
			}
			return result
		}
		if errors.Is(err, goredis.TxFailedErr) {
			logger.Debug("ballot transaction raced, retrying", "attempt", attempt)
			continue
		}
		logger.Error("failed to record ballot", "error", err)
		return models.Rejected("Vote could not be recorded, try again later")
	}

	logger.Warn("ballot transaction kept racing", "attempts", maxWatchAttempts)
	return models.Rejected("Vote could not be recorded, try again later")
}
