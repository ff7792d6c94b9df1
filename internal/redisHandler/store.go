package redishandler

import (
	"context"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/saxenaaman628/settlement-elections/internal/elections"
	"github.com/saxenaaman628/settlement-elections/internal/models"
)

var log = logging.New("module", "redishandler")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

var (
	ErrSettlementNotFound = errors.New("settlement not found")
	ErrElectionNotFound   = errors.New("election not found")
	ErrInvalidElection    = errors.New("invalid election")
)

// Store is the Redis-backed election authority. It serves as the settlement
// registry and election source, and its elections accept votes.
type Store struct {
	rdb *goredis.Client

	// Now is used to expire elections; defaults to time.Now.
	Now func() time.Time
}

func NewStore(rdb *goredis.Client) *Store {
	return &Store{rdb: rdb, Now: time.Now}
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// AllSettlements returns settlements in the order they were registered. The
// citizen set is read on every call.
func (s *Store) AllSettlements(ctx context.Context) ([]*models.Settlement, error) {
	ids, err := s.rdb.LRange(ctx, settlementsKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list settlements")
	}

	settlements := make([]*models.Settlement, 0, len(ids))
	for _, id := range ids {
		pipe := s.rdb.Pipeline()
		hash := pipe.HGetAll(ctx, settlementKey(id))
		members := pipe.SMembers(ctx, settlementCitizensKey(id))
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, errors.Wrapf(err, "failed to load settlement %s", id)
		}
		if len(hash.Val()) == 0 {
			log.Warn("settlement listed but not stored", "settlement", id)
			continue
		}

		var record settlementRecord
		if err := decodeHash(hash.Val(), &record); err != nil {
			return nil, errors.Wrapf(err, "failed to decode settlement %s", id)
		}
		if record.ID == "" {
			record.ID = id
		}
		settlements = append(settlements, &models.Settlement{
			ID:       record.ID,
			Name:     record.Name,
			Citizens: models.NewCitizenSet(members.Val()...),
		})
	}
	return settlements, nil
}

// OpenElectionsFor returns the settlement's open elections in the order they
// were opened. Closed or expired elections are left out.
func (s *Store) OpenElectionsFor(ctx context.Context, settlement *models.Settlement) ([]elections.Election, error) {
	if settlement == nil {
		return nil, nil
	}
	ids, err := s.rdb.LRange(ctx, settlementElectionsKey(settlement.ID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list elections of settlement %s", settlement.ID)
	}

	now := s.now()
	open := make([]elections.Election, 0, len(ids))
	for _, id := range ids {
		e, err := s.loadElection(ctx, id)
		if errors.Cause(err) == ErrElectionNotFound {
			log.Warn("election listed but not stored", "settlement", settlement.ID, "election", id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if e.record.closed(now) {
			continue
		}
		open = append(open, e)
	}
	return open, nil
}

func (s *Store) loadElection(ctx context.Context, id string) (*election, error) {
	pipe := s.rdb.Pipeline()
	hash := pipe.HGetAll(ctx, electionKey(id))
	choiceHash := pipe.HGetAll(ctx, electionChoicesKey(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to load election %s", id)
	}
	if len(hash.Val()) == 0 {
		return nil, errors.Wrapf(ErrElectionNotFound, "election %s", id)
	}

	var record electionRecord
	if err := decodeHash(hash.Val(), &record); err != nil {
		return nil, errors.Wrapf(err, "failed to decode election %s", id)
	}
	if record.ID == "" {
		record.ID = id
	}
	choices, err := decodeChoices(choiceHash.Val())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode choices of election %s", id)
	}
	return &election{store: s, record: record, choices: choices}, nil
}
