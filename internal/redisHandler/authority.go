package redishandler

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/saxenaaman628/settlement-elections/internal/models"
)

// ElectionSpec describes an election to open. A zero ExpiresAt keeps it open
// until CloseElection.
type ElectionSpec struct {
	ID           string
	SettlementID string
	Name         string
	Choices      []models.Choice
	ExpiresAt    time.Time
}

// SaveSettlement stores the settlement and registers it once in the
// enumeration order.
func (s *Store) SaveSettlement(ctx context.Context, settlement models.Settlement) error {
	if settlement.ID == "" {
		return errors.New("settlement id is required")
	}
	exists, err := s.rdb.Exists(ctx, settlementKey(settlement.ID)).Result()
	if err != nil {
		return errors.Wrapf(err, "failed to check settlement %s", settlement.ID)
	}

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, settlementKey(settlement.ID), map[string]interface{}{
		"id":   settlement.ID,
		"name": settlement.Name,
	})
	if exists == 0 {
		pipe.RPush(ctx, settlementsKey, settlement.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "failed to save settlement %s", settlement.ID)
	}
	return nil
}

func (s *Store) AddCitizens(ctx context.Context, settlementID string, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	members := make([]interface{}, len(userIDs))
	for i, id := range userIDs {
		members[i] = id
	}
	if err := s.rdb.SAdd(ctx, settlementCitizensKey(settlementID), members...).Err(); err != nil {
		return errors.Wrapf(err, "failed to add citizens to settlement %s", settlementID)
	}
	return nil
}

func (s *Store) RemoveCitizens(ctx context.Context, settlementID string, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	members := make([]interface{}, len(userIDs))
	for i, id := range userIDs {
		members[i] = id
	}
	if err := s.rdb.SRem(ctx, settlementCitizensKey(settlementID), members...).Err(); err != nil {
		return errors.Wrapf(err, "failed to remove citizens from settlement %s", settlementID)
	}
	return nil
}

// SaveElection stores and opens an election, returning its ID. A missing ID
// is generated. Saving an existing ID reopens it and moves it to
// spec.SettlementID's open list; its position there is kept when already
// listed.
func (s *Store) SaveElection(ctx context.Context, spec ElectionSpec) (string, error) {
	if spec.Name == "" {
		return "", errors.Wrap(ErrInvalidElection, "name is required")
	}
	seen := make(map[int]bool, len(spec.Choices))
	for _, choice := range spec.Choices {
		if choice.ID < 0 {
			return "", errors.Wrapf(ErrInvalidElection, "candidate id %d is negative", choice.ID)
		}
		if seen[choice.ID] {
			return "", errors.Wrapf(ErrInvalidElection, "candidate id %d is duplicated", choice.ID)
		}
		seen[choice.ID] = true
	}

	found, err := s.rdb.Exists(ctx, settlementKey(spec.SettlementID)).Result()
	if err != nil {
		return "", errors.Wrapf(err, "failed to check settlement %s", spec.SettlementID)
	}
	if found == 0 {
		return "", errors.Wrapf(ErrSettlementNotFound, "settlement %s", spec.SettlementID)
	}

	id := spec.ID
	if id == "" {
		id = uuid.New().String()
	}
	previous, err := s.rdb.HGet(ctx, electionKey(id), "settlement_id").Result()
	if err != nil && err != goredis.Nil {
		return "", errors.Wrapf(err, "failed to check election %s", id)
	}
	listed, err := s.listsElection(ctx, spec.SettlementID, id)
	if err != nil {
		return "", err
	}

	expiresAt := ""
	if !spec.ExpiresAt.IsZero() {
		expiresAt = spec.ExpiresAt.UTC().Format(time.RFC3339)
	}

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, electionKey(id), map[string]interface{}{
		"id":            id,
		"settlement_id": spec.SettlementID,
		"name":          spec.Name,
		"created_at":    s.now().Format(time.RFC3339),
		"expires_at":    expiresAt,
		"is_closed":     strconv.FormatBool(false),
	})
	pipe.Del(ctx, electionChoicesKey(id))
	for _, choice := range spec.Choices {
		pipe.HSet(ctx, electionChoicesKey(id), strconv.Itoa(choice.ID), choice.Name)
	}
	if previous != "" && previous != spec.SettlementID {
		pipe.LRem(ctx, settlementElectionsKey(previous), 0, id)
	}
	if !listed {
		pipe.RPush(ctx, settlementElectionsKey(spec.SettlementID), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", errors.Wrapf(err, "failed to save election %s", id)
	}

	log.Info("election opened", "election", id, "settlement", spec.SettlementID, "choices", len(spec.Choices))
	return id, nil
}

func (s *Store) listsElection(ctx context.Context, settlementID, id string) (bool, error) {
	ids, err := s.rdb.LRange(ctx, settlementElectionsKey(settlementID), 0, -1).Result()
	if err != nil {
		return false, errors.Wrapf(err, "failed to list elections of settlement %s", settlementID)
	}
	for _, listed := range ids {
		if listed == id {
			return true, nil
		}
	}
	return false, nil
}

// CloseElection stops an election from accepting votes and drops it from its
// settlement's open list. Tallies stay readable.
func (s *Store) CloseElection(ctx context.Context, id string) error {
	settlementID, err := s.rdb.HGet(ctx, electionKey(id), "settlement_id").Result()
	if err == goredis.Nil {
		return errors.Wrapf(ErrElectionNotFound, "election %s", id)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to load election %s", id)
	}

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, electionKey(id), "is_closed", strconv.FormatBool(true))
	pipe.LRem(ctx, settlementElectionsKey(settlementID), 0, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "failed to close election %s", id)
	}

	log.Info("election closed", "election", id, "settlement", settlementID)
	return nil
}

// Tally returns vote counts keyed by candidate ID, with abstentions under
// "abstain".
func (s *Store) Tally(ctx context.Context, id string) (map[string]int64, error) {
	data, err := s.rdb.HGetAll(ctx, electionVotesKey(id)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read tally of election %s", id)
	}

	tally := make(map[string]int64, len(data))
	for field, raw := range data {
		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid tally for %s in election %s", field, id)
		}
		tally[field] = count
	}
	return tally, nil
}
