package elections

import (
	"context"

	"github.com/pkg/errors"

	"github.com/saxenaaman628/settlement-elections/internal/models"
)

// Entry pairs an open election with its settlement. Position is only
// meaningful inside the invocation that built the index: elections opening or
// closing in between shift every later position.
type Entry struct {
	Position   int
	Settlement *models.Settlement
	Election   Election
}

// Index is the registry-then-source ordered flattening of all open elections.
type Index []Entry

func (ix Index) Len() int {
	return len(ix)
}

// At returns the entry at position, or false when position is outside [0, Len).
func (ix Index) At(position int) (Entry, bool) {
	if position < 0 || position >= len(ix) {
		return Entry{}, false
	}
	return ix[position], true
}

// Eligible returns the entries voter may vote in. Positions are kept.
func (ix Index) Eligible(voter Voter) Index {
	var eligible Index
	for _, entry := range ix {
		if CanVote(voter, entry.Settlement) {
			eligible = append(eligible, entry)
		}
	}
	return eligible
}

// BuildIndex walks every settlement in registry order and appends its open
// elections in source order. No eligibility filtering happens here.
func BuildIndex(ctx context.Context, settlements SettlementRegistry, source ElectionSource) (Index, error) {
	all, err := settlements.AllSettlements(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to enumerate settlements")
	}

	var index Index
	for _, settlement := range all {
		if settlement == nil {
			log.Debug("registry yielded a nil settlement; skipped")
			continue
		}
		open, err := source.OpenElectionsFor(ctx, settlement)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load open elections for settlement %s", settlement.ID)
		}
		for _, election := range open {
			index = append(index, Entry{
				Position:   len(index),
				Settlement: settlement,
				Election:   election,
			})
		}
	}
	return index, nil
}
