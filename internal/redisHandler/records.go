package redishandler

import (
	"sort"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/saxenaaman628/settlement-elections/internal/models"
)

type settlementRecord struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

type electionRecord struct {
	ID           string `mapstructure:"id"`
	SettlementID string `mapstructure:"settlement_id"`
	Name         string `mapstructure:"name"`
	CreatedAt    string `mapstructure:"created_at"`
	ExpiresAt    string `mapstructure:"expires_at"`
	IsClosed     bool   `mapstructure:"is_closed"`
}

// closed reports whether the election stopped accepting votes at now. An
// empty expires_at means the election runs until closed explicitly.
func (r electionRecord) closed(now time.Time) bool {
	if r.IsClosed {
		return true
	}
	if r.ExpiresAt == "" {
		return false
	}
	expiresAt, err := time.Parse(time.RFC3339, r.ExpiresAt)
	if err != nil {
		return false
	}
	return !now.Before(expiresAt)
}

// decodeHash maps a Redis hash onto a record. Redis returns every field as a
// string, so weak typing handles is_closed.
func decodeHash(data map[string]string, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(data)
}

// decodeChoices turns the choiceID -> name hash into choices sorted by ID.
func decodeChoices(data map[string]string) ([]models.Choice, error) {
	choices := make([]models.Choice, 0, len(data))
	for field, name := range data {
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid choice id %q", field)
		}
		choices = append(choices, models.Choice{ID: id, Name: name})
	}
	sort.Slice(choices, func(i, j int) bool { return choices[i].ID < choices[j].ID })
	return choices, nil
}
