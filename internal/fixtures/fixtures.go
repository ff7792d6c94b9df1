// Package fixtures loads settlements and elections from YAML and seeds them
// into the election authority.
package fixtures

import (
	"context"
	"io"
	"os"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/saxenaaman628/settlement-elections/internal/models"
	redishandler "github.com/saxenaaman628/settlement-elections/internal/redisHandler"
)

var log = logging.New("module", "fixtures")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

type Settlement struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Citizens []string `yaml:"citizens"`
}

type Choice struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

type Election struct {
	ID         string   `yaml:"id"`
	Settlement string   `yaml:"settlement"`
	Name       string   `yaml:"name"`
	ExpiresIn  string   `yaml:"expires_in"`
	Choices    []Choice `yaml:"choices"`
}

type Fixtures struct {
	Settlements []Settlement `yaml:"settlements"`
	Elections   []Election   `yaml:"elections"`
}

// Seeder is the write side of the election authority.
type Seeder interface {
	SaveSettlement(ctx context.Context, settlement models.Settlement) error
	AddCitizens(ctx context.Context, settlementID string, userIDs ...string) error
	SaveElection(ctx context.Context, spec redishandler.ElectionSpec) (string, error)
}

func Load(r io.Reader) (*Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, errors.Wrap(err, "failed to decode fixtures")
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func LoadFile(path string) (*Fixtures, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open fixtures %s", path)
	}
	defer file.Close()
	return Load(file)
}

func (f *Fixtures) validate() error {
	settlements := make(map[string]bool, len(f.Settlements))
	for i, s := range f.Settlements {
		if s.ID == "" {
			return errors.Errorf("settlement #%d: id is required", i)
		}
		if settlements[s.ID] {
			return errors.Errorf("settlement %s: duplicated", s.ID)
		}
		settlements[s.ID] = true
	}
	for i, e := range f.Elections {
		if !settlements[e.Settlement] {
			return errors.Errorf("election #%d: unknown settlement %q", i, e.Settlement)
		}
		if e.ExpiresIn != "" {
			if _, err := time.ParseDuration(e.ExpiresIn); err != nil {
				return errors.Wrapf(err, "election #%d: invalid expires_in", i)
			}
		}
	}
	return nil
}

// Apply writes every settlement and election to seeder, returning the IDs of
// the elections in file order. Expiry is relative to now.
func (f *Fixtures) Apply(ctx context.Context, seeder Seeder, now time.Time) ([]string, error) {
	for _, s := range f.Settlements {
		name := s.Name
		if name == "" {
			name = s.ID
		}
		if err := seeder.SaveSettlement(ctx, models.Settlement{ID: s.ID, Name: name}); err != nil {
			return nil, err
		}
		if len(s.Citizens) > 0 {
			if err := seeder.AddCitizens(ctx, s.ID, s.Citizens...); err != nil {
				return nil, err
			}
		}
	}

	ids := make([]string, 0, len(f.Elections))
	for _, e := range f.Elections {
		spec := redishandler.ElectionSpec{
			ID:           e.ID,
			SettlementID: e.Settlement,
			Name:         e.Name,
		}
		for _, c := range e.Choices {
			spec.Choices = append(spec.Choices, models.Choice{ID: c.ID, Name: c.Name})
		}
		if e.ExpiresIn != "" {
			d, _ := time.ParseDuration(e.ExpiresIn)
			spec.ExpiresAt = now.Add(d)
		}

		id, err := seeder.SaveElection(ctx, spec)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to seed election %q", e.Name)
		}
		ids = append(ids, id)
	}

	log.Info("fixtures applied", "settlements", len(f.Settlements), "elections", len(ids))
	return ids, nil
}
