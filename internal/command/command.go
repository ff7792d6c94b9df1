// Package command parses chat-style command text such as "/vote 0 10" and
// routes it to the elections service.
package command

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/saxenaaman628/settlement-elections/internal/elections"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("bad command arguments")
)

type Name string

const (
	Vote      Name = "vote"
	Elections Name = "elections"
)

var aliases = map[string]Name{
	"vote":       Vote,
	"vote1":      Vote,
	"elections":  Elections,
	"elections1": Elections,
}

const Usage = "Usage: /vote <election index> <candidate id> (candidate -1 abstains), /elections"

type Command struct {
	Name          Name
	ElectionIndex int
	CandidateID   int
}

func Parse(text string) (Command, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Command{}, errors.Wrap(ErrUnknownCommand, "empty command")
	}

	name, ok := aliases[strings.ToLower(strings.TrimPrefix(fields[0], "/"))]
	if !ok {
		return Command{}, errors.Wrapf(ErrUnknownCommand, "%q", fields[0])
	}
	args := fields[1:]

	switch name {
	case Elections:
		if len(args) != 0 {
			return Command{}, errors.Wrap(ErrBadArguments, "elections takes no arguments")
		}
		return Command{Name: Elections}, nil
	default:
		if len(args) != 2 {
			return Command{}, errors.Wrapf(ErrBadArguments, "vote takes 2 arguments, got %d", len(args))
		}
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, errors.Wrapf(ErrBadArguments, "election index %q is not a number", args[0])
		}
		candidate, err := strconv.Atoi(args[1])
		if err != nil {
			return Command{}, errors.Wrapf(ErrBadArguments, "candidate id %q is not a number", args[1])
		}
		return Command{Name: Vote, ElectionIndex: index, CandidateID: candidate}, nil
	}
}

// Dispatch parses text and runs it for voter. On a parse error the voter gets
// the usage text and the error is returned; no command runs.
func Dispatch(ctx context.Context, service *elections.Service, voter elections.Voter, text string) (elections.Outcome, error) {
	cmd, err := Parse(text)
	if err != nil {
		voter.Send(Usage)
		return elections.Outcome{}, err
	}

	switch cmd.Name {
	case Elections:
		return service.ListElections(ctx, voter), nil
	default:
		return service.Vote(ctx, voter, cmd.ElectionIndex, cmd.CandidateID), nil
	}
}
