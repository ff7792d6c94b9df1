package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/saxenaaman628/settlement-elections/internal/elections"
	"github.com/saxenaaman628/settlement-elections/internal/redis"
	redishandler "github.com/saxenaaman628/settlement-elections/internal/redisHandler"
)

// consoleVoter prints every message to w.
type consoleVoter struct {
	id string
	w  io.Writer
}

func (v consoleVoter) UserID() string { return v.id }

func (v consoleVoter) Send(message string) {
	fmt.Fprintln(v.w, message)
}

func withService(ctx context.Context, opts *options, fn func(*elections.Service) error) error {
	rdb, err := redis.NewClient(ctx, opts.cfg)
	if err != nil {
		return err
	}
	defer rdb.Close()

	store := redishandler.NewStore(rdb)
	service := elections.NewService(store, store)
	service.ListCommand = opts.cfg.ListCommand
	return fn(service)
}

// outcomeError turns a failed outcome into the command's exit status. The
// message was already printed.
func outcomeError(outcome elections.Outcome) error {
	if outcome.OK() {
		return nil
	}
	return errors.New(string(outcome.Kind))
}

func newVoteCmd(opts *options) *cobra.Command {
	var user string

	voteCmd := &cobra.Command{
		Use:   "vote --user <id> [--] <election index> <candidate id>",
		Short: "Vote for a candidate, or -1 to abstain",
		Long: `Vote for a candidate in the election at the given index, or pass -1 as the
candidate to abstain. Flags must come before the election index; everything
after it is read as an argument.`,
		Example: `  settlement-elections vote --user 1 0 10
  settlement-elections vote --user 1 -- 0 -1`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Errorf("invalid election index %q", args[0])
			}
			candidate, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Errorf("invalid candidate id %q", args[1])
			}

			voter := consoleVoter{id: user, w: c.OutOrStdout()}
			return withService(c.Context(), opts, func(s *elections.Service) error {
				return outcomeError(s.Vote(c.Context(), voter, index, candidate))
			})
		},
	}
	voteCmd.Flags().StringVar(&user, "user", "", "voting user id")
	_ = voteCmd.MarkFlagRequired("user")
	voteCmd.Flags().SetInterspersed(false)
	return voteCmd
}

func newElectionsCmd(opts *options) *cobra.Command {
	var user string

	electionsCmd := &cobra.Command{
		Use:   "elections",
		Short: "List the ongoing elections",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			voter := consoleVoter{id: user, w: c.OutOrStdout()}
			return withService(c.Context(), opts, func(s *elections.Service) error {
				return outcomeError(s.ListElections(c.Context(), voter))
			})
		},
	}
	electionsCmd.Flags().StringVar(&user, "user", "", "user id")
	_ = electionsCmd.MarkFlagRequired("user")
	return electionsCmd
}
