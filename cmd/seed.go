package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/saxenaaman628/settlement-elections/internal/fixtures"
	"github.com/saxenaaman628/settlement-elections/internal/redis"
	redishandler "github.com/saxenaaman628/settlement-elections/internal/redisHandler"
)

func newSeedCmd(opts *options) *cobra.Command {
	var file string

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load settlements and elections from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			f, err := fixtures.LoadFile(file)
			if err != nil {
				return err
			}

			rdb, err := redis.NewClient(c.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer rdb.Close()

			ids, err := f.Apply(c.Context(), redishandler.NewStore(rdb), time.Now())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(c.OutOrStdout(), id)
			}
			return nil
		},
	}
	seedCmd.Flags().StringVar(&file, "file", "", "fixtures file")
	_ = seedCmd.MarkFlagRequired("file")
	return seedCmd
}
