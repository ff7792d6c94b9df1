// Package cmd holds the settlement-elections command line.
package cmd

import (
	"fmt"
	"io"
	"os"

	logging "github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/saxenaaman628/settlement-elections/config"
	"github.com/saxenaaman628/settlement-elections/internal/api"
	"github.com/saxenaaman628/settlement-elections/internal/elections"
	"github.com/saxenaaman628/settlement-elections/internal/fixtures"
	"github.com/saxenaaman628/settlement-elections/internal/middleware"
	"github.com/saxenaaman628/settlement-elections/internal/redis"
	redishandler "github.com/saxenaaman628/settlement-elections/internal/redisHandler"
)

var log = logging.New("module", "main")

type options struct {
	logLevel  string
	logOutput string
	redisURI  string

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "settlement-elections",
		Short:         "Vote in and list the elections of your settlements",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return opts.load(c)
		},
	}

	opts.bindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newServeCmd(opts),
		newSeedCmd(opts),
		newVoteCmd(opts),
		newElectionsCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (o *options) bindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.logLevel, "log-level", "", "log level, {crit, error, warn, info, debug} (default $LOG_LEVEL or info)")
	flags.StringVar(&o.logOutput, "log-output", "", "log output file (default $LOG_OUTPUT or stderr)")
	flags.StringVar(&o.redisURI, "redis", "", "redis address (default $REDIS_URI or localhost:6379)")
}

// load merges .env, the environment and the persistent flags, then sets up
// logging for every package.
func (o *options) load(c *cobra.Command) error {
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logOutput != "" {
		cfg.LogOutput = o.logOutput
	}
	if o.redisURI != "" {
		cfg.RedisURI = o.redisURI
	}
	o.cfg = cfg

	level, err := logging.LvlFromString(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "invalid --log-level")
	}
	handler, err := logHandler(c.ErrOrStderr(), cfg.LogOutput)
	if err != nil {
		return errors.Wrap(err, "invalid --log-output")
	}
	setLogging(level, handler)
	return nil
}

func logHandler(w io.Writer, output string) (logging.Handler, error) {
	if output != "" {
		return logging.FileHandler(output, logging.JsonFormat())
	}

	formatter := logging.LogfmtFormat()
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		formatter = logging.TerminalFormat()
	}
	return logging.StreamHandler(w, formatter), nil
}

func setLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
	config.SetLogging(level, handler)
	redis.SetLogging(level, handler)
	redishandler.SetLogging(level, handler)
	elections.SetLogging(level, handler)
	middleware.SetLogging(level, handler)
	api.SetLogging(level, handler)
	fixtures.SetLogging(level, handler)
}
