package redis

import (
	"context"

	logging "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/saxenaaman628/settlement-elections/config"
)

var log = logging.New("module", "redis")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

// NewClient connects to the Redis server named in cfg and pings it.
func NewClient(ctx context.Context, cfg config.Config) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisURI,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		_ = rdb.Close()
		return nil, errors.Wrapf(err, "failed to connect to redis at %s", cfg.RedisURI)
	}

	log.Info("redis connected", "addr", cfg.RedisURI, "db", cfg.RedisDB, "reply", pong)
	return rdb, nil
}
