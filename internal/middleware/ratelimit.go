package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RateLimit limits requests per authenticated user, falling back to the
// client IP. rate uses the limiter format, e.g. "60-M".
func RateLimit(rdb *goredis.Client, rate string) (gin.HandlerFunc, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid rate %q", rate)
	}
	store, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: "limiter:commands"})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create rate limit store")
	}

	return mgin.NewMiddleware(
		limiter.New(store, parsed),
		mgin.WithKeyGetter(func(c *gin.Context) string {
			if userID := c.GetString("userID"); userID != "" {
				return "user:" + userID
			}
			return c.ClientIP()
		}),
	), nil
}
