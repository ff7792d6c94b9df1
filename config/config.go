package config

import (
	"os"
	"strconv"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

var log = logging.New("module", "config")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

type Config struct {
	Port          string
	RedisURI      string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	TokenTTL      time.Duration
	RateLimit     string
	LogLevel      string
	LogOutput     string
	ListCommand   string
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug("no .env file found, using environment variables")
	}
}

func GetEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

// Load reads the process configuration from the environment. Call LoadEnv
// first to merge a local .env file.
func Load() (Config, error) {
	db, err := strconv.Atoi(GetEnv("REDIS_DB", "0"))
	if err != nil {
		return Config{}, errors.Wrap(err, "invalid REDIS_DB")
	}

	ttl, err := time.ParseDuration(GetEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return Config{}, errors.Wrap(err, "invalid TOKEN_TTL")
	}
	if ttl <= 0 {
		return Config{}, errors.Errorf("TOKEN_TTL must be positive, got %s", ttl)
	}

	return Config{
		Port:          GetEnv("PORT", "8080"),
		RedisURI:      GetEnv("REDIS_URI", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       db,
		JWTSecret:     GetEnv("JWT_SECRET", ""),
		TokenTTL:      ttl,
		RateLimit:     GetEnv("RATE_LIMIT", "60-M"),
		LogLevel:      GetEnv("LOG_LEVEL", "info"),
		LogOutput:     GetEnv("LOG_OUTPUT", ""),
		ListCommand:   GetEnv("LIST_COMMAND", "/elections"),
	}, nil
}
