package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saxenaaman628/settlement-elections/internal/elections"
	"github.com/saxenaaman628/settlement-elections/internal/middleware"
)

type Dependencies struct {
	Service   *elections.Service
	JWTSecret []byte
	TokenTTL  time.Duration

	// Optional.
	RateLimit gin.HandlerFunc
	Metrics   http.Handler
	Health    func(ctx context.Context) error
}

func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	RegisterRoutes(r, deps)
	return r
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	r.POST("/login", LoginHandler(deps.JWTSecret, deps.TokenTTL))
	r.GET("/healthz", healthHandler(deps.Health))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	h := electionHandlers{service: deps.Service}
	auth := r.Group("/api")
	auth.Use(middleware.JWTAuthMiddleware(deps.JWTSecret))
	if deps.RateLimit != nil {
		auth.Use(deps.RateLimit)
	}
	{
		auth.GET("/elections", h.ListElections)
		auth.POST("/vote", h.Vote)
		auth.POST("/commands", h.Command)
	}
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
