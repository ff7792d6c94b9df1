package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/saxenaaman628/settlement-elections/internal/api"
	"github.com/saxenaaman628/settlement-elections/internal/elections"
	"github.com/saxenaaman628/settlement-elections/internal/metrics"
	"github.com/saxenaaman628/settlement-elections/internal/middleware"
	"github.com/saxenaaman628/settlement-elections/internal/redis"
	redishandler "github.com/saxenaaman628/settlement-elections/internal/redisHandler"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the voting API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts)
		},
	}
}

func serve(ctx context.Context, opts *options) error {
	cfg := opts.cfg
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	rdb, err := redis.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer rdb.Close()

	store := redishandler.NewStore(rdb)
	recorder := metrics.NewRecorder()
	service := elections.NewService(store, store)
	service.Recorder = recorder
	service.ListCommand = cfg.ListCommand

	limit, err := middleware.RateLimit(rdb, cfg.RateLimit)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.Dependencies{
		Service:   service,
		JWTSecret: []byte(cfg.JWTSecret),
		TokenTTL:  cfg.TokenTTL,
		RateLimit: limit,
		Metrics:   recorder.Handler(),
		Health:    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != http.ErrServerClosed {
			return errors.Wrap(err, "server stopped")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to shut down")
	}
	return nil
}
