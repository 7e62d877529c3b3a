package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"contactbook/internal/contact"
	"contactbook/internal/contact/handler"
	"contactbook/internal/platform/config"
	"contactbook/internal/platform/health"
	"contactbook/internal/platform/httpserver"
	"contactbook/internal/platform/logger"
	"contactbook/internal/platform/metrics"
	platformredis "contactbook/internal/platform/redis"
	"contactbook/internal/session"
	"contactbook/internal/storage"
	"contactbook/internal/web"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the contact book HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				addr, _ := cmd.Flags().GetString("addr")
				viper.Set("addr", addr)
			}
			return runServe(config.Load(viper.GetViper()))
		},
	}
	cmd.Flags().String("addr", ":3000", "Listen address.")
	return cmd
}

// runServe wires high-level dependencies and keeps the server lifecycle
// small. Business logic lives in the internal packages.
func runServe(cfg config.Config) error {
	log := logger.New(cfg.LogLevel)
	ctx := context.Background()

	m := metrics.New(prometheus.DefaultRegisterer)

	var healthChecks []health.Check

	var contactStore storage.ContactStore
	if cfg.PostgresURL != "" {
		db, err := storage.OpenPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer db.Close()
		pg := storage.NewPostgresContactStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		contactStore = pg
		healthChecks = append(healthChecks, db.PingContext)
		log.Info("using postgres contact store")
	} else {
		contactStore = storage.NewInMemoryContactStore()
		log.Info("using in-memory contact store")
	}

	var sessions session.Store
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessions = session.NewRedisStore(redisClient.Client)
		healthChecks = append(healthChecks, redisClient.Health)
		log.Info("using redis session store")
	} else {
		sessions = session.NewInMemoryStore()
		log.Info("using in-memory session store")
	}

	renderer, err := web.NewRenderer(log)
	if err != nil {
		return err
	}

	validator := contact.NewValidator(contactStore, cfg.PhoneRegion)
	svc := contact.NewService(contactStore, validator, log, m)

	h := handler.New(svc, sessions, renderer, log, m, session.Config{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
	})
	router := chi.NewRouter()
	h.Register(router)
	router.Get("/healthz", health.Handler(log, healthChecks...))

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting contactapp", "addr", cfg.Addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case <-quit:
		case <-gctx.Done():
			return nil
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
