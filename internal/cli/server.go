package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"counting-sheep-service/internal/config"
	"counting-sheep-service/internal/engine"
	"counting-sheep-service/internal/infra/memory"
	pginfra "counting-sheep-service/internal/infra/postgres"
	redisinfra "counting-sheep-service/internal/infra/redis"
	"counting-sheep-service/internal/logging"
	"counting-sheep-service/internal/recommend"
	transport "counting-sheep-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the questionnaire server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logging.New(cfg.Log.Level, cfg.Log.File)
	defer log.Sync()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	cacheTTL := config.TTLDuration(cfg.Quiz.CacheTTL, 10*time.Minute)
	progressTTL := config.TTLDuration(cfg.Quiz.ProgressTTL, 24*time.Hour)

	// Catalog: Postgres is authoritative, Redis caches in front of it, and a
	// static in-process catalog serves database-less runs.
	var catalog engine.Catalog = memory.NewStaticCatalog()
	if pool != nil {
		catalog = pginfra.NewCatalog(pool)
	}
	if redisClient != nil {
		catalog = redisinfra.NewCatalog(redisClient, catalog, cacheTTL)
	}

	// Progress: durable rows for authenticated users, transient TTL'd
	// snapshots for anonymous sessions.
	stores := engine.ProgressStores{
		Durable:   memory.NewProgressStore(),
		Transient: memory.NewProgressStore(),
	}
	if pool != nil {
		stores.Durable = pginfra.NewProgressStore(pool)
	}
	if redisClient != nil {
		stores.Transient = redisinfra.NewProgressStore(redisClient, progressTTL)
	}

	var rules interface {
		recommend.RuleLookup
		transport.RuleAdmin
	} = memory.NewRuleStore()
	var submissions interface {
		engine.SubmissionStore
		transport.SubmissionReader
	} = memory.NewSubmissionStore()
	if pool != nil {
		rules = pginfra.NewRuleStore(pool)
		submissions = pginfra.NewSubmissionStore(pool)
	}

	auth := transport.NewAuthenticator(cfg.Auth.JWTSecret)
	resolver := recommend.NewResolver(rules)
	api := transport.NewAPIHandler(auth, submissions, rules, resolver, cfg.Server.BaseURL, log)
	ws := transport.NewWSHandler(auth, transport.EngineDeps{
		Catalog:     catalog,
		Progress:    stores,
		Rules:       rules,
		Submissions: submissions,
	}, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws/attempt", ws.ServeWS)
	api.Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting questionnaire service", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
