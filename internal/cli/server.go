package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/wajih79/kia-python-game/internal/app"
	"github.com/wajih79/kia-python-game/internal/catalog"
	"github.com/wajih79/kia-python-game/internal/config"
	"github.com/wajih79/kia-python-game/internal/genai"
	pgloader "github.com/wajih79/kia-python-game/internal/infra/postgres"
	rediscache "github.com/wajih79/kia-python-game/internal/infra/redis"
	"github.com/wajih79/kia-python-game/internal/notify"
	transport "github.com/wajih79/kia-python-game/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
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

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
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

	// Catalog content comes from the static definition unless Postgres is
	// configured; Redis, when present, caches whichever loader is active.
	var loader catalog.Loader = catalog.NewStaticLoader(catalog.DefaultContent())
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		loader = pgloader.NewCatalogLoader(pool)
	}
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
		loader = rediscache.NewCatalogRepository(redisClient, loader, catalogTTL)
	}

	standardCatalog, err := catalog.Build(ctx, loader, catalog.StandardID)
	if err != nil {
		return err
	}
	promptCatalog, err := catalog.Build(ctx, loader, catalog.PromptID)
	if err != nil {
		return err
	}

	generator := genai.NewHTTPClient(genai.Config{
		URL:     cfg.Generation.URL,
		APIKey:  cfg.Generation.APIKey,
		Model:   cfg.Generation.Model,
		Timeout: config.TTLDuration(cfg.Generation.Timeout, 30*time.Second),
	})

	hub := notify.NewHub()
	service := app.NewGameService(app.ServiceConfig{
		StandardCatalog: standardCatalog,
		PromptCatalog:   promptCatalog,
		Notifier:        hub,
		Generator:       generator,
		PollQuestion:    cfg.Poll.Question,
		PollOptions:     cfg.Poll.Options,
		RoundLimitSecs:  cfg.Game.RoundTimeLimit,
	})

	joinURL := cfg.Server.JoinURL
	if joinURL == "" {
		joinURL = "http://localhost:" + finalPort + "/join"
	}

	wsHandler := transport.NewWSHandler(service, hub)
	handler := transport.NewHandler(service, joinURL)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handler.Health)
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.HandleFunc("/api/join", handler.Join)
	mux.HandleFunc("/api/leaderboard", handler.Leaderboard)
	mux.HandleFunc("/api/poll/results", handler.PollResults)
	mux.HandleFunc("/qr", handler.QR)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting game server on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
