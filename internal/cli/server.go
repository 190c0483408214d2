package cli

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/renato145/interactive-class/internal/app"
	"github.com/renato145/interactive-class/internal/config"
	"github.com/renato145/interactive-class/internal/infra/memory"
	pgloader "github.com/renato145/interactive-class/internal/infra/postgres"
	redispresence "github.com/renato145/interactive-class/internal/infra/redis"
	transport "github.com/renato145/interactive-class/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the classroom server",
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

	interval, timeout, err := cfg.Heartbeat()
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
		finalPort = "8000"
	}

	registry := app.NewRegistry()
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		presenceTTL := config.Duration(cfg.Redis.TTL, 10*time.Minute)
		registry = app.NewRegistryWithPresence(redispresence.NewPresence(redisClient, presenceTTL))
	}

	var loader app.RoomLoader = memory.NewStaticRoomLoader(cfg.Rooms)
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		loader = pgloader.NewRoomLoader(pool)
	}
	if err := registry.Preload(ctx, loader); err != nil {
		return err
	}

	wsHandler := transport.NewWSHandler(registry, transport.HeartbeatConfig{
		Interval: interval,
		Timeout:  timeout,
	})
	roomsHandler := transport.NewRoomsHandler(registry)

	router := mux.NewRouter()
	router.HandleFunc("/health_check", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	router.HandleFunc("/ws", wsHandler.ServeWS)
	roomsHandler.Register(router)

	server := &http.Server{
		Addr:    cfg.Server.Host + ":" + finalPort,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Printf("starting interactive-class on %s:%s", cfg.Server.Host, finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Println("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
