package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BHARGAV-S54/code-battle/internal/app"
	"github.com/BHARGAV-S54/code-battle/internal/config"
	"github.com/BHARGAV-S54/code-battle/internal/infra/judge"
	"github.com/BHARGAV-S54/code-battle/internal/infra/memory"
	pgstore "github.com/BHARGAV-S54/code-battle/internal/infra/postgres"
	redisguard "github.com/BHARGAV-S54/code-battle/internal/infra/redis"
	transport "github.com/BHARGAV-S54/code-battle/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the contest server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the contest server",
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

	var repo app.StateRepository
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		repo = pgstore.NewStateStore(pool)
	} else if cfg.Store.FilePath != "" {
		store, err := memory.NewFileStateStore(cfg.Store.FilePath)
		if err != nil {
			return err
		}
		repo = store
	} else {
		repo = memory.NewStateStore()
	}

	var sessions app.GuardCounters
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sessionTTL := config.Duration(cfg.Redis.SessionTTL, 4*time.Hour)
		sessions = redisguard.NewGuardStore(client, sessionTTL)
	} else {
		sessions = memory.NewGuardCounters()
	}

	var evaluator app.Judge = judge.Disabled{}
	if cfg.Judge.URL != "" {
		evaluator = judge.NewClient(cfg.Judge.URL, config.Duration(cfg.Judge.Timeout, 30*time.Second))
	}

	admin := app.AdminAccount{
		ID:          cfg.Admin.ID,
		Password:    cfg.Admin.Password,
		DisplayName: cfg.Admin.DisplayName,
	}
	if admin.ID == "" {
		admin.ID = "admin"
	}
	if admin.Password == "" {
		admin.Password = "bhargav"
	}
	if admin.DisplayName == "" {
		admin.DisplayName = "Root Admin"
	}

	contest := app.NewContestService(repo)
	registry := app.NewRegistry(repo, admin)
	submissions := app.NewSubmissionService(repo, evaluator, sessions)

	api := transport.NewAPI(contest, registry, submissions, repo)
	auth := transport.NewAuth(registry, cfg.Auth.JWTSecret, config.Duration(cfg.Auth.TokenTTL, 12*time.Hour))
	guard := transport.NewGuardHandler(repo, sessions, nil)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(api, auth, guard),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	serverCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Contest.AutoFinishOnExpiry {
		go expiryLoop(serverCtx, contest)
	}

	go func() {
		log.Printf("starting contest server on :%s", finalPort)
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

// expiryLoop flips the contest to FINISHED once the running clock hits zero.
// Off by default: operators usually stop the contest by hand so late judge
// results can still land.
func expiryLoop(ctx context.Context, contest *app.ContestService) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, err := contest.ExpireIfDue(ctx)
			if err != nil {
				log.Printf("auto finish check failed: %v", err)
				continue
			}
			if expired {
				log.Println("contest duration elapsed, finished automatically")
			}
		}
	}
}
