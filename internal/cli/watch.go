package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BHARGAV-S54/code-battle/internal/app"
	"github.com/BHARGAV-S54/code-battle/internal/config"
	"github.com/BHARGAV-S54/code-battle/internal/infra/memory"
	transport "github.com/BHARGAV-S54/code-battle/internal/transport/http"
	"github.com/spf13/cobra"
)

// NewWatchCmd mirrors a remote deployment: it polls the remote state on the
// sync interval, persists each good snapshot locally, and keeps serving the
// last one when the remote goes away.
func NewWatchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Mirror a remote contest and print scoreboard updates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), *configPath)
		},
	}
}

func runWatch(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Sync.RemoteURL == "" {
		return fmt.Errorf("sync remote url not configured")
	}

	snapshotPath := cfg.Sync.SnapshotPath
	if snapshotPath == "" {
		snapshotPath = "contest-snapshot.json"
	}

	source := transport.NewStateClient(cfg.Sync.RemoteURL, 10*time.Second)
	local := memory.NewSnapshotFile(snapshotPath)
	client := app.NewSyncClient(source, local, config.Duration(cfg.Sync.Interval, 5*time.Second))

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-stop:
		case <-watchCtx.Done():
		}
		cancel()
	}()

	go printLoop(watchCtx, client)

	log.Printf("watching %s every %s", cfg.Sync.RemoteURL, config.Duration(cfg.Sync.Interval, 5*time.Second))
	client.Run(watchCtx)
	return nil
}

func printLoop(ctx context.Context, client *app.SyncClient) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := client.Snapshot()
			log.Printf("[%s] contest=%s teams=%d submissions=%d",
				client.Mode(), snap.Contest.Status, len(snap.Teams), len(snap.Submissions))
		}
	}
}
