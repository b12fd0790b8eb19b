package app

import (
	"context"
	"sync"
	"time"

	"github.com/BHARGAV-S54/code-battle/internal/domain"
	"github.com/BHARGAV-S54/code-battle/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// SyncMode is the client's explicit two-mode state. Transitions happen only on
// defined triggers: a failed fetch degrades, a successful fetch reconnects.
type SyncMode string

const (
	ModeConnected SyncMode = "connected"
	ModeDegraded  SyncMode = "degraded"
)

// StateSource fetches the authoritative snapshot.
type StateSource interface {
	FetchState(ctx context.Context) (domain.ContestSnapshot, error)
}

// SnapshotStore persists the last good snapshot for local-mode fallback.
type SnapshotStore interface {
	Load() (domain.ContestSnapshot, error)
	Save(snap domain.ContestSnapshot) error
}

// SyncClient reconciles a locally cached snapshot against the authoritative
// source on a fixed cadence, replacing the cache wholesale (last fetch wins).
// When the source is unreachable it falls back to the persisted snapshot and
// keeps retrying every tick; staleness of up to one interval is accepted.
type SyncClient struct {
	source   StateSource
	local    SnapshotStore
	interval time.Duration

	sf singleflight.Group

	mu   sync.RWMutex
	snap domain.ContestSnapshot
	mode SyncMode
}

func NewSyncClient(source StateSource, local SnapshotStore, interval time.Duration) *SyncClient {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &SyncClient{
		source:   source,
		local:    local,
		interval: interval,
		mode:     ModeConnected,
	}
}

// Run polls until the context is cancelled. Polling is the sole propagation
// mechanism; there is no push channel.
func (c *SyncClient) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	_ = c.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.Refresh(ctx)
		}
	}
}

// Refresh performs one reconciliation. Concurrent calls collapse into the
// in-flight fetch.
func (c *SyncClient) Refresh(ctx context.Context) error {
	_, err, _ := c.sf.Do("sync", func() (interface{}, error) {
		return nil, c.refresh(ctx)
	})
	return err
}

func (c *SyncClient) refresh(ctx context.Context) error {
	snap, err := c.source.FetchState(ctx)
	if err != nil {
		metrics.SyncTicksTotal.WithLabelValues("failed").Inc()
		c.degrade()
		return err
	}
	metrics.SyncTicksTotal.WithLabelValues("ok").Inc()

	backfillBank(&snap)

	c.mu.Lock()
	c.snap = snap
	c.mode = ModeConnected
	c.mu.Unlock()

	if c.local != nil {
		// Best effort; a failed save only weakens the next fallback.
		_ = c.local.Save(snap)
	}
	return nil
}

// degrade enters local mode once, loading the persisted snapshot. Already
// degraded clients keep their cache untouched.
func (c *SyncClient) degrade() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeDegraded {
		return
	}
	c.mode = ModeDegraded
	if c.local == nil {
		return
	}
	if snap, err := c.local.Load(); err == nil {
		backfillBank(&snap)
		c.snap = snap
	}
}

// Snapshot returns the cached state. It may be up to one interval stale.
func (c *SyncClient) Snapshot() domain.ContestSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

func (c *SyncClient) Mode() SyncMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// backfillBank keeps a client working when the authoritative bank is empty.
func backfillBank(snap *domain.ContestSnapshot) {
	if len(snap.Contest.ProblemBank) == 0 {
		snap.Contest.ProblemBank = domain.DefaultBank()
	}
}
