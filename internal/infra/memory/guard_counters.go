package memory

import (
	"context"
	"sync"
)

// GuardCounters keeps session-scoped violation counts in process, for
// single-instance deployments and tests.
type GuardCounters struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewGuardCounters() *GuardCounters {
	return &GuardCounters{counts: make(map[string]int)}
}

func (g *GuardCounters) Reset(_ context.Context, teamID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counts[teamID] = 0
	return nil
}

func (g *GuardCounters) Increment(_ context.Context, teamID string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counts[teamID]++
	return g.counts[teamID], nil
}

func (g *GuardCounters) Count(_ context.Context, teamID string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counts[teamID], nil
}
