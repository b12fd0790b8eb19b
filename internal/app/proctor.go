package app

import (
	"context"
	"sync"

	"github.com/BHARGAV-S54/code-battle/internal/domain"
	"github.com/BHARGAV-S54/code-battle/internal/metrics"
)

// MediaCapture abstracts the camera/microphone acquisition a proctored session
// holds while the contest is ACTIVE. Stop must be safe to call repeatedly.
type MediaCapture interface {
	Start(ctx context.Context) error
	Stop()
}

// Alert is the user-visible notification for one counted violation.
type Alert struct {
	TeamID       string               `json:"teamId"`
	Kind         domain.ViolationKind `json:"kind"`
	SessionCount int                  `json:"sessionCount"`
}

// Monitor is one team session's guard. It observes the session (fullscreen
// state, focus, forbidden input, clipboard) and counts violations; it never
// blocks submissions. Each counted violation increments the team's persistent
// counter in the store AND the session-scoped counter that the next submission
// picks up; the split attributes violations to the attempt that produced them.
type Monitor struct {
	repo     StateRepository
	sessions GuardCounters
	capture  MediaCapture

	alerts chan Alert

	mu         sync.Mutex
	teamID     string
	attached   bool
	active     bool
	fullscreen bool
	capturing  bool
}

// NewMonitor builds a detached monitor. capture may be nil.
func NewMonitor(repo StateRepository, sessions GuardCounters, capture MediaCapture) *Monitor {
	return &Monitor{
		repo:     repo,
		sessions: sessions,
		capture:  capture,
		alerts:   make(chan Alert, 8),
	}
}

// Alerts delivers one event per counted violation. Slow consumers lose the
// oldest alert, never block the monitor.
func (m *Monitor) Alerts() <-chan Alert {
	return m.alerts
}

// Attach begins a fresh browsing session for the team: the session-scoped
// counter restarts at zero and, if the contest is already ACTIVE, media
// capture is acquired.
func (m *Monitor) Attach(ctx context.Context, teamID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.sessions.Reset(ctx, teamID); err != nil {
		return err
	}
	m.teamID = teamID
	m.attached = true
	m.fullscreen = false
	if m.active {
		m.startCaptureLocked(ctx)
	}
	return nil
}

// Detach tears the session down and releases capture, whatever path got us here.
func (m *Monitor) Detach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attached = false
	m.teamID = ""
	m.stopCaptureLocked()
}

// SetContestStatus mirrors the authoritative clock into the guard. Capture is
// held exactly while the contest is ACTIVE and a session is attached.
func (m *Monitor) SetContestStatus(ctx context.Context, status domain.ContestStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = status == domain.StatusActive
	if m.active && m.attached {
		m.startCaptureLocked(ctx)
		return
	}
	m.stopCaptureLocked()
}

// SetFullscreen records the presentation state. Dropping out of fullscreen
// during an ACTIVE contest counts as one violation.
func (m *Monitor) SetFullscreen(ctx context.Context, on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	wasFullscreen := m.fullscreen
	m.fullscreen = on
	if wasFullscreen && !on && m.attached && m.active {
		return m.countLocked(ctx, domain.ViolationFullscreenExit)
	}
	return nil
}

// Report handles an observed trigger. Clipboard actions are suppressed
// outright (no count); focus loss only counts once the session is in
// fullscreen, since entering fullscreen is voluntary. Everything else counts
// one violation while the contest is ACTIVE.
func (m *Monitor) Report(ctx context.Context, kind domain.ViolationKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.attached {
		return domain.ErrGuardDetached
	}

	switch kind {
	case domain.ViolationClipboardCopy, domain.ViolationClipboardPaste:
		return domain.ErrClipboardBlocked
	case domain.ViolationFocusLoss:
		if !m.active || !m.fullscreen {
			return nil
		}
	default:
		if !m.active {
			return nil
		}
	}
	return m.countLocked(ctx, kind)
}

// Gated reports whether the contest surface should be overlaid with the
// fullscreen prompt. Presentation-layer only: the submission pipeline never
// consults it.
func (m *Monitor) Gated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attached && m.active && !m.fullscreen
}

// countLocked applies one violation: persistent counter and session counter
// together, then exactly one alert. Requires m.mu held.
func (m *Monitor) countLocked(ctx context.Context, kind domain.ViolationKind) error {
	if err := m.repo.IncrementViolation(ctx, m.teamID); err != nil {
		return err
	}
	count, err := m.sessions.Increment(ctx, m.teamID)
	if err != nil {
		return err
	}
	metrics.ViolationsTotal.WithLabelValues(string(kind)).Inc()

	alert := Alert{TeamID: m.teamID, Kind: kind, SessionCount: count}
	select {
	case m.alerts <- alert:
	default:
		select {
		case <-m.alerts:
		default:
		}
		m.alerts <- alert
	}
	return nil
}

func (m *Monitor) startCaptureLocked(ctx context.Context) {
	if m.capture == nil || m.capturing {
		return
	}
	if err := m.capture.Start(ctx); err == nil {
		m.capturing = true
	}
}

func (m *Monitor) stopCaptureLocked() {
	if m.capture == nil || !m.capturing {
		return
	}
	m.capture.Stop()
	m.capturing = false
}
