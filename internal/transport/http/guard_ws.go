package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/BHARGAV-S54/code-battle/internal/app"
	"github.com/BHARGAV-S54/code-battle/internal/domain"
	"github.com/gorilla/websocket"
)

// GuardHandler runs one proctoring monitor per websocket connection. The
// session counter resets when the socket opens, so a reconnect starts a fresh
// session while the persistent tally keeps accumulating.
type GuardHandler struct {
	repo     app.StateRepository
	sessions app.GuardCounters
	capture  app.MediaCapture
	upgrader websocket.Upgrader
}

func NewGuardHandler(repo app.StateRepository, sessions app.GuardCounters, capture app.MediaCapture) *GuardHandler {
	return &GuardHandler{
		repo:     repo,
		sessions: sessions,
		capture:  capture,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type guardInbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type violationPayload struct {
	Kind domain.ViolationKind `json:"kind"`
}

type fullscreenPayload struct {
	On bool `json:"on"`
}

type guardOutbound[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type guardError struct {
	Message string `json:"message"`
}

type gatedPayload struct {
	Gated bool `json:"gated"`
}

// ServeWS upgrades the request and pumps proctoring events through a Monitor.
func (h *GuardHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("teamId")
	if teamID == "" {
		http.Error(w, "missing teamId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("guard ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	monitor := app.NewMonitor(h.repo, h.sessions, h.capture)
	h.refreshStatus(r, monitor)
	if err := monitor.Attach(r.Context(), teamID); err != nil {
		_ = conn.WriteJSON(guardOutbound[guardError]{Type: "error", Payload: guardError{Message: err.Error()}})
		return
	}
	defer monitor.Detach()

	send := make(chan guardOutbound[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	alertsDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("guard ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(alertsDone)
		for {
			select {
			case alert, ok := <-monitor.Alerts():
				if !ok {
					return
				}
				select {
				case send <- guardOutbound[any]{Type: "alert", Payload: alert}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- guardOutbound[any]{Type: "attached", Payload: gatedPayload{Gated: monitor.Gated()}}

	for {
		var inbound guardInbound
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.refreshStatus(r, monitor)
		switch inbound.Type {
		case "violation":
			var payload violationPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- guardOutbound[any]{Type: "error", Payload: guardError{Message: "invalid violation payload"}}
				continue
			}
			if err := monitor.Report(r.Context(), payload.Kind); err != nil {
				if errors.Is(err, domain.ErrClipboardBlocked) {
					send <- guardOutbound[any]{Type: "blocked", Payload: guardError{Message: err.Error()}}
					continue
				}
				send <- guardOutbound[any]{Type: "error", Payload: guardError{Message: err.Error()}}
			}
		case "fullscreen":
			var payload fullscreenPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- guardOutbound[any]{Type: "error", Payload: guardError{Message: "invalid fullscreen payload"}}
				continue
			}
			if err := monitor.SetFullscreen(r.Context(), payload.On); err != nil {
				send <- guardOutbound[any]{Type: "error", Payload: guardError{Message: err.Error()}}
				continue
			}
			send <- guardOutbound[any]{Type: "gated", Payload: gatedPayload{Gated: monitor.Gated()}}
		default:
			send <- guardOutbound[any]{Type: "error", Payload: guardError{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-alertsDone
	close(send)
	<-writerDone
}

// refreshStatus keeps the monitor's view of the contest lifecycle current so
// pre-start and post-finish events are not penalized.
func (h *GuardHandler) refreshStatus(r *http.Request, monitor *app.Monitor) {
	snap, err := h.repo.GetState(r.Context())
	if err != nil {
		log.Printf("guard ws state refresh failed: %v", err)
		return
	}
	monitor.SetContestStatus(r.Context(), snap.Contest.Status)
}
