package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnectionState is satisfied by *amqp091.Connection.
type ConnectionState interface {
	IsClosed() bool
}

type HealthHandler struct {
	Storage   Pinger
	RabbitMQ  ConnectionState
	DemoMode  bool
	Sessions  func() int
	StartTime time.Time
}

type HealthResponse struct {
	Status         string            `json:"status"`
	Version        string            `json:"version"`
	Uptime         string            `json:"uptime"`
	ActiveSessions int               `json:"active_sessions"`
	Dependencies   map[string]string `json:"dependencies"`
}

func NewHealthHandler(storage Pinger, rabbitMQ ConnectionState, demoMode bool, sessions func() int) *HealthHandler {
	return &HealthHandler{
		Storage:   storage,
		RabbitMQ:  rabbitMQ,
		DemoMode:  demoMode,
		Sessions:  sessions,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.Storage != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		err := h.Storage.Ping(ctx)
		cancel()
		if err != nil {
			deps["storage"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["storage"] = "healthy"
		}
	} else {
		deps["storage"] = "not configured"
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	if h.DemoMode {
		deps["email"] = "demo mode"
	} else {
		deps["email"] = "configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" && v != "demo mode" {
			status = "degraded"
			break
		}
	}

	active := 0
	if h.Sessions != nil {
		active = h.Sessions()
	}

	response := HealthResponse{
		Status:         status,
		Version:        "1.0.0",
		Uptime:         time.Since(h.StartTime).Round(time.Second).String(),
		ActiveSessions: active,
		Dependencies:   deps,
	}

	if status == "degraded" {
		writeJSON(w, http.StatusServiceUnavailable, response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}
