package worker

import (
	"context"
	"log"
	"time"
)

// SessionExpirer is implemented by *usecase.SessionManager.
type SessionExpirer interface {
	ExpireIdle(ttl time.Duration) int
}

// SessionExpirationWorker tears down widget sessions idle for longer than ttl.
type SessionExpirationWorker struct {
	sessions     SessionExpirer
	ttl          time.Duration
	tickInterval time.Duration
}

func NewSessionExpirationWorker(sessions SessionExpirer, ttl time.Duration) *SessionExpirationWorker {
	return &SessionExpirationWorker{
		sessions:     sessions,
		ttl:          ttl,
		tickInterval: time.Minute,
	}
}

func (w *SessionExpirationWorker) Start(ctx context.Context) {
	log.Printf("🕒 Session expiration worker started (ttl %s)", w.ttl)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Session expiration worker stopped")
			return
		case <-ticker.C:
			w.expire()
		}
	}
}

func (w *SessionExpirationWorker) expire() int {
	n := w.sessions.ExpireIdle(w.ttl)
	if n > 0 {
		log.Printf("✅ %d idle widget session(s) torn down", n)
	}
	return n
}
