package controllers

import (
	"context"
	"net/http"

	"github.com/jordanvasquez/threadline-backend/api/responses"
	"github.com/jordanvasquez/threadline-backend/pkg/config"
)

const envHeader = "X-Threadline-Env"

// Pinger is anything that can confirm a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every registered dependency responds.
func HealthReady(cfg *config.Config, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		status := map[string]string{"status": "ready"}
		healthy := true
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				status[name] = err.Error()
				healthy = false
				continue
			}
			status[name] = "ok"
		}

		if !healthy {
			status["status"] = "degraded"
			responses.WriteJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		responses.WriteSuccess(w, status)
	}
}
