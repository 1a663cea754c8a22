package controllers

import (
	"context"
	"net/http"

	"github.com/hamzasiddiqui/bazaarline-backend/api/responses"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db    pinger
	redis pinger
}

func NewHealthController(db, redis pinger) *HealthController {
	return &HealthController{db: db, redis: redis}
}

// Live reports process liveness only; it never touches dependencies.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, map[string]string{"status": "ok"})
}

func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	healthy := true

	if c.db != nil {
		if err := c.db.Ping(r.Context()); err != nil {
			healthy = false
			status["db"] = "down"
		} else {
			status["db"] = "up"
		}
	}
	if c.redis != nil {
		if err := c.redis.Ping(r.Context()); err != nil {
			healthy = false
			status["redis"] = "down"
		} else {
			status["redis"] = "up"
		}
	}

	if !healthy {
		status["status"] = "degraded"
		responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, status)
		return
	}
	responses.WriteSuccess(w, status)
}
