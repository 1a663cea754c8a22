package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
)

// Entry describes a single administrative action to be trailed.
type Entry struct {
	ActorID    *uuid.UUID
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	Changes    any
	IPAddress  string
}

// Recorder persists audit entries. Writes are best-effort: a failed trail
// never fails the action that produced it.
type Recorder struct {
	repo Repository
	logg *logger.Logger

	timeout time.Duration
}

func NewRecorder(repo Repository, logg *logger.Logger) *Recorder {
	return &Recorder{repo: repo, logg: logg, timeout: 5 * time.Second}
}

// Record writes the entry synchronously and reports the failure to the log
// without propagating it.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if err := r.repo.Create(ctx, r.toModel(entry)); err != nil && r.logg != nil {
		logCtx := r.logg.WithFields(ctx, map[string]any{
			"action":      entry.Action,
			"entity_type": entry.EntityType,
		})
		r.logg.Warn(logCtx, "audit.write_failed")
	}
}

// Async writes the entry on a detached context so the trail survives the
// request being cancelled or completed.
func (r *Recorder) Async(ctx context.Context, entry Entry) {
	detached := context.WithoutCancel(ctx)
	go func() {
		writeCtx, cancel := context.WithTimeout(detached, r.timeout)
		defer cancel()
		r.Record(writeCtx, entry)
	}()
}

func (r *Recorder) toModel(entry Entry) *models.AuditLog {
	m := &models.AuditLog{
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
	}
	if entry.IPAddress != "" {
		ip := entry.IPAddress
		m.IPAddress = &ip
	}
	if entry.Changes != nil {
		if raw, err := json.Marshal(entry.Changes); err == nil {
			s := string(raw)
			m.Changes = &s
		}
	}
	return m
}
