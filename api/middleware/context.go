package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxRole   contextKey = "actor_role"
	ctxActor  contextKey = "actor"
	ctxIP     contextKey = "client_ip"
)

func UserIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxUserID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

func RoleFromContext(ctx context.Context) enums.UserRole {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(enums.UserRole); ok {
		return v
	}
	return ""
}

// ActorFromContext returns the authenticated user record, loaded fresh by
// the auth middleware on every admin request.
func ActorFromContext(ctx context.Context) *models.User {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxActor).(*models.User); ok {
		return v
	}
	return nil
}

func ClientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxIP).(string); ok {
		return v
	}
	return ""
}

func WithActor(ctx context.Context, user *models.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, user.ID)
	ctx = context.WithValue(ctx, ctxRole, user.Role)
	return context.WithValue(ctx, ctxActor, user)
}

func WithClientIP(ctx context.Context, ip string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIP, ip)
}
