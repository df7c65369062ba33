package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"omanvat/internal/model"
	"omanvat/internal/repository"
)

type actorKey struct{}

// WithActor attaches the id of the user performing the request to ctx for audit entries.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func actorFrom(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}

// writeAuditLog records a setup side effect. Best-effort: a failed insert is logged, never returned.
func writeAuditLog(ctx context.Context, repo repository.AuditRepository, action, entityType, entityID string, details interface{}) {
	if repo == nil {
		return
	}
	detailsJSON, _ := json.Marshal(details)

	entry := model.AuditLog{
		Actor:      actorFrom(ctx),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    string(detailsJSON),
	}
	if err := repo.Log(ctx, &entry); err != nil {
		slog.WarnContext(ctx, "audit log write failed", "action", action, "entity_id", entityID, "error", err)
	}
}
