package userctx

import "context"

// Context key type
type contextKey string

const actorKey contextKey = "actor"

// SetActor records which connected accounts are acting in the request
func SetActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor retrieves the acting accounts from request context
func GetActor(ctx context.Context) string {
	actor, ok := ctx.Value(actorKey).(string)
	if !ok || actor == "" {
		return "anonymous"
	}
	return actor
}
