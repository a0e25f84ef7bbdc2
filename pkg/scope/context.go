package scope

import (
	"context"

	"widget-srv/internal/model"
)

type contextKey int

const (
	payloadKey contextKey = iota
	scopeKey
)

// SetPayloadToContext stores the verified token payload in the context.
func SetPayloadToContext(ctx context.Context, payload Payload) context.Context {
	return context.WithValue(ctx, payloadKey, payload)
}

// GetPayloadFromContext returns the token payload stored by the auth middleware.
func GetPayloadFromContext(ctx context.Context) Payload {
	payload, _ := ctx.Value(payloadKey).(Payload)
	return payload
}

// SetScopeToContext stores the request scope in the context.
func SetScopeToContext(ctx context.Context, sc model.Scope) context.Context {
	return context.WithValue(ctx, scopeKey, sc)
}

// GetScopeFromContext returns the request scope stored by the auth middleware.
func GetScopeFromContext(ctx context.Context) model.Scope {
	sc, _ := ctx.Value(scopeKey).(model.Scope)
	return sc
}
