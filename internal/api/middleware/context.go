package middleware

import (
	"context"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

type contextKey int

const (
	capabilityKey contextKey = iota
	requestIDKey
)

// WithCapability кладет права пользователя в контекст
func WithCapability(ctx context.Context, capability domain.Capability) context.Context {
	return context.WithValue(ctx, capabilityKey, capability)
}

// GetCapability достает права пользователя из контекста
func GetCapability(ctx context.Context) (domain.Capability, bool) {
	capability, ok := ctx.Value(capabilityKey).(domain.Capability)
	return capability, ok
}

// GetRequestID достает идентификатор запроса из контекста
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
