// internal/logging/context.go
package logging

import (
	"context"

	"go.uber.org/zap"
)

// contextKey é um tipo privado para evitar colisões de chaves de contexto.
type contextKey string

const SessionIDKey contextKey = "session_id"
const StoreIDKey contextKey = "store_id"

// GetLoggingFieldsFromContext extrai os campos de logging (session_id, store_id)
// do contexto e os devolve como um slice de zap.Field.
func GetLoggingFieldsFromContext(ctx context.Context) []zap.Field {
	fields := []zap.Field{}
	if sid, ok := ctx.Value(SessionIDKey).(string); ok && sid != "" {
		fields = append(fields, zap.String("session_id", sid))
	}
	if store, ok := ctx.Value(StoreIDKey).(string); ok && store != "" {
		fields = append(fields, zap.String("store_id", store))
	}
	return fields
}

// WithLoggingFields adiciona session_id e store_id ao contexto se presentes.
func WithLoggingFields(ctx context.Context, sessionID, storeID string) context.Context {
	if sessionID != "" {
		ctx = context.WithValue(ctx, SessionIDKey, sessionID)
	}
	if storeID != "" {
		ctx = context.WithValue(ctx, StoreIDKey, storeID)
	}
	return ctx
}
