// internal/contextkeys/keys.go
package contextkeys

// contextKey é um tipo privado para evitar colisões de chaves no contexto.
type contextKey string

const TraceIDKey contextKey = "trace_id"
const SessionIDKey contextKey = "session_id"
const StoreIDKey contextKey = "store_id"
