package node

import (
	"context"
	"time"
)

// ctxKey represents the type of value for the context key.
type ctxKey int

// KeyValues is how request values or stored/retrieved.
const KeyValues ctxKey = 1

// Values represent state for each transaction.
type Values struct {
	TraceID string
	Now     time.Time
}

// ContextWithValues attaches the transaction values.
func ContextWithValues(ctx context.Context, v *Values) context.Context {
	return context.WithValue(ctx, KeyValues, v)
}

// ValuesFromContext returns the transaction values, or empty values with the current time when
// none were attached.
func ValuesFromContext(ctx context.Context) *Values {
	v, ok := ctx.Value(KeyValues).(*Values)
	if !ok || v == nil {
		return &Values{Now: time.Now()}
	}
	return v
}
