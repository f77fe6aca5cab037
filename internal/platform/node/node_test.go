package node

import (
	"context"
	"testing"
	"time"
)

func TestValuesFromContext(t *testing.T) {
	now := time.Unix(1700000000, 0)
	ctx := ContextWithValues(context.Background(), &Values{TraceID: "abc", Now: now})

	v := ValuesFromContext(ctx)
	if v.TraceID != "abc" || !v.Now.Equal(now) {
		t.Errorf("got %+v", v)
	}

	v = ValuesFromContext(context.Background())
	if v.Now.IsZero() {
		t.Errorf("Expected current time for missing values")
	}
}
