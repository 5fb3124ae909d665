package cache

import (
	"context"
	"testing"
)

func TestKeyScheme(t *testing.T) {
	if got := Key("orders", 42); got != "orders:42" {
		t.Errorf("Key = %q, want orders:42", got)
	}
	if got := ListKey("invoices"); got != "invoices:list" {
		t.Errorf("ListKey = %q, want invoices:list", got)
	}
}

func TestDegradesWithoutRedis(t *testing.T) {
	// client is nil when Init was never called (or failed); every
	// operation must be a safe no-op in that state.
	ctx := context.Background()

	if _, ok := Get(ctx, "orders:1"); ok {
		t.Error("Get reported a hit with no client")
	}
	Set(ctx, "orders:1", []byte("{}"))
	Invalidate(ctx, "orders:1")
	InvalidateResource(ctx, "orders", 1)
}
