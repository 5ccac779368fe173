package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"
)

func TestProviderAppliesKeyTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	p := NewRedisProvider(mr.Addr(), zap.NewNop(), time.Hour)
	t.Cleanup(func() { _ = p.Close() })

	if !p.Connected() {
		t.Fatal("expected provider to be connected")
	}

	ctx := context.Background()
	if err := p.SetWithDefaultTTL(ctx, "kanbanify_theme", `"dark"`, 0).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := mr.TTL("kanbanify_theme"); got != time.Hour {
		t.Fatalf("ttl = %v, want 1h", got)
	}

	if err := p.SetWithDefaultTTL(ctx, "kanbanify_theme", `"light"`, time.Minute).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := mr.TTL("kanbanify_theme"); got != time.Minute {
		t.Fatalf("ttl = %v, want 1m", got)
	}
}

func TestProviderWithoutTTLNeverExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	p := NewRedisProvider("redis://"+mr.Addr()+"/0", zap.NewNop(), 0)
	t.Cleanup(func() { _ = p.Close() })

	ctx := context.Background()
	if err := p.SetWithDefaultTTL(ctx, "kanbanify_users", "[]", 0).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := mr.TTL("kanbanify_users"); got != 0 {
		t.Fatalf("ttl = %v, want none", got)
	}
	if err := p.Del(ctx, "kanbanify_users").Err(); err != nil {
		t.Fatalf("del: %v", err)
	}
	if mr.Exists("kanbanify_users") {
		t.Fatal("key still present after Del")
	}
}
