package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestConnect_PingsServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := Connect(context.Background(), Config{Addr: addr, PoolSize: 3})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if got := client.Options().PoolSize; got != 3 {
		t.Fatalf("expected pool size 3, got %d", got)
	}
	_ = client.Close()

	mr.Close()
	if _, err := Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatalf("expected connect to fail when server is down")
	}
}

func TestClientOptions(t *testing.T) {
	opts := clientOptions(Config{Addr: "cache:6379", DB: 2, Timeout: 750 * time.Millisecond, PoolSize: 8})
	if opts.Addr != "cache:6379" || opts.DB != 2 || opts.PoolSize != 8 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	for name, got := range map[string]time.Duration{
		"dial":  opts.DialTimeout,
		"read":  opts.ReadTimeout,
		"write": opts.WriteTimeout,
		"pool":  opts.PoolTimeout,
	} {
		if got != 750*time.Millisecond {
			t.Fatalf("%s timeout: expected 750ms, got %v", name, got)
		}
	}

	defaults := clientOptions(Config{Addr: "cache:6379"})
	if defaults.DialTimeout != defaultTimeout || defaults.PoolSize != defaultPoolSize {
		t.Fatalf("expected defaults, got dial=%v pool=%d", defaults.DialTimeout, defaults.PoolSize)
	}
}
