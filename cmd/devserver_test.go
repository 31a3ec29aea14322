// ABOUTME: Tests for the dev-server command
// ABOUTME: Starts the fake API on a free port and stops it through the context

package cmd

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/onestepgreener/greener-cli/internal/client"
	"github.com/onestepgreener/greener-cli/internal/config"
	"github.com/onestepgreener/greener-cli/internal/devserver"
)

func freePort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	return strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)
}

func TestOpenOTPStore_MemoryByDefault(t *testing.T) {
	store, err := openOTPStore(context.Background(), &config.Config{})
	if err != nil {
		t.Fatalf("openOTPStore() error = %v", err)
	}
	defer store.Close()

	if _, ok := store.(*devserver.MemoryOTPStore); !ok {
		t.Errorf("expected memory store, got %T", store)
	}
}

func TestOpenOTPStore_RedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := openOTPStore(ctx, &config.Config{DevRedisAddr: "127.0.0.1:1"})
	if err == nil {
		t.Error("expected error for unreachable redis")
	}
}

func TestRunDevServer(t *testing.T) {
	port := freePort(t)
	cfg := &config.Config{DevServerPort: port, DevOTPTTL: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runDevServer(ctx, cfg) }()

	c := client.New("http://127.0.0.1:"+port, client.WithTimeout(time.Second))
	var healthy bool
	for i := 0; i < 50 && !healthy; i++ {
		if resp, err := c.Health(context.Background()); err == nil && resp.Status == "healthy" {
			healthy = true
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if !healthy {
		t.Fatal("dev server never became healthy")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runDevServer() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("dev server did not stop")
	}
}
