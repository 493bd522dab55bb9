package adapters

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"resty_chess/internal/bootstrap"
)

func TestAdapterRedisInit(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		url  string
	}{
		{"host and port", mr.Addr()},
		{"redis url", "redis://" + mr.Addr() + "/0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdapterRedis(&bootstrap.Config{RedisUrl: tt.url}, zap.NewNop().Sugar())
			if err := a.Init(context.Background()); err != nil {
				t.Fatalf("Init: %v", err)
			}
			defer a.Close(context.Background())

			if err := a.GetClient().Set(context.Background(), "k", "v", 0).Err(); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if got, _ := mr.Get("k"); got != "v" {
				t.Errorf("miniredis k = %q", got)
			}
		})
	}
}

func TestAdapterRedisInitErrors(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	for _, url := range []string{"", "redis://" + addr + "/notadb", addr} {
		a := NewAdapterRedis(&bootstrap.Config{RedisUrl: url}, zap.NewNop().Sugar())
		if err := a.Init(context.Background()); err == nil {
			t.Errorf("Init(%q) succeeded", url)
		}
		if a.GetClient() != nil {
			t.Errorf("Init(%q) left a client behind", url)
		}
		if err := a.Close(context.Background()); err != nil {
			t.Errorf("Close after failed Init: %v", err)
		}
	}
}
