package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func connectForTest(t *testing.T) *RevocationStore {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping redis integration test")
	}
	client, err := Connect(context.Background(), Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewRevocationStore(client)
}

func TestRevocationStore_Key(t *testing.T) {
	s := &RevocationStore{}
	if got := s.key("abc"); got != "revoked:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestRevocationStore_RevokeAndCheck(t *testing.T) {
	s := connectForTest(t)
	ctx := context.Background()
	id := uuid.NewString()

	revoked, err := s.IsRevoked(ctx, id)
	if err != nil || revoked {
		t.Fatalf("fresh id must not be revoked: %v %v", revoked, err)
	}
	if err := s.Revoke(ctx, id, time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	revoked, err = s.IsRevoked(ctx, id)
	if err != nil || !revoked {
		t.Fatalf("expected revoked, got %v %v", revoked, err)
	}

	ttl, err := s.client.TTL(ctx, s.key(id)).Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected ttl within a minute, got %v", ttl)
	}
}

func TestRevocationStore_PastExpiryIsNoop(t *testing.T) {
	s := connectForTest(t)
	ctx := context.Background()
	id := uuid.NewString()

	if err := s.Revoke(ctx, id, time.Now().Add(-time.Second)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if revoked, _ := s.IsRevoked(ctx, id); revoked {
		t.Fatal("expired token should not be stored")
	}
}
