package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHousekeepingSweepsOnStart(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeyring()
	ledger := &RevocationService{Store: newTestStore(t), Keys: keys}

	now := time.Now().UTC()
	require.True(t, ledger.Revoke(ctx, "expired", "user-1", now.Add(-time.Minute)))
	require.True(t, ledger.Revoke(ctx, "live", "user-1", now.Add(time.Hour)))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewHousekeepingService(ledger, logger, time.Hour)
	svc.Start()
	defer svc.Stop()

	// The startup sweep runs asynchronously; poll briefly for its effect.
	require.Eventually(t, func() bool {
		return !ledger.IsRevoked(ctx, "expired")
	}, 2*time.Second, 10*time.Millisecond)

	require.True(t, ledger.IsRevoked(ctx, "live"))
}

func TestHousekeepingStopBlocksUntilDone(t *testing.T) {
	keys := newTestKeyring()
	ledger := &RevocationService{Store: newTestStore(t), Keys: keys}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewHousekeepingService(ledger, logger, time.Hour)
	svc.Start()

	done := make(chan struct{})
	go func() {
		svc.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestHousekeepingDefaultInterval(t *testing.T) {
	keys := newTestKeyring()
	ledger := &RevocationService{Store: newTestStore(t), Keys: keys}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewHousekeepingService(ledger, logger, 0)
	require.Equal(t, time.Hour, svc.Interval)
}
