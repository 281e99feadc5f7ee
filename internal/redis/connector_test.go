package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/aboutme/internal/logger"
)

func testOptions(addr string) ConnectOptions {
	return ConnectOptions{
		Client: redis.Options{
			Addr:        addr,
			DialTimeout: 100 * time.Millisecond,
			PoolSize:    2,
		},
		Backoff: Backoff{
			Initial: 20 * time.Millisecond,
			Max:     50 * time.Millisecond,
			Total:   300 * time.Millisecond,
			Ping:    100 * time.Millisecond,
		},
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), testOptions(mr.Addr()), logger.Nop())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestConnectGivesUpAfterTotal(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	start := time.Now()
	_, err := Connect(context.Background(), testOptions(addr), logger.Nop())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestConnectStopsWithContext(t *testing.T) {
	opts := testOptions("127.0.0.1:1")
	opts.Backoff.Total = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Connect(ctx, opts, logger.Nop())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestConnectRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *ConnectOptions)
	}{
		{name: "missing addr", mutate: func(o *ConnectOptions) { o.Client.Addr = "" }},
		{name: "zero total", mutate: func(o *ConnectOptions) { o.Backoff.Total = 0 }},
		{name: "zero initial", mutate: func(o *ConnectOptions) { o.Backoff.Initial = 0 }},
		{name: "zero max", mutate: func(o *ConnectOptions) { o.Backoff.Max = 0 }},
		{name: "zero ping", mutate: func(o *ConnectOptions) { o.Backoff.Ping = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions("127.0.0.1:0")
			tt.mutate(&opts)
			_, err := Connect(context.Background(), opts, logger.Nop())
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}
