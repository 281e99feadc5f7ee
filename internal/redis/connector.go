package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/aboutme/internal/logger"
)

// ErrInvalidOptions is returned by Connect before any network call.
var ErrInvalidOptions = errors.New("invalid redis connect options")

// Backoff controls how long Connect waits for the server to answer.
type Backoff struct {
	Initial time.Duration // first wait after a failed ping, doubled each time
	Max     time.Duration // cap on a single wait
	Total   time.Duration // give up once this much time has passed
	Ping    time.Duration // timeout of one ping
}

// ConnectOptions is the client configuration plus the startup backoff.
type ConnectOptions struct {
	Client  redis.Options
	Backoff Backoff
}

func (o ConnectOptions) validate() error {
	var errs []error
	if o.Client.Addr == "" {
		errs = append(errs, errors.New("address is empty"))
	}
	for _, d := range []struct {
		name string
		val  time.Duration
	}{
		{"initial backoff", o.Backoff.Initial},
		{"max backoff", o.Backoff.Max},
		{"total backoff", o.Backoff.Total},
		{"ping timeout", o.Backoff.Ping},
	} {
		if d.val <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", d.name, d.val))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, errors.Join(errs...))
	}
	return nil
}

// Connect builds a client and pings it until the server answers, the
// backoff total elapses or ctx ends. The client is closed on failure.
func Connect(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	client := redis.NewClient(&opts.Client)
	log = log.With(logger.String("addr", opts.Client.Addr))

	if err := waitReady(ctx, client, opts.Backoff, log); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func waitReady(ctx context.Context, client *redis.Client, b Backoff, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, b.Total)
	defer cancel()

	log.Info("connecting to redis", logger.Duration("timeout", b.Total))

	start := time.Now()
	wait := b.Initial
	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, b.Ping)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			log.Info("connected to redis",
				logger.Int("attempts", attempt),
				logger.Duration("elapsed", time.Since(start)))
			return nil
		}

		select {
		case <-ctx.Done():
			log.Error("redis unavailable, giving up",
				logger.Int("attempts", attempt),
				logger.Error(err))
			return fmt.Errorf("redis unavailable at %s after %d attempts: %w",
				client.Options().Addr, attempt, err)
		case <-time.After(wait):
		}

		log.Warn("redis not ready, retrying",
			logger.Int("attempt", attempt),
			logger.Duration("waited", wait),
			logger.Error(err))
		wait = min(wait*2, b.Max)
	}
}
