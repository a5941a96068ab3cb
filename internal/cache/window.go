// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// window.go provides Valkey-backed fixed-window hit counters. Every
// instance of the API shares the same counters, so a limit holds across
// replicas.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// windowKeyPrefix is the Valkey key prefix for rate limit counters.
	windowKeyPrefix = "ratelimit:"

	// DefaultWindow is used when a zero window is configured.
	DefaultWindow = time.Minute
)

// WindowCounter counts hits per key in fixed time windows.
type WindowCounter struct {
	client *redis.Client
	window time.Duration
	now    func() time.Time
}

// NewWindowCounter creates a counter backed by the given Valkey client.
func NewWindowCounter(client *redis.Client, window time.Duration) *WindowCounter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &WindowCounter{client: client, window: window, now: time.Now}
}

// Window returns the configured window length.
func (c *WindowCounter) Window() time.Duration {
	return c.window
}

// Incr records one hit for key in the current window and returns the number
// of hits so far, including this one. The counter key expires with its
// window.
func (c *WindowCounter) Incr(ctx context.Context, key string) (int64, error) {
	k := WindowKey(key, c.now(), c.window)

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, c.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("valkey incr %s: %w", k, err)
	}
	return incr.Val(), nil
}

// WindowKey returns the counter key for key in the window containing t.
func WindowKey(key string, t time.Time, window time.Duration) string {
	return fmt.Sprintf("%s%s:%d", windowKeyPrefix, key, t.UnixNano()/int64(window))
}
