package edgedb

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// QueryStats holds running counters for queries a Client builds and
// executes, adapted from the transport layer's own query statistics
// so callers instrumenting the query construction core get the same
// shape of snapshot.
type QueryStats struct {
	TotalBuilds    atomic.Int64
	TotalExecs     atomic.Int64
	TotalDuration  atomic.Int64 // nanoseconds, build+execute combined
	SlowBuilds     atomic.Int64
	ConstructErrors atomic.Int64
	ExecErrors     atomic.Int64
}

// Stats returns a point-in-time snapshot.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalBuilds:     s.TotalBuilds.Load(),
		TotalExecs:      s.TotalExecs.Load(),
		TotalDuration:   time.Duration(s.TotalDuration.Load()),
		SlowBuilds:      s.SlowBuilds.Load(),
		ConstructErrors: s.ConstructErrors.Load(),
		ExecErrors:      s.ExecErrors.Load(),
	}
}

// Reset zeroes every counter.
func (s *QueryStats) Reset() {
	s.TotalBuilds.Store(0)
	s.TotalExecs.Store(0)
	s.TotalDuration.Store(0)
	s.SlowBuilds.Store(0)
	s.ConstructErrors.Store(0)
	s.ExecErrors.Store(0)
}

// StatsSnapshot is a copy of QueryStats safe to read without races.
type StatsSnapshot struct {
	TotalBuilds     int64
	TotalExecs      int64
	TotalDuration   time.Duration
	SlowBuilds      int64
	ConstructErrors int64
	ExecErrors      int64
}

// AvgDuration returns the average combined build+execute duration.
func (s StatsSnapshot) AvgDuration() time.Duration {
	if s.TotalExecs == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.TotalExecs)
}

func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"builds=%d execs=%d duration=%s avg=%s slow=%d constructErrors=%d execErrors=%d",
		s.TotalBuilds, s.TotalExecs, s.TotalDuration, s.AvgDuration(), s.SlowBuilds, s.ConstructErrors, s.ExecErrors,
	)
}

// SlowBuildHook is called whenever a Build+Execute round trip exceeds
// the configured slow threshold.
type SlowBuildHook func(ctx context.Context, query string, duration time.Duration)

// StatsOption configures a Client's statistics collection.
type StatsOption func(*Client)

// WithSlowThreshold sets the duration above which a build+execute
// round trip counts as slow. The default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(c *Client) { c.slowThreshold = d }
}

// WithSlowBuildHook installs a callback invoked on every slow round
// trip, in addition to incrementing SlowBuilds.
func WithSlowBuildHook(hook SlowBuildHook) StatsOption {
	return func(c *Client) { c.slowHook = hook }
}

// WithSlowBuildLog logs slow round trips via log/slog instead of a
// custom hook.
func WithSlowBuildLog() StatsOption {
	return WithSlowBuildHook(func(_ context.Context, query string, duration time.Duration) {
		slog.Warn("slow edgeql build+execute", "duration", duration, "query", query)
	})
}

// WithResultCache installs rc as the Client's result cache for
// IOFormatJSON, non-modifying queries, with entries expiring after ttl
// (0 means no expiry).
func WithResultCache(rc ResultCache, ttl time.Duration) StatsOption {
	return func(c *Client) {
		c.resultCache = rc
		c.resultTTL = ttl
	}
}

func (c *Client) recordBuild(ctx context.Context, query string, start time.Time, buildErr, execErr error) {
	duration := time.Since(start)
	c.stats.TotalBuilds.Add(1)
	if buildErr == nil {
		c.stats.TotalExecs.Add(1)
	}
	c.stats.TotalDuration.Add(int64(duration))
	if buildErr != nil {
		c.stats.ConstructErrors.Add(1)
	}
	if execErr != nil {
		c.stats.ExecErrors.Add(1)
	}

	c.mu.RLock()
	threshold := c.slowThreshold
	hook := c.slowHook
	c.mu.RUnlock()

	if duration > threshold {
		c.stats.SlowBuilds.Add(1)
		if hook != nil {
			hook(ctx, query, duration)
		}
	}
}
