// Package audio is the stimulus-playback boundary of the engine. The
// Controller enforces the replay budget, the in-flight gate and the debounce
// window; actual sound production is behind the Player interface and is an
// opaque external capability.
package audio

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrPlaybackInFlight   = errors.New("playback already in progress")
	ErrReplaysExhausted   = errors.New("no replays remaining")
	ErrPlaybackThrottled  = errors.New("playback request debounced")
	ErrStimulusUnplayable = errors.New("stimulus cannot be played")
)

// Player produces audible output for a stimulus and returns when playback has
// finished or ctx is done.
type Player interface {
	Play(ctx context.Context, stimulus Stimulus) error
}

// DebounceWindow is the minimum interval between playback starts, measured
// from the start of the previous playback, not its end.
const DebounceWindow = 500 * time.Millisecond

// Controller is a replay-limited, debounced playback driver. One controller
// serves one item presentation at a time; navigating to a new item resets the
// replay budget via ResetReplays.
type Controller struct {
	player Player
	logger *slog.Logger
	now    func() time.Time

	mu          sync.Mutex
	playing     bool
	replaysLeft int
	lastStart   time.Time
}

// NewController creates a controller with the given replay budget.
func NewController(player Player, maxReplays int, logger *slog.Logger) *Controller {
	return &Controller{
		player:      player,
		logger:      logger,
		now:         time.Now,
		replaysLeft: maxReplays,
	}
}

// WithClock overrides the wall clock, for tests.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

// Play starts playback of the stimulus and returns a channel that is closed
// when playback completes. Requests are rejected while a playback is in
// flight, when the replay budget is exhausted, or within the debounce window
// of the previous start. Callers that navigate away simply stop listening on
// the channel; the underlying audio is not forcibly stopped.
func (c *Controller) Play(ctx context.Context, stimulus Stimulus) (<-chan struct{}, error) {
	c.mu.Lock()
	if c.playing {
		c.mu.Unlock()
		return nil, ErrPlaybackInFlight
	}
	if c.replaysLeft <= 0 {
		c.mu.Unlock()
		return nil, ErrReplaysExhausted
	}
	now := c.now()
	if !c.lastStart.IsZero() && now.Sub(c.lastStart) < DebounceWindow {
		c.mu.Unlock()
		return nil, ErrPlaybackThrottled
	}

	c.playing = true
	c.replaysLeft--
	c.lastStart = now
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := c.player.Play(ctx, stimulus); err != nil {
			c.logger.Warn("stimulus playback failed",
				"kind", stimulus.Kind,
				"error", err)
		}
		c.mu.Lock()
		c.playing = false
		c.mu.Unlock()
	}()

	return done, nil
}

// IsPlaying reports whether a playback is currently in flight.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// ReplaysRemaining returns the counted-down replay budget, floor 0.
func (c *Controller) ReplaysRemaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.replaysLeft < 0 {
		return 0
	}
	return c.replaysLeft
}

// ResetReplays restores the replay budget, called when the cursor moves to a
// new item so a revisited item starts with its full allotment.
func (c *Controller) ResetReplays(maxReplays int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaysLeft = maxReplays
}

// NopPlayer is a Player that produces no sound and simply waits out the
// stimulus duration. It stands in for the real synthesis layer, which is
// outside the engine's scope.
type NopPlayer struct{}

func (NopPlayer) Play(ctx context.Context, stimulus Stimulus) error {
	d := stimulus.Duration()
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
