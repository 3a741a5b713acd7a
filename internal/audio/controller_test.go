package audio

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingPlayer holds playback open until released, so tests can observe the
// in-flight state deterministically.
type blockingPlayer struct {
	release chan struct{}
	played  int
}

func newBlockingPlayer() *blockingPlayer {
	return &blockingPlayer{release: make(chan struct{})}
}

func (p *blockingPlayer) Play(ctx context.Context, _ Stimulus) error {
	p.played++
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.release:
		return nil
	}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestController_RejectsWhileInFlight(t *testing.T) {
	player := newBlockingPlayer()
	clock := &fakeClock{now: time.UnixMilli(0)}
	c := NewController(player, 3, testLogger()).WithClock(clock.Now)

	done, err := c.Play(context.Background(), Tone(440, time.Second))
	require.NoError(t, err)
	assert.True(t, c.IsPlaying())

	clock.Advance(time.Second)
	_, err = c.Play(context.Background(), Tone(440, time.Second))
	assert.ErrorIs(t, err, ErrPlaybackInFlight)

	close(player.release)
	<-done
	assert.False(t, c.IsPlaying())
	assert.Equal(t, 1, player.played)
}

func TestController_DebounceMeasuredFromStart(t *testing.T) {
	player := newBlockingPlayer()
	close(player.release) // playback completes immediately
	clock := &fakeClock{now: time.UnixMilli(0)}
	c := NewController(player, 5, testLogger()).WithClock(clock.Now)

	done, err := c.Play(context.Background(), Tone(440, time.Millisecond))
	require.NoError(t, err)
	<-done

	// Playback finished, but the debounce window since the previous start
	// has not elapsed yet.
	clock.Advance(200 * time.Millisecond)
	_, err = c.Play(context.Background(), Tone(440, time.Millisecond))
	assert.ErrorIs(t, err, ErrPlaybackThrottled)

	clock.Advance(400 * time.Millisecond)
	done, err = c.Play(context.Background(), Tone(440, time.Millisecond))
	require.NoError(t, err)
	<-done
}

func TestController_ReplayBudget(t *testing.T) {
	player := newBlockingPlayer()
	close(player.release)
	clock := &fakeClock{now: time.UnixMilli(0)}
	c := NewController(player, 2, testLogger()).WithClock(clock.Now)

	assert.Equal(t, 2, c.ReplaysRemaining())

	for i := 0; i < 2; i++ {
		done, err := c.Play(context.Background(), Tone(440, time.Millisecond))
		require.NoError(t, err)
		<-done
		clock.Advance(time.Second)
	}

	assert.Equal(t, 0, c.ReplaysRemaining())
	_, err := c.Play(context.Background(), Tone(440, time.Millisecond))
	assert.ErrorIs(t, err, ErrReplaysExhausted)

	// Navigating to a new item restores the allotment.
	c.ResetReplays(3)
	assert.Equal(t, 3, c.ReplaysRemaining())
	done, err := c.Play(context.Background(), Tone(440, time.Millisecond))
	require.NoError(t, err)
	<-done
}

func TestStimulusDuration(t *testing.T) {
	assert.Equal(t, 2*time.Second, Tone(440, 2*time.Second).Duration())
	assert.Equal(t, 1800*time.Millisecond, Sequence([]float64{261.63, 329.63, 392}, 500*time.Millisecond).Duration())
	assert.Equal(t, 2*time.Second, Rhythm([]int{1, 0, 1, 1}, 120).Duration())
}

func TestParseRhythmPattern(t *testing.T) {
	beats, err := ParseRhythmPattern("X-X-")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1, 0}, beats)

	_, err = ParseRhythmPattern("X?X")
	assert.Error(t, err)
}

func TestDigitFrequencies(t *testing.T) {
	assert.Equal(t, []float64{600, 750, 500}, DigitFrequencies([]int{4, 7, 2}))
}
