package carousel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarousel_NextWraps(t *testing.T) {
	t.Parallel()

	c := New(DefaultBanners, 0)
	assert.Equal(t, DefaultInterval, c.Interval())

	idx, banner := c.Current()
	assert.Equal(t, 0, idx)
	assert.Equal(t, DefaultBanners[0], banner)

	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 2, c.Next())
	assert.Equal(t, 0, c.Next())
}

func TestCarousel_Empty(t *testing.T) {
	t.Parallel()

	c := New(nil, time.Second)
	assert.Equal(t, 0, c.Next())
	idx, banner := c.Current()
	assert.Equal(t, 0, idx)
	assert.Empty(t, banner)
}

func TestCarousel_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	c := New([]string{"a", "b"}, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		idx, _ := c.Current()
		return idx == 1
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
