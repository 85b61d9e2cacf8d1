package carousel

import (
	"context"
	"sync"
	"time"
)

const DefaultInterval = 3 * time.Second

var DefaultBanners = []string{
	"🔥 Huge Discounts on Electronics!",
	"🎉 Buy 1 Get 1 Free on Clothing!",
	"🚚 Free Shipping on Orders Above ₹2,000",
}

// Carousel rotates an index over a fixed list of banners.
type Carousel struct {
	mu       sync.RWMutex
	banners  []string
	index    int
	interval time.Duration
}

func New(banners []string, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = DefaultInterval
	}
	b := make([]string, len(banners))
	copy(b, banners)
	return &Carousel{banners: b, interval: interval}
}

// Next advances to the following banner, wrapping to 0 after the last one.
func (c *Carousel) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.banners) == 0 {
		return 0
	}
	if c.index == len(c.banners)-1 {
		c.index = 0
	} else {
		c.index++
	}
	return c.index
}

func (c *Carousel) Current() (int, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.banners) == 0 {
		return 0, ""
	}
	return c.index, c.banners[c.index]
}

func (c *Carousel) Banners() []string {
	out := make([]string, len(c.banners))
	copy(out, c.banners)
	return out
}

func (c *Carousel) Interval() time.Duration {
	return c.interval
}

// Run ticks Next until ctx is done.
func (c *Carousel) Run(ctx context.Context) {
	t := time.NewTicker(c.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Next()
		}
	}
}
