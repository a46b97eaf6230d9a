package magic

import "alchemist/internal/mathutil"

// CooldownTracker keeps per-spell cast cooldowns keyed by effect id.
type CooldownTracker struct {
	startedAt  map[string]float64
	durationMs map[string]float64
}

func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{
		startedAt:  make(map[string]float64),
		durationMs: make(map[string]float64),
	}
}

// Start begins a cooldown of the given length in seconds.
func (c *CooldownTracker) Start(id string, seconds, now float64) {
	c.startedAt[id] = now
	c.durationMs[id] = seconds * 1000
}

// IsReady reports whether the spell can be cast again.
func (c *CooldownTracker) IsReady(id string, now float64) bool {
	started, ok := c.startedAt[id]
	if !ok {
		return true
	}
	return now-started >= c.durationMs[id]
}

// Remaining returns the seconds left on the cooldown, 0 when ready.
func (c *CooldownTracker) Remaining(id string, now float64) float64 {
	started, ok := c.startedAt[id]
	if !ok {
		return 0
	}
	left := c.durationMs[id] - (now - started)
	if left <= 0 {
		return 0
	}
	return left / 1000
}

// Progress returns cooldown completion in [0, 1], 1 when ready. The HUD
// uses this for the recharge bar.
func (c *CooldownTracker) Progress(id string, now float64) float64 {
	started, ok := c.startedAt[id]
	if !ok || c.durationMs[id] <= 0 {
		return 1
	}
	return mathutil.Clamp((now-started)/c.durationMs[id], 0, 1)
}
