package combat

import "alchemist/internal/mathutil"

// FloatingText is one floating feedback number: a damage or heal value
// anchored where it happened, drifting up and fading out.
type FloatingText struct {
	Value      int
	Type       DamageType
	Target     Entity
	X, Y       float64
	StartedAt  float64
	DurationMs float64
}

func (f *FloatingText) Expired(now float64) bool {
	return now-f.StartedAt >= f.DurationMs
}

// Progress returns elapsed lifetime in [0, 1].
func (f *FloatingText) Progress(now float64) float64 {
	if f.DurationMs <= 0 {
		return 1
	}
	return mathutil.Clamp((now-f.StartedAt)/f.DurationMs, 0, 1)
}

// Alpha fades the record out over the second half of its lifetime.
func (f *FloatingText) Alpha(now float64) float64 {
	p := f.Progress(now)
	if p < 0.5 {
		return 1
	}
	return mathutil.Clamp(2*(1-p), 0, 1)
}

// Feedback collects floating text records for the renderer. Read-only for
// consumers; the combat and magic systems append, Update drops expired.
type Feedback struct {
	records    []*FloatingText
	durationMs float64
	riseSpeed  float64
}

func NewFeedback(durationMs, riseSpeed float64) *Feedback {
	return &Feedback{durationMs: durationMs, riseSpeed: riseSpeed}
}

func (fb *Feedback) Add(target Entity, value int, damageType DamageType, now float64) {
	x, y := target.Position()
	fb.records = append(fb.records, &FloatingText{
		Value:      value,
		Type:       damageType,
		Target:     target,
		X:          x,
		Y:          y,
		StartedAt:  now,
		DurationMs: fb.durationMs,
	})
}

// Update drops expired records, compacting in place.
func (fb *Feedback) Update(now float64) {
	writeIdx := 0
	for _, r := range fb.records {
		if r.Expired(now) {
			continue
		}
		fb.records[writeIdx] = r
		writeIdx++
	}
	for i := writeIdx; i < len(fb.records); i++ {
		fb.records[i] = nil
	}
	fb.records = fb.records[:writeIdx]
}

func (fb *Feedback) Records() []*FloatingText {
	return fb.records
}

// RiseOffset returns how far a record has drifted upward, in pixels.
func (fb *Feedback) RiseOffset(f *FloatingText, now float64) float64 {
	return f.Progress(now) * fb.durationMs / 1000 * fb.riseSpeed
}
