package menu

import (
	"strconv"
	"strings"
	"time"
)

const (
	// InitialScrollDuration is used for the scroll that follows a route match.
	InitialScrollDuration = 600 * time.Millisecond
	// DefaultFrameInterval is the delay between animation frames.
	DefaultFrameInterval = 20 * time.Millisecond
	// CenterRatio positions the active link 40% down the panel.
	CenterRatio = 0.4
)

// ScrollPlan is the eased scroll the side menu runs after a route match.
// The browser measures the link and the panel; the plan fixes everything
// else so every page scrolls the same way.
type ScrollPlan struct {
	Duration time.Duration
	Frame    time.Duration
	// Curve holds the share of the distance covered after each frame. It
	// ends at 1.
	Curve []float64
}

// NewScrollPlan eases over duration in steps of frame (DefaultFrameInterval
// when frame <= 0). A non-positive duration jumps in a single frame.
func NewScrollPlan(duration, frame time.Duration) ScrollPlan {
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	p := ScrollPlan{Duration: duration, Frame: frame}
	if duration <= 0 {
		p.Curve = []float64{1}
		return p
	}

	var elapsed time.Duration
	for elapsed < duration {
		elapsed += frame
		if elapsed > duration {
			elapsed = duration
		}
		p.Curve = append(p.Curve, easeInOutQuad(elapsed.Seconds(), 0, 1, duration.Seconds()))
	}
	return p
}

// InitialScrollPlan is the plan for the scroll that follows a route match.
func InitialScrollPlan() ScrollPlan {
	return NewScrollPlan(InitialScrollDuration, DefaultFrameInterval)
}

// Target is the panel scroll offset that puts a link at elementTop near the
// middle of a panel panelHeight tall.
func (p ScrollPlan) Target(elementTop, panelHeight float64) float64 {
	return elementTop - panelHeight*CenterRatio
}

// Position is the scroll offset after frame i of a move from start to target.
func (p ScrollPlan) Position(start, target float64, i int) float64 {
	if i < 0 {
		return start
	}
	if i >= len(p.Curve) {
		return target
	}
	return start + (target-start)*p.Curve[i]
}

// EncodeCurve renders the curve as a comma separated list for the page.
func (p ScrollPlan) EncodeCurve() string {
	parts := make([]string, len(p.Curve))
	for i, v := range p.Curve {
		parts[i] = strconv.FormatFloat(v, 'f', 4, 64)
	}
	return strings.Join(parts, ",")
}

// easeInOutQuad returns the eased position at time t of a move from b by c
// lasting d.
func easeInOutQuad(t, b, c, d float64) float64 {
	t /= d / 2
	if t < 1 {
		return c/2*t*t + b
	}
	t--
	return -c/2*(t*(t-2)-1) + b
}
