// Package curve provides easing curves mapping a progress value in [0,1]
// onto an eased value in [0,1].
package curve

import (
	"github.com/tanema/gween/ease"
)

// Func maps progress t onto an eased value. Results are clamped to [0,1].
type Func func(t float64) float64

// wrap adapts a gween easing function (time, begin, change, duration) to a
// normalized curve over a unit interval.
func wrap(fn ease.TweenFunc) Func {
	return func(t float64) float64 {
		return Clean(float64(fn(float32(Clean(t)), 0, 1, 1)))
	}
}

var (
	Linear     = wrap(ease.Linear)
	InQuad     = wrap(ease.InQuad)
	OutQuad    = wrap(ease.OutQuad)
	InOutQuad  = wrap(ease.InOutQuad)
	InCubic    = wrap(ease.InCubic)
	OutCubic   = wrap(ease.OutCubic)
	InOutCubic = wrap(ease.InOutCubic)
	InQuart    = wrap(ease.InQuart)
	OutQuart   = wrap(ease.OutQuart)
	InOutQuart = wrap(ease.InOutQuart)
	InQuint    = wrap(ease.InQuint)
	OutQuint   = wrap(ease.OutQuint)
	InOutQuint = wrap(ease.InOutQuint)
)

// byName is used by config to resolve curve names.
var byName = map[string]Func{
	"linear":     Linear,
	"inQuad":     InQuad,
	"outQuad":    OutQuad,
	"inOutQuad":  InOutQuad,
	"inCubic":    InCubic,
	"outCubic":   OutCubic,
	"inOutCubic": InOutCubic,
	"inQuart":    InQuart,
	"outQuart":   OutQuart,
	"inOutQuart": InOutQuart,
	"inQuint":    InQuint,
	"outQuint":   OutQuint,
	"inOutQuint": InOutQuint,
}

// ByName returns the curve registered under name.
func ByName(name string) (Func, bool) {
	fn, ok := byName[name]
	return fn, ok
}

// Clean clamps t to [0,1].
func Clean(t float64) float64 {
	if t >= 1 {
		return 1
	}
	if t <= 0 {
		return 0
	}
	return t
}
