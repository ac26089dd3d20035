// Package stage maps savings progress to the seven growth stages of a money tree.
package stage

import "math"

// Stage identifies one growth band.
type Stage string

const (
	Seed      Stage = "seed"
	Sprout    Stage = "sprout"
	Seedling  Stage = "seedling"
	Small     Stage = "small"
	Medium    Stage = "medium"
	Flowering Stage = "flowering"
	Fruiting  Stage = "fruiting"
)

// Info describes a growth band over [MinPercent, MaxPercent).
// The last band is closed at 100.
type Info struct {
	Stage      Stage
	Name       string
	Index      int
	MinPercent float64
	MaxPercent float64
}

// Reached reports whether progress has entered this band or passed it.
func (i Info) Reached(percent float64) bool {
	return Clamp(percent) >= i.MinPercent
}

var stages = []Info{
	{Stage: Seed, Name: "Seed", Index: 0, MinPercent: 0, MaxPercent: 5},
	{Stage: Sprout, Name: "Sprout", Index: 1, MinPercent: 5, MaxPercent: 15},
	{Stage: Seedling, Name: "Seedling", Index: 2, MinPercent: 15, MaxPercent: 30},
	{Stage: Small, Name: "Small tree", Index: 3, MinPercent: 30, MaxPercent: 50},
	{Stage: Medium, Name: "Large tree", Index: 4, MinPercent: 50, MaxPercent: 75},
	{Stage: Flowering, Name: "Flowering", Index: 5, MinPercent: 75, MaxPercent: 95},
	{Stage: Fruiting, Name: "Fruiting", Index: 6, MinPercent: 95, MaxPercent: 100},
}

// All returns the stages in ascending order.
func All() []Info {
	out := make([]Info, len(stages))
	copy(out, stages)
	return out
}

// Clamp limits percent to [0, 100]. NaN becomes 0.
func Clamp(percent float64) float64 {
	if math.IsNaN(percent) || percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// Classify returns the stage for a progress percentage.
// Boundary values belong to the higher stage.
func Classify(percent float64) Info {
	p := Clamp(percent)
	for i := len(stages) - 1; i >= 0; i-- {
		if p >= stages[i].MinPercent {
			return stages[i]
		}
	}
	return stages[0]
}

// Percent computes current/goal as a percentage, or 0 when goal is not positive.
// The result is not clamped; a goal can be overfunded.
func Percent(current, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return current / goal * 100
}

// Next returns the band after info, and false when info is the last one.
func Next(info Info) (Info, bool) {
	if info.Index+1 >= len(stages) {
		return Info{}, false
	}
	return stages[info.Index+1], true
}

// ToNext returns how many percentage points remain until the next band.
// It is 0 in the final band.
func ToNext(percent float64) float64 {
	next, ok := Next(Classify(percent))
	if !ok {
		return 0
	}
	return next.MinPercent - Clamp(percent)
}
