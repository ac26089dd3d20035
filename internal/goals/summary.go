package goals

import (
	"github.com/theirongolddev/moneytree/internal/model"
	"github.com/theirongolddev/moneytree/internal/stage"
)

// Summary aggregates every tree in a snapshot.
type Summary struct {
	Goals       int
	Completed   int // trees at or past their target
	TotalSaved  float64
	TotalTarget float64
	Percent     float64
	ByStage     map[stage.Stage]int
}

// Summarize computes portfolio totals for st.
func Summarize(st model.AppState) Summary {
	sum := Summary{ByStage: make(map[stage.Stage]int, len(stage.All()))}
	for _, g := range st.Trees {
		sum.Goals++
		sum.TotalSaved += g.CurrentAmount
		sum.TotalTarget += g.GoalAmount
		if g.GoalAmount > 0 && g.CurrentAmount >= g.GoalAmount {
			sum.Completed++
		}
		sum.ByStage[g.Stage().Stage]++
	}
	sum.Percent = stage.Percent(sum.TotalSaved, sum.TotalTarget)
	return sum
}
