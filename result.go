package animefilter

import "github.com/samber/lo"

// NoSeries is the series id of records produced by group level evaluation.
const NoSeries = 0

// GroupResult is one matching group and its ordered series.
type GroupResult struct {
	GroupID   int   `json:"groupID" yaml:"groupID"`
	SeriesIDs []int `json:"seriesIDs" yaml:"seriesIDs"`
}

// Result lists the matching groups in filter order.
type Result struct {
	Groups []GroupResult `json:"groups" yaml:"groups"`
}

// Map returns the result keyed by group id.
func (r *Result) Map() map[int][]int {
	return lo.SliceToMap(r.Groups, func(g GroupResult) (int, []int) {
		return g.GroupID, g.SeriesIDs
	})
}

// GroupIDs lists the matching groups in order.
func (r *Result) GroupIDs() []int {
	return lo.Map(r.Groups, func(g GroupResult, _ int) int { return g.GroupID })
}

// SeriesIDs lists every matching series in order.
func (r *Result) SeriesIDs() []int {
	return lo.FlatMap(r.Groups, func(g GroupResult, _ int) []int { return g.SeriesIDs })
}

// SeriesCount is the number of matching series.
func (r *Result) SeriesCount() int {
	return lo.SumBy(r.Groups, func(g GroupResult) int { return len(g.SeriesIDs) })
}
