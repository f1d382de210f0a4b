package batch

import "sort"

// orderedCollector buffers Results and replays them sorted by Index, so a
// batch run's report is reproducible regardless of which worker finished
// which file first.
type orderedCollector struct {
	results []Result
}

func newOrderedCollector(n int) *orderedCollector {
	return &orderedCollector{results: make([]Result, 0, n)}
}

func (c *orderedCollector) add(r Result) {
	c.results = append(c.results, r)
}

func (c *orderedCollector) ordered() []Result {
	sort.Slice(c.results, func(i, j int) bool {
		return c.results[i].Index < c.results[j].Index
	})
	return c.results
}

// Summary tallies a batch run for reporting.
type Summary struct {
	Succeeded  int
	Failed     int
	InputBytes int64
}

// Summarize reduces a Result slice into a Summary.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			continue
		}
		s.Succeeded++
		s.InputBytes += int64(r.InBytes)
	}
	return s
}
