package readiness

import "sort"

// Aggregate summarises records. tasks orders the gap list and breaks ties
// for MostCommonGap (earliest task wins). Over an empty sequence it returns
// the zero Summary with empty, non-nil collections.
func Aggregate(records []Record, tasks Tasks) Summary {
	s := Summary{
		PendingFrequency: map[string]int{},
		Gaps:             []TaskCount{},
	}
	if len(records) == 0 {
		return s
	}

	total := 0
	countries := Set{}
	for _, r := range records {
		total += r.Progress
		countries.Add(r.Country)
		for _, task := range r.Pending {
			s.PendingFrequency[task]++
		}
	}
	s.Records = len(records)
	s.MeanProgress = float64(total) / float64(len(records))
	s.ActiveRegions = countries.Len()

	for _, task := range gapOrder(s.PendingFrequency, tasks) {
		n := s.PendingFrequency[task]
		s.Gaps = append(s.Gaps, TaskCount{
			Task:  task,
			Count: n,
			Share: float64(n) / float64(len(records)),
		})
		if s.MostCommonGap == "" || n > s.PendingFrequency[s.MostCommonGap] {
			s.MostCommonGap = task
		}
	}
	return s
}

// gapOrder lists pending tasks in checklist order; names unknown to the
// checklist follow in lexical order.
func gapOrder(freq map[string]int, tasks Tasks) []string {
	out := make([]string, 0, len(freq))
	known := Set{}
	for _, t := range tasks {
		if freq[t] > 0 {
			out = append(out, t)
			known.Add(t)
		}
	}
	extra := make([]string, 0)
	for t := range freq {
		if !known.Has(t) {
			extra = append(extra, t)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// TeamAverages returns mean progress per team, sorted by team.
func TeamAverages(records []Record) []GroupAverage {
	return groupAverages(records, func(r Record) string { return r.Team })
}

// CountryAverages returns mean progress per country, sorted by country.
func CountryAverages(records []Record) []GroupAverage {
	return groupAverages(records, func(r Record) string { return r.Country })
}

func groupAverages(records []Record, key func(Record) string) []GroupAverage {
	sums := map[string]int{}
	counts := map[string]int{}
	for _, r := range records {
		k := key(r)
		sums[k] += r.Progress
		counts[k]++
	}
	out := make([]GroupAverage, 0, len(counts))
	for k, n := range counts {
		out = append(out, GroupAverage{
			Name:         k,
			Records:      n,
			MeanProgress: float64(sums[k]) / float64(n),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
