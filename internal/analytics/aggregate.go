// Package analytics holds the client-side aggregation, filtering and metric
// calculations behind the dashboard views. Every function is a pure function
// of its arguments.
package analytics

import "github.com/stemsi/perfdash/internal/model"

// Group is one partition produced by GroupBy.
type Group[T any] struct {
	Key     string
	Members []T
}

// GroupBy partitions records by key. Groups come back in first-seen key
// order and members keep their input order.
func GroupBy[T any](records []T, key func(T) string) []Group[T] {
	index := make(map[string]int)
	groups := make([]Group[T], 0)

	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k})
		}
		groups[i].Members = append(groups[i].Members, r)
	}

	return groups
}

// SubjectStat is a per-subject summary statistic, unrounded.
type SubjectStat struct {
	Subject string  `json:"subject"`
	Value   float64 `json:"value"`
	Count   int     `json:"count"`
}

// AttendanceBySubject returns the presence rate (0–100) of each subject.
func AttendanceBySubject(records []model.AttendanceRecord) []SubjectStat {
	groups := GroupBy(records, func(r model.AttendanceRecord) string { return r.Subject })

	stats := make([]SubjectStat, 0, len(groups))
	for _, g := range groups {
		present := PresentCount(g.Members)
		stats = append(stats, SubjectStat{
			Subject: g.Key,
			Value:   float64(present) / float64(len(g.Members)) * 100,
			Count:   len(g.Members),
		})
	}
	return stats
}

// ExamsBySubject returns the mean exam percentage of each subject.
func ExamsBySubject(exams []model.ExamRecord) []SubjectStat {
	groups := GroupBy(exams, func(e model.ExamRecord) string { return e.Subject })

	stats := make([]SubjectStat, 0, len(groups))
	for _, g := range groups {
		stats = append(stats, SubjectStat{
			Subject: g.Key,
			Value:   meanPercentage(g.Members),
			Count:   len(g.Members),
		})
	}
	return stats
}

func meanPercentage(exams []model.ExamRecord) float64 {
	if len(exams) == 0 {
		return 0
	}
	var sum float64
	for _, e := range exams {
		sum += e.Percentage()
	}
	return sum / float64(len(exams))
}
