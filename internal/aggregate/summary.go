package aggregate

import (
	"github.com/montanaflynn/stats"

	"github.com/insightdelivered/ministry-roster/internal/models"
)

// Summary describes the record set a set of aggregates was computed from.
type Summary struct {
	TotalServices     int     `json:"totalServices"`
	FilteredServices  int     `json:"filteredServices"`
	FirstDate         string  `json:"firstDate,omitempty"`
	LastDate          string  `json:"lastDate,omitempty"`
	CutoffDate        string  `json:"cutoffDate,omitempty"`
	DateRange         string  `json:"dateRange"`
	TotalMediaMembers int     `json:"totalMediaMembers"`
	MeanAssignments   float64 `json:"meanAssignments"`
	MedianAssignments float64 `json:"medianAssignments"`
	MaxAssignments    int     `json:"maxAssignments"`
}

// Summarize reports counts, the covered date range and how media
// assignments spread across members. total is the size of the unfiltered set.
func Summarize(total int, filtered []models.ServiceRecord, dist models.RoleDistribution, cutoff string) Summary {
	s := Summary{
		TotalServices:     total,
		FilteredServices:  len(filtered),
		CutoffDate:        cutoff,
		TotalMediaMembers: len(dist),
	}

	for _, r := range filtered {
		if !models.IsCanonicalDate(r.Date) {
			continue
		}
		if s.FirstDate == "" || r.Date < s.FirstDate {
			s.FirstDate = r.Date
		}
		if r.Date > s.LastDate {
			s.LastDate = r.Date
		}
	}
	s.DateRange = dateRange(s.FirstDate, s.LastDate, cutoff)

	if len(dist) == 0 {
		return s
	}
	totals := make(stats.Float64Data, 0, len(dist))
	for _, c := range dist {
		totals = append(totals, float64(c.Total))
	}
	if mean, err := totals.Mean(); err == nil {
		s.MeanAssignments, _ = stats.Round(mean, 2)
	}
	if median, err := totals.Median(); err == nil {
		s.MedianAssignments = median
	}
	if max, err := totals.Max(); err == nil {
		s.MaxAssignments = int(max)
	}
	return s
}

func dateRange(first, last, cutoff string) string {
	switch {
	case first == "" && cutoff == "":
		return ""
	case first == "":
		return "through " + cutoff
	case cutoff == "":
		return first + " to " + last
	default:
		return first + " to " + last + " (through " + cutoff + ")"
	}
}
