package aggregate

import (
	"fmt"
	"time"

	"github.com/insightdelivered/ministry-roster/internal/filter"
	"github.com/insightdelivered/ministry-roster/internal/models"
)

// View selects which family of charts is computed.
type View string

const (
	ViewMedia     View = "media"
	ViewPreaching View = "preaching"
)

// ParseView validates a view name. "" means ViewMedia.
func ParseView(s string) (View, error) {
	switch View(s) {
	case "":
		return ViewMedia, nil
	case ViewMedia, ViewPreaching:
		return View(s), nil
	}
	return "", fmt.Errorf("view must be media or preaching, got %q", s)
}

// Selection is what the caller asks to see. Now anchors the Sunday cutoff.
type Selection struct {
	Year string
	View View
	Now  time.Time
}

// Report is a fully computed view, ready for a chart renderer.
type Report struct {
	Year           string                 `json:"year"`
	View           View                   `json:"view"`
	Cutoff         string                 `json:"cutoff,omitempty"`
	Empty          bool                   `json:"empty"`
	AvailableYears []string               `json:"availableYears,omitempty"`
	Summary        Summary                `json:"summary"`
	Media          *MediaStats            `json:"mediaStatistics,omitempty"`
	Preaching      *PreachingStats        `json:"preachingStatistics,omitempty"`
	Records        []models.ServiceRecord `json:"-"`
}

// BuildView filters records by year, drops services after the last
// completed Sunday (skipped when every year is selected) and aggregates the
// chosen view. A year with no records yields Empty with the years that do
// have data.
func BuildView(records []models.ServiceRecord, sel Selection) Report {
	rep := Report{Year: sel.Year, View: sel.View}

	filtered := filter.ByYear(records, sel.Year)
	if sel.Year != filter.AllYears {
		rep.Cutoff = filter.LastSunday(sel.Now)
		filtered = filter.BeforeCutoff(filtered, rep.Cutoff)
	}
	rep.Records = filtered

	if len(filtered) == 0 {
		rep.Empty = true
		rep.AvailableYears = filter.AvailableYears(records)
	}

	media := Media(filtered)
	switch sel.View {
	case ViewPreaching:
		p := Preaching(filtered, CountEmpty)
		rep.Preaching = &p
	default:
		rep.View = ViewMedia
		rep.Media = &media
	}
	rep.Summary = Summarize(len(records), filtered, media.MediaRoleDistribution, rep.Cutoff)
	return rep
}

// TeamReport is recent volunteer activity up to Now, plus team size and
// turnover per period of the selected year.
type TeamReport struct {
	Year          string              `json:"year"`
	Granularity   Granularity         `json:"granularity"`
	Weeks         int                 `json:"weeks"`
	RecentWeeks   []VolunteerActivity `json:"recentWeeks"`
	RecentQuarter []VolunteerActivity `json:"recentQuarter"`
	Counts        []VolunteerCount    `json:"counts"`
	JoinLeave     []Turnover          `json:"joinLeave"`
}

// BuildTeam computes a TeamReport. The recent windows end on the calendar
// day of sel.Now and ignore sel.Year; the per-period figures follow the
// same year filter and Sunday cutoff as BuildView.
func BuildTeam(records []models.ServiceRecord, sel Selection, g Granularity, weeks int) TeamReport {
	selected := BuildView(records, sel).Records
	weeksFrom, weeksTo := filter.WeeksBack(sel.Now, weeks)
	quarterFrom, quarterTo := filter.QuarterBack(sel.Now)

	return TeamReport{
		Year:          sel.Year,
		Granularity:   g,
		Weeks:         weeks,
		RecentWeeks:   Activity(filter.Between(records, weeksFrom, weeksTo)),
		RecentQuarter: Activity(filter.Between(records, quarterFrom, quarterTo)),
		Counts:        VolunteerCounts(selected, g),
		JoinLeave:     JoinLeave(selected, g),
	}
}
