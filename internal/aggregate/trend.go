package aggregate

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/insightdelivered/ministry-roster/internal/models"
)

// Granularity is the bucket size of a trend.
type Granularity string

const (
	ByYear    Granularity = "year"
	ByQuarter Granularity = "quarter"
	ByMonth   Granularity = "month"
)

// ParseGranularity validates a granularity name. "" means ByMonth.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case "":
		return ByMonth, nil
	case ByYear, ByQuarter, ByMonth:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("granularity must be one of year|quarter|month, got %q", s)
}

// PeriodCount is one bucket of a trend.
type PeriodCount struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// Period returns the bucket label of a YYYY-MM-DD date: "2025",
// "2025-Q1" or "2025-01".
func (g Granularity) Period(date string) string {
	switch g {
	case ByYear:
		return date[:4]
	case ByQuarter:
		month, _ := strconv.Atoi(date[5:7])
		return fmt.Sprintf("%s-Q%d", date[:4], (month-1)/3+1)
	default:
		return date[:7]
	}
}

// PeriodCounts counts services per period, in period order. Records with
// a non-canonical date are left out.
func PeriodCounts(records []models.ServiceRecord, g Granularity) []PeriodCount {
	return bucket(records, g, func(models.ServiceRecord) int { return 1 })
}

// VolunteerTrend counts a person's media assignments per period. Serving
// two roles on one Sunday counts twice.
func VolunteerTrend(records []models.ServiceRecord, person string, g Granularity) []PeriodCount {
	return bucket(records, g, func(r models.ServiceRecord) int {
		n := 0
		for _, role := range models.MediaRoles {
			if r.Value(role) == person {
				n++
			}
		}
		return n
	})
}

// Volunteers lists everyone holding a media role, sorted by name.
func Volunteers(records []models.ServiceRecord) []string {
	dist := Distribution(records)
	people := make([]string, 0, len(dist))
	for p := range dist {
		people = append(people, p)
	}
	sort.Strings(people)
	return people
}

func bucket(records []models.ServiceRecord, g Granularity, weight func(models.ServiceRecord) int) []PeriodCount {
	counts := make(map[string]int)
	for _, r := range records {
		if !models.IsCanonicalDate(r.Date) {
			continue
		}
		if w := weight(r); w > 0 {
			counts[g.Period(r.Date)] += w
		}
	}
	out := make([]PeriodCount, 0, len(counts))
	for p, c := range counts {
		out = append(out, PeriodCount{Period: p, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// RolePeriodCount is how often one volunteer held one role in a period.
type RolePeriodCount struct {
	Period string       `json:"period"`
	Role   models.Field `json:"role"`
	Count  int          `json:"count"`
}

// VolunteerRoles breaks a person's assignments down by role and period,
// ordered by period and then by media role.
func VolunteerRoles(records []models.ServiceRecord, person string, g Granularity) []RolePeriodCount {
	counts := make(map[string]*models.RoleCounts)
	for _, r := range records {
		if !models.IsCanonicalDate(r.Date) {
			continue
		}
		for _, role := range models.MediaRoles {
			if r.Value(role) != person {
				continue
			}
			p := g.Period(r.Date)
			if counts[p] == nil {
				counts[p] = &models.RoleCounts{}
			}
			counts[p].Add(role)
		}
	}

	periods := make([]string, 0, len(counts))
	for p := range counts {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	out := make([]RolePeriodCount, 0)
	for _, p := range periods {
		for _, role := range models.MediaRoles {
			if n := counts[p].Get(role); n > 0 {
				out = append(out, RolePeriodCount{Period: p, Role: role, Count: n})
			}
		}
	}
	return out
}

// VolunteerActivity summarizes one volunteer over a window of services.
type VolunteerActivity struct {
	Volunteer   string         `json:"volunteer"`
	Assignments int            `json:"assignments"`
	RoleCount   int            `json:"roleCount"`
	FirstDate   string         `json:"firstDate"`
	LastDate    string         `json:"lastDate"`
	Roles       []models.Field `json:"roles"`
}

// Activity summarizes every volunteer of records, busiest first and then
// by name. Records with a non-canonical date are left out.
func Activity(records []models.ServiceRecord) []VolunteerActivity {
	byName := make(map[string]*VolunteerActivity)
	roles := make(map[string]*models.RoleCounts)
	for _, r := range records {
		if !models.IsCanonicalDate(r.Date) {
			continue
		}
		for _, role := range models.MediaRoles {
			name := r.Value(role)
			if name == "" {
				continue
			}
			a := byName[name]
			if a == nil {
				a = &VolunteerActivity{Volunteer: name, FirstDate: r.Date, LastDate: r.Date}
				byName[name] = a
				roles[name] = &models.RoleCounts{}
			}
			a.Assignments++
			roles[name].Add(role)
			if r.Date < a.FirstDate {
				a.FirstDate = r.Date
			}
			if r.Date > a.LastDate {
				a.LastDate = r.Date
			}
		}
	}

	out := make([]VolunteerActivity, 0, len(byName))
	for name, a := range byName {
		a.Roles = []models.Field{}
		for _, role := range models.MediaRoles {
			if roles[name].Get(role) > 0 {
				a.Roles = append(a.Roles, role)
			}
		}
		a.RoleCount = len(a.Roles)
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Assignments != out[j].Assignments {
			return out[i].Assignments > out[j].Assignments
		}
		return out[i].Volunteer < out[j].Volunteer
	})
	return out
}

// VolunteerCount is the number of distinct volunteers serving in a period.
type VolunteerCount struct {
	Period     string `json:"period"`
	Volunteers int    `json:"volunteers"`
}

// VolunteerCounts counts distinct media volunteers per period.
func VolunteerCounts(records []models.ServiceRecord, g Granularity) []VolunteerCount {
	active := participation(records, g)
	out := make([]VolunteerCount, 0, len(active.periods))
	for _, p := range active.periods {
		out = append(out, VolunteerCount{Period: p, Volunteers: len(active.people[p])})
	}
	return out
}

// Turnover is the change in the volunteer team from one period to the next.
// Joined lists people serving for the first time. Left lists people whose
// last period was the previous one, so the newest period never has leavers
// until a later period is seen.
type Turnover struct {
	Period string   `json:"period"`
	Active int      `json:"active"`
	Joined []string `json:"joined"`
	Left   []string `json:"left"`
}

// JoinLeave reports the volunteers joining and leaving in each period.
// Periods without services are skipped.
func JoinLeave(records []models.ServiceRecord, g Granularity) []Turnover {
	active := participation(records, g)

	first := make(map[string]string)
	last := make(map[string]string)
	for _, p := range active.periods {
		for name := range active.people[p] {
			if _, ok := first[name]; !ok {
				first[name] = p
			}
			last[name] = p
		}
	}

	out := make([]Turnover, 0, len(active.periods))
	for i, p := range active.periods {
		t := Turnover{Period: p, Active: len(active.people[p]), Joined: []string{}, Left: []string{}}
		for name := range active.people[p] {
			if first[name] == p {
				t.Joined = append(t.Joined, name)
			}
		}
		if i > 0 {
			prev := active.periods[i-1]
			for name := range active.people[prev] {
				if last[name] == prev {
					t.Left = append(t.Left, name)
				}
			}
		}
		sort.Strings(t.Joined)
		sort.Strings(t.Left)
		out = append(out, t)
	}
	return out
}

type periodPeople struct {
	periods []string
	people  map[string]map[string]bool
}

// participation groups the media volunteers of canonical-dated records by
// period, with the periods in order.
func participation(records []models.ServiceRecord, g Granularity) periodPeople {
	pp := periodPeople{people: make(map[string]map[string]bool)}
	for _, r := range records {
		if !models.IsCanonicalDate(r.Date) {
			continue
		}
		p := g.Period(r.Date)
		for _, role := range models.MediaRoles {
			name := r.Value(role)
			if name == "" {
				continue
			}
			if pp.people[p] == nil {
				pp.people[p] = make(map[string]bool)
				pp.periods = append(pp.periods, p)
			}
			pp.people[p][name] = true
		}
	}
	sort.Strings(pp.periods)
	return pp
}
