// Package filter selects the subset of a roster that statistics are computed
// over: a calendar year and the completed-Sunday cutoff.
package filter

import (
	"time"

	"github.com/insightdelivered/ministry-roster/internal/models"
)

// AllYears selects every record regardless of year.
const AllYears = "all"

const dateLayout = "2006-01-02"

// LastSunday returns the most recent completed Sunday relative to now, in
// now's location, as YYYY-MM-DD. On a Sunday it returns the previous
// Sunday: that day's roster is not final until Monday.
func LastSunday(now time.Time) string {
	days := int(now.Weekday())
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, -days).Format(dateLayout)
}

// BeforeCutoff keeps records dated on or before cutoff. Dates compare as
// strings, which orders correctly for YYYY-MM-DD.
func BeforeCutoff(records []models.ServiceRecord, cutoff string) []models.ServiceRecord {
	out := make([]models.ServiceRecord, 0, len(records))
	for _, r := range records {
		if r.Date <= cutoff {
			out = append(out, r)
		}
	}
	return out
}

// ByYear keeps records whose date starts with year. AllYears returns
// records unchanged. Records without a date never match a specific year.
// An empty result is not an error.
func ByYear(records []models.ServiceRecord, year string) []models.ServiceRecord {
	if year == AllYears {
		return records
	}
	out := make([]models.ServiceRecord, 0, len(records))
	for _, r := range records {
		if r.Date == "" {
			continue
		}
		if yearOf(r.Date) == year {
			out = append(out, r)
		}
	}
	return out
}

// AvailableYears lists the distinct years present, in first-seen order.
// Dates that do not start with four digits are skipped.
func AvailableYears(records []models.ServiceRecord) []string {
	seen := make(map[string]bool)
	var years []string
	for _, r := range records {
		y := yearOf(r.Date)
		if y == "" || !ValidYear(y) || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}
	return years
}

// ValidYear reports whether s is AllYears or a four-digit year.
func ValidYear(s string) bool {
	if s == AllYears {
		return true
	}
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func yearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// YearOrLatest returns year when some record falls in it, otherwise the
// newest year with data. AllYears, and a roster without dated records,
// return year unchanged.
func YearOrLatest(records []models.ServiceRecord, year string) string {
	if year == AllYears {
		return year
	}
	latest := ""
	for _, y := range AvailableYears(records) {
		if y == year {
			return year
		}
		if y > latest {
			latest = y
		}
	}
	if latest == "" {
		return year
	}
	return latest
}

// Between keeps records with a canonical date in [from, to].
func Between(records []models.ServiceRecord, from, to string) []models.ServiceRecord {
	out := make([]models.ServiceRecord, 0, len(records))
	for _, r := range records {
		if models.IsCanonicalDate(r.Date) && r.Date >= from && r.Date <= to {
			out = append(out, r)
		}
	}
	return out
}

// WeeksBack is the window of the n weeks ending on now's calendar day.
func WeeksBack(now time.Time, n int) (from, to string) {
	return now.AddDate(0, 0, -7*n).Format(dateLayout), now.Format(dateLayout)
}

// QuarterBack is the window of the three months ending on now's calendar day.
func QuarterBack(now time.Time) (from, to string) {
	return now.AddDate(0, -3, 0).Format(dateLayout), now.Format(dateLayout)
}
