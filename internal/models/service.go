package models

import (
	"regexp"
	"sort"
	"strings"
)

// ServiceRecord is one normalized roster row: a dated Sunday gathering and
// the people assigned to it.
type ServiceRecord struct {
	Date          string `json:"date"` // YYYY-MM-DD
	SoundControl  string `json:"soundControl"`
	Director      string `json:"director"`
	ProPresenter  string `json:"proPresenter"`
	MediaUpdate   string `json:"mediaUpdate"`
	Preacher      string `json:"preacher"`
	WorshipLeader string `json:"worshipLeader"`
	Series        string `json:"series"`
	Scripture     string `json:"scripture"`
}

// Field names a canonical ServiceRecord column.
type Field string

const (
	FieldDate          Field = "date"
	FieldSoundControl  Field = "soundControl"
	FieldDirector      Field = "director"
	FieldProPresenter  Field = "proPresenter"
	FieldMediaUpdate   Field = "mediaUpdate"
	FieldPreacher      Field = "preacher"
	FieldWorshipLeader Field = "worshipLeader"
	FieldSeries        Field = "series"
	FieldScripture     Field = "scripture"
	// FieldScriptureBook is derived: the first token of the scripture reference.
	FieldScriptureBook Field = "scriptureBook"
)

// MediaRoles are the four technical-operation roles, in chart order.
var MediaRoles = []Field{FieldSoundControl, FieldDirector, FieldProPresenter, FieldMediaUpdate}

// Value returns the record's value for a canonical field. Unknown fields yield "".
func (r ServiceRecord) Value(f Field) string {
	switch f {
	case FieldDate:
		return r.Date
	case FieldSoundControl:
		return r.SoundControl
	case FieldDirector:
		return r.Director
	case FieldProPresenter:
		return r.ProPresenter
	case FieldMediaUpdate:
		return r.MediaUpdate
	case FieldPreacher:
		return r.Preacher
	case FieldWorshipLeader:
		return r.WorshipLeader
	case FieldSeries:
		return r.Series
	case FieldScripture:
		return r.Scripture
	case FieldScriptureBook:
		return ScriptureBook(r.Scripture)
	}
	return ""
}

// ScriptureBook returns the first whitespace-delimited token of a scripture
// reference ("Matthew 5:33-37" -> "Matthew"), or "" when there is none.
func ScriptureBook(scripture string) string {
	fields := strings.Fields(scripture)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

var canonicalDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsCanonicalDate reports whether s has the fixed-width YYYY-MM-DD shape.
func IsCanonicalDate(s string) bool {
	return canonicalDate.MatchString(s)
}

// DateStatus tags how a record's date came out of normalization.
type DateStatus int

const (
	// DateMissing means no date could be read; the row is discarded.
	DateMissing DateStatus = iota
	// DateValid means the date is in YYYY-MM-DD form.
	DateValid
	// DateUnparsed means a non-empty date was passed through as-is.
	DateUnparsed
)

func (s DateStatus) String() string {
	switch s {
	case DateValid:
		return "valid"
	case DateUnparsed:
		return "unparsed"
	default:
		return "missing"
	}
}

// FrequencyMap counts occurrences per distinct identifier.
type FrequencyMap map[string]int

// Series returns parallel label/value slices ordered by count (descending),
// then label, the shape chart renderers consume.
func (m FrequencyMap) Series() ([]string, []int) {
	labels := make([]string, 0, len(m))
	for k := range m {
		labels = append(labels, k)
	}
	sort.Slice(labels, func(i, j int) bool {
		if m[labels[i]] != m[labels[j]] {
			return m[labels[i]] > m[labels[j]]
		}
		return labels[i] < labels[j]
	})
	values := make([]int, len(labels))
	for i, l := range labels {
		values[i] = m[l]
	}
	return labels, values
}

// RoleCounts is one person's breakdown across the media roles.
type RoleCounts struct {
	SoundControl int `json:"soundControl"`
	Director     int `json:"director"`
	ProPresenter int `json:"proPresenter"`
	MediaUpdate  int `json:"mediaUpdate"`
	Total        int `json:"total"`
}

// Add increments the counter for role along with the total. Non-media
// fields are ignored so Total stays the sum of the four roles.
func (c *RoleCounts) Add(role Field) {
	switch role {
	case FieldSoundControl:
		c.SoundControl++
	case FieldDirector:
		c.Director++
	case FieldProPresenter:
		c.ProPresenter++
	case FieldMediaUpdate:
		c.MediaUpdate++
	default:
		return
	}
	c.Total++
}

// Get returns the count for a single media role.
func (c RoleCounts) Get(role Field) int {
	switch role {
	case FieldSoundControl:
		return c.SoundControl
	case FieldDirector:
		return c.Director
	case FieldProPresenter:
		return c.ProPresenter
	case FieldMediaUpdate:
		return c.MediaUpdate
	}
	return 0
}

// RoleDistribution maps a person to their per-role counts.
type RoleDistribution map[string]RoleCounts

// People returns the distribution's people ordered by total (descending), then name.
func (d RoleDistribution) People() []string {
	people := make([]string, 0, len(d))
	for p := range d {
		people = append(people, p)
	}
	sort.Slice(people, func(i, j int) bool {
		if d[people[i]].Total != d[people[j]].Total {
			return d[people[i]].Total > d[people[j]].Total
		}
		return people[i] < people[j]
	})
	return people
}
