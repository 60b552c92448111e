// Package aggregate computes the frequency tables behind the roster charts.
// Every function is a pure function of its input records and builds fresh maps.
package aggregate

import "github.com/insightdelivered/ministry-roster/internal/models"

// EmptyPolicy decides whether blank field values are counted.
type EmptyPolicy int

const (
	// SkipEmpty ignores blank values.
	SkipEmpty EmptyPolicy = iota
	// CountEmpty counts blank values under the "" key.
	CountEmpty
)

// Count builds one FrequencyMap per field in a single pass over records.
// Every requested field gets a map, even when nothing was counted.
func Count(records []models.ServiceRecord, fields []models.Field, policy EmptyPolicy) map[models.Field]models.FrequencyMap {
	out := make(map[models.Field]models.FrequencyMap, len(fields))
	for _, f := range fields {
		out[f] = models.FrequencyMap{}
	}
	for _, r := range records {
		for _, f := range fields {
			v := r.Value(f)
			if v == "" && policy == SkipEmpty {
				continue
			}
			out[f][v]++
		}
	}
	return out
}

// Distribution cross-tabulates each person against the media roles they filled.
func Distribution(records []models.ServiceRecord) models.RoleDistribution {
	dist := models.RoleDistribution{}
	for _, r := range records {
		for _, role := range models.MediaRoles {
			person := r.Value(role)
			if person == "" {
				continue
			}
			counts := dist[person]
			counts.Add(role)
			dist[person] = counts
		}
	}
	return dist
}

// MediaStats are the aggregates of the media-team view.
type MediaStats struct {
	SoundControlCount     models.FrequencyMap     `json:"soundControlCount"`
	DirectorCount         models.FrequencyMap     `json:"directorCount"`
	ProPresenterCount     models.FrequencyMap     `json:"proPresenterCount"`
	MediaUpdateCount      models.FrequencyMap     `json:"mediaUpdateCount"`
	MediaRoleDistribution models.RoleDistribution `json:"mediaRoleDistribution"`
}

// Media counts each media role, skipping unassigned slots.
func Media(records []models.ServiceRecord) MediaStats {
	counts := Count(records, models.MediaRoles, SkipEmpty)
	return MediaStats{
		SoundControlCount:     counts[models.FieldSoundControl],
		DirectorCount:         counts[models.FieldDirector],
		ProPresenterCount:     counts[models.FieldProPresenter],
		MediaUpdateCount:      counts[models.FieldMediaUpdate],
		MediaRoleDistribution: Distribution(records),
	}
}

// PreachingFields are the columns of the preaching view.
var PreachingFields = []models.Field{
	models.FieldPreacher,
	models.FieldWorshipLeader,
	models.FieldSeries,
	models.FieldScriptureBook,
}

// PreachingStats are the aggregates of the preaching view.
type PreachingStats struct {
	PreacherCount      models.FrequencyMap `json:"preacherCount"`
	WorshipLeaderCount models.FrequencyMap `json:"worshipLeaderCount"`
	SeriesCount        models.FrequencyMap `json:"seriesCount"`
	ScriptureBookCount models.FrequencyMap `json:"scriptureBookCount"`
}

// Preaching counts the preaching columns with the given policy. The sheet
// history counts blank cells here (CountEmpty), unlike the media view.
func Preaching(records []models.ServiceRecord, policy EmptyPolicy) PreachingStats {
	counts := Count(records, PreachingFields, policy)
	return PreachingStats{
		PreacherCount:      counts[models.FieldPreacher],
		WorshipLeaderCount: counts[models.FieldWorshipLeader],
		SeriesCount:        counts[models.FieldSeries],
		ScriptureBookCount: counts[models.FieldScriptureBook],
	}
}
