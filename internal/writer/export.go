package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/insightdelivered/ministry-roster/internal/aggregate"
	"github.com/insightdelivered/ministry-roster/internal/filter"
	"github.com/insightdelivered/ministry-roster/internal/models"
)

// Export is the downloadable analysis document.
type Export struct {
	ID                  string                   `json:"id"`
	Year                string                   `json:"year"`
	Source              string                   `json:"source,omitempty"`
	Summary             aggregate.Summary        `json:"summary"`
	MediaStatistics     aggregate.MediaStats     `json:"mediaStatistics"`
	PreachingStatistics aggregate.PreachingStats `json:"preachingStatistics"`
	RawData             []models.ServiceRecord   `json:"rawData"`
	ExportTime          time.Time                `json:"exportTime"`
}

// BuildExport snapshots the statistics of one year (or filter.AllYears).
// Unlike the interactive views, the export always stops at the last
// completed Sunday.
func BuildExport(records []models.ServiceRecord, year, source string, now time.Time) Export {
	cutoff := filter.LastSunday(now)
	filtered := filter.BeforeCutoff(filter.ByYear(records, year), cutoff)
	media := aggregate.Media(filtered)

	return Export{
		ID:                  uuid.NewString(),
		Year:                year,
		Source:              source,
		Summary:             aggregate.Summarize(len(records), filtered, media.MediaRoleDistribution, cutoff),
		MediaStatistics:     media,
		PreachingStatistics: aggregate.Preaching(filtered, aggregate.CountEmpty),
		RawData:             filtered,
		ExportTime:          now.UTC(),
	}
}

// ExportFileName is the default download name for an export made at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("media-ministry-analysis-%s.json", now.Format("2006-01-02"))
}

// WriteExport encodes e as indented JSON.
func WriteExport(out io.Writer, e Export) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}
