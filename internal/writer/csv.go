package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/insightdelivered/ministry-roster/internal/aggregate"
	"github.com/insightdelivered/ministry-roster/internal/models"
)

// CSVWriter writes roster records and frequency tables as CSV.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the records of rep to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, rep aggregate.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.WriteRecords(f, rep)
}

// WriteRecords writes the filtered records of rep, one service per row.
func (w *CSVWriter) WriteRecords(out io.Writer, rep aggregate.Report) error {
	writer := csv.NewWriter(out)

	// Selection metadata as comment rows
	if w.IncludeHeader {
		writer.Write([]string{"# Year", rep.Year})
		writer.Write([]string{"# View", string(rep.View)})
		if rep.Cutoff != "" {
			writer.Write([]string{"# Cutoff", rep.Cutoff})
		}
		writer.Write([]string{"# Services", strconv.Itoa(len(rep.Records))})
	}

	header := []string{"Date", "SoundControl", "Director", "ProPresenter", "MediaUpdate", "Preacher", "WorshipLeader", "Series", "Scripture"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range rep.Records {
		row := []string{
			r.Date,
			r.SoundControl,
			r.Director,
			r.ProPresenter,
			r.MediaUpdate,
			r.Preacher,
			r.WorshipLeader,
			r.Series,
			r.Scripture,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCounts writes the frequency tables of rep as (table, name, count)
// rows, largest count first within each table. Media reports also get
// one row per person and role from the distribution.
func (w *CSVWriter) WriteCounts(out io.Writer, rep aggregate.Report) error {
	writer := csv.NewWriter(out)

	if err := writer.Write([]string{"Table", "Name", "Count"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, t := range Tables(rep) {
		labels, values := t.Counts.Series()
		for i, label := range labels {
			if err := writer.Write([]string{t.Name, label, strconv.Itoa(values[i])}); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	if rep.Media != nil {
		dist := rep.Media.MediaRoleDistribution
		for _, person := range dist.People() {
			counts := dist[person]
			for _, role := range models.MediaRoles {
				row := []string{"mediaRoleDistribution." + string(role), person, strconv.Itoa(counts.Get(role))}
				if err := writer.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// Table is one named frequency table of a report.
type Table struct {
	Name   string
	Counts models.FrequencyMap
}

// Tables lists the frequency tables of rep in chart order.
func Tables(rep aggregate.Report) []Table {
	var tables []Table
	if m := rep.Media; m != nil {
		tables = append(tables,
			Table{"soundControlCount", m.SoundControlCount},
			Table{"directorCount", m.DirectorCount},
			Table{"proPresenterCount", m.ProPresenterCount},
			Table{"mediaUpdateCount", m.MediaUpdateCount},
		)
	}
	if p := rep.Preaching; p != nil {
		tables = append(tables,
			Table{"preacherCount", p.PreacherCount},
			Table{"worshipLeaderCount", p.WorshipLeaderCount},
			Table{"seriesCount", p.SeriesCount},
			Table{"scriptureBookCount", p.ScriptureBookCount},
		)
	}
	return tables
}
