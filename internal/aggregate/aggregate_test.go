package aggregate

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/ministry-roster/internal/models"
	"github.com/insightdelivered/ministry-roster/internal/parser"
)

func roster() []models.ServiceRecord {
	return []models.ServiceRecord{
		{Date: "2025-01-05", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 5:33-37", SoundControl: "Jimmy", Director: "Gavin", ProPresenter: "Jimmy", MediaUpdate: "俊鑫"},
		{Date: "2025-01-12", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 5:38-48", SoundControl: "俊鑫", Director: "忠涵", ProPresenter: "Zoey", MediaUpdate: "Jimmy"},
		{Date: "2025-02-16", Preacher: "周明哲传道", WorshipLeader: "王通", Series: "单篇证道", Scripture: "Mark 11:41-12:1-2", SoundControl: "Jimmy", Director: "Gavin", ProPresenter: "", MediaUpdate: ""},
		{Date: "2024-12-29", Preacher: "", WorshipLeader: "王通", Series: "", Scripture: "", SoundControl: "", Director: "", ProPresenter: "", MediaUpdate: ""},
	}
}

func TestMediaSingleRecord(t *testing.T) {
	got := Media([]models.ServiceRecord{{Date: "2025-01-05", SoundControl: "Jimmy"}})

	want := MediaStats{
		SoundControlCount: models.FrequencyMap{"Jimmy": 1},
		DirectorCount:     models.FrequencyMap{},
		ProPresenterCount: models.FrequencyMap{},
		MediaUpdateCount:  models.FrequencyMap{},
		MediaRoleDistribution: models.RoleDistribution{
			"Jimmy": {SoundControl: 1, Total: 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Media() mismatch (-want +got):\n%s", diff)
	}
}

func TestMedia(t *testing.T) {
	got := Media(roster())

	assert.Equal(t, models.FrequencyMap{"Jimmy": 2, "俊鑫": 1}, got.SoundControlCount)
	assert.Equal(t, models.FrequencyMap{"Gavin": 2, "忠涵": 1}, got.DirectorCount)
	assert.Equal(t, models.FrequencyMap{"Jimmy": 1, "Zoey": 1}, got.ProPresenterCount)
	assert.Equal(t, models.FrequencyMap{"俊鑫": 1, "Jimmy": 1}, got.MediaUpdateCount)
	assert.Equal(t, models.RoleCounts{SoundControl: 2, ProPresenter: 1, MediaUpdate: 1, Total: 4}, got.MediaRoleDistribution["Jimmy"])
	assert.Equal(t, models.RoleCounts{SoundControl: 1, MediaUpdate: 1, Total: 2}, got.MediaRoleDistribution["俊鑫"])
	assert.NotContains(t, got.MediaRoleDistribution, "")
}

func TestDistributionTotalInvariant(t *testing.T) {
	dist := Distribution(roster())
	require.NotEmpty(t, dist)
	for person, c := range dist {
		assert.Equal(t, c.SoundControl+c.Director+c.ProPresenter+c.MediaUpdate, c.Total, person)
	}
}

func TestMediaEmptyInput(t *testing.T) {
	got := Media(nil)
	assert.NotNil(t, got.SoundControlCount)
	assert.Empty(t, got.SoundControlCount)
	assert.NotNil(t, got.MediaRoleDistribution)
	assert.Empty(t, got.MediaRoleDistribution)
}

func TestMediaIsDeterministic(t *testing.T) {
	assert.Equal(t, Media(roster()), Media(roster()))
}

func TestPreachingCountsBlanks(t *testing.T) {
	got := Preaching(roster(), CountEmpty)

	assert.Equal(t, models.FrequencyMap{"王通": 2, "周明哲传道": 1, "": 1}, got.PreacherCount)
	assert.Equal(t, models.FrequencyMap{"王通": 4}, got.WorshipLeaderCount)
	assert.Equal(t, models.FrequencyMap{"愿你的国降临": 2, "单篇证道": 1, "": 1}, got.SeriesCount)
	assert.Equal(t, models.FrequencyMap{"Matthew": 2, "Mark": 1, "": 1}, got.ScriptureBookCount)
}

func TestPreachingSkipBlanks(t *testing.T) {
	got := Preaching(roster(), SkipEmpty)

	assert.Equal(t, models.FrequencyMap{"王通": 2, "周明哲传道": 1}, got.PreacherCount)
	assert.Equal(t, models.FrequencyMap{"Matthew": 2, "Mark": 1}, got.ScriptureBookCount)
}

func TestCount(t *testing.T) {
	got := Count(roster(), []models.Field{models.FieldWorshipLeader, models.FieldDirector}, SkipEmpty)

	require.Len(t, got, 2)
	assert.Equal(t, models.FrequencyMap{"王通": 4}, got[models.FieldWorshipLeader])
	assert.Equal(t, models.FrequencyMap{"Gavin": 2, "忠涵": 1}, got[models.FieldDirector])
}

func TestPipelineEndToEnd(t *testing.T) {
	res := parser.ParseRecords("日期,音控\n2025-01-05,Jimmy")
	require.Len(t, res.Records, 1)

	got := Media(res.Records)

	assert.Equal(t, models.FrequencyMap{"Jimmy": 1}, got.SoundControlCount)
}

func TestSummarize(t *testing.T) {
	records := roster()
	dist := Distribution(records)

	s := Summarize(10, records, dist, "2025-08-17")

	assert.Equal(t, 10, s.TotalServices)
	assert.Equal(t, 4, s.FilteredServices)
	assert.Equal(t, "2024-12-29", s.FirstDate)
	assert.Equal(t, "2025-02-16", s.LastDate)
	assert.Equal(t, "2024-12-29 to 2025-02-16 (through 2025-08-17)", s.DateRange)
	assert.Equal(t, 5, s.TotalMediaMembers)
	// Jimmy 4, 俊鑫 2, Gavin 2, 忠涵 1, Zoey 1
	assert.Equal(t, 2.0, s.MeanAssignments)
	assert.Equal(t, 2.0, s.MedianAssignments)
	assert.Equal(t, 4, s.MaxAssignments)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(3, nil, models.RoleDistribution{}, "2025-08-17")

	assert.Equal(t, 3, s.TotalServices)
	assert.Zero(t, s.FilteredServices)
	assert.Equal(t, "through 2025-08-17", s.DateRange)
	assert.Zero(t, s.MeanAssignments)
}

func TestPeriodCounts(t *testing.T) {
	records := append(roster(), models.ServiceRecord{Date: "复活节", SoundControl: "Jimmy"})

	tests := []struct {
		g    Granularity
		want []PeriodCount
	}{
		{ByYear, []PeriodCount{{"2024", 1}, {"2025", 3}}},
		{ByQuarter, []PeriodCount{{"2024-Q4", 1}, {"2025-Q1", 3}}},
		{ByMonth, []PeriodCount{{"2024-12", 1}, {"2025-01", 2}, {"2025-02", 1}}},
	}

	for _, tt := range tests {
		t.Run(string(tt.g), func(t *testing.T) {
			assert.Equal(t, tt.want, PeriodCounts(records, tt.g))
		})
	}
}

func TestVolunteerTrend(t *testing.T) {
	got := VolunteerTrend(roster(), "Jimmy", ByMonth)
	assert.Equal(t, []PeriodCount{{"2025-01", 3}, {"2025-02", 1}}, got)

	assert.Empty(t, VolunteerTrend(roster(), "nobody", ByMonth))
}

func TestVolunteers(t *testing.T) {
	assert.Equal(t, []string{"Gavin", "Jimmy", "Zoey", "俊鑫", "忠涵"}, Volunteers(roster()))
}

func TestVolunteerRoles(t *testing.T) {
	tests := []struct {
		name   string
		person string
		g      Granularity
		want   []RolePeriodCount
	}{
		{"monthly", "Jimmy", ByMonth, []RolePeriodCount{
			{"2025-01", models.FieldSoundControl, 1},
			{"2025-01", models.FieldProPresenter, 1},
			{"2025-01", models.FieldMediaUpdate, 1},
			{"2025-02", models.FieldSoundControl, 1},
		}},
		{"yearly", "Jimmy", ByYear, []RolePeriodCount{
			{"2025", models.FieldSoundControl, 2},
			{"2025", models.FieldProPresenter, 1},
			{"2025", models.FieldMediaUpdate, 1},
		}},
		{"single role", "Gavin", ByQuarter, []RolePeriodCount{{"2025-Q1", models.FieldDirector, 2}}},
		{"unknown person", "nobody", ByMonth, []RolePeriodCount{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VolunteerRoles(roster(), tt.person, tt.g))
		})
	}
}

func TestActivity(t *testing.T) {
	got := Activity(roster())

	want := []VolunteerActivity{
		{Volunteer: "Jimmy", Assignments: 4, RoleCount: 3, FirstDate: "2025-01-05", LastDate: "2025-02-16",
			Roles: []models.Field{models.FieldSoundControl, models.FieldProPresenter, models.FieldMediaUpdate}},
		{Volunteer: "Gavin", Assignments: 2, RoleCount: 1, FirstDate: "2025-01-05", LastDate: "2025-02-16",
			Roles: []models.Field{models.FieldDirector}},
		{Volunteer: "俊鑫", Assignments: 2, RoleCount: 2, FirstDate: "2025-01-05", LastDate: "2025-01-12",
			Roles: []models.Field{models.FieldSoundControl, models.FieldMediaUpdate}},
		{Volunteer: "Zoey", Assignments: 1, RoleCount: 1, FirstDate: "2025-01-12", LastDate: "2025-01-12",
			Roles: []models.Field{models.FieldProPresenter}},
		{Volunteer: "忠涵", Assignments: 1, RoleCount: 1, FirstDate: "2025-01-12", LastDate: "2025-01-12",
			Roles: []models.Field{models.FieldDirector}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Activity() mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, Activity(nil))
}

func TestVolunteerCounts(t *testing.T) {
	records := append(roster(), models.ServiceRecord{Date: "复活节", SoundControl: "ghost"})

	tests := []struct {
		g    Granularity
		want []VolunteerCount
	}{
		{ByYear, []VolunteerCount{{"2025", 5}}},
		{ByQuarter, []VolunteerCount{{"2025-Q1", 5}}},
		{ByMonth, []VolunteerCount{{"2025-01", 5}, {"2025-02", 2}}},
	}

	for _, tt := range tests {
		t.Run(string(tt.g), func(t *testing.T) {
			assert.Equal(t, tt.want, VolunteerCounts(records, tt.g))
		})
	}
}

func TestJoinLeave(t *testing.T) {
	records := append(roster(), models.ServiceRecord{Date: "2025-03-02", SoundControl: "Zoey"})

	got := JoinLeave(records, ByMonth)

	want := []Turnover{
		{Period: "2025-01", Active: 5, Joined: []string{"Gavin", "Jimmy", "Zoey", "俊鑫", "忠涵"}, Left: []string{}},
		{Period: "2025-02", Active: 2, Joined: []string{}, Left: []string{"俊鑫", "忠涵"}},
		{Period: "2025-03", Active: 1, Joined: []string{}, Left: []string{"Gavin", "Jimmy"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JoinLeave() mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, JoinLeave(nil, ByMonth))
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, ByMonth, g)

	g, err = ParseGranularity("quarter")
	require.NoError(t, err)
	assert.Equal(t, ByQuarter, g)

	_, err = ParseGranularity("week")
	assert.Error(t, err)
}

func TestBuildView(t *testing.T) {
	// Wednesday 2025-01-15: cutoff is Sunday 2025-01-12.
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local)

	rep := BuildView(roster(), Selection{Year: "2025", View: ViewMedia, Now: now})

	assert.Equal(t, "2025-01-12", rep.Cutoff)
	assert.False(t, rep.Empty)
	require.Len(t, rep.Records, 2)
	require.NotNil(t, rep.Media)
	assert.Nil(t, rep.Preaching)
	assert.Equal(t, models.FrequencyMap{"Jimmy": 1, "俊鑫": 1}, rep.Media.SoundControlCount)
	assert.Equal(t, 4, rep.Summary.TotalServices)
	assert.Equal(t, 2, rep.Summary.FilteredServices)
}

func TestBuildViewAllYearsSkipsCutoff(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local)

	rep := BuildView(roster(), Selection{Year: "all", View: ViewPreaching, Now: now})

	assert.Empty(t, rep.Cutoff)
	assert.Len(t, rep.Records, 4)
	require.NotNil(t, rep.Preaching)
	assert.Nil(t, rep.Media)
	assert.Equal(t, 1, rep.Preaching.PreacherCount[""])
}

func TestBuildViewEmptyYear(t *testing.T) {
	rep := BuildView(roster(), Selection{Year: "2019", Now: time.Now()})

	assert.True(t, rep.Empty)
	assert.Equal(t, ViewMedia, rep.View)
	assert.Equal(t, []string{"2025", "2024"}, rep.AvailableYears)
	require.NotNil(t, rep.Media)
	assert.Empty(t, rep.Media.SoundControlCount)
}

func TestBuildTeam(t *testing.T) {
	// Wednesday 2025-01-15: two weeks back is 2025-01-01.
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name       string
		year       string
		weeks      int
		recent     int
		quarter    int
		counts     []VolunteerCount
		firstDelta Turnover
	}{
		{
			name: "all years", year: "all", weeks: 2, recent: 5, quarter: 5,
			counts:     []VolunteerCount{{"2025-01", 5}, {"2025-02", 2}},
			firstDelta: Turnover{Period: "2025-01", Active: 5, Joined: []string{"Gavin", "Jimmy", "Zoey", "俊鑫", "忠涵"}, Left: []string{}},
		},
		{
			name: "year stops at the cutoff", year: "2025", weeks: 1, recent: 4, quarter: 5,
			counts:     []VolunteerCount{{"2025-01", 5}},
			firstDelta: Turnover{Period: "2025-01", Active: 5, Joined: []string{"Gavin", "Jimmy", "Zoey", "俊鑫", "忠涵"}, Left: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := BuildTeam(roster(), Selection{Year: tt.year, Now: now}, ByMonth, tt.weeks)

			assert.Equal(t, tt.year, rep.Year)
			assert.Equal(t, tt.weeks, rep.Weeks)
			assert.Len(t, rep.RecentWeeks, tt.recent)
			assert.Len(t, rep.RecentQuarter, tt.quarter)
			assert.Equal(t, tt.counts, rep.Counts)
			require.NotEmpty(t, rep.JoinLeave)
			assert.Equal(t, tt.firstDelta, rep.JoinLeave[0])
		})
	}
}

func TestParseView(t *testing.T) {
	v, err := ParseView("")
	require.NoError(t, err)
	assert.Equal(t, ViewMedia, v)

	_, err = ParseView("worship")
	assert.Error(t, err)
}
