package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/ministry-roster/internal/models"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2025/1/5", "2025-01-05"},
		{"1/5/2025", "2025-01-05"},
		{"2025-01-05", "2025-01-05"},
		{"01-05-2025", "2025-01-05"},
		{"12/25/2024", "2024-12-25"},
		{"2025-1-5 10:30:00", "2025-01-05"},
		{"", ""},
		{"Easter Sunday", "Easter Sunday"},
		{"2025.01.05", "2025.01.05"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDate(tt.input))
		})
	}
}

func TestFormatDateIdempotentOnCanonical(t *testing.T) {
	for _, d := range []string{"2025-01-05", "1999-12-31", "2024-02-29"} {
		assert.Equal(t, d, FormatDate(d))
		assert.Equal(t, FormatDate(d), FormatDate(FormatDate(d)))
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Jimmy ", "Jimmy"},
		{"　俊鑫　", "俊鑫"},
		{"２０２５／１／５", "2025/1/5"},
		{"Ｊｉｍｍｙ", "Jimmy"},
		{"导播／摄影", "导播/摄影"},
		{"10：30", "10:30"},
		{"アキラ", "アキラ"},
		{"ｱｷﾗ", "アキラ"},
		{"愿你的国降临（一）", "愿你的国降临（一）"},
		{"主日！", "主日！"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanCell(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name     string
		header   []string
		row      []string
		expected models.ServiceRecord
		status   models.DateStatus
	}{
		{
			name:     "primary headers",
			header:   []string{"主日日期", "音控", "导播/摄影", "ProPresenter播放", "ProPresenter更新", "讲员", "敬拜带领", "讲道系列", "经文"},
			row:      []string{"2025/1/5", "Jimmy", "Gavin", "Jimmy", "俊鑫", "王通", "王通", "愿你的国降临", "Matthew 5:33-37"},
			expected: models.ServiceRecord{Date: "2025-01-05", SoundControl: "Jimmy", Director: "Gavin", ProPresenter: "Jimmy", MediaUpdate: "俊鑫", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 5:33-37"},
			status:   models.DateValid,
		},
		{
			name:     "fallback headers",
			header:   []string{"Date", "音响控制", "摄影", "ProPresenter", "媒体更新", "牧师", "敬拜", "系列", "圣经"},
			row:      []string{"1/12/2025", "俊鑫", "忠涵", "Zoey", "Jimmy", "周明哲传道", "王通", "单篇证道", "Mark 11:41"},
			expected: models.ServiceRecord{Date: "2025-01-12", SoundControl: "俊鑫", Director: "忠涵", ProPresenter: "Zoey", MediaUpdate: "Jimmy", Preacher: "周明哲传道", WorshipLeader: "王通", Series: "单篇证道", Scripture: "Mark 11:41"},
			status:   models.DateValid,
		},
		{
			name:     "higher priority header wins",
			header:   []string{"日期", "主日日期", "导播", "导播/摄影"},
			row:      []string{"2025-01-01", "2025-01-05", "Jason", "Gavin"},
			expected: models.ServiceRecord{Date: "2025-01-05", Director: "Gavin"},
			status:   models.DateValid,
		},
		{
			name:     "empty higher priority value falls through",
			header:   []string{"日期", "导播/摄影", "导播"},
			row:      []string{"2025-01-05", "", "Jason"},
			expected: models.ServiceRecord{Date: "2025-01-05", Director: "Jason"},
			status:   models.DateValid,
		},
		{
			name:     "short row pads with empty values",
			header:   []string{"日期", "音控", "导播"},
			row:      []string{"2025-01-05"},
			expected: models.ServiceRecord{Date: "2025-01-05"},
			status:   models.DateValid,
		},
		{
			name:     "extra values are ignored",
			header:   []string{"日期", "音控"},
			row:      []string{"2025-01-05", "Jimmy", "stray"},
			expected: models.ServiceRecord{Date: "2025-01-05", SoundControl: "Jimmy"},
			status:   models.DateValid,
		},
		{
			name:     "unparseable date passes through",
			header:   []string{"日期", "音控"},
			row:      []string{"复活节", "Jimmy"},
			expected: models.ServiceRecord{Date: "复活节", SoundControl: "Jimmy"},
			status:   models.DateUnparsed,
		},
		{
			name:     "missing date",
			header:   []string{"日期", "音控"},
			row:      []string{"  ", "Jimmy"},
			expected: models.ServiceRecord{SoundControl: "Jimmy"},
			status:   models.DateMissing,
		},
		{
			name:     "no date column",
			header:   []string{"音控"},
			row:      []string{"Jimmy"},
			expected: models.ServiceRecord{SoundControl: "Jimmy"},
			status:   models.DateMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, status := n.Normalize(tt.header, tt.row)
			assert.Equal(t, tt.expected, rec)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestNormalizeCustomAliases(t *testing.T) {
	n := NewNormalizer([]FieldAlias{
		{models.FieldDate, []string{"Service"}},
		{models.FieldSoundControl, []string{"Audio"}},
		{models.FieldMediaUpdate, []string{"Audio"}},
	})

	rec, status := n.Normalize([]string{"Service", "Audio"}, []string{"3/2/2025", "Ann"})

	assert.Equal(t, models.DateValid, status)
	assert.Equal(t, models.ServiceRecord{Date: "2025-03-02", SoundControl: "Ann", MediaUpdate: "Ann"}, rec)
}

func TestNormalizeTable(t *testing.T) {
	table := ParseTable("日期,音控\n2025-01-05,Jimmy\n,Nobody\nsoon,Zoey\n1/12/2025,俊鑫")

	res := NewNormalizer(nil).NormalizeTable(table)

	require.Len(t, res.Records, 3)
	assert.Equal(t, 1, res.Discarded)
	assert.Equal(t, []string{"soon"}, res.Unparsed)
	assert.Equal(t, "2025-01-05", res.Records[0].Date)
	assert.Equal(t, "soon", res.Records[1].Date)
	assert.Equal(t, "2025-01-12", res.Records[2].Date)
	for _, rec := range res.Records {
		assert.NotEmpty(t, rec.Date)
	}
}

func TestParseRecordsEndToEnd(t *testing.T) {
	res := ParseRecords("日期,音控\n2025-01-05,Jimmy")

	require.Len(t, res.Records, 1)
	assert.Equal(t, models.ServiceRecord{Date: "2025-01-05", SoundControl: "Jimmy"}, res.Records[0])
	assert.Zero(t, res.Discarded)
	assert.Empty(t, res.Unparsed)
}
