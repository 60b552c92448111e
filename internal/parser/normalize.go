package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/insightdelivered/ministry-roster/internal/models"
)

// FieldAlias lists the sheet headers that may carry a canonical field,
// highest priority first.
type FieldAlias struct {
	Field   models.Field
	Headers []string
}

// DefaultAliases is the header vocabulary of the ministry roster sheet.
// Fields resolve independently, so two fields may read the same header.
var DefaultAliases = []FieldAlias{
	{models.FieldDate, []string{"主日日期", "日期", "Date"}},
	{models.FieldSoundControl, []string{"音控", "音响控制"}},
	{models.FieldDirector, []string{"导播/摄影", "导播", "摄影"}},
	{models.FieldProPresenter, []string{"ProPresenter播放", "ProPresenter"}},
	{models.FieldMediaUpdate, []string{"ProPresenter更新", "媒体更新"}},
	{models.FieldPreacher, []string{"讲员", "牧师"}},
	{models.FieldWorshipLeader, []string{"敬拜带领", "敬拜"}},
	{models.FieldSeries, []string{"讲道系列", "系列"}},
	{models.FieldScripture, []string{"经文", "圣经"}},
}

var (
	// 2025-01-05, 2025/1/5
	dateYearFirst = regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
	// 1/5/2025, 01-05-2025
	dateYearLast = regexp.MustCompile(`(\d{1,2})[-/](\d{1,2})[-/](\d{4})`)
)

// FormatDate rewrites a year-first or month-first date as YYYY-MM-DD.
// Strings matching neither shape are returned unchanged.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	for _, pattern := range []*regexp.Regexp{dateYearFirst, dateYearLast} {
		m := pattern.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		year, month, day := m[1], m[2], m[3]
		if len(m[1]) != 4 {
			month, day, year = m[1], m[2], m[3]
		}
		return year + "-" + pad2(month) + "-" + pad2(day)
	}
	return s
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// CleanCell canonicalizes a spreadsheet cell: NFC composition, full-width
// letters, digits and date separators folded to ASCII, half-width katakana
// widened, ideographic spaces replaced and the result trimmed. Full-width
// brackets and punctuation are left as typed.
func CleanCell(s string) string {
	// runes.If keeps per-run state, so it is built per call.
	s = runes.If(runes.Predicate(foldable), width.Fold, nil).String(norm.NFC.String(s))
	s = strings.ReplaceAll(s, "\u3000", " ")
	return strings.TrimSpace(s)
}

// foldSeparators are the full-width separators seen in dates and headers.
const foldSeparators = "\uff0f\uff0d\uff0e\uff1a\uff3f" // ／－．：＿

func foldable(r rune) bool {
	switch {
	case r >= '\uff10' && r <= '\uff19', // ０-９
		r >= '\uff21' && r <= '\uff3a', // Ａ-Ｚ
		r >= '\uff41' && r <= '\uff5a': // ａ-ｚ
		return true
	case r >= '\uff61' && r <= '\uff9f': // half-width katakana and punctuation
		return true
	}
	return strings.ContainsRune(foldSeparators, r)
}

// Normalizer maps header-keyed raw rows onto ServiceRecords.
type Normalizer struct {
	aliases []FieldAlias
}

// NewNormalizer returns a Normalizer using aliases, or DefaultAliases when
// none are given.
func NewNormalizer(aliases []FieldAlias) *Normalizer {
	if len(aliases) == 0 {
		aliases = DefaultAliases
	}
	return &Normalizer{aliases: aliases}
}

// Normalize resolves each canonical field from row and reports the state
// of the date. Missing trailing values read as "". A record tagged
// DateMissing must be discarded; DateUnparsed records carry the source text.
func (n *Normalizer) Normalize(header, row []string) (models.ServiceRecord, models.DateStatus) {
	cells := make(map[string]string, len(header))
	for i, h := range header {
		v := ""
		if i < len(row) {
			v = CleanCell(row[i])
		}
		cells[CleanCell(h)] = v
	}

	var rec models.ServiceRecord
	for _, alias := range n.aliases {
		v := resolve(cells, alias.Headers)
		switch alias.Field {
		case models.FieldDate:
			rec.Date = FormatDate(v)
		case models.FieldSoundControl:
			rec.SoundControl = v
		case models.FieldDirector:
			rec.Director = v
		case models.FieldProPresenter:
			rec.ProPresenter = v
		case models.FieldMediaUpdate:
			rec.MediaUpdate = v
		case models.FieldPreacher:
			rec.Preacher = v
		case models.FieldWorshipLeader:
			rec.WorshipLeader = v
		case models.FieldSeries:
			rec.Series = v
		case models.FieldScripture:
			rec.Scripture = v
		}
	}

	switch {
	case rec.Date == "":
		return rec, models.DateMissing
	case models.IsCanonicalDate(rec.Date):
		return rec, models.DateValid
	default:
		return rec, models.DateUnparsed
	}
}

// resolve returns the first non-empty value among candidates, in order.
func resolve(cells map[string]string, candidates []string) string {
	for _, h := range candidates {
		if v := cells[h]; v != "" {
			return v
		}
	}
	return ""
}

// Result is the outcome of normalizing a whole table.
type Result struct {
	Records   []models.ServiceRecord
	Discarded int // rows without a date
	// Unparsed holds the dates kept verbatim because they matched no known shape.
	Unparsed []string
}

// NormalizeTable normalizes every row of t in source order, dropping rows
// that have no date.
func (n *Normalizer) NormalizeTable(t Table) Result {
	res := Result{Records: make([]models.ServiceRecord, 0, len(t.Rows))}
	for _, row := range t.Rows {
		rec, status := n.Normalize(t.Header, row)
		switch status {
		case models.DateMissing:
			res.Discarded++
			continue
		case models.DateUnparsed:
			res.Unparsed = append(res.Unparsed, rec.Date)
		}
		res.Records = append(res.Records, rec)
	}
	return res
}

// ParseRecords runs text through ParseTable and the default Normalizer.
func ParseRecords(text string) Result {
	return NewNormalizer(nil).NormalizeTable(ParseTable(text))
}
