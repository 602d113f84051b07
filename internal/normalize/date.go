// Posted-date resolution. Vendors emit either ISO dates or German/English
// relative phrases ("Heute", "Vor 7 Tagen ausgeschrieben", "Posted 3 Days
// Ago"). Day- and week-granularity offsets are resolved on the Europe/Berlin
// civil calendar so that runs near midnight and across DST transitions land
// on the right day.

package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var berlin = mustLoadBerlin()

func mustLoadBerlin() *time.Location {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		panic("normalize: Europe/Berlin tzdata unavailable: " + err.Error())
	}
	return loc
}

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01-02-07:00", // workday postedOn quirk
}

type dateUnit int

const (
	unitDay dateUnit = iota
	unitWeek
	unitHour
	unitMinute
)

// relativePattern maps one vendor phrase shape to an offset. The capture
// group, if any, holds the count; fixed holds it otherwise.
type relativePattern struct {
	re    *regexp.Regexp
	unit  dateUnit
	fixed int
}

var relativePatterns = []relativePattern{
	{re: regexp.MustCompile(`(?i)\b(heute|today)\b`), unit: unitDay, fixed: 0},
	{re: regexp.MustCompile(`(?i)\b(gestern|yesterday)\b`), unit: unitDay, fixed: 1},
	{re: regexp.MustCompile(`(?i)\bvor\s+(\d+)\+?\s+tag(?:en)?\b`), unit: unitDay},
	{re: regexp.MustCompile(`(?i)\b(\d+)\+?\s+days?\s+ago\b`), unit: unitDay},
	{re: regexp.MustCompile(`(?i)\bvor\s+(\d+)\+?\s+woche(?:n)?\b`), unit: unitWeek},
	{re: regexp.MustCompile(`(?i)\b(\d+)\+?\s+weeks?\s+ago\b`), unit: unitWeek},
	{re: regexp.MustCompile(`(?i)\bvor\s+(\d+)\+?\s+stunde(?:n)?\b`), unit: unitHour},
	{re: regexp.MustCompile(`(?i)\b(\d+)\+?\s+hours?\s+ago\b`), unit: unitHour},
	{re: regexp.MustCompile(`(?i)\bvor\s+(\d+)\+?\s+minute(?:n)?\b`), unit: unitMinute},
	{re: regexp.MustCompile(`(?i)\b(\d+)\+?\s+minutes?\s+ago\b`), unit: unitMinute},
}

// PostedAt converts a vendor "posted" signal into an absolute instant,
// anchored to ref (the run's reference timestamp). Unparseable input yields
// nil, never a guess.
func PostedAt(raw string, ref time.Time) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			utc := t.UTC()
			return &utc
		}
	}

	// German civil format is a calendar date, so it is anchored to Berlin
	if t, err := time.ParseInLocation("02.01.2006", raw, berlin); err == nil {
		utc := t.UTC()
		return &utc
	}

	for _, p := range relativePatterns {
		m := p.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		n := p.fixed
		if len(m) > 1 {
			if parsed, err := strconv.Atoi(m[1]); err == nil {
				n = parsed
			}
		}
		var t time.Time
		switch p.unit {
		case unitDay:
			t = civilMidnightDaysAgo(ref, n)
		case unitWeek:
			t = civilMidnightDaysAgo(ref, n*7)
		case unitHour:
			t = ref.Add(-time.Duration(n) * time.Hour).UTC()
		case unitMinute:
			t = ref.Add(-time.Duration(n) * time.Minute).UTC()
		}
		return &t
	}

	return nil
}

// civilMidnightDaysAgo determines "today" on the Berlin civil calendar,
// steps back n calendar days, and converts that day's midnight to UTC using
// the offset in force on that date. time.Date with the Berlin location picks
// the historical offset, which keeps DST transitions correct.
func civilMidnightDaysAgo(ref time.Time, n int) time.Time {
	local := ref.In(berlin)
	y, m, d := local.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, berlin)
	return midnight.AddDate(0, 0, -n).UTC()
}
