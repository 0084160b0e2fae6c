package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// reDate is the union of the recognized date forms. Submatch groups:
//
//	1-3   YYYY-M-D
//	4-6   D-M-YY(YY), ambiguous between day-first and month-first
//	7-9   Month D, YYYY
//	10-12 D Month YYYY
var reDate = regexp.MustCompile(`\b(?:` +
	`(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})` +
	`|(\d{1,2})[-/.](\d{1,2})[-/.](\d{4}|\d{2})` +
	`|([A-Za-z]{3,9})\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})` +
	`|(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]{3,9})\.?,?\s+(\d{4})` +
	`)\b`)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// DateResult is a validated calendar date found in a document.
type DateResult struct {
	ISO string
	// Ambiguous is set when the day-first and month-first readings of a
	// short numeric date were both valid and differed.
	Ambiguous bool
}

type dateCandidate struct {
	year, month, day int
}

// valid reports whether the components survive a round trip through
// time.Date unchanged, which rejects day 31 in a 30-day month or month 13.
func (c dateCandidate) valid() bool {
	t := c.time()
	return t.Year() == c.year && int(t.Month()) == c.month && t.Day() == c.day
}

func (c dateCandidate) time() time.Time {
	return time.Date(c.year, time.Month(c.month), c.day, 0, 0, 0, 0, time.UTC)
}

var dateStrategies = []strategy[DateResult]{
	{name: "whole_text", extract: func(doc *Document) (DateResult, bool) {
		return FindDate(doc.Text)
	}},
	{name: "per_line", extract: func(doc *Document) (DateResult, bool) {
		for _, line := range doc.Lines {
			if r, ok := FindDate(line); ok {
				return r, true
			}
		}
		return DateResult{}, false
	}},
}

// FindDate returns the first date-like substring of s that validates as a
// calendar date, normalized to YYYY-MM-DD.
func FindDate(s string) (DateResult, bool) {
	for _, m := range reDate.FindAllStringSubmatch(s, -1) {
		candidates := dateCandidates(m)
		for i, c := range candidates {
			if !c.valid() {
				continue
			}
			r := DateResult{ISO: c.time().Format(isoDate)}
			for _, other := range candidates[i+1:] {
				if other.valid() && other != c {
					r.Ambiguous = true
				}
			}
			return r, true
		}
	}
	return DateResult{}, false
}

func dateCandidates(m []string) []dateCandidate {
	switch {
	case m[1] != "":
		return []dateCandidate{{atoi(m[1]), atoi(m[2]), atoi(m[3])}}
	case m[4] != "":
		a, b, y := atoi(m[4]), atoi(m[5]), expandYear(m[6])
		return []dateCandidate{{y, b, a}, {y, a, b}}
	case m[7] != "":
		if mo := monthNumber(m[7]); mo > 0 {
			return []dateCandidate{{atoi(m[9]), mo, atoi(m[8])}}
		}
	case m[10] != "":
		if mo := monthNumber(m[11]); mo > 0 {
			return []dateCandidate{{atoi(m[12]), mo, atoi(m[10])}}
		}
	}
	return nil
}

// expandYear maps two-digit years into 1950-2049.
func expandYear(s string) int {
	y := atoi(s)
	if len(s) == 2 {
		if y < 50 {
			return 2000 + y
		}
		return 1900 + y
	}
	return y
}

// monthNumber accepts full month names and prefixes of at least three
// letters ("Sep", "Sept"). It returns 0 for anything else.
func monthNumber(name string) int {
	name = strings.ToLower(name)
	for i, full := range monthNames {
		if strings.HasPrefix(full, name) {
			return i + 1
		}
	}
	return 0
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
