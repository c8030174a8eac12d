package temporal

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Date layouts in fixed priority order: ISO first, then day-first, then
// month-first, then spelled-out months. The first structurally valid match
// wins; ambiguity is never resolved from locale.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"2 January 2006",
	"January 2, 2006",
	"January 2 2006",
	"2 January",
	"January 2",
}

// Time layouts in fixed priority order. Meridiem spellings are canonicalized
// to "H:MM PM" form before these are tried.
var timeLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04 PM",
	"3 PM",
}

// StrictFormats tries every date layout combined with every time layout and
// accepts the first combination that parses the whole text. Year-less dates
// inherit the reference year and roll forward when already past, matching
// the nearest-future policy used for weekdays.
func StrictFormats(text string, ref time.Time) (time.Time, bool) {
	for _, dateLayout := range dateLayouts {
		for _, timeLayout := range timeLayouts {
			layout := dateLayout + " " + timeLayout
			parsed, err := time.Parse(layout, text)
			if err != nil {
				continue
			}
			if parsed.Year() == 0 {
				parsed = withReferenceYear(parsed, ref)
			}
			return parsed, true
		}
	}
	return time.Time{}, false
}

func withReferenceYear(parsed, ref time.Time) time.Time {
	adjusted := time.Date(ref.Year(), parsed.Month(), parsed.Day(), parsed.Hour(), parsed.Minute(), parsed.Second(), 0, parsed.Location())
	refDate := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, parsed.Location())
	if adjusted.Before(refDate) {
		adjusted = adjusted.AddDate(1, 0, 0)
	}
	return adjusted
}

// freeTextParser interprets natural-language expressions against a supplied
// reference moment. Its weekday rule resolves bare names like "Friday" to
// the nearest future occurrence.
var freeTextParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// FreeText is the fallback strategy for text no strict layout matched. The
// interpreter matches substrings, so a match is accepted only when it covers
// the whole input; anything left over means part of the request was not
// understood and resolving it would schedule the wrong moment.
func FreeText(text string, ref time.Time) (time.Time, bool) {
	lowered := strings.ToLower(text)
	result, err := freeTextParser.Parse(lowered, ref)
	if err != nil || result == nil {
		return time.Time{}, false
	}
	leftover := lowered[:result.Index] + lowered[result.Index+len(result.Text):]
	if strings.TrimSpace(leftover) != "" {
		return time.Time{}, false
	}
	return result.Time, true
}
