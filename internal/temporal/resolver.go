// Package temporal converts free-form date and time text, interpreted as a
// wall-clock moment in a caller supplied IANA timezone, into absolute
// instants. The resolver never consults the process timezone: every relative
// expression is anchored to the caller's own calendar.
package temporal

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Clock supplies the current instant. Injected so tests can pin time.
type Clock func() time.Time

// Interval is a resolved start/end pair. Both instants carry the caller's
// location, so formatting them reproduces the intended local wall-clock time.
type Interval struct {
	Start time.Time
	End   time.Time
	Zone  string
}

// ParseError reports that no parsing strategy produced a valid moment.
type ParseError struct {
	RawInput string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to interpret date/time %q", e.RawInput)
}

// ZoneError reports that a syntactically valid moment could not be bound to
// the requested zone, either because the zone is unknown or because the local
// time does not exist there (a DST spring-forward gap).
type ZoneError struct {
	Zone   string
	Reason string
}

func (e *ZoneError) Error() string {
	return fmt.Sprintf("timezone %q: %s", e.Zone, e.Reason)
}

// Strategy attempts to interpret the combined date/time text relative to a
// reference moment. Strategies are pure; the resolver tries them in order and
// accepts the first match.
type Strategy func(text string, ref time.Time) (time.Time, bool)

// Resolver resolves date/time text against an injected clock.
type Resolver struct {
	now        Clock
	strategies []Strategy
}

// NewResolver constructs a Resolver with the default strategy chain: strict
// layout combinations first, then free-text interpretation.
func NewResolver(now Clock) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{
		now:        now,
		strategies: []Strategy{StrictFormats, FreeText},
	}
}

// Resolve interprets date and timeText as a local wall-clock moment in zone
// and returns the corresponding absolute interval of the given duration.
//
// The text is parsed against a synthetic reference whose zone-agnostic clock
// fields equal the caller's current local time. This makes expressions like
// "tomorrow" resolve against the caller's calendar date even when the process
// runs in a different zone. The parser output's clock fields are then bound
// to the real zone without shifting the numeric reading.
func (r *Resolver) Resolve(date, timeText, zone string, duration time.Duration) (Interval, error) {
	loc, err := time.LoadLocation(strings.TrimSpace(zone))
	if err != nil {
		return Interval{}, &ZoneError{Zone: zone, Reason: "unknown timezone identifier"}
	}

	ref := syntheticReference(r.now(), loc)
	combined := normalizeDateTime(date, timeText)

	for _, strategy := range r.strategies {
		parsed, ok := strategy(combined, ref)
		if !ok {
			continue
		}
		start, err := bindZone(parsed, loc, zone)
		if err != nil {
			return Interval{}, err
		}
		return Interval{Start: start, End: start.Add(duration), Zone: zone}, nil
	}

	return Interval{}, &ParseError{RawInput: combined}
}

// Now returns the current instant observed in loc, using the injected clock.
// The Past-Time Guard must use this same computation, not a UTC comparison.
func (r *Resolver) Now(loc *time.Location) time.Time {
	return r.now().In(loc)
}

// syntheticReference builds a zone-agnostic moment whose clock fields equal
// the caller's current local reading. The parser treats it as "now".
func syntheticReference(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), local.Second(), 0, time.UTC)
}

// bindZone reattaches the real zone to a zone-agnostic parse result. The
// numeric clock reading must survive unchanged; if it does not, the local
// time does not exist in the zone.
func bindZone(parsed time.Time, loc *time.Location, zone string) (time.Time, error) {
	bound := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), parsed.Hour(), parsed.Minute(), parsed.Second(), 0, loc)
	if bound.Hour() != parsed.Hour() || bound.Minute() != parsed.Minute() {
		return time.Time{}, &ZoneError{
			Zone:   zone,
			Reason: fmt.Sprintf("local time %s does not exist in this zone", parsed.Format("2006-01-02 15:04")),
		}
	}
	return bound, nil
}

var (
	ordinalPattern  = regexp.MustCompile(`\b(\d{1,2})(st|nd|rd|th)\b`)
	meridiemPattern = regexp.MustCompile(`(?i)(\d)\s*([ap])\.?m\b\.?`)
	spacePattern    = regexp.MustCompile(`\s+`)
)

// normalizeDateTime joins the date and time fragments and canonicalizes the
// spellings the strict layouts cannot absorb: ordinal suffixes, meridiem
// case and punctuation, and the midday/midnight words.
func normalizeDateTime(date, timeText string) string {
	date = strings.TrimSpace(date)
	timeText = strings.TrimSpace(timeText)

	switch strings.ToLower(timeText) {
	case "noon", "midday":
		timeText = "12:00 PM"
	case "midnight":
		timeText = "12:00 AM"
	}

	combined := strings.TrimSpace(date + " " + timeText)
	combined = ordinalPattern.ReplaceAllString(combined, "$1")
	combined = meridiemPattern.ReplaceAllStringFunc(combined, func(m string) string {
		sub := meridiemPattern.FindStringSubmatch(m)
		return sub[1] + " " + strings.ToUpper(sub[2]) + "M"
	})
	combined = spacePattern.ReplaceAllString(combined, " ")
	return combined
}
