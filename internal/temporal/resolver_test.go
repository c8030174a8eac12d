package temporal

import (
	"errors"
	"testing"
	"time"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("failed to load location %s: %v", name, err)
	}
	return loc
}

func TestResolver_Resolve_StrictFormats(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		date     string
		timeText string
		zone     string
		want     time.Time
	}{
		{
			name:     "iso date with 24h time",
			date:     "2024-06-10",
			timeText: "15:00",
			zone:     "UTC",
			want:     time.Date(2024, time.June, 10, 15, 0, 0, 0, time.UTC),
		},
		{
			name:     "iso date with meridiem time",
			date:     "2024-06-10",
			timeText: "3:04 PM",
			zone:     "UTC",
			want:     time.Date(2024, time.June, 10, 15, 4, 0, 0, time.UTC),
		},
		{
			name:     "slash date resolves day first",
			date:     "10/07/2024",
			timeText: "14:30",
			zone:     "UTC",
			want:     time.Date(2024, time.July, 10, 14, 30, 0, 0, time.UTC),
		},
		{
			name:     "spelled out month with ordinal",
			date:     "June 3rd",
			timeText: "noon",
			zone:     "UTC",
			want:     time.Date(2024, time.June, 3, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "yearless date before today rolls to next year",
			date:     "January 15",
			timeText: "10:00",
			zone:     "UTC",
			want:     time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "compact meridiem is normalized",
			date:     "2024-06-10",
			timeText: "2:30pm",
			zone:     "UTC",
			want:     time.Date(2024, time.June, 10, 14, 30, 0, 0, time.UTC),
		},
		{
			name:     "midnight keyword",
			date:     "2024-06-10",
			timeText: "midnight",
			zone:     "UTC",
			want:     time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {

		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resolver := NewResolver(fixedClock(now))
			interval, err := resolver.Resolve(tc.date, tc.timeText, tc.zone, 30*time.Minute)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if !interval.Start.Equal(tc.want) {
				t.Fatalf("expected start %v, got %v", tc.want, interval.Start)
			}
			if !interval.End.Equal(tc.want.Add(30 * time.Minute)) {
				t.Fatalf("expected end %v, got %v", tc.want.Add(30*time.Minute), interval.End)
			}
			if interval.Zone != tc.zone {
				t.Fatalf("expected zone %s, got %s", tc.zone, interval.Zone)
			}
		})
	}
}

func TestResolver_Resolve_WallClockRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	resolver := NewResolver(fixedClock(now))

	interval, err := resolver.Resolve("2024-06-10", "15:00", "Asia/Tokyo", time.Hour)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if got := interval.Start.Format("2006-01-02 15:04"); got != "2024-06-10 15:00" {
		t.Fatalf("expected local wall clock to survive, got %s", got)
	}
	tokyo := mustLocation(t, "Asia/Tokyo")
	want := time.Date(2024, time.June, 10, 15, 0, 0, 0, tokyo)
	if !interval.Start.Equal(want) {
		t.Fatalf("expected %v, got %v", want, interval.Start)
	}
}

func TestResolver_Resolve_FreeTextUsesCallerCalendar(t *testing.T) {
	t.Parallel()

	// 22:30 UTC is already 01:30 the next day in Istanbul, so "tomorrow" must
	// be computed from the Istanbul date, not the process date.
	now := time.Date(2024, time.June, 1, 22, 30, 0, 0, time.UTC)
	resolver := NewResolver(fixedClock(now))

	interval, err := resolver.Resolve("tomorrow", "11 PM", "Europe/Istanbul", time.Hour)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	istanbul := mustLocation(t, "Europe/Istanbul")
	want := time.Date(2024, time.June, 3, 23, 0, 0, 0, istanbul)
	if !interval.Start.Equal(want) {
		t.Fatalf("expected %v, got %v", want, interval.Start)
	}
}

func TestResolver_Resolve_UnknownZone(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(fixedClock(time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)))

	_, err := resolver.Resolve("2024-06-10", "15:00", "Mars/Olympus", 30*time.Minute)
	var zoneErr *ZoneError
	if !errors.As(err, &zoneErr) {
		t.Fatalf("expected ZoneError, got %v", err)
	}
	if zoneErr.Zone != "Mars/Olympus" {
		t.Fatalf("expected zone to be echoed, got %s", zoneErr.Zone)
	}
}

func TestResolver_Resolve_DSTGap(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(fixedClock(time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)))

	// 02:30 on 2024-03-10 was skipped by the spring-forward transition.
	_, err := resolver.Resolve("2024-03-10", "02:30", "America/New_York", 30*time.Minute)
	var zoneErr *ZoneError
	if !errors.As(err, &zoneErr) {
		t.Fatalf("expected ZoneError for nonexistent local time, got %v", err)
	}
}

func TestResolver_Resolve_RejectsPartialFreeTextMatch(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(fixedClock(time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)))

	// A misspelled date next to a parseable time must not resolve to today
	// at that time; the unreadable fragment has to surface as a failure.
	_, err := resolver.Resolve("Jaunary 15", "10:00", "UTC", 30*time.Minute)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for partially understood input, got %v", err)
	}
}

func TestResolver_Resolve_ParseFailure(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(fixedClock(time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)))

	_, err := resolver.Resolve("the purple elephant", "whenever", "UTC", 30*time.Minute)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.RawInput != "the purple elephant whenever" {
		t.Fatalf("expected raw input to be echoed, got %q", parseErr.RawInput)
	}
}

func TestNormalizeDateTime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		date     string
		timeText string
		want     string
	}{
		{"ordinal stripped", "June 3rd", "15:00", "June 3 15:00"},
		{"compact meridiem", "2024-06-10", "2:30pm", "2024-06-10 2:30 PM"},
		{"dotted meridiem", "2024-06-10", "9 a.m.", "2024-06-10 9 AM"},
		{"noon keyword", "2024-06-10", "noon", "2024-06-10 12:00 PM"},
		{"midnight keyword", "2024-06-10", "midnight", "2024-06-10 12:00 AM"},
		{"whitespace collapsed", " 2024-06-10 ", "  15:00 ", "2024-06-10 15:00"},
	}

	for _, tc := range cases {

		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeDateTime(tc.date, tc.timeText); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
