// Package normalize holds the pure canonicalizers applied to event input
// before it is persisted: URL slugs, calendar dates, and clock times.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"eventdeck/internal/domain"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a URL-safe identifier from a title: trimmed, lowercased, with
// every run of characters outside [a-z0-9] collapsed to a single hyphen and
// edge hyphens stripped. Slug never fails; callers treat an empty result as
// invalid input.
func Slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// dateLayouts are the accepted input shapes for event dates. All parsing is
// pinned to UTC so the resulting calendar date cannot shift with the host
// timezone.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// Date canonicalizes free-form date input to an ISO calendar date
// (YYYY-MM-DD). Unparseable input returns domain.ErrInvalidEventDate.
func Date(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", domain.ErrInvalidEventDate
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err != nil {
			continue
		}
		return t.UTC().Format("2006-01-02"), nil
	}
	return "", domain.ErrInvalidEventDate
}

// timePattern matches hours[:minutes][am|pm]: 1-2 digit hours, optional
// 2-digit minutes, optional meridiem after optional whitespace.
var timePattern = regexp.MustCompile(`^([0-9]{1,2})(?::([0-9]{2}))?\s*(am|pm)?$`)

// Time canonicalizes free-form time input (12h or 24h) to a zero-padded
// 24-hour HH:MM string. With a meridiem the hour must be 1-12 (12am -> 00,
// 12pm -> 12, 1pm -> 13); without one the hour is taken as already 24-hour.
// Unparseable or out-of-range input returns domain.ErrInvalidEventTime.
func Time(raw string) (string, error) {
	m := timePattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(raw)))
	if m == nil {
		return "", domain.ErrInvalidEventTime
	}

	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return "", domain.ErrInvalidEventTime
	}
	minutes := 0
	if m[2] != "" {
		minutes, err = strconv.Atoi(m[2])
		if err != nil {
			return "", domain.ErrInvalidEventTime
		}
	}

	if m[3] != "" {
		if hours < 1 || hours > 12 {
			return "", domain.ErrInvalidEventTime
		}
		hours %= 12
		if m[3] == "pm" {
			hours += 12
		}
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return "", domain.ErrInvalidEventTime
	}

	return fmt.Sprintf("%02d:%02d", hours, minutes), nil
}
