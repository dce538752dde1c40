// Package pipeline implements the validate-then-commit hooks that run inside
// the storage layer immediately before a record is written. Each entity has
// an ordered list of steps; the first failure aborts the whole commit and the
// candidate is discarded, so nothing is ever partially persisted.
package pipeline

import (
	"strings"

	"eventdeck/internal/domain"
	"eventdeck/internal/normalize"
)

// EventStep validates or rewrites an event candidate. titleChanged reports
// whether the title was set as part of the current write.
type EventStep func(e *domain.Event, titleChanged bool) error

// Event is the ordered commit pipeline for event records.
type Event struct {
	steps []EventStep
}

// NewEvent returns the event pipeline with its steps in commit order. The
// order matters: slug recomputation and the date/time rewrites assume the
// presence checks have already passed.
func NewEvent() *Event {
	return &Event{steps: []EventStep{
		requiredScalars,
		agendaEntries,
		tagEntries,
		refreshSlug,
		canonicalDate,
		canonicalTime,
	}}
}

// Run executes every step in order, stopping at the first failure. On
// success the candidate's slug, date, and time have been rewritten in place
// and the record is safe to commit.
func (p *Event) Run(e *domain.Event, titleChanged bool) error {
	for _, step := range p.steps {
		if err := step(e, titleChanged); err != nil {
			return err
		}
	}
	return nil
}

// requiredEventScalars lists the scalar fields every event must carry,
// checked in this order.
var requiredEventScalars = []struct {
	name  string
	value func(*domain.Event) string
}{
	{"title", func(e *domain.Event) string { return e.Title }},
	{"description", func(e *domain.Event) string { return e.Description }},
	{"overview", func(e *domain.Event) string { return e.Overview }},
	{"image", func(e *domain.Event) string { return e.Image }},
	{"venue", func(e *domain.Event) string { return e.Venue }},
	{"location", func(e *domain.Event) string { return e.Location }},
	{"date", func(e *domain.Event) string { return e.Date }},
	{"time", func(e *domain.Event) string { return e.Time }},
	{"mode", func(e *domain.Event) string { return e.Mode }},
	{"audience", func(e *domain.Event) string { return e.Audience }},
	{"organizer", func(e *domain.Event) string { return e.Organizer }},
}

func requiredScalars(e *domain.Event, _ bool) error {
	for _, field := range requiredEventScalars {
		if strings.TrimSpace(field.value(e)) == "" {
			return &domain.MissingFieldError{Field: field.name}
		}
	}
	return nil
}

func agendaEntries(e *domain.Event, _ bool) error {
	if !allNonBlank(e.Agenda) {
		return domain.ErrInvalidAgenda
	}
	return nil
}

func tagEntries(e *domain.Event, _ bool) error {
	if !allNonBlank(e.Tags) {
		return domain.ErrInvalidTags
	}
	return nil
}

func allNonBlank(entries []string) bool {
	if len(entries) == 0 {
		return false
	}
	for _, entry := range entries {
		if strings.TrimSpace(entry) == "" {
			return false
		}
	}
	return true
}

// refreshSlug recomputes the slug from the title when the title was just
// changed or no slug exists yet. An unchanged title leaves the slug stable.
func refreshSlug(e *domain.Event, titleChanged bool) error {
	if !titleChanged && strings.TrimSpace(e.Slug) != "" {
		return nil
	}
	slug := normalize.Slug(e.Title)
	if slug == "" {
		return domain.ErrEmptySlug
	}
	e.Slug = slug
	return nil
}

func canonicalDate(e *domain.Event, _ bool) error {
	date, err := normalize.Date(e.Date)
	if err != nil {
		return err
	}
	e.Date = date
	return nil
}

func canonicalTime(e *domain.Event, _ bool) error {
	t, err := normalize.Time(e.Time)
	if err != nil {
		return err
	}
	e.Time = t
	return nil
}
