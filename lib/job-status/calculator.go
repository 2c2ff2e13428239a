// Package jobstatus derives the lifecycle status of a job from its deadline and posted date.
package jobstatus

import (
	"math"
	"strings"
	"time"

	"ats-backend/models"
)

const (
	DefaultNewPeriodDays   = 3
	DefaultClosingSoonDays = 7
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type Calculator struct {
	Now             func() time.Time
	NewPeriodDays   int // a posted job stays new for this many days
	ClosingSoonDays int // a deadline this many days away or closer makes the job closing-soon
}

var Instance = NewCalculator(DefaultNewPeriodDays, DefaultClosingSoonDays)

func NewCalculator(newPeriodDays, closingSoonDays int) Calculator {
	if newPeriodDays < 0 {
		newPeriodDays = DefaultNewPeriodDays
	}
	if closingSoonDays < 0 {
		closingSoonDays = DefaultClosingSoonDays
	}
	return Calculator{
		Now:             time.Now,
		NewPeriodDays:   newPeriodDays,
		ClosingSoonDays: closingSoonDays,
	}
}

// Compute takes optional ISO date strings. Unparseable values count as absent.
func (c Calculator) Compute(deadline, postedDate *string) models.JobStatus {
	now := c.now()
	return c.ComputeTime(parseDate(deadline, now.Location()), parseDate(postedDate, now.Location()))
}

func (c Calculator) ComputeTime(deadline, postedDate *time.Time) models.JobStatus {
	if deadline == nil && postedDate == nil {
		return models.JobStatusDraft
	}
	now := c.now()
	if deadline != nil {
		daysLeft := daysBetween(now, *deadline)
		if daysLeft < 0 {
			return models.JobStatusClosed
		}
		if daysLeft <= c.ClosingSoonDays {
			return models.JobStatusClosingSoon
		}
	}
	if postedDate == nil {
		return models.JobStatusNew
	}
	if daysBetween(*postedDate, now) < c.NewPeriodDays {
		return models.JobStatusNew
	}
	return models.JobStatusActive
}

func (c Calculator) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// ParseDate reads an ISO date or timestamp, nil when absent or malformed.
func ParseDate(value *string) *time.Time {
	return parseDate(value, time.Local)
}

func parseDate(value *string, loc *time.Location) *time.Time {
	if value == nil {
		return nil
	}
	text := strings.TrimSpace(*value)
	if text == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, text, loc)
		if err == nil {
			t = t.In(loc)
			return &t
		}
	}
	return nil
}

// daysBetween counts calendar days from a to b in a's location.
func daysBetween(a, b time.Time) int {
	loc := a.Location()
	b = b.In(loc)
	from := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, loc)
	to := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, loc)
	return int(math.Round(to.Sub(from).Hours() / 24))
}
