package model

import (
	"fmt"
	"time"
)

// PollSentinel in a posting plan marks a day that posts a poll
// instead of a content item
const PollSentinel = "poll"

// PostingPlan maps weekday names to a category or the poll sentinel.
// Static configuration, read-only at runtime.
type PostingPlan map[string]string

// DefaultPostingPlan mirrors the channel's weekly schedule
func DefaultPostingPlan() PostingPlan {
	return PostingPlan{
		"Monday":    string(CategoryStudentVisa),
		"Tuesday":   string(CategoryStartupVisa),
		"Wednesday": string(CategoryWorkPermit),
		"Thursday":  string(CategoryScholarship),
		"Friday":    PollSentinel,
		"Saturday":  string(CategoryImmigrationUpdate),
		"Sunday":    string(CategoryGeneral),
	}
}

// Slot describes what a single run should produce
type Slot struct {
	Weekday  string
	Poll     bool
	Category Category
}

// SlotFor resolves the plan entry for the given time
func (p PostingPlan) SlotFor(now time.Time) (Slot, error) {
	day := now.Weekday().String()
	entry, ok := p[day]
	if !ok {
		return Slot{}, fmt.Errorf("posting plan has no entry for %s", day)
	}
	if entry == PollSentinel {
		return Slot{Weekday: day, Poll: true}, nil
	}
	return Slot{Weekday: day, Category: Category(entry)}, nil
}

// Validate checks that every entry names a known category or the poll
// sentinel and that all seven weekdays are covered
func (p PostingPlan) Validate() error {
	for d := time.Sunday; d <= time.Saturday; d++ {
		entry, ok := p[d.String()]
		if !ok {
			return fmt.Errorf("posting plan missing %s", d)
		}
		if entry == PollSentinel {
			continue
		}
		if !ValidClassifierCategory(entry) && entry != string(CategoryExternalLink) {
			return fmt.Errorf("posting plan %s: unknown category %q", d, entry)
		}
	}
	return nil
}
