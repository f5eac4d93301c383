// Package client implements the client-side core of the booking flow:
// grouping raw sessions into browsable date/venue buckets, deriving booking
// lifecycle state from timestamps and the configured payment window, and
// reconciling an in-progress seat selection against externally booked seats.
package client

import (
	"sort"
	"time"

	"cinemabooking/internal/domain"
)

// DateLabel formats the calendar date of t as "DD.MM" in the offset the
// timestamp itself encodes. No additional timezone conversion is applied.
func DateLabel(t time.Time) string {
	return t.Format("02.01")
}

// TimeLabel formats the time of day of t as "HH:MM".
func TimeLabel(t time.Time) string {
	return t.Format("15:04")
}

// GroupOptions configures GroupSessionsByDate.
type GroupOptions struct {
	// EntityLookup maps a grouping key to its display name.
	EntityLookup map[int]string
	// FallbackName is used for keys absent from EntityLookup. All sessions
	// with unknown keys share a single group per date under this name.
	FallbackName string
}

type entityBucket struct {
	entityID int
	name     string
	slots    []domain.SessionSlot
}

type dateBucket struct {
	sortKey string // "2006-01-02", orders chronologically
	label   string
	byName  map[string]*entityBucket
}

// GroupSessionsByDate groups sessions first by calendar date, then by the key
// keyFn extracts (cinema id or movie id), producing date groups sorted
// chronologically whose entity groups are sorted by display name and whose
// slots are sorted ascending by start time. The result is computed fresh on
// every call; the input is never mutated.
func GroupSessionsByDate(sessions []domain.Session, keyFn func(domain.Session) int, opts GroupOptions) []domain.DateGroup {
	if len(sessions) == 0 {
		return []domain.DateGroup{}
	}

	dates := make(map[string]*dateBucket)
	for _, s := range sessions {
		sortKey := s.StartTime.Format("2006-01-02")
		db, ok := dates[sortKey]
		if !ok {
			db = &dateBucket{
				sortKey: sortKey,
				label:   DateLabel(s.StartTime),
				byName:  make(map[string]*entityBucket),
			}
			dates[sortKey] = db
		}

		key := keyFn(s)
		name, known := opts.EntityLookup[key]
		if !known {
			name = opts.FallbackName
		}
		eb, ok := db.byName[name]
		if !ok {
			eb = &entityBucket{entityID: key, name: name}
			db.byName[name] = eb
		}
		eb.slots = append(eb.slots, domain.SessionSlot{
			ID:        s.ID,
			MovieID:   s.MovieID,
			CinemaID:  s.CinemaID,
			StartTime: s.StartTime,
			TimeLabel: TimeLabel(s.StartTime),
		})
	}

	ordered := make([]*dateBucket, 0, len(dates))
	for _, db := range dates {
		ordered = append(ordered, db)
	}
	// The sort key is the full ISO date, not the display label, so months
	// never compare lexically ("02.01" vs "31.12").
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].sortKey < ordered[j].sortKey })

	groups := make([]domain.DateGroup, 0, len(ordered))
	for _, db := range ordered {
		items := make([]domain.EntityGroup, 0, len(db.byName))
		for _, eb := range db.byName {
			sort.SliceStable(eb.slots, func(i, j int) bool {
				return eb.slots[i].StartTime.Before(eb.slots[j].StartTime)
			})
			items = append(items, domain.EntityGroup{
				EntityID:   eb.entityID,
				EntityName: eb.name,
				Slots:      eb.slots,
			})
		}
		sort.Slice(items, func(i, j int) bool { return items[i].EntityName < items[j].EntityName })
		groups = append(groups, domain.DateGroup{DateLabel: db.label, Items: items})
	}
	return groups
}
