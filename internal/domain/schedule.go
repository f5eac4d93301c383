package domain

import "time"

// SessionSlot is a session as it appears inside an entity group: the raw
// session fields plus a derived display time label ("HH:MM").
type SessionSlot struct {
	ID        int       `json:"id"`
	MovieID   int       `json:"movieId"`
	CinemaID  int       `json:"cinemaId"`
	StartTime time.Time `json:"startTime"`
	TimeLabel string    `json:"timeLabel"`
}

// EntityGroup is a bucket of session slots keyed by a cross-cutting dimension
// such as cinema or movie. Slots are sorted ascending by start time.
type EntityGroup struct {
	EntityID   int           `json:"entityId"`
	EntityName string        `json:"entityName"`
	Slots      []SessionSlot `json:"slots"`
}

// DateGroup holds all entity groups for one calendar date. Items are sorted
// by entity name; DateGroups themselves are sorted chronologically.
type DateGroup struct {
	DateLabel string        `json:"dateLabel"`
	Items     []EntityGroup `json:"items"`
}
