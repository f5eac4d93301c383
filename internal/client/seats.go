package client

import (
	"sync"

	"cinemabooking/internal/domain"
)

// SeatList is an observable list of seats. Subscribers are notified
// synchronously after every Set, so a reader that runs after the mutation
// always observes the reconciled state.
type SeatList struct {
	mu     sync.Mutex
	seats  []domain.Seat
	subs   map[int]func([]domain.Seat)
	nextID int
}

// NewSeatList returns a SeatList holding the given seats.
func NewSeatList(seats []domain.Seat) *SeatList {
	return &SeatList{seats: seats, subs: make(map[int]func([]domain.Seat))}
}

// Seats returns the current seats. The returned slice must not be mutated.
func (l *SeatList) Seats() []domain.Seat {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seats
}

// Set replaces the seats and notifies every subscriber with the new value.
func (l *SeatList) Set(seats []domain.Seat) {
	l.mu.Lock()
	l.seats = seats
	subs := make([]func([]domain.Seat), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()
	for _, fn := range subs {
		fn(seats)
	}
}

// Add appends seats that are not already present and notifies subscribers.
func (l *SeatList) Add(seats ...domain.Seat) {
	current := l.Seats()
	next := make([]domain.Seat, len(current), len(current)+len(seats))
	copy(next, current)
	for _, s := range seats {
		if !domain.ContainsSeat(next, s) {
			next = append(next, s)
		}
	}
	l.Set(next)
}

// Subscribe registers fn to run on every Set. The returned function cancels
// the subscription.
func (l *SeatList) Subscribe(fn func([]domain.Seat)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

// SeatSelection maintains the set of seats the user has picked for a session,
// keeping it consistent with the seats already booked: booked seats cannot be
// toggled in, and a selected seat that becomes booked is dropped as soon as
// the booked list changes.
type SeatSelection struct {
	mu          sync.Mutex
	booked      *SeatList
	selected    []domain.Seat
	version     int
	unsubscribe func()
}

// NewSeatSelection creates a selection watching booked. The initial selection
// is kept exactly as provided; the caller guarantees it excludes booked seats.
func NewSeatSelection(booked *SeatList, initial []domain.Seat) *SeatSelection {
	sel := &SeatSelection{
		booked:   booked,
		selected: initial,
	}
	if sel.selected == nil {
		sel.selected = []domain.Seat{}
	}
	sel.unsubscribe = booked.Subscribe(sel.dropBooked)
	return sel
}

// dropBooked removes any selected seat present in the new booked list.
// The exposed slice is left untouched when nothing was dropped.
func (s *SeatSelection) dropBooked(bookedSeats []domain.Seat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]domain.Seat, 0, len(s.selected))
	for _, seat := range s.selected {
		if !domain.ContainsSeat(bookedSeats, seat) {
			kept = append(kept, seat)
		}
	}
	if len(kept) == len(s.selected) {
		return
	}
	s.selected = kept
	s.version++
}

// Selected returns the current selection. The slice identity only changes
// when the selection itself changes, so callers may cache derived state
// keyed on it. It must not be mutated.
func (s *SeatSelection) Selected() []domain.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Version increments exactly when the exposed selection changes.
func (s *SeatSelection) Version() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Toggle flips membership of seat in the selection. Booked seats are ignored.
func (s *SeatSelection) Toggle(seat domain.Seat) {
	if domain.ContainsSeat(s.booked.Seats(), seat) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if domain.ContainsSeat(s.selected, seat) {
		kept := make([]domain.Seat, 0, len(s.selected)-1)
		for _, existing := range s.selected {
			if existing != seat {
				kept = append(kept, existing)
			}
		}
		s.selected = kept
	} else {
		next := make([]domain.Seat, len(s.selected), len(s.selected)+1)
		copy(next, s.selected)
		s.selected = append(next, seat)
	}
	s.version++
}

// SetSelection replaces the selection with seats, minus any currently booked
// ones. When the filtered result is set-equal to the current selection the
// update is suppressed and the exposed slice keeps its identity.
func (s *SeatSelection) SetSelection(seats []domain.Seat) {
	bookedSeats := s.booked.Seats()
	filtered := make([]domain.Seat, 0, len(seats))
	for _, seat := range seats {
		if !domain.ContainsSeat(bookedSeats, seat) {
			filtered = append(filtered, seat)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if domain.SeatSetsEqual(filtered, s.selected) {
		return
	}
	s.selected = filtered
	s.version++
}

// Reset clears the selection unconditionally.
func (s *SeatSelection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.selected) == 0 {
		return
	}
	s.selected = []domain.Seat{}
	s.version++
}

// Close cancels the booked-seats subscription.
func (s *SeatSelection) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
