package domain

// Seat identifies a single seat by row and number. Equality is structural:
// two seats are the same seat when both coordinates match.
type Seat struct {
	RowNumber  int `json:"rowNumber"`
	SeatNumber int `json:"seatNumber"`
}

// SeatMap describes the seat layout of a session's hall.
type SeatMap struct {
	Rows        int `json:"rows"`
	SeatsPerRow int `json:"seatsPerRow"`
}

// ContainsSeat reports whether seat is present in seats.
func ContainsSeat(seats []Seat, seat Seat) bool {
	for _, s := range seats {
		if s == seat {
			return true
		}
	}
	return false
}

// SeatSetsEqual reports whether a and b hold the same seats, ignoring order.
// Duplicate seats are counted, so [a, a] is not equal to [a].
func SeatSetsEqual(a, b []Seat) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[Seat]int, len(a))
	for _, s := range a {
		counts[s]++
	}
	for _, s := range b {
		counts[s]--
		if counts[s] < 0 {
			return false
		}
	}
	return true
}
