package domain

// SeatWithinMap reports whether the 1-based (row, seat) pair falls inside an
// airplane geometry of rows x seatsInRow.
func SeatWithinMap(row, seat, rows, seatsInRow int) bool {
	return row >= 1 && row <= rows && seat >= 1 && seat <= seatsInRow
}

// ValidateTicket checks a requested seat against the airplane's physical
// geometry and returns a SeatRangeError naming the offending coordinate and
// its valid range. It does not check whether the seat is free: uniqueness per
// flight is enforced by the tickets table's unique index at commit time.
func ValidateTicket(row, seat int, airplane Airplane) error {
	if !SeatWithinMap(row, seat, airplane.Rows, airplane.SeatsInRow) {
		if row < 1 || row > airplane.Rows {
			return &SeatRangeError{Field: "row", Value: row, Max: airplane.Rows}
		}
		return &SeatRangeError{Field: "seat", Value: seat, Max: airplane.SeatsInRow}
	}
	return nil
}
