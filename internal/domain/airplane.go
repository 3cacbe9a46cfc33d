package domain

type AirplaneType struct {
	ID   int64
	Name string
}

type Airplane struct {
	ID             int64
	Name           string
	AirplaneTypeID int64
	Rows           int
	SeatsInRow     int
	// Populated on reads only.
	AirplaneTypeName string
}

// Capacity is rows times seats per row. It is always derived from the stored
// geometry, never stored on its own.
func (a Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

func (a Airplane) Validate() error {
	if a.Rows < 1 {
		return &FieldError{Field: "rows", Message: "must be at least 1"}
	}
	if a.SeatsInRow < 1 {
		return &FieldError{Field: "seats_in_row", Message: "must be at least 1"}
	}
	return nil
}
