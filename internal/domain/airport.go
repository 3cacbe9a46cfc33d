package domain

type Airport struct {
	ID             int64
	Name           string
	ClosestBigCity string
	// RoutesTo holds destination airport names of routes departing this
	// airport. Populated on reads only.
	RoutesTo []string
}

type Route struct {
	ID            int64
	SourceID      int64
	DestinationID int64
	Distance      int
	// Populated on reads only.
	SourceName      string
	DestinationName string
}

// Validate rejects physically impossible routes before they reach storage.
func (r Route) Validate() error {
	if r.SourceID == r.DestinationID {
		return ErrInvalidRoute
	}
	if r.Distance <= 0 {
		return &FieldError{Field: "distance", Message: "must be positive"}
	}
	return nil
}

// FieldError reports a single invalid request field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Message
}
