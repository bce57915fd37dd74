package stats

import "fmt"

// InvalidRecordError reports a record that breaks the data model and cannot be
// aggregated
type InvalidRecordError struct {
	Kind   string
	ID     uint
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Kind, e.ID, e.Reason)
}

// ValidateSales rejects the first sale that has no owning company.
// Entity classification needs the company of every sale.
func ValidateSales(sales []Sale) error {
	for _, s := range sales {
		if s.Company == nil {
			return &InvalidRecordError{Kind: "sale", ID: s.ID, Reason: "sale has no company"}
		}
	}
	return nil
}

// CountUndated returns how many records have no usable creation date. Those
// records are left out of every period.
func CountUndated(sales []Sale, appointments []Appointment) int {
	n := 0
	for _, s := range sales {
		if s.CreatedAt.IsZero() {
			n++
		}
	}
	for _, a := range appointments {
		if a.CreatedAt.IsZero() {
			n++
		}
	}
	return n
}
