package stats

// SalesIn returns the dated sales created inside w
func SalesIn(sales []Sale, w Window) []Sale {
	out := make([]Sale, 0)
	for _, s := range sales {
		if !s.CreatedAt.IsZero() && w.Contains(s.CreatedAt) {
			out = append(out, s)
		}
	}
	return out
}

// AppointmentsIn returns the dated appointments created inside w
func AppointmentsIn(appointments []Appointment, w Window) []Appointment {
	out := make([]Appointment, 0)
	for _, a := range appointments {
		if !a.CreatedAt.IsZero() && w.Contains(a.CreatedAt) {
			out = append(out, a)
		}
	}
	return out
}

func datedSales(sales []Sale) []Sale {
	out := make([]Sale, 0, len(sales))
	for _, s := range sales {
		if !s.CreatedAt.IsZero() {
			out = append(out, s)
		}
	}
	return out
}

func datedAppointments(appointments []Appointment) []Appointment {
	out := make([]Appointment, 0, len(appointments))
	for _, a := range appointments {
		if !a.CreatedAt.IsZero() {
			out = append(out, a)
		}
	}
	return out
}

// ForCompany returns the sales owned by the company
func ForCompany(sales []Sale, companyID uint) []Sale {
	out := make([]Sale, 0)
	for _, s := range sales {
		if s.Company != nil && s.Company.ID == companyID {
			out = append(out, s)
		}
	}
	return out
}

// CreditedTo returns the sales on which the user is credited
func CreditedTo(sales []Sale, userID uint) []Sale {
	out := make([]Sale, 0)
	for _, s := range sales {
		if s.CreditsUser(userID) {
			out = append(out, s)
		}
	}
	return out
}

// OwnedBy returns the appointments belonging to any of the users
func OwnedBy(appointments []Appointment, userIDs ...uint) []Appointment {
	ids := make(map[uint]struct{}, len(userIDs))
	for _, id := range userIDs {
		ids[id] = struct{}{}
	}
	out := make([]Appointment, 0)
	for _, a := range appointments {
		if _, ok := ids[a.UserID]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Comparison holds the records of the two compared periods
type Comparison struct {
	Resolution     Resolution
	Current        Record
	Previous       Record
	SkippedRecords int
}

// Compare aggregates the current and previous periods of a resolution.
// Records without a creation date are skipped and counted.
func Compare(sales []Sale, appointments []Appointment, res Resolution) Comparison {
	cmp := Comparison{
		Resolution:     res,
		SkippedRecords: CountUndated(sales, appointments),
	}

	if res.CurrentAllTime {
		cmp.Current = Aggregate(datedSales(sales), datedAppointments(appointments))
	} else {
		cmp.Current = Aggregate(SalesIn(sales, res.Current), AppointmentsIn(appointments, res.Current))
	}

	if res.PreviousSynthetic() {
		cmp.Previous = Synthesize(cmp.Current)
	} else {
		cmp.Previous = Aggregate(SalesIn(sales, res.Previous), AppointmentsIn(appointments, res.Previous))
	}
	return cmp
}
