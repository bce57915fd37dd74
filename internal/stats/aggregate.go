package stats

import (
	"github.com/fpemc/crm-api/internal/domain"
	"github.com/shopspring/decimal"
)

// EntityRevenue is the revenue of one reporting entity
type EntityRevenue struct {
	CaTotal float64 `json:"caTotal"`
	CaVA    float64 `json:"caVA"`
}

// Record is the statistics of one scope over one period. It is derived on
// demand and never stored.
type Record struct {
	SalesCount     float64 `json:"salesCount"`
	CustomersCount float64 `json:"customersCount"`

	Revenue      float64 `json:"revenue"`
	RevenueVA    float64 `json:"revenueVA"`
	RevenueR1    float64 `json:"revenueR1"`
	RevenueREF   float64 `json:"revenueREF"`
	RevenueOther float64 `json:"revenueOther"`

	CountR1        float64 `json:"countR1"`
	CountR1Binome  float64 `json:"countR1Binome"`
	CountREF       float64 `json:"countREF"`
	CountREFBinome float64 `json:"countREFBinome"`
	CountVA        float64 `json:"countVA"`
	CountVABinome  float64 `json:"countVABinome"`

	CancelledCount float64 `json:"cancelledCount"`
	RealisedCount  float64 `json:"realisedCount"`
	CancelPercent  float64 `json:"cancelPercent"`

	CountForAverageCart   float64 `json:"countForAverageCart"`
	CountForAverageCartVA float64 `json:"countForAverageCartVA"`
	AverageCart           float64 `json:"averageCart"`
	AverageCartVA         float64 `json:"averageCartVA"`

	Appointments           float64 `json:"appointments"`
	EffectiveAppointments  float64 `json:"effectiveAppointments"`
	Transformed            float64 `json:"transformed"`
	EnteredWithoutFollowup float64 `json:"enteredWithoutFollowup"`
	TransformationRate     float64 `json:"transformationRate"`
	EntryRate              float64 `json:"entryRate"`

	EntityStats map[Entity]EntityRevenue `json:"entityStats"`

	// Synthetic marks a placeholder record derived from another period
	Synthetic bool `json:"synthetic"`
}

type entityTotals struct {
	caTotal decimal.Decimal
	caVA    decimal.Decimal
}

type accumulator struct {
	revenue, revenueVA, revenueR1, revenueREF, revenueOther decimal.Decimal

	countR1, countREF, countVA                   float64
	binomeR1, binomeREF, binomeVA                int
	cancelled, realised                          int
	forAverageCart, forAverageCartVA             int
	appointments, upcoming, transformed, entered int

	r1Customers map[uint]struct{}
	entities    map[Entity]*entityTotals
}

func newAccumulator() *accumulator {
	acc := &accumulator{
		r1Customers: make(map[uint]struct{}),
		entities:    make(map[Entity]*entityTotals, len(ReportingEntities)),
	}
	for _, e := range ReportingEntities {
		acc.entities[e] = &entityTotals{}
	}
	return acc
}

// Aggregate folds sales and appointments into a single record. Every sale is
// visited once; sales must have passed ValidateSales.
func Aggregate(sales []Sale, appointments []Appointment) Record {
	acc := newAccumulator()
	for i := range sales {
		acc.addSale(sales[i])
	}
	for i := range appointments {
		acc.addAppointment(appointments[i])
	}
	return acc.record()
}

func (a *accumulator) addSale(s Sale) {
	class := Classify(s)
	if class.Cancelled {
		a.cancelled++
		return
	}
	a.realised++

	amount := ExtractRevenue(s)
	credit := countCredit(s)
	binome := IsMultiSeller(s)
	entity := a.entities[class.Entity]

	if class.Source == SourceVA {
		a.revenueVA = a.revenueVA.Add(amount)
		a.countVA += credit
		if binome {
			a.binomeVA++
		}
		a.forAverageCartVA++
		if entity != nil {
			entity.caVA = entity.caVA.Add(amount)
		}
		return
	}

	a.revenue = a.revenue.Add(amount)
	a.forAverageCart++
	if entity != nil {
		entity.caTotal = entity.caTotal.Add(amount)
	}

	switch class.Source {
	case SourceR1:
		a.revenueR1 = a.revenueR1.Add(amount)
		a.countR1 += credit
		if binome {
			a.binomeR1++
		}
		if s.CustomerID != 0 {
			a.r1Customers[s.CustomerID] = struct{}{}
		}
	case SourceREF:
		a.revenueREF = a.revenueREF.Add(amount)
		a.countREF += credit
		if binome {
			a.binomeREF++
		}
	default:
		a.revenueOther = a.revenueOther.Add(amount)
	}
}

func (a *accumulator) addAppointment(ap Appointment) {
	a.appointments++
	switch ap.Status {
	case domain.AppointmentStatusUpcoming:
		a.upcoming++
	case domain.AppointmentStatusConvertedToSale:
		a.transformed++
	case domain.AppointmentStatusNotFollowedUp:
		a.entered++
	}
}

func (a *accumulator) record() Record {
	r := Record{
		CustomersCount:         float64(len(a.r1Customers)),
		Revenue:                a.revenue.InexactFloat64(),
		RevenueVA:              a.revenueVA.InexactFloat64(),
		RevenueR1:              a.revenueR1.InexactFloat64(),
		RevenueREF:             a.revenueREF.InexactFloat64(),
		RevenueOther:           a.revenueOther.InexactFloat64(),
		CountR1:                a.countR1,
		CountR1Binome:          float64(a.binomeR1),
		CountREF:               a.countREF,
		CountREFBinome:         float64(a.binomeREF),
		CountVA:                a.countVA,
		CountVABinome:          float64(a.binomeVA),
		CancelledCount:         float64(a.cancelled),
		RealisedCount:          float64(a.realised),
		CountForAverageCart:    float64(a.forAverageCart),
		CountForAverageCartVA:  float64(a.forAverageCartVA),
		Appointments:           float64(a.appointments),
		Transformed:            float64(a.transformed),
		EnteredWithoutFollowup: float64(a.entered),
		EntityStats:            make(map[Entity]EntityRevenue, len(a.entities)),
	}
	r.SalesCount = r.CountR1 + r.CountREF + r.CountVA

	if total := a.cancelled + a.realised; total > 0 {
		r.CancelPercent = 100 * float64(a.cancelled) / float64(total)
	}
	if a.forAverageCart > 0 {
		r.AverageCart = a.revenue.Div(decimal.NewFromInt(int64(a.forAverageCart))).InexactFloat64()
	}
	if a.forAverageCartVA > 0 {
		r.AverageCartVA = a.revenueVA.Div(decimal.NewFromInt(int64(a.forAverageCartVA))).InexactFloat64()
	}

	effective := a.appointments - a.upcoming
	r.EffectiveAppointments = float64(effective)
	if effective > 0 {
		r.TransformationRate = 100 * float64(a.transformed) / float64(effective)
		r.EntryRate = 100 * float64(a.entered) / float64(effective)
	}

	for e, t := range a.entities {
		r.EntityStats[e] = EntityRevenue{
			CaTotal: t.caTotal.InexactFloat64(),
			CaVA:    t.caVA.InexactFloat64(),
		}
	}
	return r
}

// Placeholder scaling applied when no real comparison period exists
const (
	syntheticFactor        = 0.80
	syntheticEntityTotalFx = 0.85
	syntheticEntityVAFx    = 0.75
)

// Synthesize derives a placeholder comparison record from r. Every figure is
// scaled down and the result is flagged Synthetic.
func Synthesize(r Record) Record {
	f := syntheticFactor
	out := Record{
		SalesCount:             r.SalesCount * f,
		CustomersCount:         r.CustomersCount * f,
		Revenue:                r.Revenue * f,
		RevenueVA:              r.RevenueVA * f,
		RevenueR1:              r.RevenueR1 * f,
		RevenueREF:             r.RevenueREF * f,
		RevenueOther:           r.RevenueOther * f,
		CountR1:                r.CountR1 * f,
		CountR1Binome:          r.CountR1Binome * f,
		CountREF:               r.CountREF * f,
		CountREFBinome:         r.CountREFBinome * f,
		CountVA:                r.CountVA * f,
		CountVABinome:          r.CountVABinome * f,
		CancelledCount:         r.CancelledCount * f,
		RealisedCount:          r.RealisedCount * f,
		CancelPercent:          r.CancelPercent * f,
		CountForAverageCart:    r.CountForAverageCart * f,
		CountForAverageCartVA:  r.CountForAverageCartVA * f,
		AverageCart:            r.AverageCart * f,
		AverageCartVA:          r.AverageCartVA * f,
		Appointments:           r.Appointments * f,
		EffectiveAppointments:  r.EffectiveAppointments * f,
		Transformed:            r.Transformed * f,
		EnteredWithoutFollowup: r.EnteredWithoutFollowup * f,
		TransformationRate:     r.TransformationRate * f,
		EntryRate:              r.EntryRate * f,
		EntityStats:            make(map[Entity]EntityRevenue, len(r.EntityStats)),
		Synthetic:              true,
	}
	for e, v := range r.EntityStats {
		out.EntityStats[e] = EntityRevenue{
			CaTotal: v.CaTotal * syntheticEntityTotalFx,
			CaVA:    v.CaVA * syntheticEntityVAFx,
		}
	}
	return out
}
