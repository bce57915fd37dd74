package stats

import (
	"sort"
	"time"
)

// Mode selects how the comparison periods are chosen
type Mode string

const (
	ModeMonthly Mode = "monthly"
	ModeDaily   Mode = "daily"
)

// PeriodStatus tells callers how the periods were obtained
type PeriodStatus string

const (
	// PeriodReal compares two periods that both hold real data
	PeriodReal PeriodStatus = "real"
	// PeriodRollingWindow compares the last 30 days with the window before
	PeriodRollingWindow PeriodStatus = "rolling_window"
	// PeriodSynthesized has no real comparison period; the previous record is
	// derived from the current one
	PeriodSynthesized PeriodStatus = "synthesized"
	// PeriodNoData means the dataset holds no dated record at all
	PeriodNoData PeriodStatus = "no_data"
)

// Window is the half-open time range [Start, End)
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// MonthWindow returns the calendar month containing t, in t's location
func MonthWindow(t time.Time) Window {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// DayWindow returns the calendar day containing t, in t's location
func DayWindow(t time.Time) Window {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// Resolution is the outcome of period resolution
type Resolution struct {
	Mode     Mode
	Status   PeriodStatus
	Current  Window
	Previous Window
	// CurrentAllTime is set when the current period is the whole dataset
	CurrentAllTime bool
}

// PreviousSynthetic reports whether the previous period must be synthesized
func (r Resolution) PreviousSynthetic() bool {
	return r.Status == PeriodSynthesized
}

const (
	defaultMinSalesForMonthly = 10
	monthsConsidered          = 3
	rollingDays               = 30
	widenedLookbackDays       = 90
)

// Resolver picks the current and comparison periods for a dataset
type Resolver struct {
	loc                *time.Location
	now                func() time.Time
	minSalesForMonthly int
}

// NewResolver creates a resolver working in loc. now may be nil, in which case
// time.Now is used; minSales <= 0 selects the default threshold of 10.
func NewResolver(loc *time.Location, now func() time.Time, minSales int) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	if minSales <= 0 {
		minSales = defaultMinSalesForMonthly
	}
	return &Resolver{loc: loc, now: now, minSalesForMonthly: minSales}
}

// Now returns the current time in the resolver location
func (r *Resolver) Now() time.Time {
	return r.now().In(r.loc)
}

// Location returns the resolver location
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Resolve chooses the periods to compare.
//
// Daily mode compares today with the same day of the previous month.
// Monthly mode tries, in order: the two busiest of the three most recent
// months, a rolling 30-day window against the preceding one (widened back to
// 90 days when empty), and finally a synthesized comparison.
func (r *Resolver) Resolve(sales []Sale, mode Mode) Resolution {
	now := r.Now()
	dated := r.datedTimes(sales)

	if mode == ModeDaily {
		res := r.daily(now)
		if len(dated) == 0 {
			res.Status = PeriodNoData
		}
		return res
	}

	if len(dated) == 0 {
		current := MonthWindow(now)
		return Resolution{
			Mode:     ModeMonthly,
			Status:   PeriodNoData,
			Current:  current,
			Previous: MonthWindow(current.Start.AddDate(0, -1, 0)),
		}
	}

	if res, ok := r.busiestMonths(dated); ok {
		return res
	}
	return r.rolling(now, dated)
}

func (r *Resolver) daily(now time.Time) Resolution {
	current := DayWindow(now)

	prevMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	day := now.Day()
	if last := daysIn(prevMonth); day > last {
		day = last
	}
	previous := DayWindow(time.Date(prevMonth.Year(), prevMonth.Month(), day, 0, 0, 0, 0, now.Location()))

	return Resolution{Mode: ModeDaily, Status: PeriodReal, Current: current, Previous: previous}
}

func (r *Resolver) busiestMonths(dated []time.Time) (Resolution, bool) {
	if len(dated) < r.minSalesForMonthly {
		return Resolution{}, false
	}

	counts := make(map[time.Time]int)
	for _, t := range dated {
		counts[MonthWindow(t).Start]++
	}
	if len(counts) < 2 {
		return Resolution{}, false
	}

	months := make([]time.Time, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].After(months[j]) })
	if len(months) > monthsConsidered {
		months = months[:monthsConsidered]
	}
	// Ties keep the more recent month first.
	sort.SliceStable(months, func(i, j int) bool { return counts[months[i]] > counts[months[j]] })

	current, previous := months[0], months[1]
	if previous.After(current) {
		current, previous = previous, current
	}
	return Resolution{
		Mode:     ModeMonthly,
		Status:   PeriodReal,
		Current:  MonthWindow(current),
		Previous: MonthWindow(previous),
	}, true
}

func (r *Resolver) rolling(now time.Time, dated []time.Time) Resolution {
	currentStart := now.AddDate(0, 0, -rollingDays)
	current := Window{Start: currentStart, End: now}
	previous := Window{Start: now.AddDate(0, 0, -2*rollingDays), End: currentStart}

	if !anyIn(dated, previous) {
		previous.Start = now.AddDate(0, 0, -widenedLookbackDays)
	}
	if anyIn(dated, previous) {
		return Resolution{Mode: ModeMonthly, Status: PeriodRollingWindow, Current: current, Previous: previous}
	}

	res := Resolution{Mode: ModeMonthly, Status: PeriodSynthesized, Current: current}
	if !anyIn(dated, current) {
		res.CurrentAllTime = true
		res.Current = span(dated)
	}
	return res
}

// LastMonthWithData returns the calendar month of the most recent dated sale.
// Without any dated sale it returns the current month and PeriodNoData.
func (r *Resolver) LastMonthWithData(sales []Sale) (Window, PeriodStatus) {
	var latest time.Time
	for _, t := range r.datedTimes(sales) {
		if t.After(latest) {
			latest = t
		}
	}
	return r.MonthOf(latest)
}

// MonthOf returns the calendar month of latest in the resolver location. A
// zero time yields the current month and PeriodNoData.
func (r *Resolver) MonthOf(latest time.Time) (Window, PeriodStatus) {
	if latest.IsZero() {
		return MonthWindow(r.Now()), PeriodNoData
	}
	return MonthWindow(latest.In(r.loc)), PeriodReal
}

func (r *Resolver) datedTimes(sales []Sale) []time.Time {
	out := make([]time.Time, 0, len(sales))
	for _, s := range sales {
		if !s.CreatedAt.IsZero() {
			out = append(out, s.CreatedAt.In(r.loc))
		}
	}
	return out
}

func anyIn(times []time.Time, w Window) bool {
	for _, t := range times {
		if w.Contains(t) {
			return true
		}
	}
	return false
}

// span returns the smallest window holding every time
func span(times []time.Time) Window {
	w := Window{Start: times[0], End: times[0]}
	for _, t := range times[1:] {
		if t.Before(w.Start) {
			w.Start = t
		}
		if t.After(w.End) {
			w.End = t
		}
	}
	w.End = w.End.Add(time.Nanosecond)
	return w
}

func daysIn(month time.Time) int {
	return time.Date(month.Year(), month.Month()+1, 0, 0, 0, 0, 0, month.Location()).Day()
}
