package stats

import (
	"sort"
	"strings"
)

// Metric is one figure compared across the two periods
type Metric struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Progress float64 `json:"progress"`
}

// NewMetric builds a metric with its progress
func NewMetric(current, previous float64) Metric {
	return Metric{Current: current, Previous: previous, Progress: Progress(current, previous)}
}

// EntityComparison is the revenue of a reporting entity in both periods.
// Change is the progress of caTotal.
type EntityComparison struct {
	CaTotal         float64 `json:"caTotal"`
	CaVA            float64 `json:"caVA"`
	PreviousCaTotal float64 `json:"previousCaTotal"`
	PreviousCaVA    float64 `json:"previousCaVA"`
	Change          float64 `json:"change"`
}

// PeriodInfo describes the periods behind a view
type PeriodInfo struct {
	Mode              Mode         `json:"mode,omitempty"`
	Status            PeriodStatus `json:"status"`
	Current           Window       `json:"current"`
	Previous          *Window      `json:"previous,omitempty"`
	CurrentAllTime    bool         `json:"currentAllTime,omitempty"`
	PreviousSynthetic bool         `json:"previousSynthetic"`
}

// NewPeriodInfo describes a resolution
func NewPeriodInfo(res Resolution) PeriodInfo {
	info := PeriodInfo{
		Mode:              res.Mode,
		Status:            res.Status,
		Current:           res.Current,
		CurrentAllTime:    res.CurrentAllTime,
		PreviousSynthetic: res.PreviousSynthetic(),
	}
	if !res.PreviousSynthetic() {
		prev := res.Previous
		info.Previous = &prev
	}
	return info
}

// DebugInfo exposes the raw records behind a view
type DebugInfo struct {
	Current  Record `json:"current"`
	Previous Record `json:"previous"`
}

// Overview is the admin view comparing every headline metric
type Overview struct {
	SalesCount         Metric                      `json:"salesCount"`
	CustomersTotal     Metric                      `json:"customersTotal"`
	Revenue            Metric                      `json:"revenue"`
	RevenueVA          Metric                      `json:"revenueVA"`
	CancelPercent      Metric                      `json:"cancelPercent"`
	AverageCart        Metric                      `json:"averageCart"`
	AverageCartVA      Metric                      `json:"averageCartVA"`
	TransformationRate Metric                      `json:"transformationRate"`
	EntryRate          Metric                      `json:"entryRate"`
	EntityStats        map[Entity]EntityComparison `json:"entityStats"`
	Period             PeriodInfo                  `json:"period"`
	SkippedRecords     int                         `json:"skippedRecords"`
	Debug              *DebugInfo                  `json:"debug,omitempty"`
}

// BuildOverview shapes a comparison into the overview
func BuildOverview(cmp Comparison, withDebug bool) Overview {
	cur, prev := cmp.Current, cmp.Previous
	ov := Overview{
		SalesCount:         NewMetric(cur.SalesCount, prev.SalesCount),
		CustomersTotal:     NewMetric(cur.CustomersCount, prev.CustomersCount),
		Revenue:            NewMetric(cur.Revenue, prev.Revenue),
		RevenueVA:          NewMetric(cur.RevenueVA, prev.RevenueVA),
		CancelPercent:      NewMetric(cur.CancelPercent, prev.CancelPercent),
		AverageCart:        NewMetric(cur.AverageCart, prev.AverageCart),
		AverageCartVA:      NewMetric(cur.AverageCartVA, prev.AverageCartVA),
		TransformationRate: NewMetric(cur.TransformationRate, prev.TransformationRate),
		EntryRate:          NewMetric(cur.EntryRate, prev.EntryRate),
		EntityStats:        make(map[Entity]EntityComparison, len(ReportingEntities)),
		Period:             NewPeriodInfo(cmp.Resolution),
		SkippedRecords:     cmp.SkippedRecords,
	}
	for _, e := range ReportingEntities {
		c, p := cur.EntityStats[e], prev.EntityStats[e]
		ov.EntityStats[e] = EntityComparison{
			CaTotal:         c.CaTotal,
			CaVA:            c.CaVA,
			PreviousCaTotal: p.CaTotal,
			PreviousCaVA:    p.CaVA,
			Change:          Progress(c.CaTotal, p.CaTotal),
		}
	}
	if withDebug {
		ov.Debug = &DebugInfo{Current: cur, Previous: prev}
	}
	return ov
}

// SellerProfile identifies a commercial in a ranking
type SellerProfile struct {
	ID             uint
	Firstname      string
	Lastname       string
	Email          string
	ProfilePicture string
}

// SellerStats is one commercial row of a ranking
type SellerStats struct {
	ID                 uint    `json:"id"`
	Firstname          string  `json:"firstname"`
	Lastname           string  `json:"lastname"`
	Email              string  `json:"email"`
	ProfilePicture     string  `json:"profilePicture,omitempty"`
	RevenueR1          float64 `json:"revenueR1"`
	RevenueREF         float64 `json:"revenueREF"`
	RevenueVA          float64 `json:"revenueVA"`
	CountR1            float64 `json:"countR1"`
	CountR1Binome      float64 `json:"countR1Binome"`
	CountREF           float64 `json:"countREF"`
	CountREFBinome     float64 `json:"countREFBinome"`
	CountVA            float64 `json:"countVA"`
	CountVABinome      float64 `json:"countVABinome"`
	EntryRate          float64 `json:"entryRate"`
	TransformationRate float64 `json:"transformationRate"`
	CancelPercent      float64 `json:"cancelPercent"`
	TotalSalesCount    float64 `json:"totalSalesCount"`
	AverageCart        float64 `json:"averageCart"`
}

// NewSellerStats builds a ranking row from the seller's record
func NewSellerStats(p SellerProfile, r Record) SellerStats {
	return SellerStats{
		ID:                 p.ID,
		Firstname:          p.Firstname,
		Lastname:           p.Lastname,
		Email:              p.Email,
		ProfilePicture:     p.ProfilePicture,
		RevenueR1:          r.RevenueR1,
		RevenueREF:         r.RevenueREF,
		RevenueVA:          r.RevenueVA,
		CountR1:            r.CountR1,
		CountR1Binome:      r.CountR1Binome,
		CountREF:           r.CountREF,
		CountREFBinome:     r.CountREFBinome,
		CountVA:            r.CountVA,
		CountVABinome:      r.CountVABinome,
		EntryRate:          r.EntryRate,
		TransformationRate: r.TransformationRate,
		CancelPercent:      r.CancelPercent,
		TotalSalesCount:    r.SalesCount,
		AverageCart:        r.AverageCart,
	}
}

// RankSellers sorts rows by R1 plus REF revenue, highest first. Equal
// revenues are ordered by name so rankings are stable between requests.
func RankSellers(rows []SellerStats) {
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].RevenueR1+rows[i].RevenueREF, rows[j].RevenueR1+rows[j].RevenueREF
		if ri != rj {
			return ri > rj
		}
		ni := strings.ToLower(rows[i].Lastname + " " + rows[i].Firstname)
		nj := strings.ToLower(rows[j].Lastname + " " + rows[j].Firstname)
		if ni != nj {
			return ni < nj
		}
		return rows[i].ID < rows[j].ID
	})
}

// Totals are the grand totals of a ranking. VA sales are left out of NbVentes.
type Totals struct {
	CaR1Ref  float64 `json:"caR1Ref"`
	CaVA     float64 `json:"caVA"`
	NbVentes float64 `json:"nbVentes"`
}

// SumTotals adds up the ranking rows
func SumTotals(rows []SellerStats) Totals {
	var t Totals
	for _, r := range rows {
		t.CaR1Ref += r.RevenueR1 + r.RevenueREF
		t.CaVA += r.RevenueVA
		t.NbVentes += r.CountR1 + r.CountREF
	}
	return t
}

// CompanySummary identifies an agency in a view
type CompanySummary struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
	Entity Entity `json:"entity"`
}

// NewCompanySummary describes an agency with its reporting entity
func NewCompanySummary(c Company) CompanySummary {
	return CompanySummary{ID: c.ID, Name: c.Name, Prefix: c.Prefix, Entity: ClassifyEntity(&c)}
}

// Ranking is a sorted list of commercials with totals over one period
type Ranking struct {
	Period PeriodInfo    `json:"period"`
	Users  []SellerStats `json:"users"`
	Totals Totals        `json:"totals"`
}

// NewRanking sorts the rows and computes their totals
func NewRanking(period PeriodInfo, rows []SellerStats) Ranking {
	if rows == nil {
		rows = []SellerStats{}
	}
	RankSellers(rows)
	return Ranking{Period: period, Users: rows, Totals: SumTotals(rows)}
}

// AgencyOverview is the manager view of one agency
type AgencyOverview struct {
	Company CompanySummary `json:"company"`
	Overview
	AffiliatedUsers Ranking `json:"affiliatedUsers"`
}

// Scope selects the population of a leaderboard
type Scope string

const (
	ScopeGlobal Scope = "global"
	ScopeAgency Scope = "agency"
)

// Leaderboard ranks commercials within a scope
type Leaderboard struct {
	Scope          Scope           `json:"scope"`
	Company        *CompanySummary `json:"company,omitempty"`
	SkippedRecords int             `json:"skippedRecords"`
	Ranking
}

// CompanyRevenue is the R1/REF and VA revenue of an agency over one month
type CompanyRevenue struct {
	CaR1Ref float64 `json:"caR1Ref"`
	CaVA    float64 `json:"caVA"`
}

// CompanyComparison compares an agency month over month
type CompanyComparison struct {
	Company         CompanySummary `json:"company"`
	CurrentMonth    CompanyRevenue `json:"currentMonth"`
	PreviousMonth   CompanyRevenue `json:"previousMonth"`
	ProgressCaR1Ref float64        `json:"progressCaR1Ref"`
	ProgressCaVA    float64        `json:"progressCaVA"`
}

// CompareCompany builds the month-over-month comparison of an agency
func CompareCompany(c Company, current, previous Record) CompanyComparison {
	return CompanyComparison{
		Company:         NewCompanySummary(c),
		CurrentMonth:    CompanyRevenue{CaR1Ref: current.Revenue, CaVA: current.RevenueVA},
		PreviousMonth:   CompanyRevenue{CaR1Ref: previous.Revenue, CaVA: previous.RevenueVA},
		ProgressCaR1Ref: Progress(current.Revenue, previous.Revenue),
		ProgressCaVA:    Progress(current.RevenueVA, previous.RevenueVA),
	}
}
