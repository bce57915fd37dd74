package stats

import (
	"strings"

	"github.com/fpemc/crm-api/internal/domain"
	"golang.org/x/text/cases"
)

// Source is the normalized commercial origin of a sale
type Source string

const (
	SourceR1  Source = "R1"
	SourceREF Source = "REF"
	SourceVA  Source = "VA"
	// SourceOther covers empty and unrecognised values. It shares the R1/REF
	// revenue bucket but has no count of its own.
	SourceOther Source = "OTHER"
)

// NormalizeSource maps a stored source onto the known values
func NormalizeSource(raw string) Source {
	switch Source(strings.ToUpper(strings.TrimSpace(raw))) {
	case SourceR1:
		return SourceR1
	case SourceREF:
		return SourceREF
	case SourceVA:
		return SourceVA
	default:
		return SourceOther
	}
}

// Classification is the per-record outcome used by the aggregation
type Classification struct {
	Source    Source
	Entity    Entity
	Cancelled bool
}

// Classify resolves the source, entity and cancellation state of a sale
func Classify(s Sale) Classification {
	return Classification{
		Source:    NormalizeSource(s.Source),
		Entity:    ClassifyEntity(s.Company),
		Cancelled: domain.NormalizeSaleStatus(string(s.Status)) == domain.SaleStatusCancelled,
	}
}

// entityNameMarkers are matched, in order, against the case-folded agency name
var entityNameMarkers = []struct {
	entity  Entity
	markers []string
}{
	{EntityFP, []string{"fpemc", "france patrimoine"}},
	{Entity3M, []string{"3m"}},
	{EntityPH, []string{"patrimoine habitat"}},
	{EntityMP, []string{"mon patrimoine"}},
}

// ClassifyEntity maps an agency to its reporting entity: a known prefix wins,
// then a marker in the name, then the raw prefix, then FP.
func ClassifyEntity(c *Company) Entity {
	if c == nil {
		return EntityFP
	}
	prefix := strings.TrimSpace(c.Prefix)
	for _, e := range ReportingEntities {
		if strings.EqualFold(prefix, string(e)) {
			return e
		}
	}

	name := cases.Fold().String(c.Name)
	for _, rule := range entityNameMarkers {
		for _, marker := range rule.markers {
			if strings.Contains(name, marker) {
				return rule.entity
			}
		}
	}

	if prefix != "" {
		return Entity(prefix)
	}
	return EntityFP
}
