package metrics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Unspecified labels a persona group whose attribute is blank.
const Unspecified = "(unspecified)"

// Persona dimensions.
const (
	PersonaCategory = "category"
	PersonaGender   = "gender"
	PersonaPlatform = "platform"
)

// PersonaGroup is the average per-influencer ROAS of one attribute value.
type PersonaGroup struct {
	AverageROAS decimal.NullDecimal `json:"averageRoas"`
	Value       string              `json:"value"`
	Count       int                 `json:"count"`
}

// Persona is the grouping of influencers along one attribute.
type Persona struct {
	Dimension string         `json:"dimension"`
	Groups    []PersonaGroup `json:"groups"`
}

// Insights ranks influencers by ROAS and groups them by persona. Influencers
// with undefined ROAS take part in none of it.
type Insights struct {
	Threshold decimal.Decimal     `json:"poorRoasThreshold"`
	Top       []InfluencerMetrics `json:"top"`
	Poor      []InfluencerMetrics `json:"poor"`
	Personas  []Persona           `json:"personas"`
}

// BuildInsights derives the ranked lists and persona groups from a breakdown.
func BuildInsights(rows []InfluencerMetrics, opts Options) Insights {
	ranked := make([]InfluencerMetrics, 0, len(rows))

	for _, r := range rows {
		if r.ROAS.Valid {
			ranked = append(ranked, r)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if c := ranked[i].ROAS.Decimal.Cmp(ranked[j].ROAS.Decimal); c != 0 {
			return c > 0
		}

		if c := ranked[i].Revenue.Cmp(ranked[j].Revenue); c != 0 {
			return c > 0
		}

		return ranked[i].ID < ranked[j].ID
	})

	var poor []InfluencerMetrics

	for i := len(ranked) - 1; i >= 0 && len(poor) < opts.TopN; i-- {
		if ranked[i].ROAS.Decimal.LessThan(opts.PoorROASThreshold) {
			poor = append(poor, ranked[i])
		}
	}

	top := ranked
	if len(top) > opts.TopN {
		top = top[:opts.TopN]
	}

	return Insights{
		Threshold: opts.PoorROASThreshold,
		Top:       top,
		Poor:      poor,
		Personas: []Persona{
			groupPersona(PersonaCategory, ranked, func(m InfluencerMetrics) string { return m.Category }),
			groupPersona(PersonaGender, ranked, func(m InfluencerMetrics) string { return m.Gender }),
			groupPersona(PersonaPlatform, ranked, func(m InfluencerMetrics) string { return m.Platform }),
		},
	}
}

// groupPersona averages ROAS per attribute value. Values are grouped
// case-insensitively and labelled with the first spelling seen.
func groupPersona(dimension string, rows []InfluencerMetrics, attr func(InfluencerMetrics) string) Persona {
	type acc struct {
		label string
		sum   decimal.Decimal
		count int
	}

	groups := make(map[string]*acc)

	for _, r := range rows {
		label := strings.TrimSpace(attr(r))
		if label == "" {
			label = Unspecified
		}

		key := strings.ToLower(label)

		g, ok := groups[key]
		if !ok {
			g = &acc{label: label}
			groups[key] = g
		}

		g.sum = g.sum.Add(r.ROAS.Decimal)
		g.count++
	}

	out := Persona{Dimension: dimension, Groups: make([]PersonaGroup, 0, len(groups))}

	for _, g := range groups {
		out.Groups = append(out.Groups, PersonaGroup{
			Value:       g.label,
			Count:       g.count,
			AverageROAS: Ratio(g.sum, decimal.NewFromInt(int64(g.count))),
		})
	}

	sort.Slice(out.Groups, func(i, j int) bool {
		a, b := out.Groups[i], out.Groups[j]
		if c := a.AverageROAS.Decimal.Cmp(b.AverageROAS.Decimal); c != 0 {
			return c > 0
		}

		return a.Value < b.Value
	})

	return out
}
