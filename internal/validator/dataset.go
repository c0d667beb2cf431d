// Package validator checks the integrity of a normalized dataset.
package validator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"influencerdash/internal/models"
)

// ValidationError is an integrity problem tied to one row.
type ValidationError struct {
	Table   string `json:"table"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
	Row     int    `json:"row"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("%s row %d: %s=%q: %s", e.Table, e.Row, e.Field, e.Value, e.Message)
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Errors   []ValidationError `json:"errors"`
	Warnings []string          `json:"warnings"`
	Stats    ValidationStats   `json:"stats"`
	IsValid  bool              `json:"isValid"`
}

// ValidationStats contains validation statistics.
type ValidationStats struct {
	TotalRows          int `json:"totalRows"`
	DuplicateIDs       int `json:"duplicateIds"`
	UnresolvedPosts    int `json:"unresolvedPosts"`
	UnresolvedTracking int `json:"unresolvedTracking"`
	UnresolvedPayouts  int `json:"unresolvedPayouts"`
	PayoutMismatches   int `json:"payoutMismatches"`
	UnknownBasis       int `json:"unknownBasis"`
}

// DatasetValidator checks referential integrity and payout consistency.
type DatasetValidator struct {
	tolerance decimal.Decimal
}

// NewDatasetValidator creates a validator that tolerates payout rounding up to 0.01.
func NewDatasetValidator() *DatasetValidator {
	return &DatasetValidator{tolerance: decimal.New(1, -2)}
}

// Validate never fails; it reports what it finds. Duplicate ids are errors,
// everything else, unresolved references included, is a warning.
func (v *DatasetValidator) Validate(ds *models.Dataset) *ValidationResult {
	result := &ValidationResult{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []string{},
	}

	result.Stats.TotalRows = len(ds.Influencers) + len(ds.Posts) + len(ds.Tracking) + len(ds.Payouts)

	v.checkRoster(ds, result)
	v.checkReferences(ds, result)
	v.checkPayouts(ds, result)

	result.IsValid = len(result.Errors) == 0

	return result
}

func (v *DatasetValidator) checkRoster(ds *models.Dataset, result *ValidationResult) {
	seen := make(map[string]int, len(ds.Influencers))

	for i, inf := range ds.Influencers {
		row := i + 1

		if inf.ID == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("influencers row %d has no id and cannot be joined", row))
			continue
		}

		if first, dup := seen[inf.ID]; dup {
			result.Stats.DuplicateIDs++
			result.Errors = append(result.Errors, ValidationError{
				Table:   "influencers",
				Field:   "id",
				Value:   inf.ID,
				Row:     row,
				Message: fmt.Sprintf("duplicate influencer id (first seen at row %d, which is used)", first),
			})

			continue
		}

		seen[inf.ID] = row

		if inf.Name == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("influencer %s has no name", inf.ID))
		}
	}
}

func (v *DatasetValidator) checkReferences(ds *models.Dataset, result *ValidationResult) {
	unresolved := func(table string, row int, id string) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s row %d: influencer_id=%q does not resolve; row excluded from metrics", table, row, id))
	}

	for i, p := range ds.Posts {
		if !ds.Resolves(p.InfluencerID) {
			result.Stats.UnresolvedPosts++
			unresolved("posts", i+1, p.InfluencerID)
		}
	}

	for i, t := range ds.Tracking {
		if !ds.Resolves(t.InfluencerID) {
			result.Stats.UnresolvedTracking++
			unresolved("tracking", i+1, t.InfluencerID)
		}
	}

	for i, p := range ds.Payouts {
		if !ds.Resolves(p.InfluencerID) {
			result.Stats.UnresolvedPayouts++
			unresolved("payouts", i+1, p.InfluencerID)
		}
	}
}

func (v *DatasetValidator) checkPayouts(ds *models.Dataset, result *ValidationResult) {
	postCounts := make(map[string]int64)
	for _, p := range ds.Posts {
		postCounts[p.InfluencerID]++
	}

	for i, p := range ds.Payouts {
		if p.Basis == models.BasisUnknown {
			result.Stats.UnknownBasis++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("payouts row %d: unknown basis %q for influencer %s", i+1, p.RawBasis, p.InfluencerID))

			continue
		}

		expected, ok := ExpectedPayout(p, postCounts[p.InfluencerID])
		if !ok || !p.TotalPayout.Valid {
			continue
		}

		if p.TotalPayout.Decimal.Sub(expected).Abs().GreaterThan(v.tolerance) {
			result.Stats.PayoutMismatches++
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"payouts row %d: influencer %s total_payout %s does not match %s basis (expected %s)",
				i+1, p.InfluencerID, p.TotalPayout.Decimal.StringFixed(2), p.Basis, expected.StringFixed(2)))
		}
	}
}

// ExpectedPayout is rate × orders for the order basis and rate × posts for
// the post basis. ok is false when the inputs needed are missing.
func ExpectedPayout(p models.Payout, posts int64) (decimal.Decimal, bool) {
	if !p.Rate.Valid {
		return decimal.Zero, false
	}

	switch p.Basis {
	case models.BasisOrder:
		if p.Orders == nil {
			return decimal.Zero, false
		}

		return p.Rate.Decimal.Mul(decimal.NewFromInt(*p.Orders)), true
	case models.BasisPost:
		return p.Rate.Decimal.Mul(decimal.NewFromInt(posts)), true
	default:
		return decimal.Zero, false
	}
}
