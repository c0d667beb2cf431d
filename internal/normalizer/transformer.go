package normalizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"influencerdash/internal/models"
	"influencerdash/pkg/utils"
)

// Row-level data quality problems. None of them stop normalization.
const (
	ProblemBadDate      = "unparseable date"
	ProblemBadNumber    = "not a non-negative number"
	ProblemFractional   = "not a whole number"
	ProblemBlankKey     = "blank influencer id"
	ProblemUnknownBasis = "unknown payout basis"
)

// DefaultDateLayouts are tried in order until one parses.
var DefaultDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

// Issue is a row-level data quality problem found while normalizing.
type Issue struct {
	Table   string `json:"table"`
	Field   Field  `json:"field"`
	Value   string `json:"value"`
	Problem string `json:"problem"`
	Row     int    `json:"row"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s row %d: %s %q: %s", i.Table, i.Row, i.Field, i.Value, i.Problem)
}

// Transformer coerces raw rows into canonical models.
type Transformer struct {
	aliases     AliasTable
	numbers     *utils.NumberHelper
	strs        *utils.StringHelper
	dateLayouts []string
}

// NewTransformer creates a transformer with the default aliases and layouts.
func NewTransformer() *Transformer {
	return NewTransformerWith(DefaultAliases(), nil)
}

// NewTransformerWith creates a transformer with the given aliases. Extra
// layouts are tried after the defaults.
func NewTransformerWith(aliases AliasTable, extraLayouts []string) *Transformer {
	layouts := append([]string{}, DefaultDateLayouts...)
	layouts = append(layouts, extraLayouts...)

	return &Transformer{
		aliases:     aliases,
		numbers:     utils.NewNumberHelper(),
		strs:        utils.NewStringHelper(),
		dateLayouts: layouts,
	}
}

// Aliases returns the alias table in use.
func (t *Transformer) Aliases() AliasTable {
	return t.aliases
}

// Canonicalize expresses a raw row with canonical field names. Fields with
// no accepted spelling present are absent from the result.
func (t *Transformer) Canonicalize(table string, row RawRow) map[Field]string {
	out := make(map[Field]string)

	for _, f := range t.aliases.Fields(table) {
		if v, ok := t.aliases.Lookup(table, row, f); ok {
			out[f] = t.strs.TrimWhitespace(v)
		}
	}

	return out
}

// ParseDate parses common date text into a UTC calendar date. Blank or
// unparseable text yields nil.
func (t *Transformer) ParseDate(text string) *time.Time {
	text = t.strs.NormalizeWhitespace(text)
	if text == "" {
		return nil
	}

	for _, layout := range t.dateLayouts {
		parsed, err := time.Parse(layout, text)
		if err != nil {
			continue
		}

		d := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)

		return &d
	}

	return nil
}

// ParseDecimal coerces numeric text. Blank, non-numeric or negative text yields null.
func (t *Transformer) ParseDecimal(text string) decimal.NullDecimal {
	cleaned := t.numbers.Clean(text)
	if cleaned == "" {
		return decimal.NullDecimal{}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.IsNegative() {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(d)
}

// ParseCount coerces a non-negative whole number. "5.0" is accepted, "5.5" is not.
func (t *Transformer) ParseCount(text string) *int64 {
	d := t.ParseDecimal(text)
	if !d.Valid || !d.Decimal.Equal(d.Decimal.Truncate(0)) || !d.Decimal.BigInt().IsInt64() {
		return nil
	}

	n := d.Decimal.IntPart()

	return &n
}

type rowReader struct {
	t      *Transformer
	table  string
	fields map[Field]string
	issues *[]Issue
	row    int
}

func (t *Transformer) reader(table string, rowNum int, row RawRow, issues *[]Issue) *rowReader {
	return &rowReader{
		t:      t,
		table:  table,
		fields: t.Canonicalize(table, row),
		issues: issues,
		row:    rowNum,
	}
}

func (r *rowReader) flag(f Field, value, problem string) {
	*r.issues = append(*r.issues, Issue{Table: r.table, Row: r.row, Field: f, Value: value, Problem: problem})
}

func (r *rowReader) text(f Field) string {
	return r.fields[f]
}

func (r *rowReader) key(f Field) string {
	v := r.fields[f]
	if v == "" {
		r.flag(f, v, ProblemBlankKey)
	}

	return v
}

func (r *rowReader) date(f Field) *time.Time {
	v := r.fields[f]

	d := r.t.ParseDate(v)
	if d == nil && v != "" {
		r.flag(f, v, ProblemBadDate)
	}

	return d
}

func (r *rowReader) decimal(f Field) decimal.NullDecimal {
	v := r.fields[f]

	d := r.t.ParseDecimal(v)
	if !d.Valid && v != "" {
		r.flag(f, v, ProblemBadNumber)
	}

	return d
}

func (r *rowReader) count(f Field) *int64 {
	v := r.fields[f]
	if v == "" {
		return nil
	}

	n := r.t.ParseCount(v)
	if n == nil {
		if d := r.t.ParseDecimal(v); d.Valid {
			r.flag(f, v, ProblemFractional)
		} else {
			r.flag(f, v, ProblemBadNumber)
		}
	}

	return n
}

// TransformInfluencers normalizes the influencer roster.
func (t *Transformer) TransformInfluencers(raw *RawTable) ([]models.Influencer, []Issue) {
	var issues []Issue

	out := make([]models.Influencer, 0, len(raw.Rows))

	for i, row := range raw.Rows {
		r := t.reader(TableInfluencers, i+1, row, &issues)
		out = append(out, models.Influencer{
			ID:            r.key(FieldID),
			Name:          r.text(FieldName),
			Category:      r.text(FieldCategory),
			Gender:        r.text(FieldGender),
			FollowerCount: r.count(FieldFollowerCount),
			Platform:      r.text(FieldPlatform),
		})
	}

	return out, issues
}

// TransformPosts normalizes the post table.
func (t *Transformer) TransformPosts(raw *RawTable) ([]models.Post, []Issue) {
	var issues []Issue

	out := make([]models.Post, 0, len(raw.Rows))

	for i, row := range raw.Rows {
		r := t.reader(TablePosts, i+1, row, &issues)
		out = append(out, models.Post{
			InfluencerID: r.key(FieldInfluencerID),
			Platform:     r.text(FieldPlatform),
			Date:         r.date(FieldDate),
			URL:          r.text(FieldURL),
			Caption:      r.text(FieldCaption),
			Reach:        r.count(FieldReach),
			Likes:        r.count(FieldLikes),
			Comments:     r.count(FieldComments),
		})
	}

	return out, issues
}

// TransformTracking normalizes the order/revenue tracking table.
func (t *Transformer) TransformTracking(raw *RawTable) ([]models.TrackingRecord, []Issue) {
	var issues []Issue

	out := make([]models.TrackingRecord, 0, len(raw.Rows))

	for i, row := range raw.Rows {
		r := t.reader(TableTracking, i+1, row, &issues)
		out = append(out, models.TrackingRecord{
			Source:       r.text(FieldSource),
			Campaign:     r.text(FieldCampaign),
			InfluencerID: r.key(FieldInfluencerID),
			UserID:       r.text(FieldUserID),
			Product:      r.text(FieldProduct),
			Date:         r.date(FieldDate),
			Orders:       r.count(FieldOrders),
			Revenue:      r.decimal(FieldRevenue),
		})
	}

	return out, issues
}

// TransformPayouts normalizes the payout terms table.
func (t *Transformer) TransformPayouts(raw *RawTable) ([]models.Payout, []Issue) {
	var issues []Issue

	out := make([]models.Payout, 0, len(raw.Rows))

	for i, row := range raw.Rows {
		r := t.reader(TablePayouts, i+1, row, &issues)

		rawBasis := r.text(FieldBasis)

		basis := models.ParsePayoutBasis(rawBasis)
		if basis == models.BasisUnknown && rawBasis != "" {
			r.flag(FieldBasis, rawBasis, ProblemUnknownBasis)
		}

		out = append(out, models.Payout{
			InfluencerID: r.key(FieldInfluencerID),
			Basis:        basis,
			RawBasis:     strings.ToLower(rawBasis),
			Rate:         r.decimal(FieldRate),
			Orders:       r.count(FieldOrders),
			TotalPayout:  r.decimal(FieldTotalPayout),
		})
	}

	return out, issues
}
