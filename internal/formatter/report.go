package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"influencerdash/internal/metrics"
	"influencerdash/internal/validator"
	"influencerdash/pkg/metadata"
)

// DefaultCurrency is the symbol money is written with.
const DefaultCurrency = "₹"

// Report is everything a rendered report is made from.
type Report struct {
	Title    string
	Currency string
	Result   *metrics.Result
	Quality  *validator.ValidationResult
}

// Validated reports whether the data behind the report passed validation.
// A report without a quality check counts as validated.
func (r *Report) Validated() bool {
	return r.Quality == nil || r.Quality.IsValid
}

// Render produces the aligned and signed markdown report.
func Render(r *Report) string {
	return metadata.Sign(AlignTables(r.Markdown()), r.Validated(), nil)
}

// Markdown produces the report body without alignment or signature.
func (r *Report) Markdown() string {
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}

	title := r.Title
	if title == "" {
		title = "Influencer Campaign Report"
	}

	res := r.Result

	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Generated: %s\n", res.GeneratedAt.Format(time.RFC3339))

	r.writeFilters(&b)
	r.writeHeadline(&b)
	r.writeImpact(&b)
	r.writeInfluencers(&b)
	r.writeCampaigns(&b)
	r.writeInsights(&b)
	r.writeUnattributed(&b)
	r.writeQuality(&b)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (r *Report) money(d decimal.Decimal) string {
	return Money(r.Currency, d)
}

func (r *Report) moneyOrNA(d decimal.NullDecimal) string {
	if !d.Valid {
		return Undefined
	}

	return r.money(d.Decimal)
}

func writeTable(b *strings.Builder, header []string, align []bool, rows [][]string) {
	fmt.Fprintf(b, "| %s |\n", strings.Join(header, " | "))

	seps := make([]string, len(header))
	for i := range header {
		seps[i] = "---"
		if i < len(align) && align[i] {
			seps[i] = "--:"
		}
	}

	fmt.Fprintf(b, "| %s |\n", strings.Join(seps, " | "))

	for _, row := range rows {
		fmt.Fprintf(b, "| %s |\n", strings.Join(row, " | "))
	}

	b.WriteString("\n")
}

func (r *Report) writeFilters(b *strings.Builder) {
	b.WriteString("\n## Active Filters\n\n")

	active := r.Result.Filter.Describe()
	if len(active) == 0 {
		b.WriteString("- None (all data)\n")
		return
	}

	for _, line := range active {
		fmt.Fprintf(b, "- %s\n", line)
	}
}

func (r *Report) writeHeadline(b *strings.Builder) {
	h := r.Result.Headline

	b.WriteString("\n## Headline\n\n")

	writeTable(b, []string{"Metric", "Value"}, []bool{false, true}, [][]string{
		{"Total Revenue", r.money(h.TotalRevenue)},
		{"Total Orders", Count(h.TotalOrders)},
		{"Total Payout", r.money(h.TotalPayout)},
		{"ROAS", Ratio(h.ROAS)},
		{"ROI", Ratio(h.ROI)},
		{fmt.Sprintf("iROAS (baseline %s)", r.money(h.BaselineRevenue)), Ratio(h.IROAS)},
		{"Average ROAS", Ratio(h.AverageROAS)},
		{"Revenue per Influencer", r.moneyOrNA(h.RevenuePerInfluencer)},
		{"Influencers", Count(int64(h.Influencers))},
		{"Campaigns", Count(int64(h.Campaigns))},
		{"Tracking Records", Count(int64(h.Records))},
		{"Posts", Count(int64(h.Posts))},
	})
}

func (r *Report) writeImpact(b *strings.Builder) {
	im := r.Result.Impact

	b.WriteString("## Filter Impact\n\n")

	writeTable(b, []string{"Metric", "All Data", "Filtered", "Change", "Change %"}, []bool{false, true, true, true, true}, [][]string{
		{"Revenue", r.moneyOrNA(im.Revenue.Baseline), r.moneyOrNA(im.Revenue.Filtered), r.moneyOrNA(im.Revenue.Change), Percent(im.Revenue.Percent)},
		{"Orders", countOrNA(im.Orders.Baseline), countOrNA(im.Orders.Filtered), countOrNA(im.Orders.Change), Percent(im.Orders.Percent)},
		{"ROAS", Ratio(im.ROAS.Baseline), Ratio(im.ROAS.Filtered), Ratio(im.ROAS.Change), Percent(im.ROAS.Percent)},
	})
}

func countOrNA(d decimal.NullDecimal) string {
	if !d.Valid {
		return Undefined
	}

	return Count(d.Decimal.IntPart())
}

func (r *Report) writeInfluencers(b *strings.Builder) {
	b.WriteString("## Influencers\n\n")

	if len(r.Result.Influencers) == 0 {
		b.WriteString("No influencer activity matches the current filters.\n\n")
		return
	}

	rows := make([][]string, 0, len(r.Result.Influencers))
	for _, m := range r.Result.Influencers {
		rows = append(rows, []string{
			cell(m.DisplayName()),
			cell(m.Platform),
			cell(m.Category),
			cell(m.Basis),
			Count(int64(m.PostCount)),
			Count(m.Orders),
			r.money(m.Revenue),
			r.money(m.Payout),
			Ratio(m.ROAS),
			Ratio(m.ROI),
		})
	}

	writeTable(b,
		[]string{"Influencer", "Platform", "Category", "Basis", "Posts", "Orders", "Revenue", "Payout", "ROAS", "ROI"},
		[]bool{false, false, false, false, true, true, true, true, true, true},
		rows,
	)
}

func (r *Report) writeCampaigns(b *strings.Builder) {
	b.WriteString("## Campaigns\n\n")

	if len(r.Result.Campaigns) == 0 {
		b.WriteString("No tracked orders match the current filters.\n\n")
		return
	}

	rows := make([][]string, 0, len(r.Result.Campaigns))
	for _, c := range r.Result.Campaigns {
		rows = append(rows, []string{
			cell(c.Campaign),
			Count(int64(c.Records)),
			Count(int64(c.Influencers)),
			Count(c.Orders),
			r.money(c.Revenue),
		})
	}

	writeTable(b, []string{"Campaign", "Records", "Influencers", "Orders", "Revenue"}, []bool{false, true, true, true, true}, rows)
}

func (r *Report) rankedTable(b *strings.Builder, ms []metrics.InfluencerMetrics, empty string) {
	if len(ms) == 0 {
		b.WriteString(empty + "\n\n")
		return
	}

	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []string{cell(m.DisplayName()), Ratio(m.ROAS), r.money(m.Revenue), r.money(m.Payout)})
	}

	writeTable(b, []string{"Influencer", "ROAS", "Revenue", "Payout"}, []bool{false, true, true, true}, rows)
}

func (r *Report) writeInsights(b *strings.Builder) {
	in := r.Result.Insights

	b.WriteString("## Insights\n\n")

	b.WriteString("### Top Influencers by ROAS\n\n")
	r.rankedTable(b, in.Top, "No influencer has a defined ROAS.")

	fmt.Fprintf(b, "### ROAS Below %s\n\n", in.Threshold.StringFixed(2))
	r.rankedTable(b, in.Poor, "No influencer is below the threshold.")

	for _, p := range in.Personas {
		if len(p.Groups) == 0 {
			continue
		}

		label := strings.ToUpper(p.Dimension[:1]) + p.Dimension[1:]
		fmt.Fprintf(b, "### ROAS by %s\n\n", label)

		rows := make([][]string, 0, len(p.Groups))
		for _, g := range p.Groups {
			rows = append(rows, []string{cell(g.Value), Ratio(g.AverageROAS), Count(int64(g.Count))})
		}

		writeTable(b, []string{label, "Avg ROAS", "Influencers"}, []bool{false, true, true}, rows)
	}
}

func (r *Report) writeUnattributed(b *strings.Builder) {
	u := r.Result.Unattributed
	if u.Empty() {
		return
	}

	b.WriteString("## Unattributed\n\n")
	b.WriteString("Rows referencing an influencer id missing from the roster are excluded from every figure above.\n\n")
	fmt.Fprintf(b, "- Tracking records: %s (%s orders, %s revenue)\n", Count(int64(u.Records)), Count(u.Orders), r.money(u.Revenue))
	fmt.Fprintf(b, "- Posts: %s\n", Count(int64(u.Posts)))
	fmt.Fprintf(b, "- Payouts: %s (%s)\n\n", Count(int64(u.Payouts)), r.money(u.Payout))
}

func (r *Report) writeQuality(b *strings.Builder) {
	q := r.Quality
	if q == nil {
		return
	}

	b.WriteString("## Data Quality\n\n")
	fmt.Fprintf(b, "- Rows checked: %s\n", Count(int64(q.Stats.TotalRows)))
	fmt.Fprintf(b, "- Errors: %d\n", len(q.Errors))
	fmt.Fprintf(b, "- Warnings: %d\n", len(q.Warnings))

	for _, e := range q.Errors {
		fmt.Fprintf(b, "  - %s\n", e.String())
	}
}
