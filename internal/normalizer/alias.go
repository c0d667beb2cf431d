package normalizer

import (
	"slices"
	"sort"
)

// Field is a canonical column name.
type Field string

// Influencer fields.
const (
	FieldID            Field = "id"
	FieldName          Field = "name"
	FieldCategory      Field = "category"
	FieldGender        Field = "gender"
	FieldFollowerCount Field = "follower_count"
	FieldPlatform      Field = "platform"
)

// Post fields.
const (
	FieldInfluencerID Field = "influencer_id"
	FieldDate         Field = "date"
	FieldURL          Field = "url"
	FieldCaption      Field = "caption"
	FieldReach        Field = "reach"
	FieldLikes        Field = "likes"
	FieldComments     Field = "comments"
)

// Tracking fields.
const (
	FieldSource   Field = "source"
	FieldCampaign Field = "campaign"
	FieldUserID   Field = "user_id"
	FieldProduct  Field = "product"
	FieldOrders   Field = "orders"
	FieldRevenue  Field = "revenue"
)

// Payout fields.
const (
	FieldBasis       Field = "basis"
	FieldRate        Field = "rate"
	FieldTotalPayout Field = "total_payout"
)

// AliasGroups maps a canonical field onto its accepted spellings, in priority order.
type AliasGroups map[Field][]string

// AliasTable holds the alias groups of every schema.
type AliasTable map[string]AliasGroups

// DefaultAliases returns the spellings seen across the known export variants.
func DefaultAliases() AliasTable {
	return AliasTable{
		TableInfluencers: {
			FieldID:            {"id", "influencer_id"},
			FieldName:          {"name", "influencer_name", "full_name"},
			FieldCategory:      {"category", "influencer_category", "influencer_type", "niche"},
			FieldGender:        {"gender", "sex"},
			FieldFollowerCount: {"follower_count", "follower count", "followers", "followers_count"},
			FieldPlatform:      {"platform", "channel"},
		},
		TablePosts: {
			FieldInfluencerID: {"influencer_id", "influencer id", "creator_id"},
			FieldPlatform:     {"platform", "channel"},
			FieldDate:         {"date", "post_date", "campaign_date", "created_at", "posted_at"},
			FieldURL:          {"url", "post_url", "link"},
			FieldCaption:      {"caption", "text"},
			FieldReach:        {"reach", "impressions"},
			FieldLikes:        {"likes", "like_count"},
			FieldComments:     {"comments", "comment_count"},
		},
		TableTracking: {
			FieldSource:       {"source", "utm_source"},
			FieldCampaign:     {"campaign", "campaign_name"},
			FieldInfluencerID: {"influencer_id", "influencer id", "creator_id"},
			FieldUserID:       {"user_id", "customer_id"},
			FieldProduct:      {"product", "product_name", "sku"},
			FieldDate:         {"date", "order_date", "campaign_date", "created_at"},
			FieldOrders:       {"orders", "order_count"},
			FieldRevenue:      {"revenue", "sales", "order_value"},
		},
		TablePayouts: {
			FieldInfluencerID: {"influencer_id", "influencer id", "creator_id"},
			FieldBasis:        {"basis", "payout_basis"},
			FieldRate:         {"rate", "payout_rate"},
			FieldOrders:       {"orders", "order_count"},
			FieldTotalPayout:  {"total_payout", "payout_amount", "payout"},
		},
	}
}

// keyFields are the join keys a table cannot be used without.
var keyFields = map[string]Field{
	TableInfluencers: FieldID,
	TablePosts:       FieldInfluencerID,
	TableTracking:    FieldInfluencerID,
	TablePayouts:     FieldInfluencerID,
}

// KeyField returns the join key of a table.
func KeyField(table string) (Field, bool) {
	f, ok := keyFields[table]
	return f, ok
}

// Extend appends extra spellings from configuration. The defaults keep priority.
// Unknown tables are ignored; unknown fields become new groups.
func (a AliasTable) Extend(extra map[string]map[string][]string) AliasTable {
	out := make(AliasTable, len(a))

	for table, groups := range a {
		cp := make(AliasGroups, len(groups))
		for f, spellings := range groups {
			cp[f] = slices.Clone(spellings)
		}

		out[table] = cp
	}

	for table, fields := range extra {
		groups, ok := out[table]
		if !ok {
			continue
		}

		for field, spellings := range fields {
			f := Field(headers.HeaderKey(field))
			for _, s := range spellings {
				if !slices.Contains(groups[f], s) {
					groups[f] = append(groups[f], s)
				}
			}
		}
	}

	return out
}

// Fields returns the canonical fields of a table in sorted order.
func (a AliasTable) Fields(table string) []Field {
	groups := a[table]

	fields := make([]Field, 0, len(groups))
	for f := range groups {
		fields = append(fields, f)
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })

	return fields
}

// Spellings returns the accepted spellings of a field, canonical name first.
func (a AliasTable) Spellings(table string, f Field) []string {
	spellings := a[table][f]
	if slices.Contains(spellings, string(f)) {
		return spellings
	}

	return append([]string{string(f)}, spellings...)
}

// Column returns the first accepted spelling present in the header, folded.
func (a AliasTable) Column(t *RawTable, f Field) (string, bool) {
	for _, s := range a.Spellings(t.Name, f) {
		if t.HasColumn(s) {
			return headers.HeaderKey(s), true
		}
	}

	return "", false
}

// Lookup returns the value of canonical field f in row, taking the first
// accepted spelling present. ok is false when no spelling is present.
func (a AliasTable) Lookup(table string, row RawRow, f Field) (string, bool) {
	for _, s := range a.Spellings(table, f) {
		if v, present := row[headers.HeaderKey(s)]; present {
			return v, true
		}
	}

	return "", false
}
