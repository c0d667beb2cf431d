package normalizer

import (
	"errors"
	"testing"
)

func sampleTables() RawTables {
	return RawTables{
		TableInfluencers: NewRawTable(TableInfluencers, "influencers.csv",
			[]string{"id", "name", "category", "gender", "followers", "platform"},
			[][]string{
				{"1", "Asha", "Fitness", "F", "50000", "Instagram"},
				{"2", "Ravi", "Nutrition", "M", "n/a", "YouTube"},
			}),
		TablePosts: NewRawTable(TablePosts, "posts.csv",
			[]string{"influencer_id", "platform", "created_at", "url", "caption", "reach", "likes", "comments"},
			[][]string{
				{"1", "Instagram", "2024-05-01", "https://x/p/1", "Whey day", "1000", "100", "10"},
			}),
		TablePayouts: NewRawTable(TablePayouts, "payouts.csv",
			[]string{"influencer_id", "basis", "rate", "orders", "total_payout"},
			[][]string{
				{"1", "order", "10", "5", "50"},
			}),
		TableTracking: NewRawTable(TableTracking, "tracking_data.csv",
			[]string{"source", "campaign", "influencer_id", "user_id", "product", "date", "orders", "revenue"},
			[][]string{
				{"ig", "Summer", "1", "u1", "Whey", "2024-05-02", "3", "300"},
				{"ig", "Summer", "1", "u2", "Whey", "2024-05-03", "2", "200"},
			}),
	}
}

func TestNewProcessor(t *testing.T) {
	p := NewProcessor()
	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
}

func TestProcessor_Process(t *testing.T) {
	p := NewProcessor()

	result, err := p.Process(sampleTables())
	if err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	ds := result.Dataset
	if len(ds.Influencers) != 2 || len(ds.Posts) != 1 || len(ds.Tracking) != 2 || len(ds.Payouts) != 1 {
		t.Errorf("unexpected table sizes: %s", ds)
	}

	inf, ok := ds.Influencer("1")
	if !ok {
		t.Fatal("influencer 1 should resolve")
	}

	if inf.FollowerCount == nil || *inf.FollowerCount != 50000 {
		t.Errorf("follower count = %v, want 50000", inf.FollowerCount)
	}

	ravi, _ := ds.Influencer("2")
	if ravi.FollowerCount != nil {
		t.Errorf("malformed follower count should be nil, got %d", *ravi.FollowerCount)
	}

	if len(result.Issues) != 1 || result.Issues[0].Field != FieldFollowerCount {
		t.Errorf("expected one follower_count issue, got %v", result.Issues)
	}

	if ds.Posts[0].Date == nil {
		t.Error("created_at should populate the post date")
	}
}

func TestProcessor_Process_MissingTable(t *testing.T) {
	p := NewProcessor()

	tables := sampleTables()
	delete(tables, TablePayouts)

	result, err := p.Process(tables)
	if err == nil {
		t.Fatal("Process expected error for missing table")
	}

	if result != nil {
		t.Error("Process expected nil result for missing table")
	}

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Table != TablePayouts {
		t.Errorf("expected ConfigurationError for payouts, got %v", err)
	}
}

func TestProcessor_ConfiguredAliases(t *testing.T) {
	aliases := DefaultAliases().Extend(map[string]map[string][]string{
		TableInfluencers: {"follower_count": {"audience_size"}},
	})
	p := NewProcessorWith(aliases, nil)

	tables := sampleTables()
	tables[TableInfluencers] = NewRawTable(TableInfluencers, "",
		[]string{"id", "audience_size"}, [][]string{{"1", "1200"}})

	result, err := p.Process(tables)
	if err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	inf, _ := result.Dataset.Influencer("1")
	if inf.FollowerCount == nil || *inf.FollowerCount != 1200 {
		t.Errorf("configured alias not applied: %v", inf.FollowerCount)
	}

	if len(DefaultAliases()[TableInfluencers][FieldFollowerCount]) != 4 {
		t.Error("Extend must not modify the defaults")
	}
}
