package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"influencerdash/internal/models"
)

func TestSelection_Contains(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		v    string
		want bool
	}{
		{"Empty accepts all", nil, "anything", true},
		{"Exact", Selection{"Instagram"}, "Instagram", true},
		{"Case and spaces", Selection{" instagram"}, "INSTAGRAM ", true},
		{"Missing", Selection{"YouTube"}, "Instagram", false},
		{"Blank value", Selection{"YouTube"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sel.Contains(tt.v))
		})
	}
}

func TestFollowerRange_Contains(t *testing.T) {
	r := &FollowerRange{Min: 100, Max: 200}

	assert.True(t, r.Contains(i64(100)))
	assert.True(t, r.Contains(i64(200)))
	assert.False(t, r.Contains(i64(201)))
	assert.False(t, r.Contains(nil))

	var unset *FollowerRange
	assert.True(t, unset.Contains(nil))
	assert.True(t, AtLeast(100).Contains(i64(1_000_000_000)))
}

func TestDateRange_Contains(t *testing.T) {
	r := &DateRange{Start: *day("2025-06-01"), End: *day("2025-06-30")}

	late := time.Date(2025, 6, 30, 23, 59, 0, 0, time.UTC)

	assert.True(t, r.Contains(day("2025-06-01")))
	assert.True(t, r.Contains(&late), "end bound is a whole calendar day")
	assert.False(t, r.Contains(day("2025-07-01")))
	assert.False(t, r.Contains(nil))

	open := &DateRange{Start: *day("2025-06-01")}
	assert.True(t, open.Contains(day("2030-01-01")))
}

func TestFilter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		f       Filter
		wantErr error
	}{
		{"Empty", Filter{}, nil},
		{"Follower min above max", Filter{Followers: &FollowerRange{Min: 10, Max: 5}}, ErrFollowerRange},
		{"Negative followers", Filter{Followers: &FollowerRange{Min: -1, Max: 5}}, ErrNegativeRange},
		{"Start after end", Filter{Dates: &DateRange{Start: *day("2025-02-01"), End: *day("2025-01-01")}}, ErrDateRange},
		{"Open date range", Filter{Dates: &DateRange{End: *day("2025-01-01")}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestFilter_IsAllAndDescribe(t *testing.T) {
	assert.True(t, Filter{}.IsAll())
	assert.Empty(t, Filter{}.Describe())

	f := Filter{
		Platforms: Selection{"Instagram", "YouTube"},
		Followers: AtLeast(1000),
		Dates:     &DateRange{Start: *day("2025-01-01")},
	}

	assert.False(t, f.IsAll())
	assert.Equal(t, []string{
		"Platforms: Instagram, YouTube",
		"Followers: 1000+",
		"Dates: 2025-01-01 - *",
	}, f.Describe())
}

func TestFilter_MatchesInfluencer(t *testing.T) {
	inf := &models.Influencer{ID: "1", Platform: "Instagram", Category: "Fitness", Gender: "Female", FollowerCount: i64(5000)}

	assert.True(t, Filter{Categories: Selection{"fitness"}, Genders: Selection{"female"}}.MatchesInfluencer(inf))
	assert.False(t, Filter{Genders: Selection{"Male"}}.MatchesInfluencer(inf))
	assert.False(t, Filter{Followers: &FollowerRange{Min: 6000, Max: 9000}}.MatchesInfluencer(inf))
}
