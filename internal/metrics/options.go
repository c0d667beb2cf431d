package metrics

import (
	"sort"
	"strings"
	"time"

	"influencerdash/internal/models"
)

// FilterOptions lists the values a filter control can offer for a dataset.
type FilterOptions struct {
	FollowerMin *int64     `json:"followerMin"`
	FollowerMax *int64     `json:"followerMax"`
	DateMin     *time.Time `json:"dateMin"`
	DateMax     *time.Time `json:"dateMax"`
	Platforms   []string   `json:"platforms"`
	Products    []string   `json:"products"`
	Campaigns   []string   `json:"campaigns"`
	Categories  []string   `json:"categories"`
	Genders     []string   `json:"genders"`
}

// AvailableOptions collects the distinct non-blank values of every filter
// dimension, sorted, plus the follower and date bounds. Platforms come from
// the roster, the only platform a filter matches on.
func AvailableOptions(ds *models.Dataset) FilterOptions {
	var opts FilterOptions

	var platforms, products, campaigns, categories, genders distinct

	if ds == nil {
		return opts
	}

	for _, inf := range ds.Influencers {
		platforms.add(inf.Platform)
		categories.add(inf.Category)
		genders.add(inf.Gender)

		if inf.FollowerCount != nil {
			n := *inf.FollowerCount
			if opts.FollowerMin == nil || n < *opts.FollowerMin {
				opts.FollowerMin = &n
			}

			if opts.FollowerMax == nil || n > *opts.FollowerMax {
				opts.FollowerMax = &n
			}
		}
	}

	widen := func(d *time.Time) {
		if d == nil {
			return
		}

		if opts.DateMin == nil || d.Before(*opts.DateMin) {
			opts.DateMin = d
		}

		if opts.DateMax == nil || d.After(*opts.DateMax) {
			opts.DateMax = d
		}
	}

	for _, p := range ds.Posts {
		widen(p.Date)
	}

	for _, rec := range ds.Tracking {
		products.add(rec.Product)
		campaigns.add(rec.Campaign)
		widen(rec.Date)
	}

	opts.Platforms = platforms.sorted()
	opts.Products = products.sorted()
	opts.Campaigns = campaigns.sorted()
	opts.Categories = categories.sorted()
	opts.Genders = genders.sorted()

	return opts
}

// distinct keeps the first spelling of each case-insensitive value.
type distinct map[string]string

func (d *distinct) add(v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}

	if *d == nil {
		*d = make(distinct)
	}

	key := strings.ToLower(v)
	if _, ok := (*d)[key]; !ok {
		(*d)[key] = v
	}
}

func (d distinct) sorted() []string {
	out := make([]string, 0, len(d))
	for _, v := range d {
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})

	return out
}
