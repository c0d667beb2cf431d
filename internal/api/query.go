package api

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"influencerdash/internal/metrics"
	"influencerdash/pkg/utils"
)

// Request errors.
var (
	ErrInvalidQuery = errors.New("invalid filter")
	ErrInvalidBody  = errors.New("invalid request body")
)

var strs = utils.NewStringHelper()

// FilterRequest is the wire form of a filter plus the per-request engine
// options. Empty lists and a literal "all" both mean no restriction.
type FilterRequest struct {
	BaselineRevenue    *decimal.Decimal `json:"baselineRevenue,omitempty"`
	FollowersMin       *int64           `json:"followersMin,omitempty"`
	FollowersMax       *int64           `json:"followersMax,omitempty"`
	TopN               *int             `json:"topN,omitempty"`
	From               string           `json:"from,omitempty"`
	To                 string           `json:"to,omitempty"`
	Platform           []string         `json:"platform,omitempty"`
	Product            []string         `json:"product,omitempty"`
	Campaign           []string         `json:"campaign,omitempty"`
	InfluencerCategory []string         `json:"influencerCategory,omitempty"`
	Gender             []string         `json:"gender,omitempty"`
}

// ParseQuery reads a FilterRequest from URL query parameters. List values
// may be repeated or comma separated.
func ParseQuery(q url.Values) (FilterRequest, error) {
	req := FilterRequest{
		Platform:           listParam(q, "platform"),
		Product:            listParam(q, "product"),
		Campaign:           listParam(q, "campaign"),
		InfluencerCategory: listParam(q, "category", "influencer_category"),
		Gender:             listParam(q, "gender"),
		From:               strings.TrimSpace(q.Get("from")),
		To:                 strings.TrimSpace(q.Get("to")),
	}

	var err error

	if req.FollowersMin, err = intParam(q, "followers_min"); err != nil {
		return req, err
	}

	if req.FollowersMax, err = intParam(q, "followers_max"); err != nil {
		return req, err
	}

	if v := strings.TrimSpace(q.Get("baseline_revenue")); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return req, fmt.Errorf("%w: baseline_revenue %q is not a number", ErrInvalidQuery, v)
		}

		req.BaselineRevenue = &d
	}

	if v := strings.TrimSpace(q.Get("top_n")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("%w: top_n %q is not a whole number", ErrInvalidQuery, v)
		}

		req.TopN = &n
	}

	return req, nil
}

func listParam(q url.Values, names ...string) []string {
	var out []string

	for _, name := range names {
		for _, v := range q[name] {
			out = append(out, strs.SplitList(v)...)
		}
	}

	return out
}

func intParam(q url.Values, name string) (*int64, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q is not a whole number", ErrInvalidQuery, name, v)
	}

	return &n, nil
}

// Resolve turns the request into an engine filter and options, starting
// from defaults.
func (req FilterRequest) Resolve(defaults metrics.Options) (metrics.Filter, metrics.Options, error) {
	opts := defaults

	f := metrics.Filter{
		Platforms:  selection(req.Platform),
		Products:   selection(req.Product),
		Campaigns:  selection(req.Campaign),
		Categories: selection(req.InfluencerCategory),
		Genders:    selection(req.Gender),
	}

	switch {
	case req.FollowersMin != nil && req.FollowersMax != nil:
		f.Followers = &metrics.FollowerRange{Min: *req.FollowersMin, Max: *req.FollowersMax}
	case req.FollowersMin != nil:
		f.Followers = metrics.AtLeast(*req.FollowersMin)
	case req.FollowersMax != nil:
		f.Followers = &metrics.FollowerRange{Min: 0, Max: *req.FollowersMax}
	}

	if req.From != "" || req.To != "" {
		start, err := dateParam("from", req.From)
		if err != nil {
			return f, opts, err
		}

		end, err := dateParam("to", req.To)
		if err != nil {
			return f, opts, err
		}

		f.Dates = &metrics.DateRange{Start: start, End: end}
	}

	if err := f.Validate(); err != nil {
		return f, opts, err
	}

	if req.BaselineRevenue != nil {
		if req.BaselineRevenue.IsNegative() {
			return f, opts, fmt.Errorf("%w: baseline revenue cannot be negative", ErrInvalidQuery)
		}

		opts.BaselineRevenue = *req.BaselineRevenue
	}

	if req.TopN != nil {
		if *req.TopN < 1 {
			return f, opts, fmt.Errorf("%w: top n must be at least 1", ErrInvalidQuery)
		}

		opts.TopN = *req.TopN
	}

	return f, opts, nil
}

func selection(values []string) metrics.Selection {
	var out metrics.Selection

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		if strings.EqualFold(v, "all") {
			return nil
		}

		out = append(out, v)
	}

	return out
}

func dateParam(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q is not a YYYY-MM-DD date", ErrInvalidQuery, name, v)
	}

	return t, nil
}
