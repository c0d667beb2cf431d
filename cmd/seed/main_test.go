package main

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influencerdash/internal/config"
	"influencerdash/internal/loader"
	"influencerdash/internal/metrics"
)

func seedSession(t *testing.T, cfg Config) *loader.Session {
	t.Helper()

	cfg.OutDir = t.TempDir()
	require.NoError(t, writeTables(cfg.OutDir, generate(cfg), false))

	appCfg := config.Default()
	appCfg.Data.BaseDir = cfg.OutDir

	session, err := loader.Open(appCfg, nil)
	require.NoError(t, err)

	return session
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := Config{Influencers: 8, Seed: 7}

	assert.True(t, reflect.DeepEqual(generate(cfg), generate(cfg)))

	other := generate(Config{Influencers: 8, Seed: 8})
	assert.False(t, reflect.DeepEqual(generate(cfg), other))
}

func TestSeed_LoadsClean(t *testing.T) {
	session := seedSession(t, Config{Influencers: 12, Seed: 42})

	assert.Len(t, session.Dataset.Influencers, 12)
	assert.Empty(t, session.Issues, "every generated value parses")
	assert.True(t, session.Quality.IsValid, "errors: %v", session.Quality.Errors)
	assert.Zero(t, session.Quality.Stats.PayoutMismatches)

	for _, inf := range session.Dataset.Influencers {
		require.NotNil(t, inf.FollowerCount, "grouped follower counts are parsed")
	}

	res := metrics.Compute(session.Dataset, metrics.Filter{}, metrics.DefaultOptions())

	assert.True(t, res.Headline.TotalRevenue.IsPositive())
	assert.True(t, res.Headline.ROAS.Valid)
	assert.Len(t, res.Influencers, 12)
	assert.True(t, res.Unattributed.Empty())
}

func TestSeed_Dirty(t *testing.T) {
	session := seedSession(t, Config{Influencers: 5, Seed: 1, Dirty: true})

	assert.NotEmpty(t, session.Issues)
	assert.True(t, session.Quality.IsValid, "dirty rows are warnings, not integrity errors")
	assert.NotEmpty(t, session.Quality.Warnings)
	assert.Equal(t, 1, session.Quality.Stats.UnresolvedTracking)
	assert.Equal(t, 1, session.Quality.Stats.UnresolvedPosts)
	assert.Equal(t, 1, session.Quality.Stats.UnresolvedPayouts)
	assert.Equal(t, 1, session.Quality.Stats.UnknownBasis)

	res := metrics.Compute(session.Dataset, metrics.Filter{}, metrics.DefaultOptions())
	assert.Equal(t, 1, res.Unattributed.Records)
	assert.Equal(t, 1, res.Unattributed.Posts)
}

func TestWriteTables_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	tables := generate(Config{Influencers: 2, Seed: 3})

	require.NoError(t, writeTables(dir, tables, false))

	err := writeTables(dir, tables, false)
	assert.True(t, errors.Is(err, errExists), "got %v", err)

	assert.NoError(t, writeTables(dir, tables, true))
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "999", groupThousands(999))
	assert.Equal(t, "5,000", groupThousands(5000))
	assert.Equal(t, "499,000", groupThousands(499000))
	assert.Equal(t, "1,234,567", groupThousands(1234567))
}
