package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuscricket/clubstats/internal/parse"
	"github.com/tuscricket/clubstats/internal/stats"
	"github.com/tuscricket/clubstats/internal/store"
)

type fakeGateway struct {
	aliases     map[string]string
	aliasErr    error
	upsertErr   error
	upserts     []store.SeasonStats
	touched     []string
	failPlayers map[string]bool
}

func (g *fakeGateway) UpsertSeasonStats(_ context.Context, rec store.SeasonStats) error {
	if g.upsertErr != nil {
		return g.upsertErr
	}
	if g.failPlayers[rec.PlayerName] {
		return errors.New("row rejected")
	}
	g.upserts = append(g.upserts, rec)
	return nil
}

func (g *fakeGateway) TouchLastUpdate(_ context.Context, playerName string, _ time.Time) error {
	g.touched = append(g.touched, playerName)
	return nil
}

func (g *fakeGateway) ReadAliases(_ context.Context) (map[string]string, error) {
	if g.aliasErr != nil {
		return nil, g.aliasErr
	}
	return g.aliases, nil
}

type fakeSource struct {
	sets    map[stats.Format]stats.CategorySet
	err     error
	fetched []stats.Format
}

func (s *fakeSource) FetchCategories(_ context.Context, format stats.Format) (stats.CategorySet, error) {
	s.fetched = append(s.fetched, format)
	if s.err != nil {
		return stats.CategorySet{}, s.err
	}
	return s.sets[format], nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRun_UnauthorizedPostWritesNothing(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	orch := New(gw, &fakeSource{}, "secret", nil)

	result := orch.Run(context.Background(), Request{Token: "wrong", RequireToken: true})

	require.ErrorIs(t, result.Err, ErrUnauthorized)
	assert.False(t, result.Success)
	assert.Empty(t, gw.upserts)
	assert.Empty(t, gw.touched)
}

func TestRun_ManualRecordsAlwaysRequireToken(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	orch := New(gw, &fakeSource{}, "secret", nil)

	// Even without RequireToken, a payload of records forces the check.
	result := orch.Run(context.Background(), Request{
		Format:  stats.FormatT20,
		Records: []parse.Record{{Name: "Arjun Mehta", Runs: 10}},
	})

	require.ErrorIs(t, result.Err, ErrUnauthorized)
	assert.Empty(t, gw.upserts)
}

func TestRun_NoTokenConfiguredDisablesCheck(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	orch := New(gw, &fakeSource{}, "", nil)

	result := orch.Run(context.Background(), Request{
		Format:  stats.FormatT20,
		Records: []parse.Record{{Name: "Arjun Mehta", Runs: 10}},
		RequireToken: true,
	})

	require.NoError(t, result.Err)
	assert.True(t, result.Success)
	require.Len(t, gw.upserts, 1)
}

func TestRun_ScrapeBothFormats(t *testing.T) {
	t.Parallel()

	src := &fakeSource{sets: map[stats.Format]stats.CategorySet{
		stats.FormatT20: {
			Batting: map[string]stats.Partial{"Arjun Mehta": {Matches: 10, Runs: 412}},
			Bowling: map[string]stats.Partial{"Sanjay Rao": {Matches: 9, Wickets: 17}},
		},
		stats.FormatFifty: {
			Batting: map[string]stats.Partial{"Arjun Mehta": {Matches: 4, Runs: 120}},
		},
	}}
	gw := &fakeGateway{}
	orch := New(gw, src, "secret", nil)

	// GET-style trigger: no token required, no records.
	result := orch.Run(context.Background(), Request{Season: 2025})

	require.NoError(t, result.Err)
	assert.Equal(t, []stats.Format{stats.FormatT20, stats.FormatFifty}, src.fetched)
	assert.Equal(t, 2, result.PlayersProcessed)

	// Arjun has rows in both formats, Sanjay only in T20; Sanjay's zero
	// Fifty bundle is suppressed.
	assert.Equal(t, 3, result.Results.Success)
	assert.Equal(t, 1, result.Results.Skipped)
	assert.ElementsMatch(t, []string{"Arjun Mehta", "Sanjay Rao"}, gw.touched)

	for _, rec := range gw.upserts {
		assert.Equal(t, 2025, rec.Season)
	}
}

func TestRun_SingleFormatScopeOnlyFetchesThatFormat(t *testing.T) {
	t.Parallel()

	src := &fakeSource{sets: map[stats.Format]stats.CategorySet{
		stats.FormatFifty: {
			Batting: map[string]stats.Partial{"Arjun Mehta": {Matches: 4, Runs: 120}},
		},
	}}
	gw := &fakeGateway{}
	orch := New(gw, src, "", nil)

	result := orch.Run(context.Background(), Request{Format: stats.FormatFifty})

	require.NoError(t, result.Err)
	assert.Equal(t, []stats.Format{stats.FormatFifty}, src.fetched)
	require.Len(t, gw.upserts, 1)
	assert.Equal(t, stats.FormatFifty, gw.upserts[0].Format)
}

func TestRun_ManualZerosStillWrite(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	orch := New(gw, &fakeSource{}, "", nil)

	result := orch.Run(context.Background(), Request{
		Format:  stats.FormatT20,
		Records: []parse.Record{{Name: "Arjun Mehta"}},
	})

	require.NoError(t, result.Err)
	// The operator explicitly asked for zeros; they overwrite.
	assert.Equal(t, 1, result.Results.Success)
	assert.Equal(t, 0, result.Results.Skipped)
	require.Len(t, gw.upserts, 1)
	assert.Equal(t, 0, gw.upserts[0].Runs)
	assert.Equal(t, 0, gw.upserts[0].Matches)
}

func TestRun_ManualWithoutFormatFails(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	orch := New(gw, &fakeSource{}, "", nil)

	result := orch.Run(context.Background(), Request{
		Records: []parse.Record{{Name: "Arjun Mehta", Runs: 10}},
	})

	require.Error(t, result.Err)
	assert.Empty(t, gw.upserts)
}

func TestRun_ManualAppliesAliases(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{aliases: map[string]string{"A. Mehta": "Arjun Mehta"}}
	orch := New(gw, &fakeSource{}, "", nil)

	result := orch.Run(context.Background(), Request{
		Format: stats.FormatT20,
		Records: []parse.Record{
			{Name: "A. Mehta", Runs: 100, Matches: 4},
			{Name: "Arjun Mehta", Runs: 50, Matches: 6},
		},
	})

	require.NoError(t, result.Err)
	assert.Equal(t, 1, result.PlayersProcessed)
	require.Len(t, gw.upserts, 1)
	assert.Equal(t, "Arjun Mehta", gw.upserts[0].PlayerName)
	assert.Equal(t, 150, gw.upserts[0].Runs)
	assert.Equal(t, 6, gw.upserts[0].Matches)
}

func TestRun_PerRowFailureDoesNotAbort(t *testing.T) {
	t.Parallel()

	src := &fakeSource{sets: map[stats.Format]stats.CategorySet{
		stats.FormatT20: {
			Batting: map[string]stats.Partial{
				"Arjun Mehta": {Matches: 10, Runs: 412},
				"Sanjay Rao":  {Matches: 9, Runs: 88},
			},
		},
	}}
	gw := &fakeGateway{failPlayers: map[string]bool{"Sanjay Rao": true}}
	orch := New(gw, src, "", nil)

	result := orch.Run(context.Background(), Request{Format: stats.FormatT20})

	require.NoError(t, result.Err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Results.Success)
	assert.Equal(t, 1, result.Results.Failed)
}

func TestRun_FetchFailureReported(t *testing.T) {
	t.Parallel()

	src := &fakeSource{err: errors.New("blocked by bot protection")}
	gw := &fakeGateway{}
	orch := New(gw, src, "", nil)

	result := orch.Run(context.Background(), Request{})

	require.Error(t, result.Err)
	assert.False(t, result.Success)
	assert.Empty(t, gw.upserts)
}

func TestRun_AliasReadFailureReported(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{aliasErr: errors.New("connection refused")}
	orch := New(gw, &fakeSource{}, "", nil)

	result := orch.Run(context.Background(), Request{})

	require.Error(t, result.Err)
	assert.False(t, result.Success)
}

func TestResolveSeason(t *testing.T) {
	t.Parallel()

	// Explicit season always wins.
	assert.Equal(t, 2024, resolveSeason(2024, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)))

	// Before April 2026 the open 2025 league year still applies.
	assert.Equal(t, 2025, resolveSeason(0, time.Date(2026, time.March, 31, 23, 0, 0, 0, time.UTC)))

	// From April 2026 onward the calendar year applies.
	assert.Equal(t, 2026, resolveSeason(0, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2025, resolveSeason(0, time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2027, resolveSeason(0, time.Date(2027, time.January, 10, 0, 0, 0, 0, time.UTC)))
}

func TestRun_ExplicitSeasonStampsRows(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	orch := New(gw, &fakeSource{}, "", nil)
	orch.now = fixedClock(time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC))

	result := orch.Run(context.Background(), Request{
		Format:  stats.FormatT20,
		Records: []parse.Record{{Name: "Arjun Mehta", Runs: 10}},
	})

	require.NoError(t, result.Err)
	require.Len(t, gw.upserts, 1)
	// No explicit season and a pre-April 2026 clock: rows land in 2025.
	assert.Equal(t, 2025, gw.upserts[0].Season)
}
