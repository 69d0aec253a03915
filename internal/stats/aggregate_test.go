package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_CaseInsensitiveLookup(t *testing.T) {
	t.Parallel()

	r := NewResolver(map[string]string{
		"A. Mehta":    "Arjun Mehta",
		"s rao":       "Sanjay Rao",
		"L. O'CONNOR": "Liam O'Connor",
	})

	assert.Equal(t, "Arjun Mehta", r.Resolve("a. mehta"))
	assert.Equal(t, "Arjun Mehta", r.Resolve("A. MEHTA"))
	assert.Equal(t, "Sanjay Rao", r.Resolve("S Rao"))
	assert.Equal(t, "Liam O'Connor", r.Resolve("l. o'connor"))

	// No alias: the name resolves to itself.
	assert.Equal(t, "Unknown Player", r.Resolve("Unknown Player"))
}

func TestCombine_AllRounderMatchesDeduplicate(t *testing.T) {
	t.Parallel()

	t20 := CategorySet{
		Batting:  map[string]Partial{"Arjun Mehta": {Matches: 10, Runs: 412}},
		Bowling:  map[string]Partial{"Arjun Mehta": {Matches: 10, Wickets: 6}},
		Fielding: map[string]Partial{"Arjun Mehta": {Catches: 5}},
	}

	combined := Combine(t20, CategorySet{}, NewResolver(nil))
	require.Contains(t, combined, "Arjun Mehta")

	got := combined["Arjun Mehta"].T20
	assert.Equal(t, 412, got.Runs)
	assert.Equal(t, 6, got.Wickets)
	assert.Equal(t, 5, got.Catches)
	// Batting and bowling both report 10 matches; they must not add up.
	assert.Equal(t, 10, got.Matches)
}

func TestCombine_AliasCollisionSumsCountingStats(t *testing.T) {
	t.Parallel()

	t20 := CategorySet{
		Batting: map[string]Partial{
			"Arjun Mehta": {Matches: 6, Runs: 200},
			"A. Mehta":    {Matches: 4, Runs: 100},
		},
	}
	r := NewResolver(map[string]string{"A. Mehta": "Arjun Mehta"})

	combined := Combine(t20, CategorySet{}, r)
	require.Len(t, combined, 1)

	got := combined["Arjun Mehta"].T20
	// Counting stats add across spellings; matches take the max.
	assert.Equal(t, 300, got.Runs)
	assert.Equal(t, 6, got.Matches)
}

func TestCombine_TotalSpansFormats(t *testing.T) {
	t.Parallel()

	t20 := CategorySet{
		Batting: map[string]Partial{"Sanjay Rao": {Matches: 8, Runs: 150}},
		Bowling: map[string]Partial{"Sanjay Rao": {Matches: 8, Wickets: 12}},
	}
	fifty := CategorySet{
		Batting:  map[string]Partial{"Sanjay Rao": {Matches: 5, Runs: 90}},
		Fielding: map[string]Partial{"Sanjay Rao": {Catches: 3}},
	}

	combined := Combine(t20, fifty, NewResolver(nil))
	got := combined["Sanjay Rao"]

	assert.Equal(t, Bundle{Runs: 150, Wickets: 12, Matches: 8}, got.T20)
	assert.Equal(t, Bundle{Runs: 90, Catches: 3, Matches: 5}, got.Fifty)
	// Total sums across formats, including matches: the competitions do
	// not share fixtures.
	assert.Equal(t, Bundle{Runs: 240, Wickets: 12, Catches: 3, Matches: 13}, got.Total)
}

func TestCombine_SingleCategoryPlayerGetsFullBundle(t *testing.T) {
	t.Parallel()

	fifty := CategorySet{
		Fielding: map[string]Partial{"Dinesh Kumar": {Catches: 7}},
	}

	combined := Combine(CategorySet{}, fifty, NewResolver(nil))
	require.Contains(t, combined, "Dinesh Kumar")

	got := combined["Dinesh Kumar"]
	assert.Equal(t, Bundle{Catches: 7}, got.Fifty)
	assert.True(t, got.T20.IsZero())
	assert.Equal(t, 7, got.Total.Catches)
}

func TestBundle_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, Bundle{}.IsZero())
	assert.False(t, Bundle{Matches: 1}.IsZero())
	assert.False(t, Bundle{Catches: 1}.IsZero())
}

func TestFormat_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, FormatT20.Valid())
	assert.True(t, FormatFifty.Valid())
	assert.False(t, Format("").Valid())
	assert.False(t, Format("T10").Valid())
}
