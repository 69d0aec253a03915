package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const battingPage = `
<html><body>
<table class="nav"><tr><td><a href="/">Home</a></td></tr></table>
<table>
<thead><tr><th>#</th><th>Player</th><th>Team</th><th>Mat</th><th>Inns</th><th>NO</th><th>Runs</th><th>HS</th></tr></thead>
<tbody>
<tr><td>1</td><td>Arjun Mehta</td><td>TuS</td><td>10</td><td>9</td><td>2</td><td>412</td><td>88</td></tr>
<tr><td>2</td><td>Liam O'Connor</td><td>TuS</td><td>8</td><td>8</td><td>0</td><td>305</td><td>71*</td></tr>
<tr><td>3</td><td>Total</td><td></td><td>18</td><td>17</td><td>2</td><td>717</td><td>-</td></tr>
<tr><td>4</td><td></td><td>TuS</td><td>5</td><td>5</td><td>1</td><td>99</td><td>40</td></tr>
</tbody>
</table>
</body></html>`

func TestParseHTML_Batting(t *testing.T) {
	t.Parallel()

	records, err := ParseHTML(battingPage, CategoryBatting, DefaultProfile()[CategoryBatting])
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 412, records["Arjun Mehta"].Runs)
	assert.Equal(t, 10, records["Arjun Mehta"].Matches)
	assert.Equal(t, 305, records["Liam O'Connor"].Runs)
	assert.Equal(t, 8, records["Liam O'Connor"].Matches)
}

func TestParseHTML_SkipsTablesWithoutPlayerHeader(t *testing.T) {
	t.Parallel()

	page := `<table>
<thead><tr><th>Date</th><th>Opponent</th><th>Result</th><th>x</th><th>y</th><th>z</th><th>w</th></tr></thead>
<tbody><tr><td>1</td><td>Somewhere CC</td><td>Won</td><td>1</td><td>2</td><td>3</td><td>4</td></tr></tbody>
</table>`

	records, err := ParseHTML(page, CategoryBatting, DefaultProfile()[CategoryBatting])
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseHTML_SkipsShortRows(t *testing.T) {
	t.Parallel()

	page := `<table>
<thead><tr><th>#</th><th>Player</th></tr></thead>
<tbody><tr><td>1</td><td>Arjun Mehta</td><td>TuS</td></tr></tbody>
</table>`

	records, err := ParseHTML(page, CategoryBatting, DefaultProfile()[CategoryBatting])
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseHTML_MalformedNumericCellIsZero(t *testing.T) {
	t.Parallel()

	page := `<table>
<thead><tr><th>#</th><th>Name</th><th>Team</th><th>Mat</th><th>Inns</th><th>NO</th><th>Runs</th></tr></thead>
<tbody><tr><td>1</td><td>Arjun Mehta</td><td>TuS</td><td>n/a</td><td>9</td><td>2</td><td>412</td></tr></tbody>
</table>`

	records, err := ParseHTML(page, CategoryBatting, DefaultProfile()[CategoryBatting])
	require.NoError(t, err)
	require.Contains(t, records, "Arjun Mehta")
	assert.Equal(t, 0, records["Arjun Mehta"].Matches)
	assert.Equal(t, 412, records["Arjun Mehta"].Runs)
}

func TestParseHTML_BowlingLayouts(t *testing.T) {
	t.Parallel()

	// Default layout: wickets in column 7.
	defaultPage := `<table>
<thead><tr><th>#</th><th>Player</th><th>Team</th><th>Mat</th><th>Inns</th><th>Ov</th><th>Mdns</th><th>Wkts</th></tr></thead>
<tbody><tr><td>1</td><td>Sanjay Rao</td><td>TuS</td><td>9</td><td>9</td><td>31.2</td><td>2</td><td>17</td></tr></tbody>
</table>`

	records, err := ParseHTML(defaultPage, CategoryBowling, DefaultProfile()[CategoryBowling])
	require.NoError(t, err)
	assert.Equal(t, 17, records["Sanjay Rao"].Wickets)
	assert.Equal(t, 9, records["Sanjay Rao"].Matches)

	// Revised layout: a Runs column pushes wickets to column 8.
	revisedPage := `<table>
<thead><tr><th>#</th><th>Player</th><th>Team</th><th>Mat</th><th>Inns</th><th>Ov</th><th>Mdns</th><th>Runs</th><th>Wkts</th></tr></thead>
<tbody><tr><td>1</td><td>Sanjay Rao</td><td>TuS</td><td>9</td><td>9</td><td>31.2</td><td>2</td><td>120</td><td>17</td></tr></tbody>
</table>`

	records, err = ParseHTML(revisedPage, CategoryBowling, RevisedProfile()[CategoryBowling])
	require.NoError(t, err)
	assert.Equal(t, 17, records["Sanjay Rao"].Wickets)
}

func TestParseHTML_FieldingAddsKeeperCatches(t *testing.T) {
	t.Parallel()

	page := `<table>
<thead><tr><th>#</th><th>Player</th><th>Team</th><th>Catches</th><th>WK Catches</th></tr></thead>
<tbody><tr><td>1</td><td>Dinesh Kumar</td><td>TuS</td><td>6</td><td>4</td></tr></tbody>
</table>`

	records, err := ParseHTML(page, CategoryFielding, RevisedProfile()[CategoryFielding])
	require.NoError(t, err)
	assert.Equal(t, 10, records["Dinesh Kumar"].Catches)

	// Default layout only reads the outfield column and tolerates the
	// extra cell.
	records, err = ParseHTML(page, CategoryFielding, DefaultProfile()[CategoryFielding])
	require.NoError(t, err)
	assert.Equal(t, 6, records["Dinesh Kumar"].Catches)
}
