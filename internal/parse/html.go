package parse

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tuscricket/clubstats/internal/stats"
)

// placeholder row names that appear in CricClubs tables but are not players.
var placeholderNames = map[string]struct{}{
	"Player": {},
	"Name":   {},
	"Total":  {},
}

// ParseHTML extracts per-player records for one category from an HTML page.
//
// A table qualifies only when its header row contains a column literally
// named "player" or "name" (case-insensitive); other tables on the page —
// navigation, ads, summary widgets — are skipped without error. Rows with
// fewer cells than the layout requires, empty names, or placeholder names
// are dropped. Numeric cells that fail to parse count as zero.
func ParseHTML(html string, category Category, layout Layout) (map[string]stats.Partial, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	records := make(map[string]stats.Partial)

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if !headerHasNameColumn(table) {
			return
		}

		table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < layout.MinCells {
				return
			}

			name := strings.TrimSpace(cells.Eq(layout.NameCol).Text())
			if name == "" {
				return
			}
			if _, skip := placeholderNames[name]; skip {
				return
			}

			records[name] = partialFromCells(cells, layout)
		})
	})

	return records, nil
}

func headerHasNameColumn(table *goquery.Selection) bool {
	found := false
	table.Find("thead tr th").Each(func(_ int, th *goquery.Selection) {
		header := strings.ToLower(strings.TrimSpace(th.Text()))
		if header == "player" || header == "name" {
			found = true
		}
	})
	return found
}

func partialFromCells(cells *goquery.Selection, layout Layout) stats.Partial {
	var p stats.Partial
	if layout.MatchesCol >= 0 {
		p.Matches = cellInt(cells, layout.MatchesCol)
	}
	if layout.RunsCol >= 0 {
		p.Runs = cellInt(cells, layout.RunsCol)
	}
	if layout.WicketsCol >= 0 {
		p.Wickets = cellInt(cells, layout.WicketsCol)
	}
	if layout.CatchesCol >= 0 {
		p.Catches = cellInt(cells, layout.CatchesCol)
		if layout.ExtraCatchesCol >= 0 {
			p.Catches += cellInt(cells, layout.ExtraCatchesCol)
		}
	}
	return p
}

// cellInt parses a cell as an integer, defaulting to zero on any failure.
// Garbled cells degrade the row gracefully instead of aborting the parse.
func cellInt(cells *goquery.Selection, idx int) int {
	if idx >= cells.Length() {
		return 0
	}
	text := strings.TrimSpace(cells.Eq(idx).Text())
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return n
}
