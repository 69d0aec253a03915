// Package parse converts raw tabular input — CricClubs HTML pages or text
// pasted from them — into per-category player records. It is pure
// transformation: no I/O, and malformed numeric cells degrade to zero
// instead of failing the row.
package parse

// Category identifies one statistical table on the source site.
type Category string

const (
	CategoryBatting  Category = "batting"
	CategoryBowling  Category = "bowling"
	CategoryFielding Category = "fielding"
)

// Categories lists all scraped categories in fetch order.
func Categories() []Category {
	return []Category{CategoryBatting, CategoryBowling, CategoryFielding}
}

// Layout describes where a category's columns sit in the source table.
// CricClubs has shifted column order between revisions of its pages, so
// offsets are data, not code. A column index of -1 means the category does
// not report that field.
type Layout struct {
	NameCol         int
	MatchesCol      int
	RunsCol         int
	WicketsCol      int
	CatchesCol      int
	ExtraCatchesCol int // wicket-keeper catches, added to CatchesCol when >= 0
	MinCells        int // rows with fewer cells are skipped
}

// Profile maps each category to its column layout. Profiles are selectable
// at call time so a layout drift on the source side is a config change.
type Profile map[Category]Layout

// DefaultProfile matches the column order served by CricClubs team pages
// as observed by the automated scraper.
//
//	Batting:  #(0) Player(1) Team(2) Mat(3) Ins(4) NO(5) Runs(6) ...
//	Bowling:  #(0) Player(1) Team(2) Mat(3) Ins(4) Overs(5) Mdns(6) Wkts(7) ...
//	Fielding: #(0) Player(1) Team(2) Catches(3) ...
func DefaultProfile() Profile {
	return Profile{
		CategoryBatting:  {NameCol: 1, MatchesCol: 3, RunsCol: 6, WicketsCol: -1, CatchesCol: -1, ExtraCatchesCol: -1, MinCells: 7},
		CategoryBowling:  {NameCol: 1, MatchesCol: 3, RunsCol: -1, WicketsCol: 7, CatchesCol: -1, ExtraCatchesCol: -1, MinCells: 8},
		CategoryFielding: {NameCol: 1, MatchesCol: -1, RunsCol: -1, WicketsCol: -1, CatchesCol: 3, ExtraCatchesCol: -1, MinCells: 4},
	}
}

// RevisedProfile matches the layout verified on the site in February 2026:
// bowling wickets moved one column right (Mdns/Runs inserted before Wkts)
// and fielding splits outfield catches from wicket-keeper catches.
//
//	Bowling:  #(0) Player(1) Team(2) Mat(3) Ins(4) Overs(5) Mdns(6) Runs(7) Wkts(8) ...
//	Fielding: #(0) Player(1) Team(2) Catches(3) WK Catches(4) ...
func RevisedProfile() Profile {
	return Profile{
		CategoryBatting:  {NameCol: 1, MatchesCol: 3, RunsCol: 6, WicketsCol: -1, CatchesCol: -1, ExtraCatchesCol: -1, MinCells: 7},
		CategoryBowling:  {NameCol: 1, MatchesCol: 3, RunsCol: -1, WicketsCol: 8, CatchesCol: -1, ExtraCatchesCol: -1, MinCells: 9},
		CategoryFielding: {NameCol: 1, MatchesCol: -1, RunsCol: -1, WicketsCol: -1, CatchesCol: 3, ExtraCatchesCol: 4, MinCells: 5},
	}
}

// ProfileByName returns a named profile, falling back to the default for
// unknown names.
func ProfileByName(name string) Profile {
	if name == "revised" {
		return RevisedProfile()
	}
	return DefaultProfile()
}
