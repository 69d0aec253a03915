package stats

// Partial is one player's record from a single statistical category (one
// table). Only the fields the category reports are populated; the rest
// stay zero.
type Partial struct {
	Matches int
	Runs    int
	Wickets int
	Catches int
}

// CategorySet groups the three per-category record maps parsed for one
// format, keyed by source player name.
type CategorySet struct {
	Batting  map[string]Partial
	Bowling  map[string]Partial
	Fielding map[string]Partial
}

// Names returns the set-union of player names across all three categories.
// A player appearing in only one category still gets a full bundle.
func (cs CategorySet) Names() map[string]struct{} {
	names := make(map[string]struct{}, len(cs.Batting)+len(cs.Bowling)+len(cs.Fielding))
	for n := range cs.Batting {
		names[n] = struct{}{}
	}
	for n := range cs.Bowling {
		names[n] = struct{}{}
	}
	for n := range cs.Fielding {
		names[n] = struct{}{}
	}
	return names
}

// Combine merges the per-category records of both formats into per-player
// totals keyed by canonical name.
//
// Runs, wickets and catches sum across source names that resolve to the
// same canonical player (alias collisions must add up, not overwrite).
// Matches de-duplicate via max instead, since batting and bowling tables
// both report the same match count for an all-rounder.
//
// The Total bundle is derived in a final pass after both formats have been
// merged.
func Combine(t20, fifty CategorySet, r Resolver) map[string]PlayerTotals {
	combined := make(map[string]PlayerTotals)

	merge := func(cs CategorySet, format Format) {
		for name := range cs.Names() {
			canonical := r.Resolve(name)
			totals := combined[canonical]
			bundle := totals.ForFormat(format)

			if rec, ok := cs.Batting[name]; ok {
				bundle.Runs += rec.Runs
				bundle.Matches = maxInt(bundle.Matches, rec.Matches)
			}
			if rec, ok := cs.Bowling[name]; ok {
				bundle.Wickets += rec.Wickets
				bundle.Matches = maxInt(bundle.Matches, rec.Matches)
			}
			if rec, ok := cs.Fielding[name]; ok {
				bundle.Catches += rec.Catches
			}

			totals.SetFormat(format, bundle)
			combined[canonical] = totals
		}
	}

	merge(t20, FormatT20)
	merge(fifty, FormatFifty)

	for name, totals := range combined {
		totals.Total = Bundle{
			Runs:    totals.T20.Runs + totals.Fifty.Runs,
			Wickets: totals.T20.Wickets + totals.Fifty.Wickets,
			Catches: totals.T20.Catches + totals.Fifty.Catches,
			Matches: totals.T20.Matches + totals.Fifty.Matches,
		}
		combined[name] = totals
	}

	return combined
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
