// Package stats defines the canonical statistics types that the parser,
// aggregator, and store share. Parsers output per-category partials, the
// aggregator merges them into per-format bundles, and the store persists
// one row per (player, season, format).
package stats

// Format identifies one of the two league competitions the club tracks.
type Format string

const (
	FormatT20   Format = "T20"
	FormatFifty Format = "Fifty"
)

// Formats lists all tracked formats in a stable order.
func Formats() []Format {
	return []Format{FormatT20, FormatFifty}
}

// Valid reports whether f is one of the two tracked formats.
func (f Format) Valid() bool {
	return f == FormatT20 || f == FormatFifty
}

// Bundle is one player's contribution in one scope (a single format, or the
// derived total across formats). All fields are non-negative counts.
type Bundle struct {
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
	Catches int `json:"catches"`
	Matches int `json:"matches"`
}

// IsZero reports whether every field of the bundle is zero. Zero bundles
// from the scrape path are not persisted so an empty scrape cannot wipe
// existing data.
func (b Bundle) IsZero() bool {
	return b.Runs == 0 && b.Wickets == 0 && b.Catches == 0 && b.Matches == 0
}

// PlayerTotals holds one canonical player's per-format bundles plus the
// derived total. Total is recomputed from the format bundles on every
// aggregation pass, never patched incrementally.
type PlayerTotals struct {
	T20   Bundle `json:"t20"`
	Fifty Bundle `json:"fifty"`
	Total Bundle `json:"total"`
}

// ForFormat returns the bundle for the given format.
func (p PlayerTotals) ForFormat(f Format) Bundle {
	if f == FormatFifty {
		return p.Fifty
	}
	return p.T20
}

// SetFormat replaces the bundle for the given format.
func (p *PlayerTotals) SetFormat(f Format, b Bundle) {
	if f == FormatFifty {
		p.Fifty = b
		return
	}
	p.T20 = b
}
