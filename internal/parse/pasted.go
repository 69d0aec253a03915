package parse

import (
	"strconv"
	"strings"
)

// Record is one pre-structured stat line from the manual-entry path,
// already carrying every field. Zero fields are meaningful here: a manual
// record may deliberately overwrite stored data with zeros.
type Record struct {
	Name    string `json:"name"`
	Runs    int    `json:"runs"`
	Wickets int    `json:"wickets"`
	Catches int    `json:"catches"`
	Matches int    `json:"matches"`
}

// statsStartCol is the first stat-bearing column in a source table row.
// Columns 0..2 are rank, player, and team; pasted stats lines carry only
// the cells from this column onward.
const statsStartCol = 3

// ParsePasted converts text pasted from the source site into records.
//
// Two pasted shapes are supported:
//
//   - single-line rows: one table row per line, tab-delimited (a desktop
//     table copy, cells align with the HTML column layout) or
//     whitespace-delimited (rank, name tokens, then the numeric stat tail);
//   - three-line blocks: the mobile rendering wraps each row into a
//     rank+name line, a team line, and a stats line of the remaining cells.
//
// hint names the category the pasted table belongs to. When hint is empty
// the stats line is classified as bowling when any token carries a decimal
// point (an overs figure) and as batting otherwise. The heuristic cannot
// recognise fielding tables and misfires on layouts that include averages,
// so callers that know the category should always pass it.
func ParsePasted(text string, hint Category, profile Profile) []Record {
	var records []Record

	lines := make([]string, 0)
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}

	pendingName := ""
	sawTeam := false

	for _, line := range lines {
		if strings.Contains(line, "\t") {
			if rec, ok := parseTabRow(line, hint, profile); ok {
				records = append(records, rec)
			}
			pendingName = ""
			sawTeam = false
			continue
		}

		tokens := strings.Fields(line)
		name, tail := splitNameAndStats(tokens)

		switch {
		case name != "" && len(tail) > 0:
			// Single-line row: rank, name, numeric tail on one line.
			if rec, ok := recordFromStatsLine(name, tail, hint, profile); ok {
				records = append(records, rec)
			}
			pendingName = ""
			sawTeam = false

		case name == "" && len(tail) > 0:
			// Pure stats line closes an open three-line block.
			if pendingName != "" {
				if rec, ok := recordFromStatsLine(pendingName, tail, hint, profile); ok {
					records = append(records, rec)
				}
			}
			pendingName = ""
			sawTeam = false

		case name != "":
			// Name-only line: starts a block, or is the team line of one.
			if pendingName == "" || sawTeam {
				pendingName = name
				sawTeam = false
			} else {
				sawTeam = true
			}
		}
	}

	return records
}

// parseTabRow handles a full tab-delimited table row using the same column
// layout as the HTML parser.
func parseTabRow(line string, hint Category, profile Profile) (Record, bool) {
	cells := strings.Split(line, "\t")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}

	category := hint
	if category == "" {
		category = classifyStatsLine(cells)
	}
	layout := profile[category]

	if len(cells) < layout.MinCells || layout.NameCol >= len(cells) {
		return Record{}, false
	}
	name := cells[layout.NameCol]
	if name == "" {
		return Record{}, false
	}
	if _, skip := placeholderNames[name]; skip {
		return Record{}, false
	}

	at := func(idx int) int {
		if idx < 0 || idx >= len(cells) {
			return 0
		}
		n, err := strconv.Atoi(cells[idx])
		if err != nil {
			return 0
		}
		return n
	}

	rec := Record{Name: name}
	rec.Matches = at(layout.MatchesCol)
	rec.Runs = at(layout.RunsCol)
	rec.Wickets = at(layout.WicketsCol)
	rec.Catches = at(layout.CatchesCol)
	if layout.ExtraCatchesCol >= 0 {
		rec.Catches += at(layout.ExtraCatchesCol)
	}
	return rec, true
}

// recordFromStatsLine maps a numeric stats tail onto a category layout.
// Tail index i corresponds to table column statsStartCol+i.
func recordFromStatsLine(name string, tail []string, hint Category, profile Profile) (Record, bool) {
	if _, skip := placeholderNames[name]; skip {
		return Record{}, false
	}

	category := hint
	if category == "" {
		category = classifyStatsLine(tail)
	}
	layout := profile[category]

	at := func(col int) int {
		idx := col - statsStartCol
		if col < 0 || idx < 0 || idx >= len(tail) {
			return 0
		}
		n, err := strconv.Atoi(tail[idx])
		if err != nil {
			return 0
		}
		return n
	}

	rec := Record{Name: name}
	rec.Matches = at(layout.MatchesCol)
	rec.Runs = at(layout.RunsCol)
	rec.Wickets = at(layout.WicketsCol)
	rec.Catches = at(layout.CatchesCol)
	if layout.ExtraCatchesCol >= 0 {
		rec.Catches += at(layout.ExtraCatchesCol)
	}
	return rec, true
}

// classifyStatsLine guesses the category of a stats line. A token with a
// decimal point is read as an overs-bowled figure, marking the line as
// bowling; everything else is treated as batting. Best-effort only — see
// ParsePasted.
func classifyStatsLine(tokens []string) Category {
	for _, tok := range tokens {
		if strings.Contains(tok, ".") && isNumeric(tok) {
			return CategoryBowling
		}
	}
	return CategoryBatting
}

// splitNameAndStats separates a whitespace-tokenized line into a player
// name and the trailing numeric stats cells. A leading integer token is a
// rank and is dropped. Returns an empty name for pure stats lines.
func splitNameAndStats(tokens []string) (string, []string) {
	if len(tokens) == 0 {
		return "", nil
	}

	// A leading integer is a rank only when a name follows it; on a pure
	// stats line every token is a stat cell.
	i := 0
	if len(tokens) > 1 && isRank(tokens[0]) && !isNumeric(tokens[1]) {
		i++
	}

	nameStart := i
	for i < len(tokens) && !isNumeric(tokens[i]) {
		i++
	}

	name := strings.Join(tokens[nameStart:i], " ")
	return name, tokens[i:]
}

func isRank(tok string) bool {
	tok = strings.TrimSuffix(tok, ".")
	_, err := strconv.Atoi(tok)
	return err == nil
}

func isNumeric(tok string) bool {
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}
