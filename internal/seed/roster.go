// Package seed imports the club roster from a file into the squad table.
// Day-to-day roster edits happen in the admin UI; this is for bootstrapping
// a fresh database or bulk-correcting the squad.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/tuscricket/clubstats/internal/store"
)

// Result tracks counts and errors from a roster import.
type Result struct {
	PlayersUpserted int
	Errors          []string
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the import.
func (r *Result) Summary() string {
	return fmt.Sprintf("players=%d errors=%d", r.PlayersUpserted, len(r.Errors))
}

// ImportRoster reads a JSON array of squad members from path and upserts
// each one. A row failure is recorded and the import continues; only an
// unreadable or unparsable file aborts.
func ImportRoster(ctx context.Context, st *store.Store, path string, logger *slog.Logger) (Result, error) {
	var result Result

	data, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("read roster file: %w", err)
	}

	var players []store.RosterPlayer
	if err := json.Unmarshal(data, &players); err != nil {
		return result, fmt.Errorf("parse roster file: %w", err)
	}

	for _, p := range players {
		if p.Name == "" {
			result.AddErrorf("skipping entry with empty name")
			continue
		}
		if err := st.UpsertRosterPlayer(ctx, p); err != nil {
			result.AddErrorf("upsert %s: %v", p.Name, err)
			continue
		}
		result.PlayersUpserted++
		logger.Debug("Roster player upserted", "player", p.Name, "active", p.IsActive)
	}

	return result, nil
}
