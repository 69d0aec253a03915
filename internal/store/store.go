// Package store is the only boundary to durable storage. It owns the
// squad, player_stats, and mappings tables and exposes idempotent upserts
// plus the reads the pipeline and API need.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuscricket/clubstats/internal/config"
	"github.com/tuscricket/clubstats/internal/stats"
)

// SeasonStats is one persisted (player, season, format) stat row.
type SeasonStats struct {
	PlayerName string       `json:"player_name"`
	Season     int          `json:"season"`
	Format     stats.Format `json:"format"`
	Runs       int          `json:"runs"`
	Wickets    int          `json:"wickets"`
	Catches    int          `json:"catches"`
	Matches    int          `json:"matches"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// RosterPlayer is one squad member. Player lifecycle is managed by the
// admin UI; the pipeline only reads the roster and touches
// last_stats_update.
type RosterPlayer struct {
	Name            string     `json:"name"`
	IsActive        bool       `json:"is_active"`
	LastStatsUpdate *time.Time `json:"last_stats_update,omitempty"`
	PhotoURL        *string    `json:"photo_url,omitempty"`
}

// Alias is one source-name to roster-name mapping.
type Alias struct {
	SourceName string `json:"source_name"`
	TargetName string `json:"target_name"`
}

// Store implements the persistence gateway on a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// UpsertSeasonStats inserts or updates one stat row keyed on
// (player_name, season, format). Re-running a sync with identical input
// leaves identical stored values; only updated_at advances.
func (s *Store) UpsertSeasonStats(ctx context.Context, rec SeasonStats) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.PlayerStatsTable+` (
			player_name, season, format, runs, wickets, catches, matches, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (player_name, season, format) DO UPDATE SET
			runs = EXCLUDED.runs,
			wickets = EXCLUDED.wickets,
			catches = EXCLUDED.catches,
			matches = EXCLUDED.matches,
			updated_at = EXCLUDED.updated_at`,
		rec.PlayerName, rec.Season, string(rec.Format),
		rec.Runs, rec.Wickets, rec.Catches, rec.Matches, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert season stats for %s/%s: %w", rec.PlayerName, rec.Format, err)
	}
	return nil
}

// UpsertRosterPlayer inserts or updates a squad member keyed on name.
func (s *Store) UpsertRosterPlayer(ctx context.Context, p RosterPlayer) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.SquadTable+` (name, is_active, last_stats_update, photo_url)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (name) DO UPDATE SET
			is_active = EXCLUDED.is_active,
			last_stats_update = COALESCE(EXCLUDED.last_stats_update, `+config.SquadTable+`.last_stats_update),
			photo_url = COALESCE(EXCLUDED.photo_url, `+config.SquadTable+`.photo_url)`,
		p.Name, p.IsActive, p.LastStatsUpdate, p.PhotoURL,
	)
	if err != nil {
		return fmt.Errorf("upsert roster player %s: %w", p.Name, err)
	}
	return nil
}

// TouchLastUpdate records a successful sync on the player's roster row.
// A player missing from the roster is not an error — scraped players that
// the admin never added simply have no row to touch.
func (s *Store) TouchLastUpdate(ctx context.Context, playerName string, ts time.Time) error {
	_, err := s.pool.Exec(ctx, "touch_last_update", playerName, ts)
	if err != nil {
		return fmt.Errorf("touch last update for %s: %w", playerName, err)
	}
	return nil
}

// ReadAliases returns the full alias table as a lookup map keyed by
// lower-cased source name.
func (s *Store) ReadAliases(ctx context.Context) (map[string]string, error) {
	rows, err := s.pool.Query(ctx, "read_aliases")
	if err != nil {
		return nil, fmt.Errorf("read aliases: %w", err)
	}
	defer rows.Close()

	aliases := make(map[string]string)
	for rows.Next() {
		var a Alias
		if err := rows.Scan(&a.SourceName, &a.TargetName); err != nil {
			return nil, fmt.Errorf("scan alias: %w", err)
		}
		aliases[a.SourceName] = a.TargetName
	}
	return aliases, rows.Err()
}

// ListAliases returns the alias table in row form for the CLI.
func (s *Store) ListAliases(ctx context.Context) ([]Alias, error) {
	rows, err := s.pool.Query(ctx, "read_aliases")
	if err != nil {
		return nil, fmt.Errorf("read aliases: %w", err)
	}
	defer rows.Close()

	var out []Alias
	for rows.Next() {
		var a Alias
		if err := rows.Scan(&a.SourceName, &a.TargetName); err != nil {
			return nil, fmt.Errorf("scan alias: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ReadSeasonStats returns all stat rows for a season, ordered by player
// then format.
func (s *Store) ReadSeasonStats(ctx context.Context, season int) ([]SeasonStats, error) {
	rows, err := s.pool.Query(ctx, "season_stats", season)
	if err != nil {
		return nil, fmt.Errorf("read season stats: %w", err)
	}
	defer rows.Close()

	var out []SeasonStats
	for rows.Next() {
		var rec SeasonStats
		var format string
		if err := rows.Scan(&rec.PlayerName, &rec.Season, &format,
			&rec.Runs, &rec.Wickets, &rec.Catches, &rec.Matches, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan season stats: %w", err)
		}
		rec.Format = stats.Format(format)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ReadSquad returns the full roster.
func (s *Store) ReadSquad(ctx context.Context) ([]RosterPlayer, error) {
	rows, err := s.pool.Query(ctx, "squad_list")
	if err != nil {
		return nil, fmt.Errorf("read squad: %w", err)
	}
	defer rows.Close()

	var out []RosterPlayer
	for rows.Next() {
		var p RosterPlayer
		if err := rows.Scan(&p.Name, &p.IsActive, &p.LastStatsUpdate, &p.PhotoURL); err != nil {
			return nil, fmt.Errorf("scan roster player: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
