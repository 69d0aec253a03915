package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tuscricket/clubstats/internal/parse"
	"github.com/tuscricket/clubstats/internal/stats"
	"github.com/tuscricket/clubstats/internal/store"
)

// ErrUnauthorized marks a request that failed the sync-token check. No
// processing happens and no storage is touched.
var ErrUnauthorized = errors.New("unauthorized: invalid sync token")

// Gateway is the slice of the persistence layer the orchestrator needs.
// *store.Store satisfies it; tests substitute fakes.
type Gateway interface {
	UpsertSeasonStats(ctx context.Context, rec store.SeasonStats) error
	TouchLastUpdate(ctx context.Context, playerName string, ts time.Time) error
	ReadAliases(ctx context.Context) (map[string]string, error)
}

// Source fetches and parses the remote category pages for one format.
// *cricclubs.Client satisfies it.
type Source interface {
	FetchCategories(ctx context.Context, format stats.Format) (stats.CategorySet, error)
}

// Request describes one sync invocation, normalized from whichever
// transport it arrived on (HTTP body, query params, CLI flags, scheduler).
type Request struct {
	Token  string
	Season int          // 0 = resolve from the run date
	Format stats.Format // empty = both formats
	// Records is the manual-entry payload. When present the remote scrape
	// is bypassed and Format is required.
	Records []parse.Record
	// RequireToken is set by transports that must always authenticate
	// (HTTP POST). Supplying Records forces the check regardless.
	RequireToken bool
}

// Orchestrator runs sync requests against a source and a gateway.
type Orchestrator struct {
	gateway Gateway
	source  Source
	token   string // expected sync token; empty disables the check
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an Orchestrator. token may be empty, in which case no
// request is ever rejected for authorization (mirrors an unset secret in
// the deployment environment).
func New(gateway Gateway, source Source, token string, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		gateway: gateway,
		source:  source,
		token:   token,
		logger:  logger,
		now:     time.Now,
	}
}

// Run executes one sync. It never panics or returns an error through any
// other channel: every failure is caught and reported in the Result.
func (o *Orchestrator) Run(ctx context.Context, req Request) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("Sync run panicked", "panic", r)
			result = failure(fmt.Errorf("internal error: %v", r))
		}
	}()

	// Authorization gate: manual data and form-submission transports must
	// present the shared secret before anything else happens.
	if (req.RequireToken || len(req.Records) > 0) && o.token != "" && req.Token != o.token {
		o.logger.Warn("Unauthorized sync attempt rejected")
		return failure(ErrUnauthorized)
	}

	season := resolveSeason(req.Season, o.now())
	manual := len(req.Records) > 0

	o.logger.Info("Starting stats sync",
		"season", season, "format", formatLabel(req.Format), "manual", manual)

	if manual && !req.Format.Valid() {
		return failure(fmt.Errorf("format is required when providing stats records"))
	}

	formats := formatScope(req.Format)

	aliases, err := o.gateway.ReadAliases(ctx)
	if err != nil {
		return failure(fmt.Errorf("read aliases: %w", err))
	}
	resolver := stats.NewResolver(aliases)

	var combined map[string]stats.PlayerTotals
	if manual {
		combined = combineManual(req.Records, req.Format, resolver)
	} else {
		combined, err = o.collectRemote(ctx, formats, resolver)
		if err != nil {
			return failure(err)
		}
	}

	counts := o.persist(ctx, combined, season, formats, manual)

	result = Result{
		Success:          true,
		Message:          fmt.Sprintf("Stats sync for season %d completed", season),
		Results:          counts,
		PlayersProcessed: len(combined),
	}
	o.logger.Info("Stats sync finished", "season", season, "summary", result.Summary())
	return result
}

// collectRemote scrapes each in-scope format sequentially. A format that
// was not requested contributes an empty category set; per-category fetch
// failures are already absorbed by the source.
func (o *Orchestrator) collectRemote(ctx context.Context, formats []stats.Format, resolver stats.Resolver) (map[string]stats.PlayerTotals, error) {
	byFormat := make(map[stats.Format]stats.CategorySet, len(formats))
	for _, f := range formats {
		set, err := o.source.FetchCategories(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("fetch %s categories: %w", f, err)
		}
		byFormat[f] = set
	}
	return stats.Combine(byFormat[stats.FormatT20], byFormat[stats.FormatFifty], resolver), nil
}

// combineManual folds caller-supplied records for a single format into
// player totals. The same merge rules apply as for scraped data: counting
// stats sum across records resolving to one canonical player, matches
// de-duplicate via max.
func combineManual(records []parse.Record, format stats.Format, resolver stats.Resolver) map[string]stats.PlayerTotals {
	combined := make(map[string]stats.PlayerTotals)
	for _, rec := range records {
		if rec.Name == "" {
			continue
		}
		canonical := resolver.Resolve(rec.Name)
		totals := combined[canonical]
		bundle := totals.ForFormat(format)

		bundle.Runs += rec.Runs
		bundle.Wickets += rec.Wickets
		bundle.Catches += rec.Catches
		if rec.Matches > bundle.Matches {
			bundle.Matches = rec.Matches
		}

		totals.SetFormat(format, bundle)
		combined[canonical] = totals
	}

	for name, totals := range combined {
		totals.Total = stats.Bundle{
			Runs:    totals.T20.Runs + totals.Fifty.Runs,
			Wickets: totals.T20.Wickets + totals.Fifty.Wickets,
			Catches: totals.T20.Catches + totals.Fifty.Catches,
			Matches: totals.T20.Matches + totals.Fifty.Matches,
		}
		combined[name] = totals
	}
	return combined
}

// persist writes one row per (player, in-scope format). Scraped zero
// bundles are skipped so an empty scrape cannot overwrite real data;
// manual zeros still write because the operator asked for exactly that.
// Failures are per-row: the loop always finishes.
func (o *Orchestrator) persist(ctx context.Context, combined map[string]stats.PlayerTotals, season int, formats []stats.Format, writeZeros bool) WriteCounts {
	var counts WriteCounts
	now := o.now().UTC()

	for name, totals := range combined {
		for _, f := range formats {
			bundle := totals.ForFormat(f)
			if bundle.IsZero() && !writeZeros {
				counts.Skipped++
				continue
			}

			err := o.gateway.UpsertSeasonStats(ctx, store.SeasonStats{
				PlayerName: name,
				Season:     season,
				Format:     f,
				Runs:       bundle.Runs,
				Wickets:    bundle.Wickets,
				Catches:    bundle.Catches,
				Matches:    bundle.Matches,
				UpdatedAt:  now,
			})
			if err != nil {
				o.logger.Error("Stat row upsert failed", "player", name, "format", f, "error", err)
				counts.Failed++
				continue
			}
			counts.Success++
		}

		if err := o.gateway.TouchLastUpdate(ctx, name, now); err != nil {
			o.logger.Warn("Roster touch failed", "player", name, "error", err)
		}
	}

	return counts
}

// resolveSeason picks the season for a run. An explicit season wins.
// Otherwise the calendar year applies, except in the window before April
// 2026 where the still-open 2025 league year is the right bucket.
func resolveSeason(explicit int, now time.Time) int {
	if explicit != 0 {
		return explicit
	}
	if now.Year() == 2026 && now.Month() < time.April {
		return 2025
	}
	return now.Year()
}

func formatScope(f stats.Format) []stats.Format {
	if f.Valid() {
		return []stats.Format{f}
	}
	return stats.Formats()
}

func formatLabel(f stats.Format) string {
	if f.Valid() {
		return string(f)
	}
	return "All"
}
