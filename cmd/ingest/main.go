// Command ingest is the club stats ingestion CLI.
//
// Usage:
//
//	clubstats-ingest sync
//	clubstats-ingest sync --season 2025 --format T20
//	clubstats-ingest sync --format T20 --paste stats.txt --category batting
//	clubstats-ingest roster --file roster.json
//	clubstats-ingest aliases
//	clubstats-ingest leaderboard --season 2025
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tuscricket/clubstats/internal/config"
	"github.com/tuscricket/clubstats/internal/cricclubs"
	"github.com/tuscricket/clubstats/internal/db"
	"github.com/tuscricket/clubstats/internal/ingest"
	"github.com/tuscricket/clubstats/internal/parse"
	"github.com/tuscricket/clubstats/internal/seed"
	"github.com/tuscricket/clubstats/internal/stats"
	"github.com/tuscricket/clubstats/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "clubstats-ingest",
		Short: "TuS Cricket stats ingestion CLI",
	}

	root.AddCommand(syncCmd())
	root.AddCommand(rosterCmd())
	root.AddCommand(aliasesCmd())
	root.AddCommand(leaderboardCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// sync command
// --------------------------------------------------------------------------

func syncCmd() *cobra.Command {
	var (
		season    int
		format    string
		pasteFile string
		category  string
	)
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Scrape CricClubs and upsert season stats, or ingest a pasted stats file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				st := store.New(pool.Pool)
				source := cricclubs.NewClient(cfg, logger)
				// CLI runs are operator-initiated; the token gate only
				// guards network transports.
				orch := ingest.New(st, source, "", logger)

				req := ingest.Request{
					Season: season,
					Format: stats.Format(format),
				}

				if pasteFile != "" {
					if format == "" {
						return fmt.Errorf("--format is required with --paste")
					}
					text, err := os.ReadFile(pasteFile)
					if err != nil {
						return fmt.Errorf("read paste file: %w", err)
					}
					profile := parse.ProfileByName(cfg.LayoutProfile)
					req.Records = parse.ParsePasted(string(text), parse.Category(category), profile)
					if len(req.Records) == 0 {
						return fmt.Errorf("no records recognized in %s", pasteFile)
					}
					logger.Info("Parsed pasted stats", "file", pasteFile, "records", len(req.Records))
				}

				start := time.Now()
				result := orch.Run(ctx, req)
				if result.Err != nil {
					return result.Err
				}
				logger.Info("Sync finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season year (0 = resolve from today)")
	cmd.Flags().StringVar(&format, "format", "", "Format (T20, Fifty); empty = both")
	cmd.Flags().StringVar(&pasteFile, "paste", "", "File of pasted stats rows instead of scraping")
	cmd.Flags().StringVar(&category, "category", "", "Category hint for pasted rows (batting, bowling, fielding)")
	return cmd
}

// --------------------------------------------------------------------------
// roster command
// --------------------------------------------------------------------------

func rosterCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Import squad members from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				st := store.New(pool.Pool)
				start := time.Now()
				result, err := seed.ImportRoster(ctx, st, file, logger)
				if err != nil {
					return err
				}
				logger.Info("Roster import finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("roster error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON file of squad members")
	return cmd
}

// --------------------------------------------------------------------------
// aliases command
// --------------------------------------------------------------------------

func aliasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aliases",
		Short: "List configured name aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				st := store.New(pool.Pool)
				aliases, err := st.ListAliases(ctx)
				if err != nil {
					return fmt.Errorf("list aliases: %w", err)
				}
				if len(aliases) == 0 {
					fmt.Println("No aliases configured")
					return nil
				}
				for _, a := range aliases {
					fmt.Printf("%-30s -> %s\n", a.SourceName, a.TargetName)
				}
				return nil
			})
		},
	}
	return cmd
}

// --------------------------------------------------------------------------
// leaderboard command
// --------------------------------------------------------------------------

func leaderboardCmd() *cobra.Command {
	var season int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the season leaderboard from the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				st := store.New(pool.Pool)
				rows, err := st.ReadSeasonStats(ctx, season)
				if err != nil {
					return fmt.Errorf("read season stats: %w", err)
				}
				if len(rows) == 0 {
					fmt.Printf("No stats for season %d\n", season)
					return nil
				}
				fmt.Printf("%-30s %-6s %6s %8s %8s %8s\n", "PLAYER", "FMT", "M", "RUNS", "WKTS", "CATCHES")
				for _, row := range rows {
					fmt.Printf("%-30s %-6s %6d %8d %8d %8d\n",
						row.PlayerName, row.Format, row.Matches, row.Runs, row.Wickets, row.Catches)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", time.Now().UTC().Year(), "Season year")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runWithDB handles config loading, DB connection, and context cancellation.
func runWithDB(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
