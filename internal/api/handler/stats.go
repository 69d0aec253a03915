package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/tuscricket/clubstats/internal/api/respond"
	"github.com/tuscricket/clubstats/internal/cache"
	"github.com/tuscricket/clubstats/internal/stats"
)

// leaderboardEntry is one player's season line as the club site renders it.
type leaderboardEntry struct {
	PlayerName string       `json:"player_name"`
	T20        stats.Bundle `json:"t20"`
	Fifty      stats.Bundle `json:"fifty"`
	Total      stats.Bundle `json:"total"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// GetLeaderboard returns the per-player season leaderboard.
// @Summary Season leaderboard
// @Description Returns per-player stats for a season with per-format and total bundles. Defaults to the current season.
// @Tags stats
// @Produce json
// @Param season query int false "Season year"
// @Success 200 {array} handler.leaderboardEntry
// @Failure 500 {object} respond.ErrorResponse
// @Router /stats [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	season := time.Now().UTC().Year()
	if v := r.URL.Query().Get("season"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			season = n
		}
	}

	key := fmt.Sprintf("leaderboard:%d", season)
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLLeaderboard, true)
		return
	}

	rows, err := h.reader.ReadSeasonStats(r.Context(), season)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "STATS_READ_FAILED", "Could not load season stats")
		return
	}

	byPlayer := make(map[string]*leaderboardEntry)
	for _, row := range rows {
		entry, ok := byPlayer[row.PlayerName]
		if !ok {
			entry = &leaderboardEntry{PlayerName: row.PlayerName}
			byPlayer[row.PlayerName] = entry
		}
		bundle := stats.Bundle{Runs: row.Runs, Wickets: row.Wickets, Catches: row.Catches, Matches: row.Matches}
		if row.Format == stats.FormatFifty {
			entry.Fifty = bundle
		} else {
			entry.T20 = bundle
		}
		if row.UpdatedAt.After(entry.UpdatedAt) {
			entry.UpdatedAt = row.UpdatedAt
		}
	}

	entries := make([]leaderboardEntry, 0, len(byPlayer))
	for _, entry := range byPlayer {
		entry.Total = stats.Bundle{
			Runs:    entry.T20.Runs + entry.Fifty.Runs,
			Wickets: entry.T20.Wickets + entry.Fifty.Wickets,
			Catches: entry.T20.Catches + entry.Fifty.Catches,
			Matches: entry.T20.Matches + entry.Fifty.Matches,
		}
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total.Runs != entries[j].Total.Runs {
			return entries[i].Total.Runs > entries[j].Total.Runs
		}
		return entries[i].PlayerName < entries[j].PlayerName
	})

	data, err := json.Marshal(entries)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Could not encode leaderboard")
		return
	}

	etag := h.cache.Set(key, data, cache.TTLLeaderboard)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, cache.TTLLeaderboard, false)
}

// GetSquad returns the roster.
// @Summary Club roster
// @Description Returns all squad members with their last stats update timestamps.
// @Tags squad
// @Produce json
// @Success 200 {array} store.RosterPlayer
// @Failure 500 {object} respond.ErrorResponse
// @Router /squad [get]
func (h *Handler) GetSquad(w http.ResponseWriter, r *http.Request) {
	const key = "squad"
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLSquad, true)
		return
	}

	players, err := h.reader.ReadSquad(r.Context())
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "SQUAD_READ_FAILED", "Could not load squad")
		return
	}

	data, err := json.Marshal(players)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Could not encode squad")
		return
	}

	etag := h.cache.Set(key, data, cache.TTLSquad)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, cache.TTLSquad, false)
}
