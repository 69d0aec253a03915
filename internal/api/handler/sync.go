package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/tuscricket/clubstats/internal/api/respond"
	"github.com/tuscricket/clubstats/internal/ingest"
	"github.com/tuscricket/clubstats/internal/parse"
	"github.com/tuscricket/clubstats/internal/stats"
)

// syncPayload is the trigger request body. The bookmarklet and older UI
// builds send season as a string, so numeric fields accept both forms.
type syncPayload struct {
	Token     string       `json:"token"`
	Season    flexInt      `json:"season"`
	Format    string       `json:"format"`
	StatsData []statRecord `json:"statsData"`
}

type statRecord struct {
	Name    string  `json:"name"`
	Runs    flexInt `json:"runs"`
	Wickets flexInt `json:"wickets"`
	Catches flexInt `json:"catches"`
	Matches flexInt `json:"matches"`
}

// syncResponse mirrors the shape the club UI already consumes.
type syncResponse struct {
	Success          bool                `json:"success"`
	Message          string              `json:"message,omitempty"`
	Results          *ingest.WriteCounts `json:"results,omitempty"`
	PlayersProcessed int                 `json:"playersProcessed,omitempty"`
	Error            string              `json:"error,omitempty"`
}

// Sync is the primary trigger endpoint for a stats sync run.
// @Summary Trigger a stats sync
// @Description Runs the ingestion pipeline: either a full scrape of the remote source, or an upsert of caller-supplied records. POSTs and requests carrying statsData must present the sync token.
// @Tags sync
// @Accept json
// @Produce json
// @Param payload body handler.syncPayload false "Sync parameters"
// @Success 200 {object} handler.syncResponse
// @Failure 401 {object} handler.syncResponse
// @Failure 500 {object} handler.syncResponse
// @Router /sync [post]
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	var payload syncPayload
	if r.Body != nil {
		// A malformed body is ignored rather than rejected; the request
		// may still be a valid query-parameter GET.
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	query := r.URL.Query()
	if payload.Token == "" {
		payload.Token = query.Get("token")
	}
	if payload.Season == 0 {
		if n, err := strconv.Atoi(query.Get("season")); err == nil {
			payload.Season = flexInt(n)
		}
	}
	if payload.Format == "" {
		payload.Format = query.Get("format")
	}

	records := make([]parse.Record, 0, len(payload.StatsData))
	for _, rec := range payload.StatsData {
		records = append(records, parse.Record{
			Name:    strings.TrimSpace(rec.Name),
			Runs:    int(rec.Runs),
			Wickets: int(rec.Wickets),
			Catches: int(rec.Catches),
			Matches: int(rec.Matches),
		})
	}

	result := h.runner.Run(r.Context(), ingest.Request{
		Token:        payload.Token,
		Season:       int(payload.Season),
		Format:       stats.Format(payload.Format),
		Records:      records,
		RequireToken: r.Method == http.MethodPost,
	})

	if result.Err != nil {
		status := http.StatusInternalServerError
		if errors.Is(result.Err, ingest.ErrUnauthorized) {
			status = http.StatusUnauthorized
		}
		respond.WriteJSONObject(w, status, syncResponse{Success: false, Error: result.Err.Error()})
		return
	}

	// Fresh numbers are now in the database; drop cached reads.
	h.cache.Invalidate()

	respond.WriteJSONObject(w, http.StatusOK, syncResponse{
		Success:          true,
		Message:          result.Message,
		Results:          &result.Results,
		PlayersProcessed: result.PlayersProcessed,
	})
}

// Trigger is a thin relay that invokes the primary sync endpoint by
// server-to-server POST and passes the JSON response through unchanged.
// @Summary Relay a sync trigger
// @Description Forwards to the primary sync endpoint and relays its JSON response.
// @Tags sync
// @Produce json
// @Success 200 {object} handler.syncResponse
// @Failure 500 {object} map[string]interface{}
// @Router /sync/trigger [post]
func (h *Handler) Trigger(w http.ResponseWriter, r *http.Request) {
	target := fmt.Sprintf("http://127.0.0.1:%d/api/v1/sync", h.cfg.APIPort)

	// The primary endpoint authenticates POSTs, so the relay signs the
	// forwarded call with the configured token.
	body, _ := json.Marshal(map[string]string{"token": h.cfg.SyncToken})
	resp, err := h.relayer.Post(target, "application/json", bytes.NewReader(body))
	if err != nil {
		respond.WriteJSONObject(w, http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer resp.Body.Close()

	relayed, err := io.ReadAll(resp.Body)
	if err != nil {
		respond.WriteJSONObject(w, http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(relayed)
}

// flexInt decodes JSON numbers that may arrive as strings. Values that
// parse as neither stay zero, matching the tolerant numeric handling in
// the rest of the pipeline.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Tolerate decimals such as "5.0" from spreadsheet exports.
		if fl, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			*f = flexInt(int(fl))
			return nil
		}
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}
