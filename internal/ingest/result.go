// Package ingest coordinates one stats sync run: authorize, collect
// (remote scrape or caller-supplied records), aggregate, persist, and
// report. It is the only component that knows about authorization and
// external I/O.
package ingest

import "fmt"

// WriteCounts tallies the per-row outcomes of the persistence loop.
type WriteCounts struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Result is the structured outcome of one sync run. Run never lets a
// failure escape; anything that goes wrong lands in Err and the HTTP layer
// maps it to a status code.
type Result struct {
	Success          bool
	Message          string
	Results          WriteCounts
	PlayersProcessed int
	Err              error
}

// Summary returns a one-line log form of the result.
func (r Result) Summary() string {
	return fmt.Sprintf("players=%d success=%d failed=%d skipped=%d",
		r.PlayersProcessed, r.Results.Success, r.Results.Failed, r.Results.Skipped)
}

func failure(err error) Result {
	return Result{Success: false, Err: err}
}
