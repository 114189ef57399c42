// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch verifies every publication of a profile in order, pacing
// the source lookups and reporting progress as it goes.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/pdiddy/scholar-verify/internal/store"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

const progressTitleWidth = 70

// Verifier verifies one claimed publication.
type Verifier interface {
	Verify(ctx context.Context, pub types.ClaimedPublication) types.VerificationResult
}

// Recorder persists results as they are produced.
type Recorder interface {
	SaveResult(ctx context.Context, runID string, r types.VerificationResult) error
}

// Runner drives a batch. Verifier is required; every other field is
// optional.
type Runner struct {
	Verifier Verifier

	// Recorder and RunID receive each result. Save failures are logged and
	// do not stop the batch.
	Recorder Recorder
	RunID    string

	// Prior holds results from an earlier run keyed by store.TitleKey.
	// Matching publications are not verified again.
	Prior map[string]types.VerificationResult

	// Delay plus a random fraction of Jitter is waited between lookups.
	Delay  time.Duration
	Jitter time.Duration

	// Out receives progress. With Bar set, a progress bar replaces the
	// per-item lines.
	Out io.Writer
	Bar bool

	Logger *slog.Logger

	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() float64
}

// Summary is the outcome of a batch.
type Summary struct {
	Results   []types.VerificationResult
	Authentic int
	Resumed   int
}

// Total returns the number of results.
func (s Summary) Total() int { return len(s.Results) }

// AuthenticPercent is the share of AUTHENTIC results, rounded to one
// decimal place. An empty batch is 0.
func (s Summary) AuthenticPercent() float64 {
	if len(s.Results) == 0 {
		return 0
	}
	return math.Round(float64(s.Authentic)/float64(len(s.Results))*1000) / 10
}

// Run verifies pubs sequentially and returns results in input order. If
// ctx is cancelled, Run discards the publication in progress and returns
// the results gathered so far together with the context error.
func (r *Runner) Run(ctx context.Context, pubs []types.ClaimedPublication) (Summary, error) {
	var summary Summary
	out := r.Out
	if out == nil {
		out = io.Discard
	}

	var bar *progressbar.ProgressBar
	if r.Bar {
		bar = newBar(out, len(pubs))
	}

	lookedUp := false
	for i, pub := range pubs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		res, resumed := r.Prior[store.TitleKey(pub.Title)]
		if !resumed && lookedUp {
			if err := r.pause(ctx); err != nil {
				return summary, err
			}
		}
		if bar == nil {
			fmt.Fprintf(out, "[%d/%d] %s\n", i+1, len(pubs), truncate(pub.Title, progressTitleWidth))
		}
		if resumed {
			res.ClaimedTitle = pub.Title
			summary.Resumed++
		} else {
			res = r.Verifier.Verify(ctx, pub)
			lookedUp = true
			// Lookups cut short by cancellation look like missing records.
			if err := ctx.Err(); err != nil {
				return summary, err
			}
		}

		r.record(ctx, res)
		summary.Results = append(summary.Results, res)
		if res.Classification == types.Authentic {
			summary.Authentic++
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				r.logger().Warn("failed to update progress bar", "error", err)
			}
			continue
		}
		suffix := ""
		if resumed {
			suffix = " [resumed]"
		}
		fmt.Fprintf(out, "   → %s (%g)%s\n", res.Classification, res.ConfidenceScore, suffix)
	}
	return summary, nil
}

func (r *Runner) record(ctx context.Context, res types.VerificationResult) {
	if r.Recorder == nil || r.RunID == "" {
		return
	}
	if err := r.Recorder.SaveResult(ctx, r.RunID, res); err != nil {
		r.logger().Warn("could not save result", "title", res.ClaimedTitle, "error", err)
	}
}

func (r *Runner) pause(ctx context.Context) error {
	d := r.Delay
	if r.Jitter > 0 {
		j := rand.Float64
		if r.jitter != nil {
			j = r.jitter
		}
		d += time.Duration(j() * float64(r.Jitter))
	}
	if d <= 0 {
		return nil
	}
	sleep := sleepContext
	if r.sleep != nil {
		sleep = r.sleep
	}
	return sleep(ctx, d)
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func newBar(w io.Writer, n int) *progressbar.ProgressBar {
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Verifying publications"),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
