// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-verify/internal/store"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

// stubVerifier returns canned results keyed by title and records calls.
type stubVerifier struct {
	results map[string]types.VerificationResult
	calls   []string
	onCall  func()
}

func (s *stubVerifier) Verify(_ context.Context, pub types.ClaimedPublication) types.VerificationResult {
	s.calls = append(s.calls, pub.Title)
	if s.onCall != nil {
		s.onCall()
	}
	if r, ok := s.results[pub.Title]; ok {
		return r
	}
	return types.VerificationResult{
		ClaimedTitle:   pub.Title,
		Classification: types.LikelyMisattributed,
	}
}

type recorderFunc func(ctx context.Context, runID string, r types.VerificationResult) error

func (f recorderFunc) SaveResult(ctx context.Context, runID string, r types.VerificationResult) error {
	return f(ctx, runID, r)
}

func pubs(titles ...string) []types.ClaimedPublication {
	out := make([]types.ClaimedPublication, len(titles))
	for i, t := range titles {
		out[i] = types.ClaimedPublication{Title: t}
	}
	return out
}

func TestRun_OrderCountsAndProgress(t *testing.T) {
	v := &stubVerifier{results: map[string]types.VerificationResult{
		"A": {ClaimedTitle: "A", Classification: types.Authentic, ConfidenceScore: 98.5},
		"B": {ClaimedTitle: "B", Classification: types.LikelyAuthentic, ConfidenceScore: 80},
		"C": {ClaimedTitle: "C", Classification: types.Authentic, ConfidenceScore: 91},
	}}
	var out bytes.Buffer
	r := &Runner{Verifier: v, Out: &out}

	sum, err := r.Run(context.Background(), pubs("A", "B", "C"))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, v.calls)
	assert.Equal(t, 3, sum.Total())
	assert.Equal(t, 2, sum.Authentic)
	assert.Equal(t, 66.7, sum.AuthenticPercent())
	for i, want := range []string{"A", "B", "C"} {
		assert.Equal(t, want, sum.Results[i].ClaimedTitle)
	}

	text := out.String()
	assert.Contains(t, text, "[1/3] A\n")
	assert.Contains(t, text, "   → AUTHENTIC (98.5)\n")
	assert.Contains(t, text, "   → LIKELY AUTHENTIC (80)\n")
}

func TestRun_TruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("é", 100)
	var out bytes.Buffer
	r := &Runner{Verifier: &stubVerifier{}, Out: &out}

	_, err := r.Run(context.Background(), pubs(long))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[1/1] "+strings.Repeat("é", 70)+"\n")
}

func TestRun_PacesBetweenLookups(t *testing.T) {
	var waits []time.Duration
	r := &Runner{
		Verifier: &stubVerifier{},
		Delay:    2 * time.Second,
		Jitter:   time.Second,
		jitter:   func() float64 { return 0.5 },
		sleep: func(_ context.Context, d time.Duration) error {
			waits = append(waits, d)
			return nil
		},
	}

	_, err := r.Run(context.Background(), pubs("A", "B", "C"))
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{2500 * time.Millisecond, 2500 * time.Millisecond}, waits)
}

func TestRun_ResumeSkipsVerifiedTitles(t *testing.T) {
	v := &stubVerifier{}
	var waits int
	var saved []string
	r := &Runner{
		Verifier: v,
		Prior: map[string]types.VerificationResult{
			store.TitleKey("Already Done"): {ClaimedTitle: "already done", Classification: types.Authentic, ConfidenceScore: 99},
		},
		Recorder: recorderFunc(func(_ context.Context, runID string, res types.VerificationResult) error {
			assert.Equal(t, "run-1", runID)
			saved = append(saved, res.ClaimedTitle)
			return nil
		}),
		RunID: "run-1",
		Delay: time.Second,
		sleep: func(context.Context, time.Duration) error { waits++; return nil },
	}
	var out bytes.Buffer
	r.Out = &out

	sum, err := r.Run(context.Background(), pubs("Already Done!", "New Paper"))
	require.NoError(t, err)

	assert.Equal(t, []string{"New Paper"}, v.calls)
	assert.Equal(t, 1, sum.Resumed)
	assert.Equal(t, 1, sum.Authentic)
	assert.Equal(t, "Already Done!", sum.Results[0].ClaimedTitle)
	assert.Equal(t, []string{"Already Done!", "New Paper"}, saved)
	assert.Equal(t, 0, waits, "no pause before the first real lookup")
	assert.Contains(t, out.String(), "[resumed]")
}

func TestRun_SaveFailureDoesNotStop(t *testing.T) {
	r := &Runner{
		Verifier: &stubVerifier{},
		Recorder: recorderFunc(func(context.Context, string, types.VerificationResult) error {
			return errors.New("disk full")
		}),
		RunID: "run-1",
	}
	sum, err := r.Run(context.Background(), pubs("A", "B"))
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Total())
}

func TestRun_CancelStopsBetweenItems(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	v := &stubVerifier{}
	v.onCall = func() {
		if len(v.calls) == 2 {
			cancel()
		}
	}
	r := &Runner{Verifier: v}

	sum, err := r.Run(ctx, pubs("A", "B", "C", "D"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"A", "B"}, v.calls)
	require.Equal(t, 1, sum.Total(), "interrupted lookup is discarded")
	assert.Equal(t, "A", sum.Results[0].ClaimedTitle)
}

func TestRun_CancelBeforePause(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		Verifier: &stubVerifier{onCall: cancel},
		Delay:    time.Hour,
	}
	sum, err := r.Run(ctx, pubs("A", "B"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, sum.Total())
}

func TestRun_PauseHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		Verifier: &stubVerifier{},
		Delay:    time.Hour,
		sleep: func(ctx context.Context, d time.Duration) error {
			cancel()
			return sleepContext(ctx, d)
		},
	}
	sum, err := r.Run(ctx, pubs("A", "B"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, sum.Total())
}

func TestRun_ProgressBar(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{Verifier: &stubVerifier{}, Out: &out, Bar: true}

	sum, err := r.Run(context.Background(), pubs("A", "B"))
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Total())
	assert.NotContains(t, out.String(), "[1/2]")
}

func TestAuthenticPercent(t *testing.T) {
	tests := []struct {
		authentic, total int
		want             float64
	}{
		{0, 0, 0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{3, 3, 100},
		{1, 8, 12.5},
	}
	for _, tt := range tests {
		s := Summary{Authentic: tt.authentic, Results: make([]types.VerificationResult, tt.total)}
		assert.Equal(t, tt.want, s.AuthenticPercent(), "%d/%d", tt.authentic, tt.total)
	}
}
