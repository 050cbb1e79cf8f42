package judge

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"

	"ragjudge/internal/prompt"
	"ragjudge/internal/similarity"
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options controls retries and the heuristic verdict thresholds.
type Options struct {
	Attempts           int
	BaseBackoff        time.Duration
	CorrectThreshold   float64
	UncertainThreshold float64
	// Sleep waits between attempts; nil uses a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultOptions mirrors the deployed judge policy.
func DefaultOptions() Options {
	return Options{
		Attempts:           3,
		BaseBackoff:        time.Second,
		CorrectThreshold:   0.8,
		UncertainThreshold: 0.6,
	}
}

// Judge grades answers. It is safe for sequential reuse across a run.
type Judge struct {
	gen  Generator
	opts Options
}

// New builds a Judge around a generation service.
func New(gen Generator, opts Options) *Judge {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}
	return &Judge{gen: gen, opts: opts}
}

// Evaluate grades answer against gold for question. It always returns a verdict.
func (j *Judge) Evaluate(ctx context.Context, question, gold, answer string) Verdict {
	if strings.TrimSpace(gold) == "" {
		return Verdict{Label: Uncertain, Score: 0, Reason: ReasonNoGold, Source: SourceNoGold}
	}
	log := clog.FromContext(ctx)

	raw, err := j.generate(ctx, prompt.Judge(question, gold, answer))
	if err != nil {
		log.Warnf("judge unavailable, using heuristic: %v", err)
		return j.heuristic(gold, answer, ReasonUnavailable, SourceUnavailable)
	}

	parsed, err := parseReply(raw)
	if err != nil {
		log.Debugf("judge reply unparseable: %v", err)
		return j.heuristic(gold, answer, ReasonHeuristic, SourceHeuristic)
	}
	if label, ok := ParseWire(parsed.Verdict); ok {
		reason := parsed.Reason
		if reason == "" {
			reason = ReasonMissing
		}
		return Verdict{Label: label, Score: normalizeScore(parsed.Score), Reason: reason, Source: SourceLLM}
	}

	log.Debugf("judge verdict %q not recognized, using heuristic label", parsed.Verdict)
	fallback := j.heuristic(gold, answer, ReasonHeuristic, SourceHeuristic)
	if parsed.HasScore && parsed.Score != 0 {
		fallback.Score = normalizeScore(parsed.Score)
	}
	if parsed.Reason != "" {
		fallback.Reason = parsed.Reason
	}
	return fallback
}

func (j *Judge) generate(ctx context.Context, text string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < j.opts.Attempts; attempt++ {
		if attempt > 0 {
			delay := j.opts.BaseBackoff * time.Duration(1<<(attempt-1))
			if err := j.opts.Sleep(ctx, delay); err != nil {
				return "", err
			}
		}
		raw, err := j.gen.Generate(ctx, text)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		clog.FromContext(ctx).Debugf("judge attempt %d/%d failed: %v", attempt+1, j.opts.Attempts, err)
	}
	return "", fmt.Errorf("judge failed after %d attempts: %w", j.opts.Attempts, lastErr)
}

func (j *Judge) heuristic(gold, answer, reason string, source Source) Verdict {
	score := normalizeScore(similarity.HeuristicScore(gold, answer))
	return Verdict{Label: j.labelFor(score), Score: score, Reason: reason, Source: source}
}

func (j *Judge) labelFor(score float64) Label {
	switch {
	case score >= j.opts.CorrectThreshold:
		return Correct
	case score >= j.opts.UncertainThreshold:
		return Uncertain
	default:
		return Incorrect
	}
}

func normalizeScore(score float64) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > 1 {
		score = 1
	}
	return math.Round(score*1000) / 1000
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
