// Package runner drives batch evaluation runs over a list of test cases.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"

	"ragjudge/internal/metrics"
	"ragjudge/internal/question"
	"ragjudge/internal/ratelimit"
	"ragjudge/internal/results"
)

// System labels used in logs and metrics.
const (
	SystemRAG = "rag"
	SystemOG  = "og"
)

// RunBatch answers and judges every case in order, appending one row per case to a
// fresh result file. Provider and judge failures degrade the row instead of aborting.
func RunBatch(ctx context.Context, cases []question.TestCase, params Params, deps Dependencies) (summary Summary, err error) {
	if len(cases) == 0 {
		return Summary{}, question.ErrNoTestCases
	}
	if deps.RAG == nil || deps.OG == nil || deps.Judge == nil {
		return Summary{}, fmt.Errorf("answer providers and judge are required")
	}
	if params.BatchSize < 1 {
		return Summary{}, fmt.Errorf("batch size must be >= 1, got %d", params.BatchSize)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	newRunID := deps.RunID
	if newRunID == nil {
		newRunID = NewRunID
	}
	observer := deps.Observer
	if observer == nil {
		observer = Observers()
	}
	location := params.Location
	if location == nil {
		location = time.Local
	}

	startedAt := now()
	runID, err := newRunID(startedAt)
	if err != nil {
		return Summary{}, err
	}
	file, outputPath, err := createOutputFile(params.OutputDir, startedAt.In(location))
	if err != nil {
		return Summary{}, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", closeErr)
		}
	}()
	writer, err := results.NewWriter(file)
	if err != nil {
		return Summary{}, err
	}

	total := len(cases)
	summary = Summary{
		RunID:      runID,
		InputPath:  params.InputPath,
		OutputPath: outputPath,
		StartedAt:  startedAt,
		Total:      total,
		Threshold:  params.Threshold,
		TopK:       params.TopK,
		BatchSize:  params.BatchSize,
		Cooldown:   params.CooldownSeconds,
		Documents:  params.Documents,
	}
	ctx = clog.WithLogger(ctx, clog.FromContext(ctx).With("run_id", runID))
	log := clog.FromContext(ctx)
	log.Infof("running batch of %d questions into %s", total, outputPath)
	observer.OnRunStart(runID, outputPath, total)

	cooldown := ratelimit.Cooldown{Every: params.BatchSize, Seconds: params.CooldownSeconds, Sleep: deps.Sleep}
	finish := func(runErr error) (Summary, error) {
		summary.FinishedAt = now()
		summary.Interrupted = runErr != nil
		deps.Metrics.RecordDuration(summary.FinishedAt.Sub(startedAt))
		observer.OnRunEnd(summary)
		return summary, runErr
	}

	for i, tc := range cases {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return finish(fmt.Errorf("batch interrupted after %d of %d questions: %w", i, total, ctxErr))
		}
		rec, degraded := processCase(ctx, i, total, tc, params.Threshold, deps, observer, now)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return finish(fmt.Errorf("batch interrupted after %d of %d questions: %w", i, total, ctxErr))
		}
		if err := writer.Write(rec); err != nil {
			return finish(err)
		}
		summary.Completed++
		if degraded {
			summary.Degraded++
		}
		if rec.RAG.Correct {
			summary.RAGCorrect++
		}
		if rec.OG.Correct {
			summary.OGCorrect++
		}
		eventType := QuestionDone
		if degraded {
			eventType = QuestionDegraded
		}
		observer.OnQuestionEvent(QuestionEvent{Index: i, Total: total, Question: tc.Question, Type: eventType, Record: &rec, EmittedAt: now()})

		if !cooldown.Checkpoint(i+1, total) {
			continue
		}
		if err := file.Sync(); err != nil {
			return finish(fmt.Errorf("sync output file: %w", err))
		}
		summary.Checkpoints++
		if cooldown.Due(i+1, total) {
			summary.Cooldowns++
			deps.Metrics.RecordCooldown()
			log.Infof("cooldown %ds after %d of %d questions", params.CooldownSeconds, i+1, total)
			if err := cooldown.Wait(ctx, observer.OnCooldown); err != nil {
				return finish(fmt.Errorf("batch interrupted during cooldown: %w", err))
			}
		}
	}
	if err := file.Sync(); err != nil {
		return finish(fmt.Errorf("sync output file: %w", err))
	}
	log.Infof("batch finished: rag %d/%d, og %d/%d correct", summary.RAGCorrect, total, summary.OGCorrect, total)
	return finish(nil)
}

func processCase(ctx context.Context, index, total int, tc question.TestCase, threshold float64, deps Dependencies, observer RunObserver, now func() time.Time) (results.Record, bool) {
	log := clog.FromContext(ctx).With("question_index", index)
	observer.OnQuestionEvent(QuestionEvent{Index: index, Total: total, Question: tc.Question, Type: QuestionAnswering, EmittedAt: now()})
	deps.Metrics.RecordQuestion()

	degraded := false
	ragAnswer, err := deps.RAG.Answer(ctx, tc.Question)
	if err != nil {
		degraded = true
		ragAnswer = fmt.Sprintf("Error during RAG AI call: %v", err)
		deps.Metrics.RecordProviderError(SystemRAG)
		log.Warnf("rag provider failed: %v", err)
	}
	ogAnswer, err := deps.OG.Answer(ctx, tc.Question)
	if err != nil {
		degraded = true
		ogAnswer = fmt.Sprintf("Error during Original AI call: %v", err)
		deps.Metrics.RecordProviderError(SystemOG)
		log.Warnf("og provider failed: %v", err)
	}

	observer.OnQuestionEvent(QuestionEvent{Index: index, Total: total, Question: tc.Question, Type: QuestionJudging, EmittedAt: now()})
	ragVerdict := deps.Judge.Evaluate(ctx, tc.Question, tc.Gold, ragAnswer)
	ogVerdict := deps.Judge.Evaluate(ctx, tc.Question, tc.Gold, ogAnswer)

	rec := results.Record{
		Question: tc.Question,
		Gold:     tc.Gold,
		RAG:      results.NewSide(ragAnswer, ragVerdict, threshold),
		OG:       results.NewSide(ogAnswer, ogVerdict, threshold),
	}
	deps.Metrics.RecordVerdict(SystemRAG, ragVerdict, rec.RAG.Correct)
	deps.Metrics.RecordVerdict(SystemOG, ogVerdict, rec.OG.Correct)
	log.Debugf("judged rag=%s(%.3f,%s) og=%s(%.3f,%s)", ragVerdict.Label, ragVerdict.Score, ragVerdict.Source, ogVerdict.Label, ogVerdict.Score, ogVerdict.Source)
	return rec, degraded
}

// WriteSidecars writes the JSON summary and metrics textfile next to the result file.
func WriteSidecars(summary Summary, m *metrics.Run) (string, error) {
	if summary.OutputPath == "" {
		return "", errors.New("summary has no output path")
	}
	path := SummaryPath(summary.OutputPath)
	if err := writeJSON(path, summary); err != nil {
		return "", err
	}
	if err := m.WriteTextfile(MetricsPath(summary.OutputPath)); err != nil {
		return path, err
	}
	return path, nil
}
