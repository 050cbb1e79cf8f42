//go:build cucumber

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"ragjudge/internal/config"
	"ragjudge/internal/question"
	"ragjudge/internal/runner"
	"ragjudge/internal/ui/live"
)

// TestLiveUIScenarios runs the live UI feature scenarios.
func TestLiveUIScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "spec", "features", "batch-live-ui.feature")
	suite := godog.TestSuite{
		Name:                "batch-live-ui",
		ScenarioInitializer: InitializeLiveUIScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeLiveUIScenario wires steps for live UI scenarios.
func InitializeLiveUIScenario(ctx *godog.ScenarioContext) {
	state := &liveUIScenarioState{}
	orig := isTerminal
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		isTerminal = func(io.Writer) bool { return state.isTTY }
		dir, err := os.MkdirTemp("", "ragjudge-live-ui-")
		state.dir = dir
		return ctx, err
	})
	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		isTerminal = orig
		if state.dir != "" {
			_ = os.RemoveAll(state.dir)
		}
		return ctx, nil
	})

	ctx.Step(`^a TTY stdout$`, state.givenTTY)
	ctx.Step(`^stdout is not a TTY$`, state.givenNonTTY)
	ctx.Step(`^a batch of (\d+) questions$`, state.givenBatch)
	ctx.Step(`^the OG provider fails on question (\d+)$`, state.givenOGFailure)
	ctx.Step(`^a cooldown of (\d+) seconds after every (\d+) questions$`, state.givenCooldown)
	ctx.Step(`^I run "([^"]+)"$`, state.whenIRun)
	ctx.Step(`^a live UI is shown$`, state.thenLiveUIShown)
	ctx.Step(`^the UI lists each question with a status$`, state.thenQuestionStatuses)
	ctx.Step(`^question (\d+) is marked (done|degraded)$`, state.thenQuestionMarked)
	ctx.Step(`^the UI counted (\d+) cooldowns?$`, state.thenCooldowns)
	ctx.Step(`^the output uses plain summary text$`, state.thenPlainOutput)
}

type liveUIScenarioState struct {
	dir       string
	isTTY     bool
	cases     []question.TestCase
	failOn    int
	batchSize int
	cooldown  int
	display   progressDisplay
	uiState   live.State
	plain     bytes.Buffer
}

// reset clears scenario state.
func (s *liveUIScenarioState) reset() {
	s.dir = ""
	s.isTTY = false
	s.cases = nil
	s.failOn = 0
	s.batchSize = 5
	s.cooldown = 0
	s.display = progressDisplay{}
	s.uiState = live.State{}
	s.plain.Reset()
}

func (s *liveUIScenarioState) givenTTY() error {
	s.isTTY = true
	return nil
}

func (s *liveUIScenarioState) givenNonTTY() error {
	s.isTTY = false
	return nil
}

func (s *liveUIScenarioState) givenBatch(count int) error {
	for i := 0; i < count; i++ {
		s.cases = append(s.cases, question.TestCase{
			Question: fmt.Sprintf("Pertanyaan nomor %d tentang UKRI?", i+1),
			Gold:     fmt.Sprintf("Jawaban %d", i+1),
		})
	}
	return nil
}

func (s *liveUIScenarioState) givenOGFailure(n int) error {
	s.failOn = n
	return nil
}

func (s *liveUIScenarioState) givenCooldown(seconds, every int) error {
	s.cooldown = seconds
	s.batchSize = every
	return nil
}

// whenIRun resolves the UI mode and drives a batch with fake providers.
func (s *liveUIScenarioState) whenIRun(_ string) error {
	display, err := chooseProgressDisplay("auto", false, nil)
	if err != nil {
		return err
	}
	s.display = display

	var observer runner.RunObserver = &stateRecorder{state: &s.uiState}
	if !display.live {
		observer = runner.NewPlainObserver(&s.plain, true)
	}
	og := fakeProvider(func(q string) (string, error) {
		if s.failOn > 0 && q == s.cases[s.failOn-1].Question {
			return "", errors.New("quota exceeded")
		}
		return "og-answer " + q, nil
	})
	sleep := func(context.Context, time.Duration) error { return nil }
	_, err = runner.RunBatch(context.Background(), s.cases, runner.Params{
		OutputDir:       s.dir,
		TopK:            config.DefaultTopK,
		Threshold:       config.DefaultThreshold,
		BatchSize:       s.batchSize,
		CooldownSeconds: s.cooldown,
	}, runner.Dependencies{
		RAG:      fakeProvider(func(q string) (string, error) { return "rag-answer " + q, nil }),
		OG:       og,
		Judge:    newJudge(fakeJudge{}, config.Default().Judge),
		Observer: observer,
		Sleep:    sleep,
	})
	return err
}

func (s *liveUIScenarioState) thenLiveUIShown() error {
	if !s.display.live {
		return fmt.Errorf("expected live UI to be enabled")
	}
	return nil
}

func (s *liveUIScenarioState) thenQuestionStatuses() error {
	if len(s.uiState.Rows) != len(s.cases) {
		return fmt.Errorf("expected %d question rows, got %d", len(s.cases), len(s.uiState.Rows))
	}
	for _, row := range s.uiState.Rows {
		if row.Status == "" {
			return fmt.Errorf("row %d has no status", row.Index)
		}
	}
	return nil
}

func (s *liveUIScenarioState) thenQuestionMarked(n int, status string) error {
	if n < 1 || n > len(s.uiState.Rows) {
		return fmt.Errorf("no row for question %d", n)
	}
	if got := string(s.uiState.Rows[n-1].Status); got != status {
		return fmt.Errorf("expected question %d %s, got %s", n, status, got)
	}
	return nil
}

func (s *liveUIScenarioState) thenCooldowns(n int) error {
	if s.uiState.Cooldowns != n {
		return fmt.Errorf("expected %d cooldowns, got %d", n, s.uiState.Cooldowns)
	}
	return nil
}

func (s *liveUIScenarioState) thenPlainOutput() error {
	if s.display.live {
		return fmt.Errorf("expected plain output")
	}
	if !strings.Contains(s.plain.String(), "Selesai. Hasil disimpan ke") {
		return fmt.Errorf("expected plain summary, got %q", s.plain.String())
	}
	return nil
}

// stateRecorder folds observer callbacks into a live.State without a terminal.
type stateRecorder struct {
	state *live.State
}

func (r *stateRecorder) OnRunStart(runID, outputPath string, total int) {
	*r.state = live.Apply(*r.state, live.Event{Kind: live.EventRunStart, RunID: runID, OutputPath: outputPath, Total: total}, time.Now())
}

func (r *stateRecorder) OnQuestionEvent(event runner.QuestionEvent) {
	*r.state = live.Apply(*r.state, live.Event{Kind: live.EventQuestion, Question: event}, time.Now())
}

func (r *stateRecorder) OnCooldown(remaining int) {
	*r.state = live.Apply(*r.state, live.Event{Kind: live.EventCooldown, Remaining: remaining}, time.Now())
}

func (r *stateRecorder) OnRunEnd(summary runner.Summary) {
	*r.state = live.Apply(*r.state, live.Event{Kind: live.EventRunEnd, Summary: summary}, time.Now())
}
