//go:build cucumber

package cucumber

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"

	"github.com/cucumber/godog"

	"ragjudge/internal/question"
	"ragjudge/internal/runner"
)

// featureState holds scenario state for cucumber CLI tests.
type featureState struct {
	projectDir string
	configPath string
	previousWD string
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	exitCode   int

	endpoint *httptest.Server
	failOG   map[string]bool
	cases    []question.TestCase
	summary  runner.Summary
	sleeps   int
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a project with a valid ragjudge configuration$`, state.aProjectWithValidConfig)
	ctx.Step(`^the config is invalid$`, state.theConfigIsInvalid)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^an OpenAI-compatible model endpoint$`, state.anOpenAICompatibleEndpoint)
	ctx.Step(`^the OG call fails for "([^"]+)"$`, state.theOGCallFailsFor)
	ctx.Step(`^these questions:$`, state.theseQuestions)
	ctx.Step(`^I run the batch with batch size (\d+) and cooldown (\d+) seconds?$`, state.iRunTheBatch)
	ctx.Step(`^a result file "([^"]+)" with outcomes:$`, state.aResultFileWithOutcomes)

	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the output contains "([^"]+)"$`, state.theOutputContains)
	ctx.Step(`^the error output mentions "([^"]+)"$`, state.theErrorOutputMentions)
	ctx.Step(`^the file "([^"]+)" contains "([^"]+)"$`, state.theFileContains)
	ctx.Step(`^the result file has (\d+) rows in question order$`, state.theResultFileHasRowsInOrder)
	ctx.Step(`^every RAG answer is marked correct$`, state.everyRAGAnswerIsCorrect)
	ctx.Step(`^the OG answer for "([^"]+)" starts with "([^"]+)"$`, state.theOGAnswerStartsWith)
	ctx.Step(`^the run paused for (\d+) cooldowns?$`, state.theRunPausedFor)
}

// reset clears per-scenario state.
func (s *featureState) reset() {
	s.projectDir = ""
	s.configPath = ""
	s.previousWD = ""
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.endpoint = nil
	s.failOG = map[string]bool{}
	s.cases = nil
	s.summary = runner.Summary{}
	s.sleeps = 0
}

// cleanup restores the working directory and removes scenario files.
func (s *featureState) cleanup() {
	if s.endpoint != nil {
		s.endpoint.Close()
	}
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
	}
	if s.projectDir != "" {
		_ = os.RemoveAll(s.projectDir)
	}
}
