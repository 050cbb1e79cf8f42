package cli

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"

	"ragjudge/internal/config"
	"ragjudge/internal/metrics"
	"ragjudge/internal/question"
	"ragjudge/internal/runner"
	"ragjudge/internal/ui/live"
	"ragjudge/internal/vcs"
)

// describeDocuments is a test seam for knowledge-base provenance.
var describeDocuments = vcs.Describe

// runBatch builds the handler for the batch command.
func runBatch(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		common := addCommonFlags(fs)
		input := fs.String("input", "", "Questions file (CSV, YAML or JSON)")
		outputDir := fs.String("output-dir", config.DefaultOutputDir, "Folder for result files")
		topK := fs.Int("top-k", config.DefaultTopK, "Snippets retrieved per question")
		threshold := fs.Float64("threshold", config.DefaultThreshold, "Score threshold for correctness")
		batchSize := fs.Int("batch-size", config.DefaultBatchSize, "Questions per batch before a cooldown")
		cooldown := fs.Int("cooldown", config.DefaultCooldownSeconds, "Cooldown seconds between batches")
		uiMode := fs.String("ui", "auto", "Progress display: auto|live|plain")
		docsDir := fs.String("docs", "", "Knowledge-base directory recorded for provenance (default: from retrieval.documents_glob)")
		ctx, cancel, code := parseCommand(cmd, fs, common, args, stdout, stderr)
		if ctx == nil {
			return code
		}
		defer cancel()
		log := clog.FromContext(ctx)

		inputPath := strings.TrimSpace(*input)
		switch {
		case inputPath == "" && fs.NArg() == 1:
			inputPath = fs.Arg(0)
		case fs.NArg() > 0:
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			return ExitUsage
		}
		if inputPath == "" {
			fmt.Fprintln(stderr, "Missing input file: ragjudge batch <questions.csv>")
			return ExitUsage
		}

		cfg, _, err := loadConfig(common.specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		params := runner.Params{
			InputPath:       inputPath,
			OutputDir:       cfg.Output.Dir,
			TopK:            cfg.Retrieval.TopK,
			Threshold:       cfg.Batch.Threshold,
			BatchSize:       cfg.Batch.BatchSize,
			CooldownSeconds: config.CooldownSeconds(cfg),
		}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "output-dir":
				params.OutputDir = *outputDir
			case "top-k":
				params.TopK = *topK
			case "threshold":
				params.Threshold = *threshold
			case "batch-size":
				params.BatchSize = *batchSize
			case "cooldown":
				params.CooldownSeconds = *cooldown
			}
		})
		if params.TopK < 1 || params.BatchSize < 1 || params.CooldownSeconds < 0 || params.Threshold < 0 || params.Threshold > 1 {
			fmt.Fprintln(stderr, "Invalid flags: --top-k and --batch-size must be >= 1, --cooldown >= 0, --threshold within [0,1]")
			return ExitUsage
		}
		if loc, err := time.LoadLocation(cfg.Output.Timezone); err == nil {
			params.Location = loc
		}

		cases, _, err := question.Load(inputPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load questions from %s: %v\n", inputPath, err)
			return ExitError
		}

		display, err := chooseProgressDisplay(*uiMode, strings.EqualFold(common.logLevel, "debug"), stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		if display.note != "" {
			fmt.Fprintln(stderr, display.note)
		}

		secrets, err := config.LoadSecrets(ctx, lookupEnv)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read environment: %v\n", err)
			return ExitError
		}
		providers, err := buildProviders(ctx, cfg, secrets, params.TopK)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to set up providers: %v\n", err)
			return ExitError
		}
		if providers.Close != nil {
			defer providers.Close()
		}

		docs := strings.TrimSpace(*docsDir)
		if docs == "" {
			docs = filepath.Dir(cfg.Retrieval.DocumentsGlob)
		}
		if snap, err := describeDocuments(ctx, docs); err == nil {
			params.Documents = &snap
		} else {
			log.Debugf("documents provenance unavailable: %v", err)
		}

		var observer runner.RunObserver
		var ui *live.Controller
		if display.live {
			ui = live.Start(stdout, live.Options{NoColor: common.noColor, Interrupt: cancel})
			observer = ui
		} else {
			observer = runner.NewPlainObserver(stdout, common.noColor)
		}

		runMetrics := metrics.NewRun()
		summary, runErr := runner.RunBatch(ctx, cases, params, runner.Dependencies{
			RAG:      providers.RAG,
			OG:       providers.OG,
			Judge:    newJudge(providers.Judge, cfg.Judge),
			Observer: observer,
			Metrics:  runMetrics,
			Now:      nowFn,
			Sleep:    sleepFn,
		})
		if ui != nil {
			ui.Close()
			ui.Wait()
		}

		if summary.OutputPath != "" {
			if sidecar, err := runner.WriteSidecars(summary, runMetrics); err != nil {
				log.Warnf("write run sidecars: %v", err)
			} else {
				log.Infof("wrote %s", sidecar)
			}
		}
		if runErr != nil {
			fmt.Fprintf(stderr, "Batch failed: %v\n", runErr)
			if summary.OutputPath != "" {
				fmt.Fprintf(stderr, "Partial results: %s\n", summary.OutputPath)
			}
			return ExitError
		}

		fmt.Fprintf(stdout, "RAG benar %d/%d, OG benar %d/%d\n", summary.RAGCorrect, summary.Total, summary.OGCorrect, summary.Total)
		fmt.Fprintf(stdout, "Results: %s\n", summary.OutputPath)
		return ExitOK
	}
}
