package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/chainguard-dev/clog"

	"ragjudge/internal/report"
	"ragjudge/internal/results"
)

// runAnalyze builds the handler for the analyze command.
func runAnalyze(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		common := addCommonFlags(fs)
		glob := fs.String("glob", "", "Result files pattern (default: analysis.input_glob)")
		outputDir := fs.String("output-dir", "", "Folder for report files (default: analysis.output_dir)")
		ctx, cancel, code := parseCommand(cmd, fs, common, args, stdout, stderr)
		if ctx == nil {
			return code
		}
		defer cancel()

		cfg, _, err := loadConfig(common.specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		dir := cfg.Analysis.OutputDir
		if *outputDir != "" {
			dir = *outputDir
		}

		paths := fs.Args()
		if len(paths) == 0 {
			pattern := cfg.Analysis.InputGlob
			if *glob != "" {
				pattern = *glob
			}
			paths, err = results.Glob(pattern)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return ExitUsage
			}
			if len(paths) == 0 {
				fmt.Fprintf(stderr, "No result files match %s\n", pattern)
				return ExitError
			}
		}
		clog.FromContext(ctx).Infof("analyzing %d result files", len(paths))

		tables, err := results.LoadCorpus(paths)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read results: %v\n", err)
			return ExitError
		}
		analysis, err := report.BuildAnalysis(tables, cfg.Analysis, nowFn())
		if err != nil {
			fmt.Fprintf(stderr, "Analysis failed: %v\n", err)
			return ExitError
		}
		if err := report.WriteAnalysis(stdout, analysis); err != nil {
			fmt.Fprintf(stderr, "Failed to render analysis: %v\n", err)
			return ExitError
		}
		written, err := report.WriteAnalysisOutputs(ctx, dir, analysis)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to write outputs: %v\n", err)
			return ExitError
		}
		for _, path := range written {
			fmt.Fprintf(stdout, "Wrote %s\n", path)
		}
		return ExitOK
	}
}
