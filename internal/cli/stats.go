package cli

import (
	"flag"
	"fmt"
	"io"

	"ragjudge/internal/report"
	"ragjudge/internal/results"
	"ragjudge/internal/stats"
)

// runStats builds the handler for the stats command.
func runStats(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		common := addCommonFlags(fs)
		outputDir := fs.String("output-dir", "", "Folder for analysis files (default: analysis.output_dir)")
		ctx, cancel, code := parseCommand(cmd, fs, common, args, stdout, stderr)
		if ctx == nil {
			return code
		}
		defer cancel()

		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "Expected exactly one <result.csv>")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		cfg, _, err := loadConfig(common.specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		dir := cfg.Analysis.OutputDir
		if *outputDir != "" {
			dir = *outputDir
		}

		table, err := results.LoadFile(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read %s: %v\n", fs.Arg(0), err)
			return ExitError
		}
		fileStats := stats.Analyze(table, cfg.Analysis.ProblematicScoreDiff)
		categories := stats.ByCategory(table.Records, cfg.Analysis.Categories, cfg.Analysis.FallbackCategory)
		if err := report.WriteFileStats(stdout, fileStats); err != nil {
			fmt.Fprintf(stderr, "Failed to render stats: %v\n", err)
			return ExitError
		}
		paths, err := report.WriteFileOutputs(dir, fileStats, categories)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to write outputs: %v\n", err)
			return ExitError
		}
		for _, path := range paths {
			fmt.Fprintf(stdout, "Wrote %s\n", path)
		}
		return ExitOK
	}
}
