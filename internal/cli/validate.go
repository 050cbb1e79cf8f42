package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"ragjudge/internal/config"
	"ragjudge/internal/spec"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		specPath := fs.String("spec", "", "Path to config file (default: search for .ragjudge/config.yml)")
		quiet := fs.Bool("quiet", false, "Only report problems")
		if err := fs.Parse(args); err != nil {
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		path, err := resolveSpecPath(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		cfg, err := config.Load(path)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed (%s):\n%v\n", path, err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Config OK: %s\n", path)
		if !*quiet {
			describeConfig(stdout, cfg)
		}
		return ExitOK
	}
}

// describeConfig prints the effective settings after defaults are applied.
func describeConfig(w io.Writer, cfg spec.Config) {
	gen := cfg.Generation.Provider + "/" + cfg.Generation.Model
	if cfg.Generation.BaseURL != "" {
		gen += " @ " + cfg.Generation.BaseURL
	}
	cooldown := 0
	if cfg.Batch.CooldownSeconds != nil {
		cooldown = *cfg.Batch.CooldownSeconds
	}
	fmt.Fprintf(w, "  generation: %s\n", gen)
	fmt.Fprintf(w, "  retrieval:  %s top_k=%d\n", cfg.Retrieval.Collection, cfg.Retrieval.TopK)
	fmt.Fprintf(w, "  batch:      threshold=%.2f every %d questions cooldown %ds\n", cfg.Batch.Threshold, cfg.Batch.BatchSize, cooldown)
	fmt.Fprintf(w, "  output:     %s (%s)\n", cfg.Output.Dir, cfg.Output.Timezone)
	names := make([]string, 0, len(cfg.Analysis.Categories)+1)
	for _, rule := range cfg.Analysis.Categories {
		names = append(names, rule.Name)
	}
	names = append(names, cfg.Analysis.FallbackCategory)
	fmt.Fprintf(w, "  categories: %s\n", strings.Join(names, ", "))
}
