// Package cli implements the ragjudge command-line interface.
package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ragjudge <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"ragjudge <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .ragjudge/config.yml", []string{
		"ragjudge init [--spec <path>]",
	}, runInit),
	command("validate", "Validate .ragjudge/config.yml", []string{
		"ragjudge validate [--spec <path>] [--quiet]",
	}, runValidate),
	command("batch", "Answer and judge every question of an input file", []string{
		"ragjudge batch [--output-dir test] [--top-k 5] [--threshold 0.7] [--batch-size 5]",
		"  [--cooldown 70] [--ui auto|live|plain] [--docs data] <questions.csv|.yml|.json>",
		"Flags may also follow the input file; \"--\" ends flag parsing.",
	}, runBatch),
	command("ask", "Ask one question to RAG and OG without judging", []string{
		"ragjudge ask [--output rag_vs_og.csv] [--] [question]",
	}, runAsk),
	command("stats", "Analyze one result file", []string{
		"ragjudge stats [--output-dir output] <result.csv>",
	}, runStats),
	command("analyze", "Compare several result files", []string{
		"ragjudge analyze [--glob 'eval/*.csv'] [--output-dir output] [files...]",
	}, runAnalyze),
	command("index", "Chunk documents into the vector index", []string{
		"ragjudge index [--glob 'data/*.md'] [files...]",
	}, runIndex),
	command("ingest", "Load result files into a DuckDB store", []string{
		"ragjudge ingest <db.duckdb> <result.csv>...",
	}, runIngest),
	command("serve", "Serve the DuckDB dashboard", []string{
		"ragjudge serve [--addr 127.0.0.1:5000] <db.duckdb>",
	}, runServe),
}
