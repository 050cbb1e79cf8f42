package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chainguard-dev/clog"
)

// commonFlags are accepted by every command that loads config or logs.
type commonFlags struct {
	specPath string
	logLevel string
	noColor  bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	flags := &commonFlags{}
	fs.StringVar(&flags.specPath, "spec", "", "Path to config file (default: search for .ragjudge/config.yml)")
	fs.StringVar(&flags.logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	fs.BoolVar(&flags.noColor, "no-color", false, "Disable ANSI colors")
	return flags
}

// parseLevel maps a --log-level value to a slog level.
func parseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (expected debug|info|warn|error)", value)
	}
}

// commandContext attaches a stderr logger and cancels on SIGINT or SIGTERM.
func commandContext(stderr io.Writer, level slog.Level) (context.Context, context.CancelFunc) {
	logger := clog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	ctx := clog.WithLogger(context.Background(), logger)
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// parseCommand parses flags with the shared conventions. A nil context means the
// caller should return the given exit code.
func parseCommand(cmd *Command, fs *flag.FlagSet, common *commonFlags, args []string, stdout, stderr io.Writer) (context.Context, context.CancelFunc, int) {
	if err := parseInterspersed(fs, args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return nil, nil, ExitOK
		}
		printCommandUsage(cmd, stderr)
		return nil, nil, ExitUsage
	}
	level, err := parseLevel(common.logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return nil, nil, ExitUsage
	}
	ctx, cancel := commandContext(stderr, level)
	return ctx, cancel, ExitOK
}

// parseInterspersed parses flags wherever they appear among the positional
// arguments, so "batch q.csv --threshold 0.5" works like the flags-first form.
// A bare "--" ends flag parsing. Positionals are left in fs.Args().
func parseInterspersed(fs *flag.FlagSet, args []string) error {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			break
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			positional = append(positional, rest...)
			break
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
	return fs.Parse(append([]string{"--"}, positional...))
}
