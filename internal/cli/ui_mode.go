package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// progressDisplay is the resolved --ui choice for a batch run.
type progressDisplay struct {
	live bool
	// note is printed to stderr when the requested display was downgraded.
	note string
}

// isTerminal reports whether progress can be redrawn in place on w.
var isTerminal = writerIsTerminal

// chooseProgressDisplay maps the --ui flag onto a display. Debug logging
// always uses plain output so log lines on stderr stay readable.
func chooseProgressDisplay(flagValue string, debug bool, stdout io.Writer) (progressDisplay, error) {
	mode := strings.ToLower(strings.TrimSpace(flagValue))
	switch mode {
	case "", "auto", "live", "plain":
	default:
		return progressDisplay{}, fmt.Errorf("invalid --ui value %q (expected auto|live|plain)", flagValue)
	}
	if debug {
		if mode == "live" {
			return progressDisplay{note: "Live UI disabled while --log-level=debug; using plain output."}, nil
		}
		return progressDisplay{}, nil
	}
	switch mode {
	case "plain":
		return progressDisplay{}, nil
	case "live":
		if !isTerminal(stdout) {
			return progressDisplay{note: "Live UI requested but stdout is not a TTY; using plain output."}, nil
		}
		return progressDisplay{live: true}, nil
	default:
		return progressDisplay{live: isTerminal(stdout)}, nil
	}
}

func writerIsTerminal(w io.Writer) bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
