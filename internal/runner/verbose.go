package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiGray  = "\x1b[90m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
)

const maxQuestionPreview = 80

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	styleHeading
	styleSuccess
	styleError
)

// PlainObserver prints run progress as plain lines, one per event.
type PlainObserver struct {
	out     io.Writer
	palette verbosePalette
}

// NewPlainObserver writes progress to out, styling it only on terminals.
func NewPlainObserver(out io.Writer, noColor bool) *PlainObserver {
	return &PlainObserver{out: out, palette: paletteFor(out, noColor)}
}

func (p *PlainObserver) OnRunStart(runID, outputPath string, total int) {
	p.line(styleHeading, "Menjalankan batch untuk %d pertanyaan (run %s)", total, runID)
	p.line(styleDefault, "Output: %s", outputPath)
}

func (p *PlainObserver) OnQuestionEvent(event QuestionEvent) {
	switch event.Type {
	case QuestionAnswering:
		p.line(styleDefault, "[%d/%d] Memproses: %s", event.Index+1, event.Total, previewQuestion(event.Question))
	case QuestionDone, QuestionDegraded:
		if event.Record == nil {
			return
		}
		style := styleSuccess
		if event.Type == QuestionDegraded {
			style = styleError
		}
		p.line(style, "  rag=%s (%s) og=%s (%s)",
			event.Record.RAG.Verdict.Wire(), FormatScoreShort(event.Record.RAG.Score),
			event.Record.OG.Verdict.Wire(), FormatScoreShort(event.Record.OG.Score))
	}
}

func (p *PlainObserver) OnCooldown(remaining int) {
	if remaining == 0 {
		fmt.Fprint(p.out, "\rLanjut...         \n")
		return
	}
	fmt.Fprintf(p.out, "\rIstirahat: %02ds ", remaining)
}

func (p *PlainObserver) OnRunEnd(summary Summary) {
	if summary.Interrupted {
		p.line(styleError, "Dihentikan setelah %d/%d pertanyaan. Hasil sebagian: %s", summary.Completed, summary.Total, summary.OutputPath)
		return
	}
	p.line(styleHeading, "Selesai. Hasil disimpan ke %s", summary.OutputPath)
}

func (p *PlainObserver) line(style verboseStyle, format string, args ...any) {
	if p == nil || p.out == nil {
		return
	}
	fmt.Fprintln(p.out, p.palette.apply(style, fmt.Sprintf(format, args...)))
}

// FormatScoreShort renders a score with three decimals.
func FormatScoreShort(score float64) string {
	return fmt.Sprintf("%.3f", score)
}

func previewQuestion(q string) string {
	runes := []rune(q)
	if len(runes) <= maxQuestionPreview {
		return q
	}
	return string(runes[:maxQuestionPreview]) + "..."
}

type verbosePalette struct {
	enabled bool
}

func paletteFor(writer io.Writer, noColor bool) verbosePalette {
	if noColor {
		return verbosePalette{enabled: false}
	}
	return verbosePalette{enabled: ShouldUseStyling(writer)}
}

// ShouldUseStyling reports whether ANSI styling suits writer and the environment.
func ShouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := writer.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

func (p verbosePalette) apply(style verboseStyle, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case styleHeading:
		return ansiBold + ansiBlue + text + ansiReset
	case styleSuccess:
		return ansiGreen + text + ansiReset
	case styleError:
		return ansiBold + ansiRed + text + ansiReset
	default:
		return ansiDim + ansiGray + text + ansiReset
	}
}
