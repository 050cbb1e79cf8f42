package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"ragjudge/internal/config"
	"ragjudge/internal/results"
)

// askInput is the reader used to prompt for a question.
var askInput io.Reader = os.Stdin

const askRule = "=================================================="

// runAsk builds the handler for the ask command.
func runAsk(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		common := addCommonFlags(fs)
		output := fs.String("output", "rag_vs_og.csv", "CSV log the answers are appended to")
		topK := fs.Int("top-k", 0, "Snippets retrieved (default: retrieval.top_k)")
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
		k := cfg.Retrieval.TopK
		if *topK > 0 {
			k = *topK
		}

		question := strings.TrimSpace(strings.Join(fs.Args(), " "))
		if question == "" {
			question, err = newPrompter(askInput, stdout).Line("Masukkan pertanyaan Anda")
			if err != nil {
				fmt.Fprintf(stderr, "Failed to read question: %v\n", err)
				return ExitUsage
			}
		}

		secrets, err := config.LoadSecrets(ctx, lookupEnv)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read environment: %v\n", err)
			return ExitError
		}
		providers, err := buildProviders(ctx, cfg, secrets, k)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to set up providers: %v\n", err)
			return ExitError
		}
		if providers.Close != nil {
			defer providers.Close()
		}

		fmt.Fprintln(stdout, "Mendapatkan jawaban dari RAG AI...")
		ragAnswer, err := providers.RAG.Answer(ctx, question)
		if err != nil {
			ragAnswer = fmt.Sprintf("Error during RAG AI call: %v", err)
		}
		fmt.Fprintln(stdout, "Mendapatkan jawaban dari Original AI...")
		ogAnswer, err := providers.OG.Answer(ctx, question)
		if err != nil {
			ogAnswer = fmt.Sprintf("Error during Original AI call: %v", err)
		}

		fmt.Fprintln(stdout, askRule)
		fmt.Fprintln(stdout, "PERTANYAAN:")
		fmt.Fprintln(stdout, question)
		fmt.Fprintln(stdout, askRule)
		fmt.Fprintln(stdout, "JAWABAN RAG AI:")
		fmt.Fprintln(stdout, ragAnswer)
		fmt.Fprintln(stdout, "JAWABAN ORIGINAL AI:")
		fmt.Fprintln(stdout, ogAnswer)
		fmt.Fprintln(stdout, askRule)

		if err := results.AppendAsk(*output, question, ragAnswer, ogAnswer); err != nil {
			fmt.Fprintf(stderr, "Failed to save answers: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Hasil telah disimpan di %s\n", *output)
		return ExitOK
	}
}
