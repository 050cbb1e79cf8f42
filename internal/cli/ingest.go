package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/chainguard-dev/clog"

	"ragjudge/internal/duckdb"
	"ragjudge/internal/results"
)

// runIngest builds the handler for the ingest command.
func runIngest(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		common := addCommonFlags(fs)
		ctx, cancel, code := parseCommand(cmd, fs, common, args, stdout, stderr)
		if ctx == nil {
			return code
		}
		defer cancel()

		if fs.NArg() < 2 {
			fmt.Fprintln(stderr, "Expected <db.duckdb> and at least one <result.csv>")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		dbPath := fs.Arg(0)
		db, err := duckdb.Open(ctx, dbPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open %s: %v\n", dbPath, err)
			return ExitError
		}
		defer db.Close()

		log := clog.FromContext(ctx)
		for _, path := range fs.Args()[1:] {
			table, err := results.LoadFile(path)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to read %s: %v\n", path, err)
				return ExitError
			}
			res, err := duckdb.IngestTable(ctx, db, table, path, nowFn())
			if err != nil {
				fmt.Fprintf(stderr, "Failed to ingest %s: %v\n", path, err)
				return ExitError
			}
			if res.Created {
				fmt.Fprintf(stdout, "Ingested %s: %d records (run %s)\n", res.Name, res.Records, res.RunID)
			} else {
				fmt.Fprintf(stdout, "Skipped %s: already ingested as run %s\n", res.Name, res.RunID)
			}
			log.Debugf("run key %s", res.RunKey)
		}
		return ExitOK
	}
}
