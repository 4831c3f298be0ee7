package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/commission"
	"github.com/etnz/commission/config"
	"github.com/etnz/commission/feed"
	"github.com/etnz/commission/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

type feesCmd struct {
	format         string
	pretty         bool
	inputFormat    string
	path           string
	failFast       bool
	legacyRollover bool
	strictWeek     bool
}

func (*feesCmd) Name() string     { return "fees" }
func (*feesCmd) Synopsis() string { return "compute the commission fee of each operation of a feed" }
func (*feesCmd) Usage() string {
	return `pcf fees [-format text|json|markdown] [-input-format csv|json|jsonl] [-jsonpath <expr>] <file>

  Computes the commission fee of each operation of the feed, in order, and
  prints one fee per line in the currency of the operation.

  Operations that cannot be decoded or computed are reported on stderr, the
  command then exits with a failure status.
`
}

func (c *feesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "text", "Output format: text, json or markdown.")
	f.BoolVar(&c.pretty, "pretty", false, "Render the markdown output for the terminal.")
	f.StringVar(&c.inputFormat, "input-format", "", "Input format: csv, json or jsonl. Guessed from the file extension when empty.")
	f.StringVar(&c.path, "jsonpath", feed.DefaultPath, "JSONPath selecting the operations of a json document.")
	f.BoolVar(&c.failFast, "fail-fast", config.FailFast(), "Stop at the first failed operation. Defaults to $PCF_FAIL_FAST.")
	f.BoolVar(&c.legacyRollover, "legacy-rollover", config.LegacyRollover(), "Decrement the withdrawal count when a window rolls over instead of resetting it. Defaults to $PCF_LEGACY_ROLLOVER.")
	f.BoolVar(&c.strictWeek, "strict-week", config.StrictWeek(), "A withdrawal window spans a single calendar week. Defaults to $PCF_STRICT_WEEK.")
}

func (c *feesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	log, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	failed, err := c.run(os.Stdout, os.Stderr, f.Arg(0), log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if failed > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// engine returns an engine configured by the command flags.
func (c *feesCmd) engine(log zerolog.Logger) (*commission.Engine, error) {
	conv, err := newConverter()
	if err != nil {
		return nil, err
	}
	schedule := commission.DefaultSchedule()
	schedule.StrictWeek = c.strictWeek
	if c.legacyRollover {
		schedule.Rollover = commission.RolloverLegacy
	}
	return commission.NewEngine(
		commission.WithSchedule(schedule),
		commission.WithConverter(conv),
		commission.WithLogger(log),
		commission.WithFailFast(c.failFast),
	), nil
}

// run computes the fees of filename and writes them to w. It returns the
// number of failed operations.
func (c *feesCmd) run(w, errw io.Writer, filename string, log zerolog.Logger) (failed int, err error) {
	out, err := renderer.ParseFormat(c.format)
	if err != nil {
		return 0, err
	}
	opts := feed.Options{Path: c.path}
	if c.inputFormat != "" {
		if opts.Format, err = feed.ParseFormat(c.inputFormat); err != nil {
			return 0, err
		}
	}
	ops, err := feed.ReadFile(filename, opts)
	if err != nil {
		return 0, err
	}
	engine, err := c.engine(log)
	if err != nil {
		return 0, err
	}
	log.Debug().Str("run", engine.RunID()).Str("file", filename).Str("format", string(out)).Msg("computing fees")

	results := engine.Run(ops)
	switch out {
	case renderer.JSON:
		return renderer.WriteJSON(w, results)
	case renderer.Markdown:
		report := renderer.NewReport(results)
		md := renderer.ReportMarkdown(report)
		if c.pretty {
			printMarkdown(w, md)
		} else {
			_, err = io.WriteString(w, md)
		}
		return report.Failed, err
	default:
		return renderer.WriteText(w, errw, results)
	}
}
