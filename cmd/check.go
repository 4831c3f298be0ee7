package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/commission/feed"
	"github.com/google/subcommands"
)

type checkCmd struct {
	inputFormat string
	path        string
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the operations of a feed without computing fees" }
func (*checkCmd) Usage() string {
	return `pcf check [-input-format csv|json|jsonl] [-jsonpath <expr>] <file>

  Decodes and validates every operation of the feed, and lists the invalid
  ones. Exits with a failure status if any operation is invalid.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputFormat, "input-format", "", "Input format: csv, json or jsonl. Guessed from the file extension when empty.")
	f.StringVar(&c.path, "jsonpath", feed.DefaultPath, "JSONPath selecting the operations of a json document.")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	invalid, err := c.run(os.Stdout, f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if invalid > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// run checks filename and writes a summary to w. It returns the number of
// invalid operations.
func (c *checkCmd) run(w io.Writer, filename string) (invalid int, err error) {
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
	valid, errs := feed.Collect(ops)
	for _, err := range errs {
		fmt.Fprintln(w, err)
	}
	fmt.Fprintf(w, "%d valid operations, %d invalid\n", len(valid), len(errs))
	return len(errs), nil
}
