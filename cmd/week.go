package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/commission/config"
	"github.com/etnz/commission/date"
	"github.com/google/subcommands"
)

type weekCmd struct {
	strictWeek bool
}

func (*weekCmd) Name() string     { return "week" }
func (*weekCmd) Synopsis() string { return "tell whether two dates share a withdrawal window" }
func (*weekCmd) Usage() string {
	return `pcf week [-strict-week] <date> <date>

  Prints the ISO week of both dates, and whether a withdrawal on the second
  date continues the withdrawal window of the first one.
`
}

func (c *weekCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strictWeek, "strict-week", config.StrictWeek(), "A withdrawal window spans a single calendar week. Defaults to $PCF_STRICT_WEEK.")
}

func (c *weekCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	if err := c.run(os.Stdout, f.Arg(0), f.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}

func (c *weekCmd) run(w io.Writer, first, second string) error {
	a, err := date.Parse(first)
	if err != nil {
		return err
	}
	b, err := date.Parse(second)
	if err != nil {
		return err
	}
	for _, d := range []date.Date{a, b} {
		wk := date.WeekOf(d)
		fmt.Fprintf(w, "%s: %s (%s)\n", d, wk, wk.Range())
	}
	same := date.SameOrAdjacentWeek(a, b)
	if c.strictWeek {
		same = date.SameWeek(a, b)
	}
	fmt.Fprintf(w, "same window: %t\n", same)
	return nil
}
