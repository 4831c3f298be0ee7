// Package cmd implements the pcf command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/commission"
	"github.com/etnz/commission/config"
	"github.com/etnz/commission/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands lists the pcf subcommands.
// A main package registers them, and executes the user-selected one.
var Commands = []subcommands.Command{
	&feesCmd{},
	&checkCmd{},
	&weekCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var logLevel = flag.String("log-level", "", "Log level (trace, debug, info, warn, error). Defaults to $PCF_LOG_LEVEL or warn.")

// newLogger returns the application logger, writing human readable lines to w.
func newLogger(w io.Writer) (zerolog.Logger, error) {
	name := *logLevel
	if name == "" {
		name = config.LogLevel()
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", name, err)
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// newConverter returns a converter using the default rates, overridden by
// the PCF_RATE_<code> variables.
func newConverter() (*commission.Converter, error) {
	rates := commission.DefaultRates()
	for _, cur := range commission.Currencies() {
		if cur == commission.Reference {
			continue
		}
		rates[cur] = config.Rate(cur.String(), rates[cur])
	}
	return commission.NewConverter(rates)
}

// printMarkdown prints markdown to w, rendered for a terminal.
func printMarkdown(w io.Writer, md string) {
	out, err := renderer.Pretty(md)
	if err != nil {
		// not fatal, the markdown is readable as is.
		fmt.Fprintln(os.Stderr, "cannot render markdown:", err)
		out = md
	}
	fmt.Fprint(w, out)
}
