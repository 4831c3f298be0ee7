// Command pcf computes the commission fees of cash operation feeds.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/commission/cmd"
	"github.com/etnz/commission/config"
	"github.com/etnz/commission/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "cannot load .env:", err)
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	// Shell completion, install with COMP_INSTALL=1 pcf.
	completion().Complete("pcf")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	feeds := predict.Or(predict.Files("*.csv"), predict.Files("*.json"), predict.Files("*.jsonl"))
	inputFormats := predict.Set{"csv", "json", "jsonl"}
	topics, _ := docs.All()

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"log-level": predict.Set{"trace", "debug", "info", "warn", "error"},
		},
		Sub: map[string]*complete.Command{
			"fees": {
				Flags: map[string]complete.Predictor{
					"format":          predict.Set{"text", "json", "markdown"},
					"pretty":          predict.Nothing,
					"input-format":    inputFormats,
					"jsonpath":        predict.Something,
					"fail-fast":       predict.Nothing,
					"legacy-rollover": predict.Nothing,
					"strict-week":     predict.Nothing,
				},
				Args: feeds,
			},
			"check": {
				Flags: map[string]complete.Predictor{
					"input-format": inputFormats,
					"jsonpath":     predict.Something,
				},
				Args: feeds,
			},
			"week": {
				Flags: map[string]complete.Predictor{
					"strict-week": predict.Nothing,
				},
			},
			"topic": {
				Flags: map[string]complete.Predictor{
					"list": predict.Nothing,
				},
				Args: predict.Set(append(topics, "*")),
			},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
}
