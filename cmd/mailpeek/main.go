package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/hyswd/mailpeek/internal/cli"
)

func main() {
	var c cli.CLI

	parser := kong.Must(&c,
		kong.Name("mailpeek"),
		kong.Description("Read-only IMAP mail reader: fetch, parse, never mark as seen"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	execCtx, err := cli.NewContext(&c.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = ctx.Run(execCtx)
	if err != nil {
		execCtx.Formatter.PrintError(err)
		os.Exit(1)
	}
}
