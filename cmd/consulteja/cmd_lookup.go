package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sadopc/consulteja/internal/logging"
	"github.com/sadopc/consulteja/internal/runner"
)

func lookupCmd() {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	configFlag := fs.String("config", "", "Path to a config file")
	outputFlag := fs.String("output", "text", "Output format: text, json, yaml")
	noHistoryFlag := fs.Bool("no-history", false, "Do not record found products in history")
	verboseFlag := fs.Bool("verbose", false, "Show all fields, provider attempts and debug logs")
	timeoutFlag := fs.Duration("timeout", 0, "Overall timeout per lookup (default from config)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: consulteja lookup [flags] [barcode...]\n\n")
		fmt.Fprintf(os.Stderr, "Look up barcodes across the configured product databases.\n")
		fmt.Fprintf(os.Stderr, "With no arguments, barcodes are read from stdin, one per line.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  consulteja lookup 7891000100103\n")
		fmt.Fprintf(os.Stderr, "  consulteja lookup --output json 7891000100103 4006381333931\n")
		fmt.Fprintf(os.Stderr, "  cat codes.txt | consulteja lookup --no-history\n")
		fmt.Fprintf(os.Stderr, "\nExit codes:\n")
		fmt.Fprintf(os.Stderr, "  0  Every barcode was found\n")
		fmt.Fprintf(os.Stderr, "  1  One or more barcodes were not found or invalid\n")
		fmt.Fprintf(os.Stderr, "  2  One or more lookups failed\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	switch *outputFlag {
	case "text", "json", "yaml":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid output format %q (must be text, json, or yaml)\n", *outputFlag)
		os.Exit(2)
	}

	queries := fs.Args()
	if len(queries) == 0 {
		if stdinIsTerminal() {
			fmt.Fprintf(os.Stderr, "Error: at least one barcode is required\n\n")
			fs.Usage()
			os.Exit(2)
		}
		var err error
		if queries, err = runner.ReadQueries(os.Stdin); err != nil {
			fatalf("%v", err)
		}
	}

	cfg := mustConfig(*configFlag)
	if *timeoutFlag > 0 {
		cfg.Timeout = *timeoutFlag
	}
	lg := logging.Console(*verboseFlag)
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rt, err := openRuntime(ctx, cfg, lg, !*noHistoryFlag)
	if err != nil {
		fatalf("%v", err)
	}
	results := runner.New(rt.svc).Run(ctx, queries)
	rt.Close()

	if err := printResults(os.Stdout, *outputFlag, results, *verboseFlag); err != nil {
		fatalf("writing output: %v", err)
	}
	os.Exit(runner.ExitCode(results))
}

func printResults(w io.Writer, format string, results []runner.Result, verbose bool) error {
	switch format {
	case "json":
		return runner.PrintJSON(w, results)
	case "yaml":
		return runner.PrintYAML(w, results)
	default:
		runner.PrintText(w, results, verbose)
		return nil
	}
}

func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return true
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
