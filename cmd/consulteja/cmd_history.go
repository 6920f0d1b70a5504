package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-faster/errors"

	"github.com/sadopc/consulteja/internal/core/history"
)

func historyCmd() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	configFlag := fs.String("config", "", "Path to a config file")
	formatFlag := fs.String("format", "json", "Export format: json, yaml")
	outputFlag := fs.String("output", "", "Export to a file instead of stdout")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: consulteja history [list|show <id>|export|clear] [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Manage the most recent lookups.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  consulteja history\n")
		fmt.Fprintf(os.Stderr, "  consulteja history show 12\n")
		fmt.Fprintf(os.Stderr, "  consulteja history export --format yaml --output history.yaml\n")
		fmt.Fprintf(os.Stderr, "  consulteja history clear\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	ctx := context.Background()
	stores := openStores(ctx, mustConfig(*configFlag))
	defer func() { _ = stores.Close() }()

	w := io.Writer(os.Stdout)
	if *outputFlag != "" {
		f, err := os.Create(*outputFlag)
		if err != nil {
			fatalf("%v", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := runHistory(ctx, w, stores.History, fs.Args(), *formatFlag, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = stores.Close()
		os.Exit(1)
	}
}

// runHistory executes a history subcommand against repo.
func runHistory(ctx context.Context, w io.Writer, repo history.Repository, args []string, format string, now time.Time) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		entries, err := repo.List(ctx)
		if err != nil {
			return err
		}
		printEntries(w, entries, now)
		return nil
	case "show":
		if len(args) < 2 {
			return errors.New("history show requires an entry id")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return errors.Errorf("invalid entry id %q", args[1])
		}
		e, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		return history.Export(w, []history.Entry{e}, format)
	case "export":
		entries, err := repo.List(ctx)
		if err != nil {
			return err
		}
		return history.Export(w, entries, format)
	case "clear":
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(w, "History cleared")
		return nil
	default:
		return errors.Errorf("unknown history command %q", sub)
	}
}

func printEntries(w io.Writer, entries []history.Entry, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No lookups yet")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%4d  %-14s %s  (%s, %s)\n",
			e.ID, e.Product.Barcode, e.Product.Name, e.Product.Source,
			humanize.RelTime(e.SearchedAt, now, "ago", "from now"))
	}
}
