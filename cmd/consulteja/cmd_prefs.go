package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-faster/errors"

	"github.com/sadopc/consulteja/internal/core/prefs"
)

func prefsCmd() {
	fs := flag.NewFlagSet("prefs", flag.ExitOnError)
	configFlag := fs.String("config", "", "Path to a config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: consulteja prefs [show|theme [light|dark]|color-blind [on|off]] [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Show or change display preferences. Without a value, theme and\n")
		fmt.Fprintf(os.Stderr, "color-blind toggle the current setting.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	ctx := context.Background()
	stores := openStores(ctx, mustConfig(*configFlag))
	defer func() { _ = stores.Close() }()

	if err := runPrefs(ctx, os.Stdout, stores.Prefs, fs.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = stores.Close()
		os.Exit(1)
	}
}

// runPrefs executes a prefs subcommand and prints the resulting preferences.
func runPrefs(ctx context.Context, w io.Writer, repo prefs.Repository, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}

	var (
		p   prefs.Preferences
		err error
	)
	switch sub {
	case "show":
		p, err = repo.Load(ctx)
	case "theme":
		if len(args) < 2 {
			p, err = repo.ToggleTheme(ctx)
			break
		}
		if p, err = repo.Load(ctx); err != nil {
			return err
		}
		p.Theme = args[1]
		err = repo.Save(ctx, p)
	case "color-blind":
		if len(args) < 2 {
			p, err = repo.ToggleColorBlind(ctx)
			break
		}
		on, perr := parseSwitch(args[1])
		if perr != nil {
			return perr
		}
		if p, err = repo.Load(ctx); err != nil {
			return err
		}
		p.ColorBlind = on
		err = repo.Save(ctx, p)
	default:
		return errors.Errorf("unknown prefs command %q", sub)
	}
	if err != nil {
		return err
	}

	cb := "off"
	if p.ColorBlind {
		cb = "on"
	}
	fmt.Fprintf(w, "theme:       %s\n", p.Theme)
	fmt.Fprintf(w, "color-blind: %s\n", cb)
	return nil
}

func parseSwitch(s string) (bool, error) {
	switch s {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, errors.Errorf("expected on or off, got %q", s)
	}
}
