package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sadopc/consulteja/internal/app"
	"github.com/sadopc/consulteja/internal/logging"
	"github.com/sadopc/consulteja/pkg/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "lookup":
			lookupCmd()
			return
		case "history":
			historyCmd()
			return
		case "prefs":
			prefsCmd()
			return
		case "providers":
			providersCmd()
			return
		case "serve":
			serveCmd()
			return
		case "completion":
			completionCmd()
			return
		case "version":
			fmt.Println(version.String())
			return
		case "help":
			printHelp()
			return
		}
	}
	tuiCmd()
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `consulteja - barcode product lookup for the terminal

Usage:
  consulteja [flags]                    Launch TUI (interactive mode)
  consulteja <command> [args] [flags]   Run a subcommand

Commands:
  lookup      Look up one or more barcodes (args or stdin)
  history     List, show, export or clear saved lookups
  prefs       Show or change theme and color-blind mode
  providers   List product databases in fallback order
  serve       Start the HTTP API
  completion  Generate shell completion scripts (bash, zsh, fish)
  version     Print version information
  help        Show this help message

TUI Flags:
  --config <path>  Config file (default ~/.config/consulteja/config.yaml)
  --theme <name>   Custom theme from ~/.config/consulteja/themes
  --version        Print version and exit

Run 'consulteja <command> --help' for more information about a command.
`)
}

func tuiCmd() {
	versionFlag := flag.Bool("version", false, "Print version and exit")
	configFlag := flag.String("config", "", "Path to a config file")
	themeFlag := flag.String("theme", "", "Custom theme name")
	flag.Parse()

	if *versionFlag {
		fmt.Println(version.String())
		os.Exit(0)
	}

	cfg := mustConfig(*configFlag)
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}

	lg, err := logging.File(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
		lg = zap.NewNop()
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rt, err := openRuntime(ctx, cfg, lg, true)
	if err != nil {
		fatalf("%v", err)
	}
	defer rt.Close()

	model := app.New(cfg, app.Deps{
		Lookup:    rt.svc,
		History:   rt.history(),
		Prefs:     rt.prefs(),
		Providers: rt.chain.Names(),
		Logger:    lg,
		Context:   ctx,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		lg.Error("TUI exited", zap.Error(err))
		fatalf("%v", err)
	}
}
