package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/sadopc/consulteja/internal/search"
)

func providersCmd() {
	fs := flag.NewFlagSet("providers", flag.ExitOnError)
	configFlag := fs.String("config", "", "Path to a config file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: consulteja providers [flags]\n\n")
		fmt.Fprintf(os.Stderr, "List product databases in the order they are queried.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	chain, err := search.NewChain(mustConfig(*configFlag), zap.NewNop())
	if err != nil {
		fatalf("%v", err)
	}
	printProviders(os.Stdout, chain.Names())
}

func printProviders(w io.Writer, names []string) {
	for i, name := range names {
		fmt.Fprintf(w, "%d. %s\n", i+1, name)
	}
}
