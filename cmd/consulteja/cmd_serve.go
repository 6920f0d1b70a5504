package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/go-faster/sdk/app"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/sadopc/consulteja/internal/server"
)

func serveCmd() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configFlag := fs.String("config", "", "Path to a config file")
	addrFlag := fs.String("addr", "", "Listen address (default from config)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: consulteja serve [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Serve lookups, history and preferences over HTTP.\n")
		fmt.Fprintf(os.Stderr, "Tracing and metrics follow the standard OTEL_* environment variables.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	cfg := mustConfig(*configFlag)
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}

	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Telemetry) error {
		rt, err := openRuntime(ctx, cfg, lg, true)
		if err != nil {
			return err
		}
		defer rt.Close()

		srv := server.New(server.Deps{
			Lookup:    rt.svc,
			History:   rt.history(),
			Prefs:     rt.prefs(),
			Providers: rt.chain.Names(),
		}, lg.Named("http"),
			server.WithOTel(
				otelhttp.WithTracerProvider(m.TracerProvider()),
				otelhttp.WithMeterProvider(m.MeterProvider()),
			),
		)
		return srv.ListenAndRun(ctx, cfg.Server)
	})
}
