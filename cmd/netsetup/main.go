package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/strct-org/strct-netsetup/internal/app"
	"github.com/strct-org/strct-netsetup/internal/config"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

type appKey struct{}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var a *app.App
	cmd := &cli.Command{
		Name:    "netsetup",
		Usage:   "Query and control network hardware through networksetup",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "Run in development mode (mock hardware)",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			a, err = app.New(config.Load(c.Bool("dev")), version)
			if err != nil {
				return ctx, err
			}
			return context.WithValue(ctx, appKey{}, a), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if a == nil {
				return nil
			}
			return a.Close()
		},
		Commands: []*cli.Command{
			devicesCommand,
			wifiDeviceCommand,
			networkCommand,
			powerCommand,
			connectCommand,
			computerNameCommand,
			probeCommand,
			updateCommand,
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "netsetup: %v\n", err)
		os.Exit(1)
	}
}

func appFrom(ctx context.Context) *app.App {
	return ctx.Value(appKey{}).(*app.App)
}
