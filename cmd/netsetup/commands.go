package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/strct-org/strct-netsetup/internal/errs"
)

const (
	OpPower   errs.Op = "cmd.power"
	OpConnect errs.Op = "cmd.connect"
	OpProbe   errs.Op = "cmd.probe"
)

func deviceFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "device",
		Aliases: []string{"d"},
		Usage:   "Wi-Fi device name (default: the Wi-Fi hardware port's device)",
	}
}

var devicesCommand = &cli.Command{
	Name:  "devices",
	Usage: "List all hardware ports and their attributes",
	Action: func(ctx context.Context, c *cli.Command) error {
		inv, err := appFrom(ctx).Wifi.Devices(ctx)
		if err != nil {
			return err
		}
		return printJSON(inv)
	},
}

var wifiDeviceCommand = &cli.Command{
	Name:  "wifi-device",
	Usage: "Show the Wi-Fi hardware port",
	Action: func(ctx context.Context, c *cli.Command) error {
		attrs, ok, err := appFrom(ctx).Wifi.WifiDevice(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return errs.E(errs.KindNotFound, "no Wi-Fi hardware port")
		}
		return printJSON(attrs)
	},
}

var networkCommand = &cli.Command{
	Name:  "network",
	Usage: "Show the network the Wi-Fi device is associated with",
	Flags: []cli.Flag{deviceFlag()},
	Action: func(ctx context.Context, c *cli.Command) error {
		a := appFrom(ctx)
		device, err := a.ResolveDevice(ctx, c.String("device"))
		if err != nil {
			return err
		}

		name, ok, err := a.Wifi.Network(ctx, device)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Not associated")
			return nil
		}
		fmt.Println(name)
		return nil
	},
}

var powerCommand = &cli.Command{
	Name:      "power",
	Usage:     "Turn the Wi-Fi radio on or off",
	Flags:     []cli.Flag{deviceFlag()},
	ArgsUsage: "<on|off>",
	Action: func(ctx context.Context, c *cli.Command) error {
		var on bool
		switch c.Args().First() {
		case "on", "On":
			on = true
		case "off", "Off":
		default:
			return errs.E(OpPower, errs.KindInvalid, fmt.Sprintf("expected on or off, got %q", c.Args().First()))
		}

		a := appFrom(ctx)
		device, err := a.ResolveDevice(ctx, c.String("device"))
		if err != nil {
			return err
		}

		ok, err := a.Wifi.SetPower(ctx, device, on)
		if err != nil {
			return err
		}
		if !ok {
			return errs.E(OpPower, errs.KindSystem, fmt.Sprintf("could not set power on %s", device))
		}
		fmt.Printf("%s power %s\n", device, c.Args().First())
		return nil
	},
}

var connectCommand = &cli.Command{
	Name:      "connect",
	Usage:     "Join a Wi-Fi network",
	ArgsUsage: "<network> <password>",
	Flags: []cli.Flag{
		deviceFlag(),
		&cli.BoolFlag{
			Name:  "verify",
			Usage: "Wait until DNS resolves through the new network",
		},
		&cli.IntFlag{
			Name:  "attempts",
			Value: 10,
			Usage: "Probe attempts when --verify is set",
		},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() != 2 {
			return errs.E(OpConnect, errs.KindInvalid, "expected <network> <password>")
		}
		network, password := c.Args().Get(0), c.Args().Get(1)

		a := appFrom(ctx)
		device, err := a.ResolveDevice(ctx, c.String("device"))
		if err != nil {
			return err
		}

		ok, err := a.Wifi.Connect(ctx, device, network, password)
		if err != nil {
			return err
		}
		if !ok {
			return errs.E(OpConnect, errs.KindNetwork, fmt.Sprintf("could not join %s", network))
		}
		fmt.Printf("Joined %s on %s\n", network, device)

		if !c.Bool("verify") {
			return nil
		}
		return a.Probe.WaitOnline(ctx, int(c.Int("attempts")), 2*time.Second)
	},
}

var computerNameCommand = &cli.Command{
	Name:  "computer-name",
	Usage: "Print the computer name",
	Action: func(ctx context.Context, c *cli.Command) error {
		name, err := appFrom(ctx).Wifi.ComputerName(ctx)
		if err != nil {
			return err
		}
		fmt.Println(name)
		return nil
	},
}

var probeCommand = &cli.Command{
	Name:  "probe",
	Usage: "Check DNS and ICMP reachability",
	Action: func(ctx context.Context, c *cli.Command) error {
		p := appFrom(ctx).Probe

		rtt, err := p.Resolve(ctx)
		if err != nil {
			return errs.E(OpProbe, err)
		}
		fmt.Printf("dns  %s via %s: %s\n", p.Host, p.Resolver, rtt)

		stats, err := p.Ping(ctx)
		if err != nil {
			return errs.E(OpProbe, err)
		}
		fmt.Printf("ping %s: %s avg, %.0f%% loss\n", p.PingTarget, stats.Latency, stats.Loss)
		if stats.IsDown {
			return errs.E(OpProbe, errs.KindNetwork, p.PingTarget+" is down")
		}
		return nil
	},
}

var updateCommand = &cli.Command{
	Name:  "update",
	Usage: "Replace this binary with the latest release",
	Action: func(ctx context.Context, c *cli.Command) error {
		u := appFrom(ctx).Updater
		if u.StorageURL == "" {
			return errs.E(errs.KindInvalid, "UPDATE_URL is not set")
		}

		v, newer, err := u.Check(ctx)
		if err != nil {
			return err
		}
		if !newer {
			fmt.Printf("Already up to date (%s)\n", version)
			return nil
		}
		if err := u.Apply(ctx, v); err != nil {
			return err
		}
		fmt.Printf("Updated to %s\n", v)
		return nil
	},
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

