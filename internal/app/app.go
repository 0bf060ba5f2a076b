package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/strct-org/strct-netsetup/internal/config"
	"github.com/strct-org/strct-netsetup/internal/errs"
	"github.com/strct-org/strct-netsetup/internal/executil"
	"github.com/strct-org/strct-netsetup/internal/logging"
	"github.com/strct-org/strct-netsetup/internal/ota"
	"github.com/strct-org/strct-netsetup/internal/probe"
	"github.com/strct-org/strct-netsetup/internal/wifi"
)

const (
	OpNew           errs.Op = "app.New"
	OpResolveDevice errs.Op = "app.ResolveDevice"
)

// App holds everything one CLI invocation needs. It lives as long as the
// process does.
type App struct {
	Config  *config.Config
	Log     *logging.Logger
	Wifi    wifi.Provider
	Probe   *probe.Prober
	Updater *ota.Updater

	closer io.Closer
}

func New(cfg *config.Config, version string) (*App, error) {
	log, closer, err := openLog(cfg)
	if err != nil {
		return nil, errs.E(OpNew, errs.KindIO, err, "failed to open log")
	}

	return &App{
		Config: cfg,
		Log:    log,
		Wifi:   loadWifiManager(cfg, log),
		Probe: &probe.Prober{
			Resolver:   cfg.ProbeResolver,
			Host:       cfg.ProbeHost,
			PingTarget: cfg.ProbeTarget,
			Log:        log.With("probe"),
		},
		Updater: &ota.Updater{
			CurrentVersion: version,
			StorageURL:     cfg.UpdateURL,
			Client:         &http.Client{Timeout: 60 * time.Second},
			Log:            log.With("ota"),
		},
		closer: closer,
	}, nil
}

func loadWifiManager(cfg *config.Config, log *logging.Logger) wifi.Provider {
	if cfg.UseRealHardware() {
		runner := executil.New(cfg.Executable, cfg.Timeout, log.With("netsetup"))
		return wifi.New(runner, log)
	}
	log.Infof("Not on darwin or dev mode set, using mock Wi-Fi")
	return wifi.NewMock()
}

func openLog(cfg *config.Config) (*logging.Logger, io.Closer, error) {
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		return logging.NewWriter(os.Stderr, level), nil, nil
	}
	return logging.Open(cfg.LogFile, level)
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// ResolveDevice returns device, or the Wi-Fi port's device name when
// device is empty.
func (a *App) ResolveDevice(ctx context.Context, device string) (string, error) {
	if device != "" {
		return device, nil
	}

	attrs, ok, err := a.Wifi.WifiDevice(ctx)
	if err != nil {
		return "", errs.E(OpResolveDevice, err)
	}
	if !ok || attrs["Device"] == "" {
		return "", errs.E(OpResolveDevice, errs.KindNotFound, fmt.Sprintf("no %s hardware port found", wifi.WiFiPort))
	}
	return attrs["Device"], nil
}
