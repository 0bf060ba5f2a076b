package ota

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/blang/semver"
	"github.com/minio/selfupdate"

	"github.com/strct-org/strct-netsetup/internal/errs"
	"github.com/strct-org/strct-netsetup/internal/logging"
)

const (
	OpCheck errs.Op = "ota.Check"
	OpApply errs.Op = "ota.Apply"
)

type Updater struct {
	CurrentVersion string
	StorageURL     string // serves version.txt, the binaries and their .sha256 files
	Client         *http.Client
	Log            *logging.Logger

	// TargetPath is the binary to replace; empty means the running executable.
	TargetPath string
}

// BinaryName is the file fetched for this platform.
func BinaryName() string {
	return fmt.Sprintf("netsetup-%s-%s", runtime.GOOS, runtime.GOARCH)
}

func (u *Updater) client() *http.Client {
	if u.Client == nil {
		return &http.Client{Timeout: 60 * time.Second}
	}
	return u.Client
}

// Check fetches version.txt and reports whether it is newer than
// CurrentVersion.
func (u *Updater) Check(ctx context.Context) (semver.Version, bool, error) {
	u.Log.Infof("Checking for updates...")

	body, err := u.get(ctx, u.StorageURL+"/version.txt")
	if err != nil {
		return semver.Version{}, false, errs.E(OpCheck, errs.KindIO, err, "failed to fetch version file")
	}

	vCurrent, err := semver.ParseTolerant(u.CurrentVersion)
	if err != nil {
		return semver.Version{}, false, errs.E(OpCheck, errs.KindInvalid, err, fmt.Sprintf("invalid current version %q", u.CurrentVersion))
	}
	remote := strings.TrimSpace(string(body))
	vRemote, err := semver.ParseTolerant(remote)
	if err != nil {
		return semver.Version{}, false, errs.E(OpCheck, errs.KindInvalid, err, fmt.Sprintf("invalid remote version %q", remote))
	}

	if vRemote.LTE(vCurrent) {
		u.Log.Infof("No update needed. Remote: %s, Current: %s", vRemote, vCurrent)
		return vRemote, false, nil
	}

	u.Log.Infof("New version found: %s", vRemote)
	return vRemote, true, nil
}

// Apply downloads the platform binary, verifies it against its .sha256
// file and swaps it in. The caller decides when to restart.
func (u *Updater) Apply(ctx context.Context, v semver.Version) error {
	binURL := fmt.Sprintf("%s/%s", u.StorageURL, BinaryName())

	sumBody, err := u.get(ctx, binURL+".sha256")
	if err != nil {
		return errs.E(OpApply, errs.KindIO, err, "failed to fetch checksum")
	}
	fields := strings.Fields(string(sumBody))
	if len(fields) == 0 {
		return errs.E(OpApply, errs.KindInvalid, "empty checksum file")
	}
	checksum, err := hex.DecodeString(fields[0])
	if err != nil {
		return errs.E(OpApply, errs.KindInvalid, err, "malformed checksum")
	}

	u.Log.Infof("Downloading %s (%s)...", BinaryName(), v)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, binURL, nil)
	if err != nil {
		return errs.E(OpApply, errs.KindInvalid, err)
	}
	resp, err := u.client().Do(req)
	if err != nil {
		return errs.E(OpApply, errs.KindIO, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errs.E(OpApply, errs.KindIO, fmt.Sprintf("binary download failed: %s", resp.Status))
	}

	// Rollback happens inside selfupdate if the swap fails.
	err = selfupdate.Apply(resp.Body, selfupdate.Options{
		TargetPath: u.TargetPath,
		TargetMode: 0o755,
		Checksum:   checksum,
	})
	if err != nil {
		return errs.E(OpApply, errs.KindIO, err, "update apply failed")
	}

	u.Log.Infof("Update to %s applied", v)
	return nil
}

func (u *Updater) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := u.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<16))
}
