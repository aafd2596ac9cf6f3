package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/condaprep/condaprep/internal/messages"
)

// installerBaseURL is the canonical location of Miniconda installer artifacts.
const installerBaseURL = "https://repo.anaconda.com/miniconda"

// Artifact downloads are large, so the client carries no overall timeout;
// cancellation comes from the request context.
var installerClient = &http.Client{}

var downloadRetryDelay = 250 * time.Millisecond

const downloadRetryCount = 1

// defaultInstallerFiles maps GOOS/GOARCH to the latest installer file name.
var defaultInstallerFiles = map[string]string{
	"linux/amd64":  "Miniconda3-latest-Linux-x86_64.sh",
	"linux/arm64":  "Miniconda3-latest-Linux-aarch64.sh",
	"darwin/amd64": "Miniconda3-latest-MacOSX-x86_64.sh",
	"darwin/arm64": "Miniconda3-latest-MacOSX-arm64.sh",
}

// DefaultInstallerURL returns the installer artifact URL for this platform.
func DefaultInstallerURL() (string, error) {
	return defaultInstallerURLFor(runtime.GOOS, runtime.GOARCH)
}

func defaultInstallerURLFor(goos string, goarch string) (string, error) {
	file, ok := defaultInstallerFiles[goos+"/"+goarch]
	if !ok {
		return "", fmt.Errorf(messages.BootstrapNoInstallerURLFmt, goos, goarch)
	}
	return installerBaseURL + "/" + file, nil
}

// downloadInstaller fetches the installer artifact at url into destDir and
// returns the downloaded file path. Transient failures (network errors,
// 5xx responses) are retried once.
func downloadInstaller(ctx context.Context, sys System, url string, destDir string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= downloadRetryCount; attempt++ {
		path, err := downloadOnce(ctx, sys, url, destDir)
		if err == nil {
			return path, nil
		}
		lastErr = err
		if !shouldRetryDownload(err, attempt) {
			return "", err
		}
		time.Sleep(downloadRetryDelay)
	}
	return "", lastErr
}

// transientStatusError marks a retryable HTTP status.
type transientStatusError struct {
	status string
}

func (e *transientStatusError) Error() string {
	return fmt.Sprintf(messages.BootstrapDownloadStatusFmt, e.status)
}

func downloadOnce(ctx context.Context, sys System, url string, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf(messages.BootstrapDownloadRequestFmt, err)
	}
	req.Header.Set("User-Agent", "condaprep")

	resp, err := installerClient.Do(req)
	if err != nil {
		return "", fmt.Errorf(messages.BootstrapDownloadFmt, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 500 && resp.StatusCode <= 599 {
			return "", &transientStatusError{status: resp.Status}
		}
		return "", fmt.Errorf(messages.BootstrapDownloadStatusFmt, resp.Status)
	}

	tmp, err := sys.CreateTemp(destDir, "installer-*.sh")
	if err != nil {
		return "", fmt.Errorf(messages.BootstrapDownloadWriteFmt, err)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = sys.RemoveAll(tmpName)
		return "", fmt.Errorf(messages.BootstrapDownloadWriteFmt, err)
	}
	if err := tmp.Close(); err != nil {
		_ = sys.RemoveAll(tmpName)
		return "", fmt.Errorf(messages.BootstrapDownloadWriteFmt, err)
	}
	return tmpName, nil
}

func shouldRetryDownload(err error, attempt int) bool {
	if attempt >= downloadRetryCount {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var transient *transientStatusError
	if errors.As(err, &transient) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
