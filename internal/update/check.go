// Package update checks GitHub for newer condaprep releases.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/condaprep/condaprep/internal/messages"
	"github.com/condaprep/condaprep/internal/version"
)

// Repo identifies the GitHub repository used for release checks.
const Repo = "condaprep/condaprep"

// EnvNoNetwork disables all best-effort network calls when set. Check honors
// it directly so every caller inherits the guard.
const EnvNoNetwork = "CONDAPREP_NO_NETWORK"

var (
	latestReleaseURL = "https://api.github.com/repos/" + Repo + "/releases/latest"
	httpClient       = &http.Client{Timeout: 10 * time.Second}
	retryDelay       = 250 * time.Millisecond
	updateSleep      = time.Sleep
)

const fetchLatestRetryCount = 1

// RateLimitError indicates GitHub's API rate limit was hit while checking
// for updates. Callers should treat it as a best-effort failure and keep
// quiet about it.
type RateLimitError struct {
	StatusCode int
	Status     string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github api rate limit exceeded (%s)", e.Status)
}

// IsRateLimitError reports whether err represents a GitHub API rate-limit condition.
func IsRateLimitError(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// CheckResult captures the latest release check outcome.
type CheckResult struct {
	Current      string
	Latest       string
	Outdated     bool
	CurrentIsDev bool
	// Skipped is set when EnvNoNetwork suppressed the check.
	Skipped bool
}

// Check fetches the latest release and compares it to currentVersion. When
// EnvNoNetwork is set it returns a skipped result without touching the
// network.
func Check(ctx context.Context, currentVersion string) (CheckResult, error) {
	if strings.TrimSpace(os.Getenv(EnvNoNetwork)) != "" {
		return CheckResult{Skipped: true}, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	result := CheckResult{CurrentIsDev: version.IsDev(currentVersion)}
	if result.CurrentIsDev {
		result.Current = "dev"
	} else {
		current, err := version.Normalize(currentVersion)
		if err != nil {
			return CheckResult{}, fmt.Errorf(messages.UpdateInvalidCurrentVersionFmt, currentVersion, err)
		}
		result.Current = current
	}

	latest, err := fetchLatestReleaseVersion(ctx)
	if err != nil {
		return CheckResult{}, err
	}
	result.Latest = latest

	if !result.CurrentIsDev {
		cmp, err := version.Compare(result.Current, latest)
		if err != nil {
			return CheckResult{}, err
		}
		result.Outdated = cmp < 0
	}
	return result, nil
}

type latestReleaseResponse struct {
	TagName string `json:"tag_name"`
}

// fetchLatestReleaseVersion returns the normalized latest release tag,
// retrying once on transient network errors and 5xx responses.
func fetchLatestReleaseVersion(ctx context.Context) (string, error) {
	for attempt := 0; ; attempt++ {
		latest, retryable, err := requestLatestRelease(ctx)
		if err == nil {
			return latest, nil
		}
		if !retryable || attempt >= fetchLatestRetryCount {
			return "", err
		}
		updateSleep(retryDelay)
	}
}

// requestLatestRelease performs a single release lookup. retryable marks
// transient failures worth another attempt.
func requestLatestRelease(ctx context.Context) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, latestReleaseURL, nil)
	if err != nil {
		return "", false, fmt.Errorf(messages.UpdateCreateRequestErrFmt, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "condaprep")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", isTransientNetErr(err), fmt.Errorf(messages.UpdateFetchLatestReleaseErrFmt, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		if isRateLimitResponse(resp) {
			return "", false, &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status}
		}
		retryable := resp.StatusCode >= 500 && resp.StatusCode <= 599
		return "", retryable, fmt.Errorf(messages.UpdateFetchLatestReleaseStatusFmt, resp.Status)
	}

	var payload latestReleaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false, fmt.Errorf(messages.UpdateDecodeLatestReleaseErrFmt, err)
	}
	if strings.TrimSpace(payload.TagName) == "" {
		return "", false, fmt.Errorf(messages.UpdateLatestReleaseMissingTag)
	}
	normalized, err := version.Normalize(payload.TagName)
	if err != nil {
		return "", false, fmt.Errorf(messages.UpdateInvalidLatestReleaseTagFmt, payload.TagName, err)
	}
	return normalized, false, nil
}

// isTransientNetErr reports whether a transport error is worth retrying.
// Context cancellation never is.
func isTransientNetErr(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// isRateLimitResponse detects GitHub's two rate-limit shapes: 429, or 403
// Forbidden with the X-RateLimit-Remaining quota exhausted.
func isRateLimitResponse(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if resp.StatusCode != http.StatusForbidden {
		return false
	}
	return strings.TrimSpace(resp.Header.Get("X-RateLimit-Remaining")) == "0"
}
