package update

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// releasesURL is a var so tests can point it at a stub server.
var releasesURL = "https://api.github.com/repos/alexgenc/hack-or-snooze/releases/latest"

type ghRelease struct {
	TagName string `json:"tag_name"`
}

// Check queries the GitHub Releases API for a newer version. It returns the
// latest version string, or "" when up to date or on any error (non-fatal).
func Check(ctx context.Context, currentVersion string) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releasesURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var release ghRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return ""
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(currentVersion, "v")

	if latest == "" || latest == current {
		return ""
	}
	return latest
}
