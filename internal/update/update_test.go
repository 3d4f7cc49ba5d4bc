package update

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func stubReleases(t *testing.T, status int, tag string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"tag_name":%q}`, tag)
	}))
	t.Cleanup(srv.Close)

	old := releasesURL
	releasesURL = srv.URL
	t.Cleanup(func() { releasesURL = old })
}

func TestCheckNewerVersion(t *testing.T) {
	stubReleases(t, http.StatusOK, "v1.2.0")
	if got := Check(context.Background(), "v1.1.0"); got != "1.2.0" {
		t.Errorf("Check = %q, want %q", got, "1.2.0")
	}
}

func TestCheckUpToDate(t *testing.T) {
	stubReleases(t, http.StatusOK, "v1.1.0")
	if got := Check(context.Background(), "1.1.0"); got != "" {
		t.Errorf("Check = %q, want empty for matching versions", got)
	}
}

func TestCheckServerError(t *testing.T) {
	stubReleases(t, http.StatusForbidden, "v9.9.9")
	if got := Check(context.Background(), "1.0.0"); got != "" {
		t.Errorf("Check = %q, want empty on non-200", got)
	}
}
