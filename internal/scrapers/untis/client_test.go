package untis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"substplan/internal/components/chrono"
	"substplan/internal/components/telemetry"
	"substplan/pkg/fsoutput"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// saturday, so the plan of week 5 is requested
var fixedNow = chrono.FixedImpl{At: time.Date(2025, 1, 25, 10, 0, 0, 0, time.UTC)}

func newTestClient(t testing.TB, baseUrl string, timeout time.Duration) (*Client, string) {
	dir := t.TempDir()
	out, err := fsoutput.NewFilesystemOutput(dir)
	require.NoError(t, err)

	client := NewClient(ClientOptions{
		BaseUrl:   baseUrl,
		ClassFile: "w00022.htm",
		Username:  "schueler",
		Password:  "secret",
		Timeout:   timeout,
		RawOutput: out,
	}, fixedNow, telemetry.SlogAPI{})
	return client, dir
}

func TestFetch(t *testing.T) {
	page := readFixture(t, "plan.html")

	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		user, pass, ok := r.BasicAuth()
		if !ok || user != "schueler" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer server.Close()

	client, dir := newTestClient(t, server.URL+"/vertretungsplans", time.Second*5)

	body, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, page, body)
	require.Equal(t, "/vertretungsplans/05/w/w00022.htm", requestedPath)

	written, err := os.ReadFile(filepath.Join(dir, RawHtmlFilename))
	require.NoError(t, err)
	require.Equal(t, page, string(written))
}

func TestFetchDecodesLatin1(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "Prüfung" encoded as latin-1
		w.Write([]byte{'P', 'r', 0xfc, 'f', 'u', 'n', 'g'})
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, time.Second*5)
	body, err := client.FetchWeek(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "Prüfung", body)
}

func TestFetchUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	client, dir := newTestClient(t, server.URL, time.Second*5)

	body, err := client.Fetch(context.Background())
	require.Empty(t, body)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, http.StatusServiceUnavailable, fetchErr.StatusCode)
	require.Equal(t, server.URL+"/05/w/w00022.htm", fetchErr.URL)

	_, err = os.Stat(filepath.Join(dir, RawHtmlFilename))
	require.True(t, os.IsNotExist(err), "no raw html must be written for a failed fetch")
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, _ := newTestClient(t, server.URL, time.Millisecond*100)

	_, err := client.Fetch(context.Background())
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Error(t, fetchErr.Err)
	require.Zero(t, fetchErr.StatusCode)
}

func TestFetchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseUrl := server.URL
	server.Close()

	client, _ := newTestClient(t, baseUrl, time.Second)
	_, err := client.Fetch(context.Background())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Error(t, fetchErr.Err)
}
