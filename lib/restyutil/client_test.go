package restyutil

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"gamecatalog/lib/testutil"

	"github.com/stretchr/testify/require"
)

func TestNewClientPacesRequests(t *testing.T) {
	srv := testutil.NewServer(t, testutil.Route{
		"/ping": testutil.JSON(http.StatusOK, `{}`),
	})

	interval := 40 * time.Millisecond
	client := NewClient(Options{
		BaseURL: srv.URL,
		Limiter: NewLimiter(interval),
	})

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.R().SetContext(context.Background()).Get("/ping")
		require.NoError(t, err)
	}
	// the first request spends the initial token
	require.GreaterOrEqual(t, time.Since(start), 2*interval)
}

func TestSharedLimiterSpansClients(t *testing.T) {
	srv := testutil.NewServer(t, testutil.Route{
		"/a": testutil.JSON(http.StatusOK, `{}`),
		"/b": testutil.JSON(http.StatusOK, `{}`),
	})

	interval := 40 * time.Millisecond
	limiter := NewLimiter(interval)
	a := NewClient(Options{BaseURL: srv.URL, Limiter: limiter})
	b := NewClient(Options{BaseURL: srv.URL, Limiter: limiter})

	start := time.Now()
	wg := sync.WaitGroup{}
	errs := make(chan error, 3)
	for _, req := range []func() error{
		func() error { _, err := a.R().Get("/a"); return err },
		func() error { _, err := b.R().Get("/b"); return err },
		func() error { _, err := a.R().Get("/a"); return err },
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- req()
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	require.GreaterOrEqual(t, time.Since(start), 2*interval)
}

func TestLimiterWaitHonorsContext(t *testing.T) {
	srv := testutil.NewServer(t, testutil.Route{
		"/slow": testutil.JSON(http.StatusOK, `{}`),
	})
	client := NewClient(Options{BaseURL: srv.URL, Limiter: NewLimiter(time.Hour)})

	_, err := client.R().Get("/slow")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.R().SetContext(ctx).Get("/slow")
	require.Error(t, err)
}

func TestNewClientSetsHeaders(t *testing.T) {
	var got http.Header
	srv := testutil.NewServer(t, testutil.Route{
		"/headers": func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			w.WriteHeader(http.StatusNoContent)
		},
	})
	client := NewClient(Options{
		BaseURL: srv.URL,
		Headers: map[string]string{"Referer": "https://example.com/"},
	})

	_, err := client.R().Get("/headers")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/", got.Get("Referer"))
}

func TestFilesystemOutputDumpsExchanges(t *testing.T) {
	srv := testutil.NewServer(t, testutil.Route{
		"/api/appdetails": testutil.JSON(http.StatusOK, `{"ok":true}`),
	})
	dir := filepath.Join(t.TempDir(), "dumps")
	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)

	client := NewClient(Options{BaseURL: srv.URL, Output: out})
	_, err = client.R().SetQueryParam("appids", "10").Get("/api/appdetails")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, strings.HasPrefix(entries[0].Name(), "000001-"))

	contents, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	require.Contains(t, string(contents), `{"ok":true}`)
	require.Contains(t, string(contents), "appids=10")
}

func TestMessageSlug(t *testing.T) {
	require.Equal(t, "store.example.com_api_appdetails", messageSlug("https://store.example.com/api/appdetails?appids=1"))
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", maxDumpBody+10)
	require.Contains(t, truncate(long), "(10 bytes truncated)")
	require.Equal(t, "short", truncate("short"))
}
