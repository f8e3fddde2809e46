package steamapi

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"gamecatalog/lib/restyutil"
	"gamecatalog/lib/testutil"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, key string, handler http.HandlerFunc) (*Client, *testutil.Recorder, *int32) {
	t.Helper()
	var calls int32
	srv := testutil.NewServer(t, testutil.Route{
		currentPlayersPath: func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			handler(w, r)
		},
	})
	rec := &testutil.Recorder{}
	client := NewClient(Options{
		BaseURL: srv.URL,
		APIKey:  key,
		Limiter: restyutil.NewLimiter(0),
		Tel:     rec,
	})
	return client, rec, &calls
}

func TestPlayerCount(t *testing.T) {
	var query string
	client, rec, _ := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		testutil.JSON(http.StatusOK, `{"response": {"player_count": 812345, "result": 1}}`)(w, r)
	})

	count := client.PlayerCount(context.Background(), 730)
	require.NotNil(t, count)
	require.Equal(t, int64(812345), *count)
	require.Equal(t, "appid=730&key=secret", query)
	require.Empty(t, rec.Reports("warning"))
}

func TestPlayerCountWithoutKeyMakesNoRequest(t *testing.T) {
	client, rec, calls := newTestClient(t, "", testutil.JSON(http.StatusOK, `{"response": {"player_count": 1}}`))

	require.False(t, client.Enabled())
	require.Nil(t, client.PlayerCount(context.Background(), 730))
	require.Equal(t, int32(0), atomic.LoadInt32(calls))
	require.Empty(t, rec.Reports("warning"))
}

func TestPlayerCountFailuresAreUnknown(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"rejected key": testutil.JSON(http.StatusForbidden, `<html>Forbidden</html>`),
		"not found":    testutil.JSON(http.StatusOK, `{"response": {"result": 42}}`),
		"empty":        testutil.JSON(http.StatusOK, `{}`),
		"malformed":    testutil.JSON(http.StatusOK, `{"response":`),
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			client, rec, _ := newTestClient(t, "key", handler)

			require.Nil(t, client.PlayerCount(context.Background(), 10))
			require.Len(t, rec.Reports("warning"), 1)
		})
	}
}

func TestPlayerCountZeroIsKnown(t *testing.T) {
	client, _, _ := newTestClient(t, "key", testutil.JSON(http.StatusOK, `{"response": {"player_count": 0, "result": 1}}`))

	count := client.PlayerCount(context.Background(), 10)
	require.NotNil(t, count)
	require.Equal(t, int64(0), *count)
}

func TestPlayerCountRejectsNonSuccessStatus(t *testing.T) {
	client, rec, _ := newTestClient(t, "key", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	})

	require.Nil(t, client.PlayerCount(context.Background(), 10))

	warnings := rec.Reports("warning")
	require.Len(t, warnings, 1)
	require.Equal(t, "steamapi:players.fetch", warnings[0].ID)
	err, ok := warnings[0].Params[1].(error)
	require.True(t, ok)
	require.True(t, errors.Is(err, restyutil.ErrUnexpectedStatus))
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Options{APIKey: "key"})
	require.True(t, client.Enabled())
	require.Equal(t, DefaultBaseURL, client.http.BaseURL)
}
