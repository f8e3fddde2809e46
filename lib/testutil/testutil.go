package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
)

// Report is one call captured by Recorder.
type Report struct {
	Level  string
	ID     string
	Params []any
}

// Recorder captures everything reported through it, it satisfies telemetry.API.
type Recorder struct {
	mu      sync.Mutex
	reports []Report
}

func (r *Recorder) add(level, id string, params []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, Report{Level: level, ID: id, Params: params})
}

func (r *Recorder) ReportBroken(id string, params ...any)  { r.add("broken", id, params) }
func (r *Recorder) ReportWarning(id string, params ...any) { r.add("warning", id, params) }
func (r *Recorder) ReportDebug(message string, params ...any) {
	r.add("debug", message, params)
}
func (r *Recorder) ReportCount(id string, count int64) {
	r.add("count", id, []any{count})
}

// Reports returns a copy of every report with the given level.
func (r *Recorder) Reports(level string) []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Report
	for _, rep := range r.reports {
		if rep.Level == level {
			out = append(out, rep)
		}
	}
	return out
}

// Warned reports whether a warning with the given id mentioned param.
func (r *Recorder) Warned(id string, param any) bool {
	for _, rep := range r.Reports("warning") {
		if rep.ID == id && slices.ContainsFunc(rep.Params, func(p any) bool {
			return fmt.Sprint(p) == fmt.Sprint(param)
		}) {
			return true
		}
	}
	return false
}

// Route maps a request path to a canned handler.
type Route map[string]http.HandlerFunc

// NewServer starts an httptest server dispatching on the exact request path,
// unknown paths fail the test.
func NewServer(t testing.TB, routes Route) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := routes[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// JSON returns a handler that always responds with status and body.
func JSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}
}
