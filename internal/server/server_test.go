package server

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dotkit/pkg/engine"
	"github.com/matzehuels/dotkit/pkg/errors"
	"github.com/matzehuels/dotkit/pkg/observability"
)

const testSVG = "<?xml version=\"1.0\"?>\n<svg width=\"100pt\" height=\"50pt\"\n viewBox=\"0.00 0.00 100.00 50.00\" xmlns=\"http://www.w3.org/2000/svg\">\n<g id=\"graph0\" transform=\"scale(1 1) rotate(0) translate(4 46)\">\n</g>\n</svg>\n"

type fakeBackend struct {
	mu   sync.Mutex
	out  string
	err  error
	opts []engine.Options
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Execute(_ context.Context, _ string, opts engine.Options) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opts = append(f.opts, opts)
	return f.out, f.err
}

func (f *fakeBackend) Close() error { return nil }

func (f *fakeBackend) options() []engine.Options {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]engine.Options(nil), f.opts...)
}

func newTestServer(t *testing.T, b engine.Backend) (*httptest.Server, string) {
	t.Helper()
	base := t.TempDir()
	logger := log.New(io.Discard)
	r := engine.NewRenderer(b, nil, nil, logger)
	r.Rasterize = func(_ context.Context, svg []byte, _ engine.Format) ([]byte, error) {
		return []byte("\x89PNG"), nil
	}
	srv := New(r, engine.DefaultOptions().WithBaseDir(base), logger, time.Second)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, base
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url+"/v1/render", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t, &fakeBackend{})
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(HeaderRequestID) == "" {
		t.Error("missing request ID header")
	}
	if got := resp.Header.Get("Server"); got != "dotkit/dev" {
		t.Errorf("Server header = %q, want dotkit/dev", got)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	ts, _ := newTestServer(t, &fakeBackend{})
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(HeaderRequestID); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestFormats(t *testing.T) {
	ts, _ := newTestServer(t, &fakeBackend{})
	resp, err := http.Get(ts.URL + "/v1/formats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body FormatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Formats) != len(engine.Formats()) || len(body.Engines) != len(engine.Layouts()) {
		t.Errorf("got %d formats, %d engines", len(body.Formats), len(body.Engines))
	}
	if body.Formats[0].Name != "svg" || body.Formats[0].MIMEType != "image/svg+xml" {
		t.Errorf("first format = %+v", body.Formats[0])
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantType    string
		wantBody    string
		wantBackend engine.Format
	}{
		{
			name:        "default options",
			body:        `{"source":"digraph { a -> b }"}`,
			wantType:    "image/svg+xml",
			wantBody:    `<svg width="100px" height="50px"`,
			wantBackend: engine.FormatSVG,
		},
		{
			name:        "object literal string",
			body:        `{"source":"digraph { a }","options":"{format:'svg',width:'200'}"}`,
			wantType:    "image/svg+xml",
			wantBody:    `<svg width="200px" height="100px"`,
			wantBackend: engine.FormatSVG,
		},
		{
			name:        "json object",
			body:        `{"source":"digraph { a }","options":{"format":"png"}}`,
			wantType:    "image/png",
			wantBody:    "\x89PNG",
			wantBackend: engine.FormatPNG,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{out: testSVG}
			ts, base := newTestServer(t, backend)
			resp := post(t, ts.URL, tt.body)

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body %+v", resp.StatusCode, decodeError(t, resp))
			}
			if got := resp.Header.Get("Content-Type"); got != tt.wantType {
				t.Errorf("Content-Type = %q, want %q", got, tt.wantType)
			}
			if got := resp.Header.Get(HeaderCache); got != "miss" {
				t.Errorf("%s = %q, want miss", HeaderCache, got)
			}
			data, _ := io.ReadAll(resp.Body)
			if !strings.HasPrefix(string(data), tt.wantBody) {
				t.Errorf("body = %.60q, want prefix %q", data, tt.wantBody)
			}
			got := backend.options()
			if len(got) != 1 || got[0].Format != tt.wantBackend {
				t.Fatalf("backend options = %+v", got)
			}
			if got[0].BaseDir != base {
				t.Errorf("BaseDir = %q, want server base %q", got[0].BaseDir, base)
			}
		})
	}
}

func TestRender_Warning(t *testing.T) {
	ts, _ := newTestServer(t, &fakeBackend{out: "<svg/>"})
	resp := post(t, ts.URL, `{"source":"graph {}"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(HeaderWarning) == "" {
		t.Error("missing warning header")
	}
}

func TestRender_Images(t *testing.T) {
	backend := &fakeBackend{out: testSVG}
	ts, base := newTestServer(t, backend)

	f, err := os.Create(filepath.Join(base, "logo.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	resp := post(t, ts.URL, `{"source":"graph {}","options":"{basedir:'/etc',images:[{path:'logo.png'},{path:'x.png',width:'5px',height:'6px'}]}"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %+v", resp.StatusCode, decodeError(t, resp))
	}
	got := backend.options()[0].Images
	want := []engine.ImageHint{
		{Path: filepath.Join(base, "logo.png"), Width: 4, Height: 3},
		{Path: filepath.Join(base, "x.png"), Width: 5, Height: 6},
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Images = %+v, want %+v", got, want)
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name       string
		backendErr error
		body       string
		wantStatus int
		wantCode   errors.Code
	}{
		{"malformed body", nil, `{"source":`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"empty source", nil, `{"source":""}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad format", nil, `{"source":"graph {}","options":"{format:'gif'}"}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"absolute image", nil, `{"source":"graph {}","options":"{images:[{path:'/etc/passwd'}]}"}`, http.StatusBadRequest, errors.ErrCodeInvalidPath},
		{"traversal", nil, `{"source":"graph {}","options":"{images:[{path:'../a.png'}]}"}`, http.StatusBadRequest, errors.ErrCodeInvalidPath},
		{"missing image", nil, `{"source":"graph {}","options":"{images:[{path:'none.png'}]}"}`, http.StatusNotFound, errors.ErrCodeNotFound},
		{"backend down", errors.New(errors.ErrCodeEngineUnavailable, "no dot"), `{"source":"graph {}"}`, http.StatusServiceUnavailable, errors.ErrCodeEngineUnavailable},
		{"plain error", io.ErrUnexpectedEOF, `{"source":"graph {}"}`, http.StatusInternalServerError, errors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := newTestServer(t, &fakeBackend{out: testSVG, err: tt.backendErr})
			resp := post(t, ts.URL, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			e := decodeError(t, resp)
			if e.Code != string(tt.wantCode) {
				t.Errorf("code = %q, want %q", e.Code, tt.wantCode)
			}
			if e.RequestID == "" {
				t.Error("error body lacks request_id")
			}
		})
	}
}

type httpRecorder struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *httpRecorder) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	rec := &httpRecorder{}
	observability.SetHTTPHooks(rec)
	defer observability.Reset()

	ts, _ := newTestServer(t, &fakeBackend{})
	for _, path := range []string{"/healthz", "/missing"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.statuses) != 2 || rec.statuses[0] != 200 || rec.statuses[1] != 404 {
		t.Errorf("statuses = %v, want [200 404]", rec.statuses)
	}
}
