package httpapi

import (
	"bytes"
	"errors"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":      LevelOff,
		"off":   LevelOff,
		"error": LevelError,
		"INFO":  LevelInfo,
		"debug": LevelDebug,
		"weird": LevelInfo, // default
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_Overrides(t *testing.T) {
	// query param ?log=debug
	r := httptest.NewRequest("GET", "/x?log=debug", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query override failed: %v", got)
	}
	// shorthand ?log=1
	r = httptest.NewRequest("GET", "/x?log=1", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("shorthand query override failed: %v", got)
	}
	// header X-Log-Level
	r = httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("header override failed: %v", got)
	}
	prev := defaultLogLevel
	defer func() { defaultLogLevel = prev }()
	SetDefaultLogLevel("info")
	if got := requestLogLevel(httptest.NewRequest("GET", "/x", nil)); got != LevelInfo {
		t.Fatalf("default level: %v", got)
	}
}

func TestLogEstimate_Zerolog(t *testing.T) {
	var buf bytes.Buffer
	prev := zlog
	defer func() { zlog = prev }()
	SetLogger(zerolog.New(&buf))

	r := httptest.NewRequest("GET", "/v1/estimate?log=debug", nil)
	logEstimate(r, surfaceQuery, 200, time.Now(), []string{"w1"}, nil)
	out := buf.String()
	if !strings.Contains(out, `"surface":"query"`) || !strings.Contains(out, `"warnings":["w1"]`) {
		t.Fatalf("unexpected log line: %s", out)
	}

	buf.Reset()
	r = httptest.NewRequest("GET", "/v1/estimate?log=error", nil)
	logEstimate(r, surfaceQuery, 200, time.Now(), nil, nil)
	if buf.Len() != 0 {
		t.Fatalf("success should not log at error level: %s", buf.String())
	}
	logEstimate(r, surfaceQuery, 400, time.Now(), nil, errors.New("boom"))
	if !strings.Contains(buf.String(), `"level":"error"`) || !strings.Contains(buf.String(), "boom") {
		t.Fatalf("failure not logged: %s", buf.String())
	}
}

func TestLogEstimate_StdlibFallback(t *testing.T) {
	var buf bytes.Buffer
	prev := zlog
	zlog = nil
	orig := log.Writer()
	defer func() { zlog = prev; log.SetOutput(orig) }()
	log.SetOutput(&buf)

	r := httptest.NewRequest("GET", "/v1/sweep?log=info", nil)
	logEstimate(r, surfaceSweep, 200, time.Now(), []string{"a", "b"}, nil)
	if !strings.Contains(buf.String(), "estimate surface=sweep path=/v1/sweep status=200") || !strings.Contains(buf.String(), "warnings=2") {
		t.Fatalf("unexpected log output: %q", buf.String())
	}
}
