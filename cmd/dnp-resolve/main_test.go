package main

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/bayleafwalker/dnp-manager/internal/config"
	"github.com/bayleafwalker/dnp-manager/internal/resolver"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteResult_ReportsWriteFailure(t *testing.T) {
	err := writeResult(failingWriter{}, resolver.Result{Success: true, State: map[string]string{}}, true)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected the write error, got %v", err)
	}
}

func TestWriteResult_JSONEndsWithNewline(t *testing.T) {
	var buf bytes.Buffer
	res := resolver.Result{Success: true, Message: "ok", State: map[string]string{"a": "1.0.0"}, Outcome: resolver.OutcomeSuccess}
	if err := writeResult(&buf, res, true); err != nil {
		t.Fatalf("writeResult: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "}\n") || !strings.Contains(buf.String(), `"a":"1.0.0"`) {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestBindTimeout_HelpNamesLocalScope(t *testing.T) {
	cfg := config.Default()
	fs := flag.NewFlagSet("dnp-resolve", flag.ContinueOnError)
	bindTimeout(fs, &cfg)

	f := fs.Lookup("timeout")
	if f == nil || !strings.Contains(f.Usage, "local runs") || !strings.Contains(f.Usage, "-remote") {
		t.Fatalf("expected -timeout help to explain its scope, got %+v", f)
	}
	if err := fs.Parse([]string{"-timeout=3s"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("expected 3s, got %v", cfg.Timeout)
	}
}
