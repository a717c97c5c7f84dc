package observe

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := newTestRouter(Log(logger))

	r.Dispatch(context.Background(), "#/users", "target")
	r.Dispatch(context.Background(), "#/a/b/c/d", "target")

	out := buf.String()
	for _, want := range []string{
		"component=dispatch",
		"route=users",
		"outcome=matched",
		"level=WARN",
		"outcome=failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogObserverRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	r := newTestRouter(Log(logger))

	r.Dispatch(context.Background(), "#/users", "target")
	if buf.Len() != 0 {
		t.Errorf("debug dispatch logged at info level: %s", buf.String())
	}
}
