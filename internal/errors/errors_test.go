package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vango-dev/hashroute/internal/config"
	"github.com/vango-dev/hashroute/pkg/fragment"
	"github.com/vango-dev/hashroute/pkg/manifest"
	"github.com/vango-dev/hashroute/pkg/router"
)

func init() {
	DisableColors()
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"routing error", "E001", "No route matched and no default route is registered", CategoryRouting},
		{"manifest error", "E011", "Unknown controller", CategoryManifest},
		{"config error", "E020", "Invalid configuration", CategoryConfig},
		{"unknown error code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("E012").Wrap(fmt.Errorf("route %q", "home"))
	if got := err.Error(); got != `E012: Duplicate route name: route "home"` {
		t.Errorf("Error() = %q", got)
	}
	if got := Newf(CategoryRuntime, "boom %d", 1).Error(); got != "boom 1" {
		t.Errorf("Error() = %q", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{fmt.Errorf("resolve %q: %w", "#/x", router.ErrNoDefaultRoute), "E001"},
		{fmt.Errorf("resolve: %w", fragment.ErrTooManySegments), "E002"},
		{fragment.ErrInvalidPercentEscape, "E003"},
		{fmt.Errorf("manifest: %w", manifest.ErrDecode), "E010"},
		{fmt.Errorf("route home: %w", manifest.ErrUnknownController), "E011"},
		{manifest.ErrDuplicateName, "E012"},
		{manifest.ErrTemplate, "E013"},
		{manifest.ErrSource, "E014"},
		{manifest.ErrMissingPath, "E015"},
		{fmt.Errorf("%w: \"/x\"", manifest.ErrDuplicatePath), "E016"},
		{fmt.Errorf("server.addr: %w", config.ErrInvalid), "E020"},
	}

	for _, tt := range tests {
		got := Classify(tt.err)
		if got.Code != tt.code {
			t.Errorf("Classify(%v).Code = %q, want %q", tt.err, got.Code, tt.code)
		}
		if !stderrors.Is(got, tt.err) {
			t.Errorf("Classify(%v) lost the original error", tt.err)
		}
	}
}

func TestClassifyPassesThrough(t *testing.T) {
	orig := New("E013").WithSuggestion("custom")
	wrapped := fmt.Errorf("loading: %w", orig)

	if got := Classify(wrapped); got != orig {
		t.Errorf("Classify returned %v, want the original *Error", got)
	}
	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
}

func TestClassifyUnknown(t *testing.T) {
	got := Classify(stderrors.New("disk on fire"))
	if got.Code != "" || got.Message != "disk on fire" || got.Category != CategoryRuntime {
		t.Errorf("Classify = %+v", got)
	}
	if Code(stderrors.New("x")) != "unknown" {
		t.Error("Code of unknown error should be unknown")
	}
	if Code(router.ErrNoDefaultRoute) != "E001" {
		t.Error("Code(ErrNoDefaultRoute) != E001")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E010") != nil {
		t.Error("FromError(nil) should be nil")
	}
	base := stderrors.New("bad toml")
	got := FromError(base, "E010")
	if got.Code != "E010" || got.Wrapped != base {
		t.Errorf("FromError = %+v", got)
	}
	if FromError(got, "E020") != got {
		t.Error("FromError should return an existing *Error")
	}
}

func TestFormat(t *testing.T) {
	err := New("E001").Wrap(stderrors.New(`resolve "#/x"`)).WithExample(`r.Register("home", router.RouteDef{Path: "/"})`)
	out := err.Format()

	for _, want := range []string{
		"ERROR E001: No route matched",
		"Cause: resolve \"#/x\"",
		"Hint: Register a route",
		"Example:",
		`    r.Register("home"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	if got := New("E015").FormatCompact(); got != "E015: Route has no path" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	var payload map[string]string
	if err := json.Unmarshal([]byte(New("E011").Wrap(stderrors.New("nope")).FormatJSON()), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload["code"] != "E011" || payload["category"] != "manifest" || payload["cause"] != "nope" {
		t.Errorf("payload = %v", payload)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six seven eight nine ten", 15)
	for _, l := range lines {
		if len(l) > 15 {
			t.Errorf("line %q longer than 15", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six seven eight nine ten" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 || codes[0] != "E001" {
		t.Errorf("GetAllCodes() = %v", codes)
	}
	if _, ok := GetTemplate("E020"); !ok {
		t.Error("E020 not registered")
	}
}
