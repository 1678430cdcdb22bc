package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/z0mbix/whence/internal/detector"
)

func sampleResult() *detector.Result {
	return &detector.Result{
		Command:     "git",
		ManagerID:   "homebrew",
		ManagerName: "Homebrew",
		Package:     "git",
		Version:     "2.51.2",
		CommandPath: "/opt/homebrew/bin/git",
		Location:    "/opt/homebrew/Cellar/git/2.51.2/bin/git",
		Status:      detector.StatusPattern,
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"text", FormatText, true},
		{"JSON", FormatJSON, true},
		{"yaml", FormatYAML, true},
		{"yml", FormatYAML, true},
		{"short", FormatShort, true},
		{"template", FormatTemplate, true},
		{"xml", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.ok && err != nil {
			t.Errorf("ParseFormat(%q) returned error: %v", tt.in, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseFormat(%q) expected an error", tt.in)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRender_Text(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	if err := New(FormatText, "").Render(&buf, []*detector.Result{sampleResult()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"git was installed by: Homebrew (pattern match)",
		"Package: git",
		"Version: 2.51.2",
		"Location: /opt/homebrew/Cellar/git/2.51.2/bin/git",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_TextVerbose(t *testing.T) {
	color.NoColor = true
	res := sampleResult()
	res.SymlinkChain = []string{
		"/opt/homebrew/bin/git",
		"/opt/homebrew/Cellar/git/2.51.2/bin/git",
	}
	res.VerifyError = "exit status 1"

	var buf bytes.Buffer
	if err := New(FormatText, "").Render(&buf, []*detector.Result{res}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Symlink chain:") {
		t.Errorf("expected the symlink chain:\n%s", out)
	}
	if !strings.Contains(out, "Verification: exit status 1") {
		t.Errorf("expected the verification failure:\n%s", out)
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := New(FormatJSON, "").Render(&buf, []*detector.Result{sampleResult()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A single result encodes as an object, not a one-element array.
	var single detector.Result
	if err := json.Unmarshal(buf.Bytes(), &single); err != nil {
		t.Fatalf("single result should decode as an object: %v", err)
	}
	if single.ManagerID != "homebrew" {
		t.Errorf("expected manager_id homebrew, got %q", single.ManagerID)
	}

	buf.Reset()
	results := []*detector.Result{sampleResult(), sampleResult()}
	if err := New(FormatJSON, "").Render(&buf, results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var many []detector.Result
	if err := json.Unmarshal(buf.Bytes(), &many); err != nil {
		t.Fatalf("multiple results should decode as an array: %v", err)
	}
	if len(many) != 2 {
		t.Errorf("expected 2 results, got %d", len(many))
	}
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := New(FormatYAML, "").Render(&buf, []*detector.Result{sampleResult()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded detector.Result
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Version != "2.51.2" {
		t.Errorf("expected version 2.51.2, got %q", decoded.Version)
	}
}

func TestRender_Short(t *testing.T) {
	var buf bytes.Buffer
	other := sampleResult()
	other.Command = "cargo"
	other.ManagerID = "rustup"
	results := []*detector.Result{sampleResult(), other}
	if err := New(FormatShort, "").Render(&buf, results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "homebrew\nrustup\n"; got != want {
		t.Errorf("short output = %q, want %q", got, want)
	}
}

func TestRender_Template(t *testing.T) {
	var buf bytes.Buffer
	r := New(FormatTemplate, `{{ .Command }}={{ .ManagerID | upper }}`)
	if err := r.Render(&buf, []*detector.Result{sampleResult()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "git=HOMEBREW\n"; got != want {
		t.Errorf("template output = %q, want %q", got, want)
	}
}

func TestRender_TemplateErrors(t *testing.T) {
	r := New(FormatTemplate, `{{ .Command`)
	if err := r.Render(&bytes.Buffer{}, []*detector.Result{sampleResult()}); err == nil {
		t.Fatal("expected a parse error")
	}

	r = New(FormatTemplate, `{{ .NoSuchField }}`)
	if err := r.Render(&bytes.Buffer{}, []*detector.Result{sampleResult()}); err == nil {
		t.Fatal("expected an execution error")
	}
}
