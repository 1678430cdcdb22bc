package signature

import (
	"testing"

	"github.com/z0mbix/whence/internal/platform"
)

func TestNpmSignature_Match(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantPackage string
	}{
		{
			name:        "global lib tree",
			path:        "/usr/local/lib/node_modules/typescript/bin/tsc",
			wantPackage: "typescript",
		},
		{
			name:        "scoped package",
			path:        "/home/user/.npm-global/lib/node_modules/@angular/cli/bin/ng",
			wantPackage: "@angular/cli",
		},
		{
			name:        "npm-global bin without node_modules",
			path:        "/Users/user/.npm-global/bin/eslint",
			wantPackage: "",
		},
	}

	sig := npmSignature{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := sig.Match(tt.path, Context{Command: "x", Platform: platform.Darwin})
			if cand == nil {
				t.Fatal("expected a match")
			}
			if cand.ManagerID != "npm" {
				t.Errorf("expected manager npm, got %q", cand.ManagerID)
			}
			if cand.Package != tt.wantPackage {
				t.Errorf("expected package %q, got %q", tt.wantPackage, cand.Package)
			}
		})
	}
}

func TestNpmSignature_NoMatch(t *testing.T) {
	sig := npmSignature{}
	if cand := sig.Match("/usr/bin/git", Context{Command: "git", Platform: platform.Linux}); cand != nil {
		t.Errorf("expected no match, got %+v", cand)
	}
}

func TestNodePackage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/local/lib/node_modules/typescript/bin/tsc", "typescript"},
		{"/home/u/.npm-global/lib/node_modules/@angular/cli/bin/ng", "@angular/cli"},
		{`C:\Users\u\AppData\Roaming\npm\node_modules\typescript\bin\tsc`, "typescript"},
		{"/usr/local/bin/node", ""},
		{"/foo/node_modules/", ""},
	}
	for _, tt := range tests {
		if got := nodePackage(tt.path); got != tt.want {
			t.Errorf("nodePackage(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestPnpmSignature_WinsNodeModulesOverlap(t *testing.T) {
	// pnpm's global dir contains node_modules, so both pnpm and npm match;
	// registration order must hand the tie to pnpm.
	path := "/home/user/.local/share/pnpm/global/5/node_modules/vite/bin/vite.js"
	r := NewRegistry()
	cand := r.Best(path, Context{Command: "vite", Platform: platform.Linux}, nil)
	if cand == nil {
		t.Fatal("expected a match")
	}
	if cand.ManagerID != "pnpm" {
		t.Errorf("expected pnpm to win, got %q", cand.ManagerID)
	}
	if cand.Package != "vite" {
		t.Errorf("expected package vite, got %q", cand.Package)
	}
}

func TestYarnSignature_Match(t *testing.T) {
	sig := yarnSignature{}
	cand := sig.Match("/home/user/.config/yarn/global/node_modules/.bin/serve", Context{Command: "serve", Platform: platform.Linux})
	if cand == nil {
		t.Fatal("expected a match")
	}
	if cand.ManagerID != "yarn" {
		t.Errorf("expected manager yarn, got %q", cand.ManagerID)
	}
}

func TestBunSignature_Match(t *testing.T) {
	sig := bunSignature{}
	cand := sig.Match("/home/user/.bun/bin/prettier", Context{Command: "prettier", Platform: platform.Linux})
	if cand == nil {
		t.Fatal("expected a match")
	}
	if cand.Package != "prettier" {
		t.Errorf("expected command fallback package, got %q", cand.Package)
	}
}

func TestParseNpmLs(t *testing.T) {
	out := []byte(`{"dependencies":{"typescript":{"version":"5.6.2"}}}`)
	v, err := parseNpmLs(out, "typescript")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Version != "5.6.2" {
		t.Errorf("expected version 5.6.2, got %q", v.Version)
	}

	if _, err := parseNpmLs(out, "eslint"); err == nil {
		t.Error("expected error for package missing from tree")
	}
	if _, err := parseNpmLs([]byte("not json"), "typescript"); err == nil {
		t.Error("expected error for unparsable output")
	}
}
