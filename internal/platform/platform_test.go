package platform

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Platform
		ok   bool
	}{
		{"darwin", Darwin, true},
		{"macos", Darwin, true},
		{"OSX", Darwin, true},
		{"mac", Darwin, true},
		{"linux", Linux, true},
		{" Linux ", Linux, true},
		{"windows", Windows, true},
		{"win", Windows, true},
		{"plan9", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Parse(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		p    Platform
		want string
	}{
		{Darwin, "macOS"},
		{Linux, "Linux"},
		{Windows, "Windows"},
	}
	for _, tt := range tests {
		if got := tt.p.DisplayName(); got != tt.want {
			t.Errorf("%s.DisplayName() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestExecSuffixes(t *testing.T) {
	if got := Linux.ExecSuffixes(); len(got) != 1 || got[0] != "" {
		t.Errorf("Linux.ExecSuffixes() = %v, want the bare name only", got)
	}
	if got := Darwin.ExecSuffixes(); len(got) != 1 || got[0] != "" {
		t.Errorf("Darwin.ExecSuffixes() = %v, want the bare name only", got)
	}

	t.Setenv("PATHEXT", ".COM;.EXE;PS1;;")
	got := Windows.ExecSuffixes()
	want := []string{".com", ".exe", ".ps1"}
	if len(got) != len(want) {
		t.Fatalf("Windows.ExecSuffixes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suffix %d = %q, want %q", i, got[i], want[i])
		}
	}

	t.Setenv("PATHEXT", "")
	if got := Windows.ExecSuffixes(); len(got) != 4 || got[1] != ".exe" {
		t.Errorf("Windows.ExecSuffixes() without PATHEXT = %v, want the defaults", got)
	}
}
