// Package platform identifies the operating system in use and the
// executable-lookup rules that go with it.
package platform

import (
	"os"
	"runtime"
	"strings"
)

// Platform is a stable lowercase identifier for an operating system family.
type Platform string

const (
	Darwin  Platform = "darwin"
	Linux   Platform = "linux"
	Windows Platform = "windows"
)

// Current returns the platform whence is running on. Unix-like systems
// without their own signature conventions are treated as Linux.
func Current() Platform {
	switch runtime.GOOS {
	case "darwin":
		return Darwin
	case "windows":
		return Windows
	default:
		return Linux
	}
}

func (p Platform) String() string {
	return string(p)
}

// DisplayName returns the human-readable platform name.
func (p Platform) DisplayName() string {
	switch p {
	case Darwin:
		return "macOS"
	case Windows:
		return "Windows"
	default:
		return "Linux"
	}
}

// Parse maps a user-supplied platform name to a Platform. Common aliases
// such as "macos" and "osx" are accepted.
func Parse(s string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "darwin", "macos", "osx", "mac":
		return Darwin, true
	case "linux":
		return Linux, true
	case "windows", "win":
		return Windows, true
	}
	return "", false
}

// ExecSuffixes returns the filename suffixes tried when resolving a command
// on this platform. The empty string means the bare name. On Windows the
// list comes from PATHEXT, falling back to the usual defaults.
func (p Platform) ExecSuffixes() []string {
	if p != Windows {
		return []string{""}
	}
	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		return []string{".com", ".exe", ".bat", ".cmd"}
	}
	var suffixes []string
	for _, ext := range strings.Split(pathext, ";") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		suffixes = append(suffixes, strings.ToLower(ext))
	}
	if len(suffixes) == 0 {
		return []string{".com", ".exe", ".bat", ".cmd"}
	}
	return suffixes
}
