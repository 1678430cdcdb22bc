package signature

import "strings"

// containsAny reports whether path contains any of the given fragments.
// Matching is plain substring matching; callers list both slash variants
// when a layout exists on Windows as well.
func containsAny(path string, fragments ...string) bool {
	for _, f := range fragments {
		if strings.Contains(path, f) {
			return true
		}
	}
	return false
}

// hasSuffixAny reports whether path ends with any of the given fragments.
func hasSuffixAny(path string, fragments ...string) bool {
	for _, f := range fragments {
		if strings.HasSuffix(path, f) {
			return true
		}
	}
	return false
}

// splitSegments splits on both separator styles so Windows paths work
// without a platform branch at every call site.
func splitSegments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

// segmentAfter returns the first path segment following marker, or "" when
// marker is absent or immediately followed by a separator.
func segmentAfter(path, marker string) string {
	idx := strings.Index(path, marker)
	if idx < 0 {
		return ""
	}
	segs := splitSegments(path[idx+len(marker):])
	if len(segs) == 0 {
		return ""
	}
	return segs[0]
}

// nodePackage extracts an npm-style package name, including the @scope/name
// form, from a node_modules path.
func nodePackage(path string) string {
	for _, marker := range []string{"/node_modules/", `\node_modules\`} {
		idx := strings.Index(path, marker)
		if idx < 0 {
			continue
		}
		segs := splitSegments(path[idx+len(marker):])
		if len(segs) == 0 || segs[0] == ".bin" {
			continue
		}
		if strings.HasPrefix(segs[0], "@") {
			if len(segs) >= 2 {
				return segs[0] + "/" + segs[1]
			}
			continue
		}
		return segs[0]
	}
	return ""
}
