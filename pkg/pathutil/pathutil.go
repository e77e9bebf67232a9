// Package pathutil guards user-supplied relative paths before they reach the
// filesystem.
package pathutil

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var driveLetterRegex = regexp.MustCompile(`^[a-zA-Z]:`)

// SanitizePath cleans a user-supplied relative path so it cannot express a
// parent-directory traversal. Returns false when the input is empty or names
// a Windows drive, in which case the path must not be used at all.
//
// Traversal sequences are stripped repeatedly until none remain, so
// overlapping sequences such as "....//" cannot reassemble into "../" after
// a single pass. The result is still only a first line of defense; callers
// must join it to a trusted root with SecureJoin.
func SanitizePath(path string) (string, bool) {
	if path == "" {
		return "", false
	}

	sanitized := path
	for {
		next := sanitized
		next = strings.ReplaceAll(next, "../", "")
		next = strings.ReplaceAll(next, "..\\", "")
		next = strings.ReplaceAll(next, "/../", "/")
		next = strings.ReplaceAll(next, "\\..\\", "\\")
		if next == sanitized {
			break
		}
		sanitized = next
	}

	sanitized = strings.TrimLeft(sanitized, "/\\")

	if driveLetterRegex.MatchString(sanitized) {
		return "", false
	}

	return sanitized, true
}

// SecureJoin joins rel onto root and verifies the cleaned result is still a
// descendant of root. This is the authoritative traversal check; SanitizePath
// alone is not sufficient.
func SecureJoin(root, rel string) (string, error) {
	cleanRoot := filepath.Clean(root)
	joined := filepath.Clean(filepath.Join(cleanRoot, filepath.FromSlash(rel)))

	if joined != cleanRoot && !strings.HasPrefix(joined, cleanRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes root %q", rel, root)
	}

	return joined, nil
}

// NormalizeSlashes converts backslashes to forward slashes so web paths stay
// consistent regardless of the client's separator choice.
func NormalizeSlashes(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}
