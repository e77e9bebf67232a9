package pathutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{
			name:  "EmptyInput",
			input: "",
			ok:    false,
		},
		{
			name:     "PlainRelativePath",
			input:    "products/granite/bench.jpg",
			expected: "products/granite/bench.jpg",
			ok:       true,
		},
		{
			name:     "UnixTraversal",
			input:    "../../etc/passwd",
			expected: "etc/passwd",
			ok:       true,
		},
		{
			name:     "WindowsTraversal",
			input:    "..\\..\\windows\\system32",
			expected: "windows\\system32",
			ok:       true,
		},
		{
			name:     "EmbeddedTraversal",
			input:    "products/../../secret.txt",
			expected: "products/secret.txt",
			ok:       true,
		},
		{
			name:     "OverlappingSequences",
			input:    "....//....//etc/passwd",
			expected: "etc/passwd",
			ok:       true,
		},
		{
			name:     "LeadingSlashes",
			input:    "///images/colors/blue.jpg",
			expected: "images/colors/blue.jpg",
			ok:       true,
		},
		{
			name:  "DriveLetter",
			input: "C:\\secrets",
			ok:    false,
		},
		{
			name:  "DriveLetterAfterStrip",
			input: "/c:/windows",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := SanitizePath(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestSanitizePath_NeverReconstructsTraversal(t *testing.T) {
	inputs := []string{
		"....//etc/passwd",
		"..././..././etc",
		"....\\\\windows",
		"products/....//....//top-secret",
	}

	for _, input := range inputs {
		result, ok := SanitizePath(input)
		if !ok {
			continue
		}
		assert.NotContains(t, result, "../", "input %q", input)
		assert.NotContains(t, result, "..\\", "input %q", input)
	}
}

func TestSecureJoin(t *testing.T) {
	root := t.TempDir()

	t.Run("ChildStaysInsideRoot", func(t *testing.T) {
		joined, err := SecureJoin(root, "products/granite/bench.jpg")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(joined, root))
	})

	t.Run("TraversalRejected", func(t *testing.T) {
		_, err := SecureJoin(root, "../outside.txt")
		assert.Error(t, err)
	})

	t.Run("DeepTraversalRejected", func(t *testing.T) {
		_, err := SecureJoin(root, "products/../../../etc/passwd")
		assert.Error(t, err)
	})

	t.Run("RootItselfAllowed", func(t *testing.T) {
		joined, err := SecureJoin(root, ".")
		require.NoError(t, err)
		assert.Equal(t, filepath.Clean(root), joined)
	})
}

func TestSanitizeThenJoin_BlocksTraversal(t *testing.T) {
	root := t.TempDir()

	for _, input := range []string{"../../etc/passwd", "..\\..\\windows\\system32"} {
		sanitized, ok := SanitizePath(input)
		require.True(t, ok)

		joined, err := SecureJoin(root, NormalizeSlashes(sanitized))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(joined, filepath.Clean(root)))
	}
}

func TestNormalizeSlashes(t *testing.T) {
	assert.Equal(t, "products/granite/a.jpg", NormalizeSlashes("products\\granite\\a.jpg"))
}
