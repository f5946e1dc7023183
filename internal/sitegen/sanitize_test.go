package sitegen

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeSegment(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback string
		want     string
	}{
		{"empty", "", "x", "x"},
		{"only unsafe", "~~~", "x", "x"},
		{"only underscores", "___", "x", "x"},
		{"spaces and punctuation", "My User!!", "x", "My_User"},
		{"full name", "Ada Lovelace", "x", "Ada_Lovelace"},
		{"traversal", "../../etc/passwd", "x", "etc_passwd"},
		{"keeps dash", "--a-b--", "x", "--a-b--"},
		{"collapses runs", "a  __ b", "x", "a_b"},
		{"multibyte", "Zoë 🎨 Studio", "x", "Zo_Studio"},
		{"cjk only", "作品集", "user-7", "user-7"},
		{"truncates", strings.Repeat("a", 40), "x", strings.Repeat("a", 32)},
		{"trims after truncation", strings.Repeat("a", 31) + " b", "x", strings.Repeat("a", 31)},
		{"fallback not sanitized", "", "user 1!", "user 1!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeSegment(tt.value, tt.fallback))
		})
	}
}

func TestSafeSegment_Properties(t *testing.T) {
	safe := regexp.MustCompile(`^[A-Za-z0-9_-]*$`)
	inputs := []string{
		"", " ", "_a_", "a/b\\c", "\x00\xff", "名前 name", "....", "a\tb\nc",
		strings.Repeat("x_", 40), strings.Repeat("é", 50), "ok-Name_9",
	}

	for _, in := range inputs {
		out := SafeSegment(in, "")
		if out == "" {
			continue
		}
		assert.Regexp(t, safe, out, "input %q", in)
		assert.LessOrEqual(t, len(out), MaxSegmentLen, "input %q", in)
		assert.False(t, strings.HasPrefix(out, "_"), "input %q", in)
		assert.False(t, strings.HasSuffix(out, "_"), "input %q", in)
		// Deterministic and idempotent
		assert.Equal(t, out, SafeSegment(in, ""))
		assert.Equal(t, out, SafeSegment(out, ""))
	}
}
