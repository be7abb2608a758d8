package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gouji-dev/gouji/pkg/utils"
)

func TestSanitize(t *testing.T) {
	s := NewNameSanitizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name passes through", "alice", "alice"},
		{"empty name stays empty", "", ""},
		{"markup is stripped", "<b>bob</b>", "bob"},
		{"script content is dropped", "<script>alert(1)</script>carol", "carol"},
		{"surrounding whitespace trimmed", "  dave  ", "dave"},
		{"control characters removed", "ev\te\nlyn", "evelyn"},
		{"unicode names survive", "玩家一", "玩家一"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, err := s.Sanitize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, clean)
		})
	}
}

func TestSanitize_Rejections(t *testing.T) {
	s := NewNameSanitizer()

	tests := []struct {
		name  string
		input string
	}{
		{"invalid utf-8", "bad\xff\xfe"},
		{"markup only", "<script>alert(1)</script>"},
		{"whitespace only", "   "},
		{"too long", strings.Repeat("x", 65)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Sanitize(tt.input)
			require.Error(t, err)
			assert.True(t, utils.IsValidation(err))
		})
	}
}

func TestSanitize_MaxLengthBoundary(t *testing.T) {
	s := NewNameSanitizer()

	clean, err := s.Sanitize(strings.Repeat("x", 64))
	require.NoError(t, err)
	assert.Len(t, clean, 64)
}
