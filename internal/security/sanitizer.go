package security

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/gouji-dev/gouji/pkg/utils"
)

const maxNameLength = 64

// NameSanitizer cleans caller-supplied player names before they are
// stored or echoed back.
type NameSanitizer struct {
	policy *bluemonday.Policy
}

func NewNameSanitizer() *NameSanitizer {
	return &NameSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize strips markup and control characters and enforces length.
// An empty input is allowed and returned unchanged so callers can fall
// back to default seat names.
func (s *NameSanitizer) Sanitize(name string) (string, error) {
	if name == "" {
		return "", nil
	}

	if !utf8.ValidString(name) {
		return "", utils.NewAppError(utils.CodeValidation, "player name is not valid UTF-8", utils.ErrValidation)
	}

	clean := s.policy.Sanitize(name)
	clean = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, clean)
	clean = strings.TrimSpace(clean)

	if clean == "" {
		return "", utils.NewAppError(utils.CodeValidation, "player name is empty after sanitization", utils.ErrValidation).
			WithDetail("name", name)
	}
	if utf8.RuneCountInString(clean) > maxNameLength {
		return "", utils.NewAppError(utils.CodeValidation, "player name too long", utils.ErrValidation).
			WithDetail("max_length", maxNameLength)
	}
	return clean, nil
}
