package services

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	MaxPostLength    = 280
	MaxCommentLength = 500
)

// Sanitizer strips markup from user supplied text
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text removes all HTML and surrounding whitespace. The result is plain text,
// so entities escaped by the policy are decoded again.
func (s *Sanitizer) Text(in string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(in)))
}

// Content sanitizes body and checks it is non-empty and at most maxLen runes
func (s *Sanitizer) Content(body string, maxLen int) (string, error) {
	clean := s.Text(body)
	if clean == "" {
		return "", fmt.Errorf("%w: content must not be empty", ErrValidation)
	}
	if utf8.RuneCountInString(clean) > maxLen {
		return "", fmt.Errorf("%w: content exceeds %d characters", ErrValidation, maxLen)
	}
	return clean, nil
}
