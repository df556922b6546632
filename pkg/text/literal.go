package text

import (
	"context"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// LiteralReplacer implements TextReplacer using plain string replacement
type LiteralReplacer struct{}

var _ TextReplacer = (*LiteralReplacer)(nil)

// NewLiteralReplacer creates a new LiteralReplacer
func NewLiteralReplacer() *LiteralReplacer {
	return &LiteralReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *LiteralReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	currentContent := string(originalContent)
	for _, rule := range rules {
		if rule.Pattern == "" {
			continue
		}

		count := strings.Count(currentContent, rule.Pattern)
		if count == 0 {
			continue
		}

		currentContent = strings.ReplaceAll(currentContent, rule.Pattern, rule.Replacement)
		result.ReplacementCount += count
		result.WasModified = true
	}

	result.ModifiedContent = []byte(currentContent)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *LiteralReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.Pattern == "" {
			return errors.Errorf("rule %d: pattern is required", i)
		}
	}
	return nil
}
