// Package validate implements the input checks the sharing engine and CLI
// apply at their boundaries: split parameters, secret constraints, share
// syntax pre-checks, and sanitization of text that arrives from outside the
// process (clipboard, pasted terminal input).
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mrz1836/go-sanitize"
)

// Parameter bounds for the sharing scheme. Share ids live in one byte and id
// zero is reserved for the secret evaluation point, which caps the share
// count at 255. A threshold of one is rejected even though the math allows
// it: a single share reconstructing the secret provides no secrecy.
const (
	MinShares    = 2
	MaxShares    = 255
	MinThreshold = 2

	// MaxSecretLen bounds secrets accepted for splitting.
	MaxSecretLen = 10000

	// MaxGeneratedLen bounds generated random secrets.
	MaxGeneratedLen = 50000

	// MinShareLen is the shortest plausible encoded share.
	MinShareLen = 10
)

var (
	// ErrTotalSharesTooLow is returned when fewer than 2 shares are requested.
	ErrTotalSharesTooLow = errors.New("total shares must be at least 2")

	// ErrTotalSharesTooHigh is returned when more than 255 shares are requested.
	ErrTotalSharesTooHigh = errors.New("total shares cannot exceed 255")

	// ErrThresholdTooLow is returned when the threshold is below 2.
	ErrThresholdTooLow = errors.New("threshold must be at least 2")

	// ErrThresholdTooHigh is returned when the threshold exceeds the share count.
	ErrThresholdTooHigh = errors.New("threshold cannot exceed total shares")

	// ErrSecretEmpty is returned for an empty secret.
	ErrSecretEmpty = errors.New("secret cannot be empty")

	// ErrSecretTooLong is returned when a secret exceeds the allowed length.
	ErrSecretTooLong = errors.New("secret too long")

	// ErrSecretNulByte is returned when a secret contains a NUL byte.
	ErrSecretNulByte = errors.New("secret cannot contain null bytes")

	// ErrShareEmpty is returned for an empty share string.
	ErrShareEmpty = errors.New("share cannot be empty")

	// ErrShareTooShort is returned when a share is below the minimum length.
	ErrShareTooShort = errors.New("share too short")

	// ErrShareBadCharacters is returned when a share contains characters
	// outside the Base62 alphabet (plus the single legacy dash).
	ErrShareBadCharacters = errors.New("share must contain only alphanumeric characters")

	// ErrShareBadDashes is returned when a share contains more than one dash.
	ErrShareBadDashes = errors.New("share format invalid (too many dashes)")

	// ErrTooFewShares is returned when fewer than two shares are supplied.
	ErrTooFewShares = errors.New("at least 2 shares required")
)

var (
	alnumPattern = regexp.MustCompile(`^[0-9A-Za-z]+$`)
	shareLine    = regexp.MustCompile(`^[0-9A-Za-z-]+$`)
)

// controlChars matches the control characters stripped by SanitizeText:
// everything below 0x20 except newline, carriage return and tab.
const controlChars = `[\x00-\x08\x0B\x0C\x0E-\x1F]`

// Params checks split parameters: 2 <= threshold <= total <= 255.
func Params(total, threshold int) error {
	if total < MinShares {
		return ErrTotalSharesTooLow
	}
	if total > MaxShares {
		return ErrTotalSharesTooHigh
	}
	if threshold < MinThreshold {
		return ErrThresholdTooLow
	}
	if threshold > total {
		return ErrThresholdTooHigh
	}
	return nil
}

// Secret checks a secret against the given maximum length (in characters)
// and rejects embedded NUL bytes.
func Secret(s string, maxLen int) error {
	if s == "" {
		return ErrSecretEmpty
	}
	if len([]rune(s)) > maxLen {
		return fmt.Errorf("%w (max %d characters)", ErrSecretTooLong, maxLen)
	}
	if strings.ContainsRune(s, 0) {
		return ErrSecretNulByte
	}
	return nil
}

// ShareSyntax checks that a share string looks like an encoded share: Base62
// characters with at most one legacy dash separator, and a plausible length.
// It does not decode the share.
func ShareSyntax(s string) error {
	if s == "" {
		return ErrShareEmpty
	}

	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		if len(parts) != 2 {
			return ErrShareBadDashes
		}
		if !alnumPattern.MatchString(parts[0]) || !alnumPattern.MatchString(parts[1]) {
			return ErrShareBadCharacters
		}
	} else if !alnumPattern.MatchString(s) {
		return ErrShareBadCharacters
	}

	if len(s) < MinShareLen {
		return ErrShareTooShort
	}
	return nil
}

// ShareSet checks a candidate share set: at least two entries, each
// syntactically valid. Duplicate-id detection happens after parsing, in the
// engine, because ids are not visible before decoding.
func ShareSet(shares []string) error {
	if len(shares) < 2 {
		return ErrTooFewShares
	}
	for i, s := range shares {
		if err := ShareSyntax(s); err != nil {
			return fmt.Errorf("share %d: %w", i+1, err)
		}
	}
	return nil
}

// SanitizeText strips control characters (code < 32) from externally supplied
// text while preserving newlines, carriage returns and tabs.
func SanitizeText(t string) string {
	return sanitize.Custom(t, controlChars)
}

// SharesFromText extracts share strings from pasted text. It accepts
// "Share 3: XXXX" labelled lines and bare share lines, skipping everything
// else.
func SharesFromText(text string) []string {
	var shares []string

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if _, rest, ok := strings.Cut(line, ":"); ok {
			if share := strings.TrimSpace(rest); share != "" {
				shares = append(shares, share)
			}
			continue
		}

		if shareLine.MatchString(line) {
			shares = append(shares, line)
		}
	}

	return shares
}
