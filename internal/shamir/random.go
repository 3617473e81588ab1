package shamir

import (
	"strings"

	"github.com/mrz1836/keyshard/internal/shardcrypto"
	"github.com/mrz1836/keyshard/internal/validate"
)

// DefaultSecretAlphabet is the character set for generated secrets:
// alphanumerics plus a small set of symbols, 70 characters total.
const DefaultSecretAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// GenerateRandomSecret produces a cryptographically secure random secret of
// the given length over the given alphabet. An empty alphabet selects
// DefaultSecretAlphabet. Length is bounded by the generation cap, not the
// stricter split cap; a generated secret longer than 10000 characters cannot
// be split, only stored.
func GenerateRandomSecret(length int, alphabet string) (string, error) {
	if length < 1 || length > validate.MaxGeneratedLen {
		return "", ErrGeneratedLength
	}
	if alphabet == "" {
		alphabet = DefaultSecretAlphabet
	}

	chars := []rune(alphabet)
	if len(chars) == 0 {
		return "", ErrEmptyAlphabet
	}

	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		idx, err := shardcrypto.RandomInt(0, len(chars)-1)
		if err != nil {
			return "", err
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String(), nil
}
