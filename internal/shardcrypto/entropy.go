// Package shardcrypto provides the secure randomness and sensitive-memory
// primitives the sharing engine depends on. All randomness comes from the OS
// CSPRNG; there is no fallback generator. When the entropy source is
// unavailable every draw fails with ErrNoEntropy.
package shardcrypto

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Reader is the cryptographically secure random source. It wraps
// crypto/rand.Reader for consistency and testability.
//
//nolint:gochecknoglobals // Package-level RNG is required for testability
var Reader io.Reader = rand.Reader

// ErrNoEntropy is returned when the OS entropy source fails or the CSPRNG
// self-test does not pass.
var ErrNoEntropy = errors.New("secure random source unavailable")

// ErrInvalidRange is returned when RandomInt is called with hi < lo.
var ErrInvalidRange = errors.New("invalid random range")

const selfTestBlockSize = 32

// RandomBytes generates n cryptographically secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(Reader, b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoEntropy, err)
	}
	return b, nil
}

// RandomInt generates a uniformly distributed integer in [lo, hi] inclusive.
func RandomInt(lo, hi int) (int, error) {
	if hi < lo {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, lo, hi)
	}

	span := big.NewInt(int64(hi-lo) + 1)
	n, err := rand.Int(Reader, span)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoEntropy, err)
	}
	return lo + int(n.Int64()), nil
}

// SelfTest verifies the random source is alive by drawing two independent
// blocks and checking length and inequality. Two equal 32-byte blocks from a
// working CSPRNG are a statistical impossibility, so equality indicates a
// stuck source.
func SelfTest() error {
	a, err := RandomBytes(selfTestBlockSize)
	if err != nil {
		return err
	}
	defer ZeroBytes(a)

	b, err := RandomBytes(selfTestBlockSize)
	if err != nil {
		return err
	}
	defer ZeroBytes(b)

	if len(a) != selfTestBlockSize || len(b) != selfTestBlockSize {
		return fmt.Errorf("%w: short read from entropy source", ErrNoEntropy)
	}
	if bytes.Equal(a, b) {
		return fmt.Errorf("%w: entropy source returned repeated output", ErrNoEntropy)
	}
	return nil
}

// SecureRandomBytes generates random bytes in a SecureBytes container.
func SecureRandomBytes(n int) (*SecureBytes, error) {
	sb, err := NewSecureBytes(n)
	if err != nil {
		return nil, err
	}

	if _, err := io.ReadFull(Reader, sb.Bytes()); err != nil {
		sb.Destroy()
		return nil, fmt.Errorf("%w: %w", ErrNoEntropy, err)
	}

	return sb, nil
}
