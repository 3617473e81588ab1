// Package shamir implements Shamir's Secret Sharing over GF(2^8) with the
// Base62 share transport format. A secret is split byte-wise: each byte
// becomes the constant term of a random polynomial of degree threshold-1, and
// share j holds the polynomial values at x=j. Any threshold shares recover
// the secret by Lagrange interpolation at x=0; fewer reveal nothing.
//
// The scheme is unauthenticated: a corrupted but well-formed share yields a
// wrong reconstruction without any error. Callers wanting integrity must wrap
// the plaintext with a MAC before splitting.
package shamir

import (
	"fmt"
	"unicode/utf8"

	"github.com/mrz1836/keyshard/internal/shardcrypto"
	"github.com/mrz1836/keyshard/internal/validate"
)

const (
	// minPaddedLen is the minimum padded secret length. Payloads of this size
	// encode to 250+ Base62 characters, so the transport length never leaks
	// how short a secret is.
	minPaddedLen = 200

	// coefficient and padding bytes are drawn from {1..255}; excluding zero
	// keeps every polynomial at its declared degree.
	randByteMin = 1
	randByteMax = 255
)

// Split divides a secret into total shares, any threshold of which
// reconstruct it. Returned shares are Base62 strings of at least 250
// characters. All transient secret material is zeroized before return, on
// error paths included.
func Split(secret string, total, threshold int) ([]string, error) {
	if err := validate.Params(total, threshold); err != nil {
		return nil, err
	}
	if err := validate.Secret(secret, validate.MaxSecretLen); err != nil {
		return nil, err
	}

	reg := shardcrypto.NewRegistry()
	defer reg.Zeroize()

	// Pad short plaintexts with random bytes so the frame never exposes the
	// secret length. The original length travels in the header.
	plain := []byte(secret)
	origLen := len(plain)

	padded := make([]byte, origLen, max(origLen, minPaddedLen))
	copy(padded, plain)
	reg.Register(plain)
	for len(padded) < minPaddedLen {
		v, err := shardcrypto.RandomInt(randByteMin, randByteMax)
		if err != nil {
			return nil, err
		}
		padded = append(padded, byte(v))
	}
	reg.Register(padded)

	// One value vector per share, one polynomial per byte position.
	values := make([][]byte, total)
	for j := range values {
		values[j] = make([]byte, len(padded))
	}
	reg.RegisterAll(values)

	// coeffs is reused across byte positions; coeffs[0] is the secret byte,
	// the rest are fresh random draws per position.
	coeffs := make([]byte, threshold)
	reg.Register(coeffs)

	for i, secretByte := range padded {
		coeffs[0] = secretByte
		for c := 1; c < threshold; c++ {
			v, err := shardcrypto.RandomInt(randByteMin, randByteMax)
			if err != nil {
				return nil, err
			}
			coeffs[c] = byte(v)
		}

		for j := 0; j < total; j++ {
			values[j][i] = polyEval(coeffs, byte(j+1)) // #nosec G115 -- total <= 255
		}
	}

	shares := make([]string, total)
	for j := 0; j < total; j++ {
		s, err := encodeShare(reg, byte(j+1), values[j], origLen) // #nosec G115 -- total <= 255
		if err != nil {
			return nil, err
		}
		shares[j] = s
	}

	return shares, nil
}

// Combine reconstructs a secret from shares in any supported format. It
// needs at least as many shares as the threshold the secret was split with;
// with fewer (but >= 2) the interpolation yields garbage, which usually
// surfaces as ErrBadUTF8 but is otherwise indistinguishable from success.
func Combine(shares []string) (string, error) {
	if len(shares) == 0 {
		return "", ErrNoShares
	}
	if len(shares) < 2 {
		return "", ErrInsufficientShares
	}

	reg := shardcrypto.NewRegistry()
	defer reg.Zeroize()

	parsed, secretLen, err := parseShareSet(shares, reg)
	if err != nil {
		return "", err
	}

	// The x-coordinates are the same for every byte position, so the
	// Lagrange weights are computed once.
	xs := make([]byte, len(parsed))
	for i, p := range parsed {
		xs[i] = p.id
	}
	weights, err := lagrangeWeightsAtZero(xs)
	if err != nil {
		return "", err
	}

	plain := make([]byte, secretLen)
	reg.Register(plain)
	for i := 0; i < secretLen; i++ {
		var b byte
		for j, p := range parsed {
			b = gfAdd(b, gfMul(p.values[i], weights[j]))
		}
		plain[i] = b
	}

	if !utf8.Valid(plain) {
		return "", ErrBadUTF8
	}
	return string(plain), nil
}

// parseShareSet parses every share, rejects duplicate ids, and settles the
// authoritative reconstruction length. Current-format shares must agree on
// the declared original length; legacy hex shares carry no length and are
// truncated to the authoritative one. A vector shorter than that length
// cannot be reconstructed from.
func parseShareSet(shares []string, reg *shardcrypto.Registry) ([]parsedShare, int, error) {
	parsed := make([]parsedShare, 0, len(shares))
	seen := make(map[byte]bool, len(shares))

	declaredLen := -1
	paddedLen := -1
	for _, s := range shares {
		p, err := parseShare(s)
		if err != nil {
			return nil, 0, err
		}
		reg.Register(p.values)

		if seen[p.id] {
			return nil, 0, fmt.Errorf("%w: %d", ErrDuplicateShareID, p.id)
		}
		seen[p.id] = true

		if p.declaredLen >= 0 {
			if declaredLen == -1 {
				declaredLen = p.declaredLen
			} else if p.declaredLen != declaredLen {
				return nil, 0, fmt.Errorf("%w: shares declare lengths %d and %d", ErrLengthMismatch, declaredLen, p.declaredLen)
			}
		}

		if p.paddedLen >= 0 {
			if paddedLen == -1 {
				paddedLen = p.paddedLen
			} else if p.paddedLen != paddedLen {
				return nil, 0, fmt.Errorf("%w: shares declare padded lengths %d and %d", ErrLengthMismatch, paddedLen, p.paddedLen)
			}
		}

		parsed = append(parsed, p)
	}

	// An all-hex set has no declared length; the vectors themselves are the
	// authority and must agree.
	secretLen := declaredLen
	if secretLen == -1 {
		secretLen = len(parsed[0].values)
	}

	for _, p := range parsed {
		if len(p.values) < secretLen {
			return nil, 0, fmt.Errorf("%w: share %d carries %d bytes, need %d", ErrLengthMismatch, p.id, len(p.values), secretLen)
		}
	}

	return parsed, secretLen, nil
}
