// Package base62 implements the positional Base62 encoding used for share
// transport. A byte slice is interpreted as a big-endian unsigned integer and
// rendered over the alphabet 0-9A-Za-z, so the encoding is not
// length-preserving: leading zero bytes do not survive a round trip. Callers
// that need exact lengths must carry them out of band.
package base62

import (
	"errors"
	"fmt"
	"math/big"
)

// Alphabet is the Base62 digit set, in digit order. The digit zero encodes
// to '0'.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// ErrInvalidCharacter is returned when decoding input contains a character
// outside the Base62 alphabet.
var ErrInvalidCharacter = errors.New("invalid base62 character")

const base = 62

// digitValues maps an ASCII byte to its digit value, or -1 when the byte is
// not part of the alphabet.
//
//nolint:gochecknoglobals // precomputed reverse lookup table
var digitValues = buildDigitValues()

func buildDigitValues() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		t[Alphabet[i]] = int8(i)
	}
	return t
}

// Encode renders data as a Base62 digit string. Empty input encodes to the
// empty string; an input representing the integer zero encodes to "0".
func Encode(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	num := new(big.Int).SetBytes(data)
	if num.Sign() == 0 {
		return string(Alphabet[0])
	}

	// A byte carries 8 bits, a base62 digit ~5.95; pre-size accordingly.
	buf := make([]byte, 0, len(data)*8/5+1)
	div := big.NewInt(base)
	rem := new(big.Int)
	for num.Sign() > 0 {
		num.DivMod(num, div, rem)
		buf = append(buf, Alphabet[rem.Int64()])
	}

	// Digits were produced least significant first.
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// Decode converts a Base62 digit string back to the minimal big-endian byte
// representation of its integer value. The empty string decodes to nil and
// "0" decodes to a single zero byte.
func Decode(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}

	num := new(big.Int)
	mul := big.NewInt(base)
	digit := new(big.Int)
	for i := 0; i < len(encoded); i++ {
		v := digitValues[encoded[i]]
		if v < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCharacter, encoded[i])
		}
		num.Mul(num, mul)
		num.Add(num, digit.SetInt64(int64(v)))
	}

	if num.Sign() == 0 {
		return []byte{0}, nil
	}
	return num.Bytes(), nil
}
