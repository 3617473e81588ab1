package shamir

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/mrz1836/keyshard/internal/base62"
	"github.com/mrz1836/keyshard/internal/shardcrypto"
)

// Share framing. The current wire format is a Base62 encoding of
//
//	[SID:1][L_BE:2][P_BE:2][VALUES:P]
//
// where L is the original secret length and P the padded length. Encodings
// shorter than minEncodedChars are extended with Base62-encoded random filler
// and trimmed to exactly minEncodedChars; the filler hides the payload size
// and is never read back, the parser consumes only the header-declared P
// bytes. Two legacy formats are accepted on parse: a one-byte-length Base62
// frame and a dash-separated hex pair.

const (
	headerLen = 5

	// minEncodedChars is the minimum transport length of an emitted share.
	minEncodedChars = 250
)

// parsedShare is the logical content of one share string.
type parsedShare struct {
	id byte

	// declaredLen is the original secret length L carried by the header, or
	// -1 for the legacy hex format, which has no header.
	declaredLen int

	// paddedLen is the padded length P from the current-format header, or -1
	// for the legacy formats, which carry none.
	paddedLen int

	values []byte
}

// encodeShare frames (id, L, P, values) and Base62-encodes it, padding the
// transport string to minEncodedChars when needed. The intermediate frame
// buffer contains share material and is registered for zeroization.
func encodeShare(reg *shardcrypto.Registry, id byte, values []byte, origLen int) (string, error) {
	buf := make([]byte, headerLen+len(values))
	reg.Register(buf)

	buf[0] = id
	binary.BigEndian.PutUint16(buf[1:3], uint16(origLen))     // #nosec G115 -- origLen validated <= 10000
	binary.BigEndian.PutUint16(buf[3:5], uint16(len(values))) // #nosec G115 -- padded length capped by split validation
	copy(buf[headerLen:], values)

	encoded := base62.Encode(buf)
	if len(encoded) < minEncodedChars {
		for len(encoded) < minEncodedChars {
			filler, err := randomFiller(minEncodedChars - len(encoded))
			if err != nil {
				return "", err
			}
			encoded += base62.Encode(filler)
		}
		// Naturally long encodings are emitted as-is; padded ones are cut to
		// exactly the minimum.
		encoded = encoded[:minEncodedChars]
	}
	return encoded, nil
}

// randomFiller draws transport padding bytes from {1..255}. The count is
// sized from the remaining character deficit; encodeShare loops until the
// deficit is covered.
func randomFiller(needed int) ([]byte, error) {
	filler := make([]byte, needed/3+10)
	for i := range filler {
		v, err := shardcrypto.RandomInt(1, 255)
		if err != nil {
			return nil, err
		}
		filler[i] = byte(v)
	}
	return filler, nil
}

// parseShare decodes a share string in any supported format.
func parseShare(s string) (parsedShare, error) {
	decoded, err := base62.Decode(s)
	if err != nil {
		// Not Base62 at all; a dash suggests the legacy hex format.
		if strings.Contains(s, "-") {
			return parseHexShare(s)
		}
		return parsedShare{}, fmt.Errorf("%w: %w", ErrBadShareFormat, err)
	}

	switch {
	case len(decoded) >= headerLen:
		return parseCurrentFrame(decoded)
	case len(decoded) >= 2:
		return parseLegacyFrame(decoded)
	default:
		return parsedShare{}, ErrShareTooShort
	}
}

// parseCurrentFrame reads the 5-byte header format. The tail must carry at
// least the declared P bytes; anything beyond them is transport filler.
func parseCurrentFrame(decoded []byte) (parsedShare, error) {
	id := decoded[0]
	origLen := int(binary.BigEndian.Uint16(decoded[1:3]))
	paddedLen := int(binary.BigEndian.Uint16(decoded[3:5]))

	if id < 1 {
		return parsedShare{}, fmt.Errorf("%w: %d", ErrBadShareID, id)
	}

	tail := decoded[headerLen:]
	if len(tail) < paddedLen {
		return parsedShare{}, fmt.Errorf("%w: declared %d bytes, decoded %d", ErrLengthMismatch, paddedLen, len(tail))
	}

	return parsedShare{id: id, declaredLen: origLen, paddedLen: paddedLen, values: tail[:paddedLen]}, nil
}

// parseLegacyFrame reads the pre-padding format: [SID:1][L:1][VALUES..].
// Values are taken as available, as the original decoder did.
func parseLegacyFrame(decoded []byte) (parsedShare, error) {
	id := decoded[0]
	if id < 1 {
		return parsedShare{}, ErrShareTooShort
	}

	origLen := int(decoded[1])
	end := 2 + origLen
	if end > len(decoded) {
		end = len(decoded)
	}
	return parsedShare{id: id, declaredLen: origLen, paddedLen: -1, values: decoded[2:end]}, nil
}

// parseHexShare reads the oldest format: "HH-HHHH..." with the share id as a
// hex byte before the dash and the values as an even-length hex stream after
// it.
func parseHexShare(s string) (parsedShare, error) {
	idPart, valuesPart, _ := strings.Cut(s, "-")

	id, err := strconv.ParseUint(idPart, 16, 64)
	if err != nil {
		return parsedShare{}, fmt.Errorf("%w: %q", ErrBadShareID, idPart)
	}
	if id < 1 || id > 255 {
		return parsedShare{}, fmt.Errorf("%w: %d", ErrBadShareID, id)
	}

	values, err := hex.DecodeString(valuesPart)
	if err != nil {
		return parsedShare{}, fmt.Errorf("%w: %w", ErrBadHex, err)
	}

	return parsedShare{id: byte(id), declaredLen: -1, paddedLen: -1, values: values}, nil
}
