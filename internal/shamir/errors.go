package shamir

import "errors"

var (
	// ErrNoShares is returned when no shares are provided to Combine.
	ErrNoShares = errors.New("no shares provided")

	// ErrInsufficientShares is returned when fewer than two shares are provided.
	ErrInsufficientShares = errors.New("at least 2 shares required")

	// ErrShareTooShort is returned when a decoded share is too small to carry
	// even the legacy header.
	ErrShareTooShort = errors.New("share too short")

	// ErrBadShareID is returned when a share carries an id outside [1, 255].
	ErrBadShareID = errors.New("invalid share id")

	// ErrBadShareFormat is returned when a share string cannot be decoded in
	// any supported format.
	ErrBadShareFormat = errors.New("invalid share format")

	// ErrBadHex is returned when a legacy dash share has malformed hex data.
	ErrBadHex = errors.New("invalid hex data in share")

	// ErrLengthMismatch is returned when a share's declared lengths do not
	// match its data, or when shares in a set disagree on length.
	ErrLengthMismatch = errors.New("share data length mismatch")

	// ErrDuplicateShareID is returned when two shares carry the same id, or
	// interpolation sees a repeated x-coordinate.
	ErrDuplicateShareID = errors.New("duplicate share id")

	// ErrBadUTF8 is returned when reconstruction produced bytes that are not
	// valid UTF-8.
	ErrBadUTF8 = errors.New("reconstructed data is not valid UTF-8")

	// ErrDivByZero is returned on division by zero in the field. Not
	// reachable from well-formed inputs.
	ErrDivByZero = errors.New("division by zero in GF(2^8)")

	// ErrNoPoints is returned when interpolation is attempted with no points.
	ErrNoPoints = errors.New("no interpolation points provided")

	// ErrGeneratedLength is returned when a generated-secret length is out of
	// range.
	ErrGeneratedLength = errors.New("secret length must be between 1 and 50000 characters")

	// ErrEmptyAlphabet is returned when secret generation is given an empty
	// alphabet.
	ErrEmptyAlphabet = errors.New("secret alphabet cannot be empty")
)
