package cli

import (
	"errors"

	"github.com/mrz1836/keyshard/internal/shamir"
	"github.com/mrz1836/keyshard/internal/shardcrypto"
	"github.com/mrz1836/keyshard/internal/validate"
	kserr "github.com/mrz1836/keyshard/pkg/errors"
)

// mapError lifts core sentinel errors into structured CLI errors so exit
// codes and JSON error output carry the right machine code. Unknown errors
// pass through as general failures.
//
//nolint:gocyclo // one branch per error kind
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, validate.ErrTotalSharesTooLow),
		errors.Is(err, validate.ErrTotalSharesTooHigh),
		errors.Is(err, validate.ErrThresholdTooLow),
		errors.Is(err, validate.ErrThresholdTooHigh):
		return wrapAs(kserr.ErrInvalidParams, err)

	case errors.Is(err, validate.ErrSecretEmpty),
		errors.Is(err, validate.ErrSecretTooLong),
		errors.Is(err, validate.ErrSecretNulByte),
		errors.Is(err, shamir.ErrGeneratedLength),
		errors.Is(err, shamir.ErrEmptyAlphabet):
		return wrapAs(kserr.ErrInvalidSecret, err)

	case errors.Is(err, shardcrypto.ErrNoEntropy):
		return wrapAs(kserr.ErrNoEntropy, err)

	case errors.Is(err, shamir.ErrNoShares):
		return wrapAs(kserr.ErrNoShares, err)

	case errors.Is(err, shamir.ErrInsufficientShares),
		errors.Is(err, validate.ErrTooFewShares):
		return wrapAs(kserr.ErrInsufficientShares, err)

	case errors.Is(err, shamir.ErrLengthMismatch):
		return wrapAs(kserr.ErrLengthMismatch, err)

	case errors.Is(err, shamir.ErrDuplicateShareID):
		return wrapAs(kserr.ErrDuplicateShare, err)

	case errors.Is(err, shamir.ErrBadUTF8):
		return kserr.WithSuggestion(
			wrapAs(kserr.ErrBadUTF8, err),
			"check that the shares belong to the same split and that enough of them are present",
		)

	case errors.Is(err, shamir.ErrBadShareFormat),
		errors.Is(err, shamir.ErrShareTooShort),
		errors.Is(err, shamir.ErrBadShareID),
		errors.Is(err, shamir.ErrBadHex),
		errors.Is(err, validate.ErrShareEmpty),
		errors.Is(err, validate.ErrShareTooShort),
		errors.Is(err, validate.ErrShareBadCharacters),
		errors.Is(err, validate.ErrShareBadDashes):
		return wrapAs(kserr.ErrBadShareFormat, err)

	default:
		return err
	}
}

// wrapAs attaches the structured sentinel's code to the core error text.
func wrapAs(sentinel *kserr.KeyshardError, cause error) error {
	return &kserr.KeyshardError{
		Code:       sentinel.Code,
		Message:    cause.Error(),
		Suggestion: sentinel.Suggestion,
		Cause:      cause,
		ExitCode:   sentinel.ExitCode,
	}
}
