package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		threshold int
		wantErr   error
	}{
		{name: "minimum valid", total: 2, threshold: 2},
		{name: "typical", total: 5, threshold: 3},
		{name: "maximum shares", total: 255, threshold: 255},
		{name: "too few shares", total: 1, threshold: 2, wantErr: ErrTotalSharesTooLow},
		{name: "too many shares", total: 300, threshold: 2, wantErr: ErrTotalSharesTooHigh},
		{name: "threshold of one", total: 5, threshold: 1, wantErr: ErrThresholdTooLow},
		{name: "threshold above total", total: 3, threshold: 4, wantErr: ErrThresholdTooHigh},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Params(tc.total, tc.threshold)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		maxLen  int
		wantErr error
	}{
		{name: "simple", secret: "hunter2", maxLen: MaxSecretLen},
		{name: "unicode", secret: "🔒 ñoño 测试", maxLen: MaxSecretLen},
		{name: "at limit", secret: strings.Repeat("a", 10), maxLen: 10},
		{name: "empty", secret: "", maxLen: MaxSecretLen, wantErr: ErrSecretEmpty},
		{name: "over limit", secret: strings.Repeat("a", 11), maxLen: 10, wantErr: ErrSecretTooLong},
		{name: "nul byte", secret: "has\x00null", maxLen: MaxSecretLen, wantErr: ErrSecretNulByte},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Secret(tc.secret, tc.maxLen)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestSecretCountsCharactersNotBytes(t *testing.T) {
	// Ten four-byte runes are ten characters, not forty.
	s := strings.Repeat("🔑", 10)
	require.Equal(t, 40, len(s))
	assert.NoError(t, Secret(s, 10))
}

func TestShareSyntax(t *testing.T) {
	tests := []struct {
		name    string
		share   string
		wantErr error
	}{
		{name: "base62", share: "3xJ9aQ72mPz4"},
		{name: "legacy hex dash", share: "0A-DEADBEEF42"},
		{name: "empty", share: "", wantErr: ErrShareEmpty},
		{name: "too short", share: "3xJ9a", wantErr: ErrShareTooShort},
		{name: "bad characters", share: "3xJ9aQ72mP!4", wantErr: ErrShareBadCharacters},
		{name: "underscore", share: "3xJ9a_72mPz4", wantErr: ErrShareBadCharacters},
		{name: "two dashes", share: "0A-DEAD-BEEF", wantErr: ErrShareBadDashes},
		{name: "whitespace", share: "3xJ9a Q72mPz", wantErr: ErrShareBadCharacters},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ShareSyntax(tc.share)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestShareSet(t *testing.T) {
	valid := []string{"3xJ9aQ72mPz4", "8kL2nR91bVc5"}

	assert.NoError(t, ShareSet(valid))
	assert.ErrorIs(t, ShareSet(nil), ErrTooFewShares)
	assert.ErrorIs(t, ShareSet(valid[:1]), ErrTooFewShares)

	withBad := append([]string{}, valid...)
	withBad = append(withBad, "not a share!")
	err := ShareSet(withBad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShareBadCharacters)
	assert.Contains(t, err.Error(), "share 3")
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "clean", in: "hello world", want: "hello world"},
		{name: "keeps whitespace", in: "a\nb\rc\td", want: "a\nb\rc\td"},
		{name: "strips nul", in: "a\x00b", want: "ab"},
		{name: "strips escape", in: "a\x1b[31mb", want: "a[31mb"},
		{name: "strips bell and backspace", in: "a\x07\x08b", want: "ab"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeText(tc.in))
		})
	}
}

func TestSharesFromText(t *testing.T) {
	text := `
Share 1: 3xJ9aQ72mPz4
Share 2: 8kL2nR91bVc5

0A-DEADBEEF42
this line is prose and should be skipped
`

	shares := SharesFromText(text)
	require.Len(t, shares, 3)
	assert.Equal(t, "3xJ9aQ72mPz4", shares[0])
	assert.Equal(t, "8kL2nR91bVc5", shares[1])
	assert.Equal(t, "0A-DEADBEEF42", shares[2])
}

func TestSharesFromTextEmpty(t *testing.T) {
	assert.Empty(t, SharesFromText(""))
	assert.Empty(t, SharesFromText("   \n  \n"))
}
