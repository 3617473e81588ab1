package shardcrypto

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMockReaderNotConfigured = errors.New("mock reader not configured")

// mockReader implements io.Reader for testing.
type mockReader struct {
	readFunc func(p []byte) (int, error)
}

func (m *mockReader) Read(p []byte) (int, error) {
	if m.readFunc != nil {
		return m.readFunc(p)
	}
	return 0, errMockReaderNotConfigured
}

// swapReader replaces the package random source for the duration of a test.
func swapReader(t *testing.T, r io.Reader) {
	t.Helper()
	orig := Reader
	Reader = r
	t.Cleanup(func() { Reader = orig })
}

func TestRandomBytes(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantLen int
	}{
		{name: "zero bytes", n: 0, wantLen: 0},
		{name: "32 bytes", n: 32, wantLen: 32},
		{name: "1024 bytes", n: 1024, wantLen: 1024},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := RandomBytes(tc.n)
			require.NoError(t, err)
			assert.Len(t, b, tc.wantLen)
		})
	}
}

func TestRandomBytesDistinct(t *testing.T) {
	a, err := RandomBytes(32)
	require.NoError(t, err)
	b, err := RandomBytes(32)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a, b), "two independent 32-byte draws should differ")
}

func TestRandomBytesSourceFailure(t *testing.T) {
	swapReader(t, &mockReader{})

	_, err := RandomBytes(16)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoEntropy)
}

func TestRandomInt(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi int
	}{
		{name: "coefficient range", lo: 1, hi: 255},
		{name: "single value", lo: 7, hi: 7},
		{name: "negative lo", lo: -3, hi: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 200; i++ {
				n, err := RandomInt(tc.lo, tc.hi)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, n, tc.lo)
				assert.LessOrEqual(t, n, tc.hi)
			}
		})
	}
}

func TestRandomIntCoversRange(t *testing.T) {
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		n, err := RandomInt(0, 3)
		require.NoError(t, err)
		seen[n] = true
	}
	// 500 draws over 4 values miss one with probability (3/4)^500.
	assert.Len(t, seen, 4)
}

func TestRandomIntInvalidRange(t *testing.T) {
	_, err := RandomInt(10, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRandomIntSourceFailure(t *testing.T) {
	swapReader(t, &mockReader{})

	_, err := RandomInt(1, 255)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoEntropy)
}

func TestSelfTest(t *testing.T) {
	require.NoError(t, SelfTest())
}

func TestSelfTestStuckSource(t *testing.T) {
	// A source that always returns the same bytes must fail the self-test.
	swapReader(t, &mockReader{readFunc: func(p []byte) (int, error) {
		for i := range p {
			p[i] = 0x41
		}
		return len(p), nil
	}})

	err := SelfTest()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoEntropy)
}

func TestSelfTestDeadSource(t *testing.T) {
	swapReader(t, &mockReader{readFunc: func(_ []byte) (int, error) {
		return 0, io.ErrUnexpectedEOF
	}})

	err := SelfTest()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoEntropy)
}

func TestSecureRandomBytes(t *testing.T) {
	sb, err := SecureRandomBytes(64)
	require.NoError(t, err)
	defer sb.Destroy()

	assert.Equal(t, 64, sb.Len())

	allZero := true
	for _, b := range sb.Bytes() {
		if b != 0 {
			allZero = false
			break
		}
	}
	assert.False(t, allZero, "random container should not be all zeros")
}
