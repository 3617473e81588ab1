package cli

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// shareFingerprint returns a short stable label for a share string so users
// can tell printed shares apart and spot transcription slips. It is a
// labeling aid only: the scheme is unauthenticated and a matching
// fingerprint proves nothing about share integrity at reconstruction time.
func shareFingerprint(share string) string {
	sum := blake2b.Sum256([]byte(share))
	return hex.EncodeToString(sum[:4])
}
