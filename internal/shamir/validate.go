package shamir

import (
	"fmt"
)

// ValidateShares checks that a share set is well formed and mutually
// consistent without reconstructing anything: parseable, distinct ids,
// agreeing lengths. It reports a human-readable reason instead of an error
// so front-ends can pre-check pasted shares before the user commits.
func ValidateShares(shares []string) (bool, string) {
	if len(shares) == 0 {
		return false, "No shares provided"
	}
	if len(shares) < 2 {
		return false, "At least 2 shares required"
	}

	seen := make(map[byte]bool, len(shares))
	declaredLen := -1

	for i, s := range shares {
		p, err := parseShare(s)
		if err != nil {
			return false, fmt.Sprintf("Share %d: %v", i+1, err)
		}

		if len(p.values) == 0 {
			return false, fmt.Sprintf("Share %d has no values", i+1)
		}

		if seen[p.id] {
			return false, fmt.Sprintf("Duplicate share ID: %d", p.id)
		}
		seen[p.id] = true

		if p.declaredLen >= 0 {
			if declaredLen == -1 {
				declaredLen = p.declaredLen
			} else if p.declaredLen != declaredLen {
				return false, fmt.Sprintf("Share %d has inconsistent length", i+1)
			}
		}
	}

	return true, ""
}
