package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/keyshard/internal/shamir"
	kserr "github.com/mrz1836/keyshard/pkg/errors"
)

// combineResult is the JSON shape of a successful reconstruction.
type combineResult struct {
	Secret     string `json:"secret"`
	SharesUsed int    `json:"shares_used"`
}

var combineCmd = &cobra.Command{
	Use:   "combine [share]...",
	Short: "Reconstruct a secret from shares",
	Long: `Combine reconstructs the secret from shares given as arguments or read
from stdin. Stdin accepts one share per line, with or without "Share N:"
labels.

The scheme is unauthenticated: with a corrupted share or shares from
different splits, combine can produce wrong output instead of an error.
Verify the reconstructed secret before relying on it.`,
	RunE: runCombine,
}

//nolint:gochecknoinits // Cobra command registration
func init() {
	rootCmd.AddCommand(combineCmd)
}

func runCombine(cmd *cobra.Command, args []string) error {
	shares := args
	if len(shares) == 0 {
		var err error
		shares, err = readShares(os.Stdin)
		if err != nil {
			return err
		}
	}

	if len(shares) == 0 {
		return kserr.WithSuggestion(
			kserr.ErrNoShares,
			"pass shares as arguments or pipe them to stdin, one per line",
		)
	}

	logger.Debug("combine requested: shares=%d", len(shares))

	secret, err := shamir.Combine(shares)
	if err != nil {
		logger.Error("combine failed: %v", err)
		return mapError(err)
	}

	if formatter.IsJSON() {
		return formatter.Print(combineResult{Secret: secret, SharesUsed: len(shares)})
	}

	// The raw secret is the whole point of the command; print it bare so it
	// can be piped.
	outln(cmd.OutOrStdout(), secret)
	return nil
}
