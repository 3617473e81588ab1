package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/keyshard/internal/airgap"
	"github.com/mrz1836/keyshard/internal/output"
	"github.com/mrz1836/keyshard/internal/shamir"
	"github.com/mrz1836/keyshard/internal/shardcrypto"
	kserr "github.com/mrz1836/keyshard/pkg/errors"
)

var (
	splitShares    int
	splitThreshold int
	splitQR        bool
)

// splitResult is the JSON shape of a successful split.
type splitResult struct {
	Shares      []shareEntry `json:"shares"`
	Threshold   int          `json:"threshold"`
	TotalShares int          `json:"total_shares"`
}

type shareEntry struct {
	ID          int    `json:"id"`
	Share       string `json:"share"`
	Fingerprint string `json:"fingerprint"`
}

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a secret into shares",
	Long: `Split reads a secret (hidden prompt on a terminal, or a single line from
stdin) and emits the requested number of shares. Any threshold-sized subset
of them reconstructs the secret; fewer reveal nothing.

Distribute shares over separate channels. Anyone holding the threshold
number of them holds the secret.`,
	RunE: runSplit,
}

//nolint:gochecknoinits // Cobra command registration
func init() {
	splitCmd.Flags().IntVarP(&splitShares, "shares", "n", 0, "total number of shares to generate")
	splitCmd.Flags().IntVarP(&splitThreshold, "threshold", "k", 0, "shares required to reconstruct")
	splitCmd.Flags().BoolVar(&splitQR, "qr", false, "also render each share as a QR code (terminal only)")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, _ []string) error {
	total := splitShares
	if total == 0 {
		total = cfg.Sharing.DefaultShares
	}
	threshold := splitThreshold
	if threshold == 0 {
		threshold = cfg.Sharing.DefaultThreshold
	}

	if err := checkAirgap(); err != nil {
		return err
	}

	secret, err := promptSecretConfirmed()
	if err != nil {
		return err
	}
	defer shardcrypto.ZeroBytes(secret)

	logger.Debug("split requested: shares=%d threshold=%d secret_len=%d", total, threshold, len(secret))

	shares, err := shamir.Split(string(secret), total, threshold)
	if err != nil {
		logger.Error("split failed: %v", err)
		return mapError(err)
	}

	return printShares(cmd, shares, threshold)
}

// checkAirgap runs the offline heuristic before any secret is read. Active
// interfaces produce a warning, or an error when the config requires an
// offline host.
func checkAirgap() error {
	if !cfg.Security.AirgapCheck {
		return nil
	}

	report := airgap.Check()
	if report.Offline {
		return nil
	}

	names := make([]string, 0, len(report.Active))
	for _, iface := range report.Active {
		names = append(names, iface.Name)
	}
	msg := fmt.Sprintf("host looks online (%s)", strings.Join(names, ", "))

	if cfg.Security.RequireOffline {
		return kserr.WithSuggestion(
			kserr.Wrap(kserr.ErrInvalidInput, "%s", msg),
			"disconnect from the network, or set security.require_offline to false",
		)
	}

	output.Warnf("%s; consider disconnecting before handling secrets", msg)
	return nil
}

func printShares(cmd *cobra.Command, shares []string, threshold int) error {
	if formatter.IsJSON() {
		result := splitResult{
			Shares:      make([]shareEntry, len(shares)),
			Threshold:   threshold,
			TotalShares: len(shares),
		}
		for i, s := range shares {
			result.Shares[i] = shareEntry{ID: i + 1, Share: s, Fingerprint: shareFingerprint(s)}
		}
		return formatter.Print(result)
	}

	w := cmd.OutOrStdout()
	outln(w)
	out(w, "Generated %d shares; any %d reconstruct the secret.\n", len(shares), threshold)
	outln(w)
	for i, s := range shares {
		out(w, "Share %d [%s]:\n%s\n\n", i+1, shareFingerprint(s), s)
		if splitQR {
			if err := output.RenderQR(w, s, output.DefaultQRConfig()); err != nil {
				return err
			}
			outln(w)
		}
	}
	out(w, "Store each share separately. %d of them recreate the secret.\n", threshold)
	return nil
}
