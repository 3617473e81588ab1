package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/keyshard/internal/output"
	"github.com/mrz1836/keyshard/internal/shamir"
	"github.com/mrz1836/keyshard/internal/validate"
	kserr "github.com/mrz1836/keyshard/pkg/errors"
)

// validateResult is the JSON shape of a validation pre-check.
type validateResult struct {
	Valid   bool         `json:"valid"`
	Message string       `json:"message,omitempty"`
	Shares  []shareCheck `json:"shares"`
}

type shareCheck struct {
	Index       int    `json:"index"`
	Fingerprint string `json:"fingerprint"`
	Length      int    `json:"length"`
	SyntaxOK    bool   `json:"syntax_ok"`
}

var validateCmd = &cobra.Command{
	Use:   "validate [share]...",
	Short: "Check shares without reconstructing",
	Long: `Validate pre-checks a share set: syntax, parseability, distinct ids and
consistent lengths. It never reconstructs the secret, so it is safe to run
on a connected machine.

Consistency is all it can promise; the scheme carries no integrity data, so
a corrupted-but-well-formed share still passes.`,
	RunE: runValidate,
}

//nolint:gochecknoinits // Cobra command registration
func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
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

	checks := make([]shareCheck, len(shares))
	for i, s := range shares {
		checks[i] = shareCheck{
			Index:       i + 1,
			Fingerprint: shareFingerprint(s),
			Length:      len(s),
			SyntaxOK:    validate.ShareSyntax(s) == nil,
		}
	}

	ok, msg := shamir.ValidateShares(shares)

	if formatter.IsJSON() {
		return formatter.Print(validateResult{Valid: ok, Message: msg, Shares: checks})
	}

	w := cmd.OutOrStdout()
	table := output.NewTable("SHARE", "FINGERPRINT", "LENGTH", "SYNTAX")
	for _, c := range checks {
		syntax := "ok"
		if !c.SyntaxOK {
			syntax = "bad"
		}
		table.AddRow(
			strconv.Itoa(c.Index),
			c.Fingerprint,
			strconv.Itoa(c.Length),
			syntax,
		)
	}
	if err := table.Render(w); err != nil {
		return err
	}
	outln(w)

	if !ok {
		out(w, "Set is NOT usable: %s\n", msg)
		return kserr.Wrap(kserr.ErrBadShareFormat, "%s", msg)
	}
	output.Successf("Set looks consistent: %d shares, distinct ids, agreeing lengths.", len(shares))
	return nil
}
