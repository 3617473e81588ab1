package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"

	"github.com/mrz1836/keyshard/internal/output"
	"github.com/mrz1836/keyshard/internal/shamir"
	"github.com/mrz1836/keyshard/internal/shardcrypto"
	kserr "github.com/mrz1836/keyshard/pkg/errors"
)

var (
	generateLength  int
	generateCharset string
	generateWords   int
)

// charsets are the named alphabets for generated secrets.
//
//nolint:gochecknoglobals // static name table
var charsets = map[string]string{
	"full":         shamir.DefaultSecretAlphabet,
	"alphanumeric": "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789",
	"hex":          "0123456789abcdef",
	"digits":       "0123456789",
}

// wordEntropyBits maps a mnemonic word count to its entropy size.
//
//nolint:gochecknoglobals // static table from BIP39
var wordEntropyBits = map[int]int{12: 128, 15: 160, 18: 192, 21: 224, 24: 256}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random secret",
	Long: `Generate produces a cryptographically secure random secret, either as a
character string over a chosen charset or as a BIP39-style word sequence
(--words) that is easier to write down and read back.

The secret is printed once and not stored anywhere; split it immediately if
it should survive this terminal.`,
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra command registration
func init() {
	generateCmd.Flags().IntVarP(&generateLength, "length", "l", 32, "secret length in characters")
	generateCmd.Flags().StringVar(&generateCharset, "charset", "full", "charset name: full, alphanumeric, hex, digits")
	generateCmd.Flags().IntVarP(&generateWords, "words", "w", 0, "generate a word-list secret instead (12, 15, 18, 21 or 24 words)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	var secret string
	var err error

	if generateWords > 0 {
		secret, err = generateWordSecret(generateWords)
	} else {
		secret, err = generateCharSecret(generateLength, generateCharset)
	}
	if err != nil {
		return err
	}

	if formatter.IsJSON() {
		return formatter.Print(map[string]string{"secret": secret})
	}
	outln(cmd.OutOrStdout(), secret)
	return nil
}

func generateCharSecret(length int, charsetName string) (string, error) {
	alphabet, ok := charsets[strings.ToLower(charsetName)]
	if !ok {
		names := make([]string, 0, len(charsets))
		for name := range charsets {
			names = append(names, name)
		}
		msg := fmt.Sprintf("unknown charset %q", charsetName)
		if s := output.Suggest(charsetName, names); s != "" {
			return "", kserr.WithSuggestion(kserr.Wrap(kserr.ErrInvalidInput, "%s", msg), fmt.Sprintf("did you mean %q?", s))
		}
		return "", kserr.Wrap(kserr.ErrInvalidInput, "%s", msg)
	}

	secret, err := shamir.GenerateRandomSecret(length, alphabet)
	if err != nil {
		return "", mapError(err)
	}
	return secret, nil
}

// generateWordSecret derives a BIP39 mnemonic from entropy drawn through the
// same facade as everything else. The words are only a readable encoding of
// the entropy; keyshard does not treat them as a wallet seed.
func generateWordSecret(words int) (string, error) {
	bits, ok := wordEntropyBits[words]
	if !ok {
		return "", kserr.WithSuggestion(
			kserr.Wrap(kserr.ErrInvalidInput, "unsupported word count %d", words),
			"use 12, 15, 18, 21 or 24 words",
		)
	}

	entropy, err := shardcrypto.RandomBytes(bits / 8)
	if err != nil {
		return "", mapError(err)
	}
	defer shardcrypto.ZeroBytes(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", kserr.Wrap(err, "deriving word secret")
	}
	return mnemonic, nil
}
