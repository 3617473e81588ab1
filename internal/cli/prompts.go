package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/mrz1836/keyshard/internal/shardcrypto"
	"github.com/mrz1836/keyshard/internal/validate"
	kserr "github.com/mrz1836/keyshard/pkg/errors"
)

// out writes formatted text to a writer, ignoring write errors.
func out(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

// outln writes a line to a writer, ignoring write errors.
func outln(w io.Writer, args ...any) {
	_, _ = fmt.Fprintln(w, args...)
}

// promptSecret prompts for the secret with hidden input when stdin is a
// terminal, falling back to a plain line read when it is piped. The caller is
// responsible for zeroing the returned bytes after use.
func promptSecret(prompt string) ([]byte, error) {
	if term.IsTerminal(syscall.Stdin) {
		out(os.Stderr, "%s", prompt)
		secret, err := term.ReadPassword(syscall.Stdin)
		outln(os.Stderr) // newline after hidden input
		if err != nil {
			return nil, fmt.Errorf("reading secret: %w", err)
		}
		return secret, nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("reading secret: %w", err)
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// promptSecretConfirmed prompts for the secret twice when interactive and
// rejects mismatches, so a typo is not silently split.
func promptSecretConfirmed() ([]byte, error) {
	secret, err := promptSecret("Enter secret: ")
	if err != nil {
		return nil, err
	}

	if !term.IsTerminal(syscall.Stdin) {
		return secret, nil
	}

	confirm, err := promptSecret("Confirm secret: ")
	if err != nil {
		shardcrypto.ZeroBytes(secret)
		return nil, err
	}
	defer shardcrypto.ZeroBytes(confirm)

	if string(secret) != string(confirm) {
		shardcrypto.ZeroBytes(secret)
		return nil, kserr.WithSuggestion(
			kserr.ErrInvalidInput,
			"secrets do not match",
		)
	}

	return secret, nil
}

// readShares collects share strings from stdin, accepting labelled
// "Share N: ..." lines, bare shares, and blank-line separation. Input is
// sanitized before parsing; terminal escape sequences in pasted text must
// not reach the decoder.
func readShares(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading shares: %w", err)
	}

	return validate.SharesFromText(validate.SanitizeText(string(data))), nil
}
