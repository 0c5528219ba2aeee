// Package account defines mail-sending identities and resolves a sender
// address to the matching identity.
package account

import (
	"errors"
	"fmt"
	"strings"
)

// placeholder is the token replaced inside command templates.
const placeholder = "$sent_folder"

// ErrNotFound is returned when no account matches a sender address.
var ErrNotFound = errors.New("no matching account")

// Account represents one configured mail identity. The hook commands are
// stored as ready-to-run argument vectors: templates are interpolated once,
// at construction time.
type Account struct {
	Name        string
	FromAddress string
	SentFolder  string

	// Sendmail receives the raw message on stdin and performs delivery.
	Sendmail []string
	// PostSendmail receives the same raw message on stdin after a
	// successful send, typically to index it into the sent folder.
	PostSendmail []string
	// PostPost runs last, without the message on stdin. Nil means the
	// stage is skipped.
	PostPost []string
}

// Interpolate splits a command template on whitespace and replaces every
// occurrence of $sent_folder in each token with sentFolder. The split is
// deliberately naive: there is no shell-quoting support, so folder names
// containing spaces cannot be represented.
func Interpolate(template, sentFolder string) []string {
	fields := strings.Fields(template)
	if len(fields) == 0 {
		return nil
	}
	args := make([]string, len(fields))
	for i, f := range fields {
		args[i] = strings.ReplaceAll(f, placeholder, sentFolder)
	}
	return args
}

// Resolve returns the first account in configuration order whose
// FromAddress equals addr. The comparison is exact and case-sensitive.
func Resolve(addr string, accounts []Account) (Account, error) {
	for _, acct := range accounts {
		if acct.FromAddress == addr {
			return acct, nil
		}
	}
	return Account{}, fmt.Errorf("%w for sender %q", ErrNotFound, addr)
}
