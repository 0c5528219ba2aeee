// Package dispatch runs an account's hook commands against a message.
package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/shineum/mail-dispatch/internal/account"
)

// Executor runs the hook chain of an account strictly in order: send,
// post-send, post-post. Each stage blocks until its subprocess exits, and a
// non-zero exit aborts the remaining stages. Hooks are assumed to depend on
// their predecessors (a message must be sent before it can be indexed as
// sent), so there is no parallelism and no retry.
type Executor struct {
	stdout io.Writer
	stderr io.Writer
}

// New creates an Executor that passes hook output through to the process's
// own stdout and stderr.
func New() *Executor {
	return &Executor{stdout: os.Stdout, stderr: os.Stderr}
}

// NewWithWriters creates an Executor with explicit output destinations.
// This is useful for testing.
func NewWithWriters(stdout, stderr io.Writer) *Executor {
	return &Executor{stdout: stdout, stderr: stderr}
}

// stage is one step of the send pipeline.
type stage struct {
	name string
	argv []string
	// pipeMessage feeds the raw message to the command's stdin.
	pipeMessage bool
}

// Dispatch executes the account's hook commands in order, feeding raw to
// the send and post-send stages. A stage with no command is skipped. The
// first failing stage aborts the rest; whatever already ran is not rolled
// back, since sending cannot be undone.
func (e *Executor) Dispatch(ctx context.Context, raw []byte, acct account.Account) error {
	stages := []stage{
		{name: "send", argv: acct.Sendmail, pipeMessage: true},
		{name: "post-send", argv: acct.PostSendmail, pipeMessage: true},
		{name: "post-post", argv: acct.PostPost},
	}

	for _, st := range stages {
		if len(st.argv) == 0 {
			slog.Debug("skipping stage with no command", "stage", st.name, "account", acct.Name)
			continue
		}
		if err := e.run(ctx, st, raw); err != nil {
			return fmt.Errorf("%s stage failed: %w", st.name, err)
		}
	}

	return nil
}

func (e *Executor) run(ctx context.Context, st stage, raw []byte) error {
	cmd := exec.CommandContext(ctx, st.argv[0], st.argv[1:]...)
	if st.pipeMessage {
		cmd.Stdin = bytes.NewReader(raw)
	}
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	slog.Debug("running hook", "stage", st.name, "command", st.argv)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %q: %w", st.argv[0], err)
	}
	return nil
}
