// Package main is the entry point for mail-dispatch, a sendmail-style
// wrapper that routes an outgoing message to a configured account and runs
// that account's hook commands.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shineum/mail-dispatch/internal/account"
	"github.com/shineum/mail-dispatch/internal/config"
	"github.com/shineum/mail-dispatch/internal/dispatch"
	"github.com/shineum/mail-dispatch/internal/parser"
)

func main() {
	debug := flag.Bool("d", false, "print the resolved account instead of sending")
	configPath := flag.String("config", "", "path to INI configuration file (optional)")
	flag.Parse()

	setupLogger(os.Getenv("LOG_LEVEL"))

	// Load configuration once and pass it down; there is no global
	// configuration state.
	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		slog.Error("failed to read message from stdin", "error", err)
		os.Exit(1)
	}

	if err := run(*debug, os.Stdout, raw, cfg); err != nil {
		slog.Error("mail-dispatch failed", "error", err)
		os.Exit(1)
	}
}

// run parses the raw message, resolves the sending account, and either
// dispatches the hook chain or, in debug mode, prints the resolved account
// to out without starting any subprocess.
func run(debug bool, out io.Writer, raw []byte, cfg *config.Config) error {
	msg, err := parser.Parse(raw)
	if err != nil {
		return fmt.Errorf("failed to parse message: %w", err)
	}

	acct, err := account.Resolve(msg.From, cfg.Accounts)
	if err != nil {
		return fmt.Errorf("failed to resolve account: %w", err)
	}

	if debug {
		printAccount(out, acct)
		return nil
	}

	if err := dispatch.New().Dispatch(context.Background(), msg.Raw, acct); err != nil {
		return fmt.Errorf("dispatch for account %q: %w", acct.Name, err)
	}
	return nil
}

// loadConfig loads the account registry from the explicit path if one was
// given, then from the MAIL_DISPATCH_CONFIG environment variable, and
// otherwise from the default location under the user config directory.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv("MAIL_DISPATCH_CONFIG")
	}
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// setupLogger configures the global slog logger. Log output goes to stderr
// so it never mixes with the stdout of the hook commands.
func setupLogger(level string) {
	var logLevel slog.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// printAccount writes the resolved account's full field set to out. No
// subprocess is started in this mode.
func printAccount(out io.Writer, acct account.Account) {
	fmt.Fprintf(out, "account: %s\n", acct.Name)
	fmt.Fprintf(out, "  from_address:  %s\n", acct.FromAddress)
	fmt.Fprintf(out, "  sent_folder:   %s\n", acct.SentFolder)
	fmt.Fprintf(out, "  sendmail:      %s\n", strings.Join(acct.Sendmail, " "))
	fmt.Fprintf(out, "  post_sendmail: %s\n", strings.Join(acct.PostSendmail, " "))
	if len(acct.PostPost) > 0 {
		fmt.Fprintf(out, "  post_post:     %s\n", strings.Join(acct.PostPost, " "))
	}
}
