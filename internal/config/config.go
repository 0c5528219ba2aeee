// Package config loads account definitions from the mail-dispatch INI
// configuration file.
//
// The file holds one section per account, prefixed with "account", plus
// optional global defaults above any section header:
//
//	sendmail = msmtp -t
//	post_sendmail = notmuch insert --folder=$sent_folder +sent -new
//
//	[account.work]
//	from_address = jane@work.example
//	sent_folder = work/Sent
//	sendmail = msmtp -t --account=work
//	post_post = notmuch tag +work -- tag:new
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/shineum/mail-dispatch/internal/account"
)

const (
	sectionPrefix    = "account"
	sectionSeparator = "."

	defaultSendmail     = "sendmail -t"
	defaultPostSendmail = "notmuch insert --folder=$sent_folder +sent -new"
)

// Config holds the accounts in configuration order. It is built once at
// startup and passed down to the resolver; nothing reads it globally.
type Config struct {
	Accounts []account.Account
}

// DefaultPath returns the fixed config file location under the user's
// configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "mail-dispatch", "config.ini"), nil
}

// Load loads the configuration from the default path.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFromFile(path)
}

// LoadFromFile loads the configuration from an explicit path. Any malformed
// account section or account missing a required field fails the whole load;
// nothing is silently skipped.
func LoadFromFile(path string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Global defaults live in the DEFAULT section, which also captures
	// keys written above any section header.
	globals := file.Section(ini.DefaultSection)
	sendmailDefault := keyOr(globals, "sendmail", defaultSendmail)
	postSendmailDefault := keyOr(globals, "post_sendmail", defaultPostSendmail)

	cfg := &Config{}
	for _, sec := range file.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection || !strings.HasPrefix(name, sectionPrefix) {
			continue
		}

		// A qualifying section must be exactly the prefix, the
		// separator, and a non-empty identifier.
		before, id, ok := strings.Cut(name, sectionSeparator)
		if !ok || before != sectionPrefix || id == "" {
			return nil, fmt.Errorf("configuration file is malformed: section %q is not of the form %q", name, sectionPrefix+sectionSeparator+"<name>")
		}

		fromAddress := sec.Key("from_address").String()
		if fromAddress == "" {
			return nil, fmt.Errorf("section %q is missing required key %q", name, "from_address")
		}
		sentFolder := sec.Key("sent_folder").String()
		if sentFolder == "" {
			return nil, fmt.Errorf("section %q is missing required key %q", name, "sent_folder")
		}

		cfg.Accounts = append(cfg.Accounts, account.Account{
			Name:         id,
			FromAddress:  fromAddress,
			SentFolder:   sentFolder,
			Sendmail:     account.Interpolate(keyOr(sec, "sendmail", sendmailDefault), sentFolder),
			PostSendmail: account.Interpolate(keyOr(sec, "post_sendmail", postSendmailDefault), sentFolder),
			PostPost:     account.Interpolate(keyOr(sec, "post_post", ""), sentFolder),
		})
	}

	return cfg, nil
}

// keyOr returns the section's value for key, or fallback when the key is
// not set in that section.
func keyOr(sec *ini.Section, key, fallback string) string {
	if sec.HasKey(key) {
		return sec.Key(key).String()
	}
	return fallback
}
