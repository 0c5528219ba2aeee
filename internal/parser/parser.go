// Package parser extracts the sender address from a raw RFC 5322 message.
package parser

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"

	"github.com/shineum/mail-dispatch/internal/email"
)

// ErrMalformed is returned when the message headers cannot be parsed or the
// From header is missing.
var ErrMalformed = errors.New("message is malformed")

// Parse reads the headers of a raw message and returns it together with the
// bare sender address (display name stripped). The raw bytes are carried
// through untouched.
func Parse(raw []byte) (*email.Message, error) {
	entity, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		// Unknown charsets only affect body decoding; anything else
		// means the headers themselves are unusable.
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	header := mail.Header{Header: entity.Header}
	from, err := header.AddressList("From")
	if err != nil {
		return nil, fmt.Errorf("%w: invalid From header: %v", ErrMalformed, err)
	}
	if len(from) == 0 {
		return nil, fmt.Errorf("%w: missing From header", ErrMalformed)
	}

	return &email.Message{
		Raw:  raw,
		From: from[0].Address,
	}, nil
}
