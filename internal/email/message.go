// Package email defines the message data model used throughout mail-dispatch.
package email

// Message represents one outgoing mail message read from standard input.
//
// Raw holds the exact original bytes and is what gets piped to the hook
// commands. It is never reserialized from a parsed structure, so the
// message keeps its original formatting.
type Message struct {
	Raw  []byte
	From string
}
