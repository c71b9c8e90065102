package core

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Messages relayed from SMS bridges often arrive wrapped in a sender
// envelope, e.g. "From: +15551234567 - Hi, I need a chef".
var envelopePattern = regexp.MustCompile(`(?is)^\s*from:\s+(\S+)\s+-\s+(.*)$`)

// UnknownSender is reported when a message carries no sender envelope
const UnknownSender = "Unknown"

// Normalize splits a raw message into sender and body. When no envelope is
// present the sender is UnknownSender and the body is returned unchanged.
func Normalize(rawText string) (sender, content string) {
	if m := envelopePattern.FindStringSubmatch(rawText); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	return UnknownSender, rawText
}

// matchText produces the lowercased form of the content used for keyword
// matching. Unicode is NFC-normalized first so composed and decomposed
// forms of the same text match the same terms.
func matchText(content string) string {
	return strings.ToLower(norm.NFC.String(content))
}
