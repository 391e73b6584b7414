package completion

import (
	"strings"

	"github.com/sleepstars/fakeopenai/internal/models"
)

// Canned replies. These exact strings are relied on by test suites
// built against this fixture; do not reword them.
const (
	contentNoUserMessage  = "Hello! I'm a helpful assistant."
	contentNameAndCountry = "Nice to meet you, Ifta. Your name is Ifta. The capital of Bangladesh is Dhaka."
	contentName           = "Nice to meet you, Ifta. Your name is Ifta."
	contentCountry        = "As for the capital of Bangladesh, it's Dhaka."
	contentGreeting       = "Hello! How can I help you today?"
	contentDefault        = "I understand your question. Let me provide a helpful response."
)

// GenerateContent derives a deterministic reply from the conversation
// history. Only the last user message is inspected, lower-cased, and
// matched against substrings in a fixed priority order; the first
// match wins.
func GenerateContent(messages []models.ChatMessage) string {
	var lastUser string
	found := false
	for _, msg := range messages {
		if msg.Role == models.RoleUser {
			lastUser = msg.Text()
			found = true
		}
	}
	if !found {
		return contentNoUserMessage
	}

	lastUser = strings.ToLower(lastUser)
	switch {
	case strings.Contains(lastUser, "name") && strings.Contains(lastUser, "bangladesh"):
		return contentNameAndCountry
	case strings.Contains(lastUser, "name"):
		return contentName
	case strings.Contains(lastUser, "bangladesh"):
		return contentCountry
	case strings.Contains(lastUser, "hello"):
		return contentGreeting
	default:
		return contentDefault
	}
}
