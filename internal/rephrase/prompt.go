package rephrase

import (
	"fmt"
	"strings"

	"github.com/TEJA0811/Rephrase.AI/internal/tone"
)

// Example is a worked input/output pair embedded in the rephrase prompt.
type Example struct {
	Input  string
	Output string
}

// Examples anchor the style of every rewrite.
var Examples = []Example{
	{"Any update?", "Just checking in—do you have any updates when you get a chance?"},
	{"Fix it.", "Could you please make the necessary changes when you have a moment?"},
	{"No.", "Unfortunately, I’ll have to pass for now due to current priorities."},
	{"Why is this wrong?", "Could you help me understand what might have caused this issue?"},
}

var guidelines = []string{
	"If angry / harsh → soften and make collaborative.",
	"If blunt / short → add polite context without fluff.",
	"If too informal → make slightly more professional (no slang / emojis).",
	"If unclear → gently clarify while staying concise.",
}

// ClassifyPrompt asks for exactly one category name and nothing else.
func ClassifyPrompt(message string) string {
	return "You are a tone classifier. " +
		"Categories: " + tone.Names(", ") + ".\n" +
		"Return ONLY the category name.\n\n" +
		"Message:\n" + message
}

// RephrasePrompt embeds the detected tone, the style guide, the few-shot
// examples and, last, the literal original message.
func RephrasePrompt(message string, t tone.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The following message is labeled as %q. ", string(t))
	b.WriteString("Rewrite it so it sounds friendly, polite, and professional for a workplace chat (Slack / Teams). ")
	b.WriteString("Keep it SHORT — one or two lines — and avoid email phrases like 'Dear', 'Thanks', or sign‑offs. ")
	b.WriteString("\n\nGuidelines:\n")
	for _, g := range guidelines {
		b.WriteString("• " + g + "\n")
	}
	b.WriteString("\nExamples:\n")
	for _, ex := range Examples {
		b.WriteString(ex.Input + " → " + ex.Output + "\n")
	}
	fmt.Fprintf(&b, "\nNow rewrite this message:\n\"%s\"", message)
	return b.String()
}
