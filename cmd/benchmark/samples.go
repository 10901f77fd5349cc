package main

// Sample represents a benchmark chat message.
type Sample struct {
	Name string
	Text string

	// ExpectTone is the label a good classifier should produce. Empty means
	// any label is acceptable.
	ExpectTone string
}

// Samples are workplace chat messages of varying length and tone.
// Used by default benchmark mode (--quality=false) for latency measurement.
var Samples = []Sample{
	{
		Name: "tiny",
		Text: "Any update?",
	},
	{
		Name: "short",
		Text: "hey can u check the build, its red again and i need it for the demo",
	},
	{
		Name: "medium",
		Text: "This is the third time the deploy broke because someone skipped the review. I am tired of cleaning this up every Friday night, we need to stop merging without approvals.",
	},
	{
		Name: "long",
		Text: `Hi team, following up on the migration. The API gateway and the notification service are on the new cluster since Monday and latency dropped by about 15%. Billing is blocked on the old database version and analytics needs fast volumes which are expensive. We need a decision on billing by Friday, otherwise the whole plan slips to next quarter. Please reply with your preference before our sync.`,
	},
}

// QualitySamples cover each tone label, including inputs that commonly
// trip a classifier.
// Used by quality mode (--quality) to eyeball rewrites and label accuracy.
var QualitySamples = []Sample{
	{
		Name:       "angry-caps",
		Text:       "WHY IS THIS STILL NOT FIXED?? I reported it two weeks ago!",
		ExpectTone: "angry",
	},
	{
		Name:       "angry-blame",
		Text:       "You broke prod again. Seriously, test your code before you push.",
		ExpectTone: "angry",
	},
	{
		Name:       "informal-slang",
		Text:       "yo gonna be late to standup, traffic is nuts lol",
		ExpectTone: "informal",
	},
	{
		Name:       "informal-short",
		Text:       "send me the doc pls",
		ExpectTone: "informal",
	},
	{
		Name:       "formal-request",
		Text:       "Dear Ms. Patel, I would be grateful if you could forward the signed contract at your earliest convenience.",
		ExpectTone: "formal",
	},
	{
		Name:       "neutral-status",
		Text:       "The report is uploaded to the shared drive.",
		ExpectTone: "neutral",
	},
	{
		Name:       "neutral-question",
		Text:       "Any update?",
		ExpectTone: "neutral",
	},
	{
		Name: "sarcasm",
		Text: "Great, another meeting that could have been an email.",
	},
	{
		Name: "mixed-language",
		Text: "pls fix asap, el cliente está esperando",
	},
	{
		Name: "emoji",
		Text: "ok 👍 will do after lunch",
	},
}
