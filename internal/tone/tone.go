// Package tone defines the closed set of tone categories a message can be
// classified into.
package tone

import (
	"strings"

	"github.com/samber/lo"
)

// Category is the emotional register of a message.
type Category string

const (
	Angry    Category = "angry"
	Informal Category = "informal"
	Formal   Category = "formal"
	Neutral  Category = "neutral"
)

// Fallback is substituted for any classifier output outside Categories.
const Fallback = Neutral

// Categories lists every valid category, in prompt order.
var Categories = []Category{Angry, Informal, Formal, Neutral}

// Valid reports whether c is a member of Categories.
func (c Category) Valid() bool {
	return lo.Contains(Categories, c)
}

func (c Category) String() string { return string(c) }

// Normalize lower-cases and trims raw model output and maps it onto the
// category set. Output that is not an exact member yields Fallback and
// false; the result is always a valid Category.
func Normalize(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c.Valid() {
		return c, true
	}
	return Fallback, false
}

// Names returns the category names joined for use inside a prompt.
func Names(sep string) string {
	return strings.Join(lo.Map(Categories, func(c Category, _ int) string {
		return string(c)
	}), sep)
}
