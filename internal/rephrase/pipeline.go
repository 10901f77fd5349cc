// Package rephrase turns a raw chat message into a polite workplace message
// in two sequential completion calls: tone classification, then rewrite.
package rephrase

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/TEJA0811/Rephrase.AI/internal/metrics"
	"github.com/TEJA0811/Rephrase.AI/internal/tone"
)

// Result is the outcome for one message.
type Result struct {
	Original  string        `json:"original"`
	Tone      tone.Category `json:"tone"`
	Rephrased string        `json:"rephrased"`
}

// Pipeline holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	classifier *Classifier
	composer   *Composer
	log        *zap.Logger
}

func NewPipeline(classifier *Classifier, composer *Composer, log *zap.Logger) *Pipeline {
	return &Pipeline{classifier: classifier, composer: composer, log: log}
}

// Run trims message, classifies it, then rewrites it. A classification
// failure returns before any rewrite call is made.
func (p *Pipeline) Run(ctx context.Context, message string) (Result, error) {
	original := strings.TrimSpace(message)
	metrics.InputChars.Observe(float64(utf8.RuneCountInString(original)))

	category, err := p.classifier.Classify(ctx, original)
	if err != nil {
		return Result{}, err
	}

	rephrased, err := p.composer.Rephrase(ctx, original, category)
	if err != nil {
		return Result{}, err
	}

	p.log.Debug("rephrased",
		zap.Stringer("tone", category),
		zap.Int("in_chars", len(original)),
		zap.Int("out_chars", len(rephrased)),
	)
	return Result{Original: original, Tone: category, Rephrased: rephrased}, nil
}
