// Package textproc holds the adapters for the external text services:
// grammar correction, spell checking, translation, and tone detection.
//
// Every adapter shares the same failure contract: it never returns an
// error to the caller. A failed grammar, spell, or translation call
// degrades to returning the input text unchanged; a failed tone call
// degrades to ToneUnknown. Failures are logged and absorbed exactly
// once — no retries.
package textproc

import "context"

// Tone is a coarse sentiment label derived from a polarity score.
type Tone string

const (
	TonePositive Tone = "Positive"
	ToneNegative Tone = "Negative"
	ToneNeutral  Tone = "Neutral"
	ToneUnknown  Tone = "Unknown"
)

// Polarity thresholds. The boundaries are exclusive: a polarity of
// exactly ±0.2 is Neutral.
const (
	positiveThreshold = 0.2
	negativeThreshold = -0.2
)

// ToneFromPolarity maps a polarity score to a tone label.
func ToneFromPolarity(polarity float64) Tone {
	switch {
	case polarity > positiveThreshold:
		return TonePositive
	case polarity < negativeThreshold:
		return ToneNegative
	default:
		return ToneNeutral
	}
}

// GrammarCorrector corrects grammar in the given language.
type GrammarCorrector interface {
	Correct(ctx context.Context, text, lang string) string
}

// SpellCorrector corrects spelling word by word; the corrected words
// are re-joined with single spaces.
type SpellCorrector interface {
	Correct(ctx context.Context, text string) string
}

// Translator translates text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) string
}

// ToneDetector classifies the sentiment of text.
type ToneDetector interface {
	Detect(ctx context.Context, text string) Tone
}
