package language

import (
	"github.com/jcllobet/mother-in-law-decoder/internal/speaker"
	"github.com/jcllobet/mother-in-law-decoder/internal/token"
)

// Default is the fallback language when neither the token nor the speaker's
// history carries one.
const Default = "en"

// ConfidenceThreshold is the identification confidence below which a
// speaker's history outweighs the token's own language tag.
const ConfidenceThreshold = 0.5

// Resolve stabilizes the language attached to one token. Low-confidence
// readings defer to the speaker's last resolved language without recording a
// sample, so a momentary misidentification cannot pollute the speaker's
// historical distribution. Samples are recorded only for finalized tokens;
// provisional tokens are re-delivered on every snapshot frame and would
// inflate the distribution. profile may be nil when the token carries no
// speaker id.
func Resolve(tok token.Token, profile *speaker.Profile) string {
	if _, ok := tok.SpeakerID(); !ok || profile == nil {
		if tok.Language != "" {
			return tok.Language
		}
		return Default
	}

	last := profile.LastLanguage()
	if tok.Confidence() < ConfidenceThreshold && last != "" {
		return last
	}

	if tok.Language != "" {
		if tok.IsFinal {
			profile.AddSample(tok.Language)
		}
		return tok.Language
	}

	if last != "" {
		return last
	}
	return Default
}
