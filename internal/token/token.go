// Package token defines the recognized-speech fragment exchanged between the
// feed, the session journal, and the transcript assembler.
package token

// Translation role values emitted by the recognition service.
const (
	StatusOriginal    = "original"
	StatusTranslation = "translation"
)

// Token is one recognized text fragment with its recognition metadata.
// Finalized tokens are immutable once appended to a session journal.
type Token struct {
	Text               string   `json:"text"`
	Speaker            *int     `json:"speaker,omitempty"`
	Language           string   `json:"language,omitempty"`
	LanguageConfidence *float64 `json:"language_confidence,omitempty"`
	SourceLanguage     string   `json:"source_language,omitempty"`
	TranslationStatus  string   `json:"translation_status,omitempty"`
	IsFinal            bool     `json:"is_final"`

	// ResolvedLanguage is computed by the language resolver before the token
	// reaches the session journal; it is persisted alongside the raw fields.
	ResolvedLanguage string `json:"resolved_language,omitempty"`
}

// IsTranslation reports whether the token carries translated text.
func (t Token) IsTranslation() bool {
	return t.TranslationStatus == StatusTranslation
}

// Confidence returns the language-identification confidence, treating an
// absent value as full confidence.
func (t Token) Confidence() float64 {
	if t.LanguageConfidence == nil {
		return 1.0
	}
	return *t.LanguageConfidence
}

// SpeakerID returns the diarized speaker id and whether one is present.
func (t Token) SpeakerID() (int, bool) {
	if t.Speaker == nil {
		return 0, false
	}
	return *t.Speaker, true
}
