// Package transcript folds ordered recognition tokens into display-ready runs.
//
// The fold is a pure function of the token sequence: feeding the same tokens
// through Reduce always yields the same runs, so every redraw can re-derive
// the whole display without accumulating incremental-rendering artifacts.
package transcript

import (
	"strings"
	"unicode"

	"github.com/jcllobet/mother-in-law-decoder/internal/token"
)

// RunKind distinguishes speaker boundaries from text spans.
type RunKind int

const (
	// RunSpeaker marks a speaker change: a paragraph break (unless it opens
	// the transcript) followed by the speaker header.
	RunSpeaker RunKind = iota
	// RunText is one contiguous original/translation span.
	RunText
)

// Run is one emitted transcript span. Once emitted, a run's content never
// changes; later tokens only append further runs.
type Run struct {
	Kind RunKind

	// RunSpeaker fields.
	Speaker int
	Opening bool

	// RunText fields.
	Original    string
	Translation string
	Language    string
	Final       bool
	ShowMarker  bool
}

// State carries the assembler's fold state between Reduce calls.
type State struct {
	target string

	speaker    *int
	original   string
	translation string
	language   string
	final      bool
	showMarker bool
	opened     bool
}

// NewState returns the initial fold state for a session target language.
func NewState(targetLanguage string) State {
	return State{target: targetLanguage, final: true}
}

// Reduce folds one token into the state, returning the runs it completed.
func Reduce(s State, tok token.Token) (State, []Run) {
	// Translating a language into itself is a no-op and must not render.
	if tok.IsTranslation() && tok.SourceLanguage != "" && tok.SourceLanguage == s.target {
		return s, nil
	}

	var runs []Run
	text := tok.Text

	if id, ok := tok.SpeakerID(); ok && (s.speaker == nil || *s.speaker != id) {
		if run, ok := flushRun(s); ok {
			runs = append(runs, run)
		}
		runs = append(runs, Run{Kind: RunSpeaker, Speaker: id, Opening: !s.opened})
		s.opened = true
		s.speaker = &id
		s.original = ""
		s.translation = ""
		s.final = true
		s.showMarker = true
		s.language = tok.Language
		text = strings.TrimLeftFunc(text, unicode.IsSpace)
	}

	if !tok.IsFinal {
		s.final = false
	}

	if tok.IsTranslation() {
		s.translation += text
		return s, runs
	}

	switch {
	case tok.Language != "" && s.language != "" && tok.Language != s.language:
		// Mid-speaker language switch: close the current pair and mark both
		// the old and the new run with their language.
		flush := s
		flush.showMarker = true
		if run, ok := flushRun(flush); ok {
			runs = append(runs, run)
		}
		s.original = ""
		s.translation = ""
		s.final = tok.IsFinal
		s.showMarker = true
	case s.translation != "":
		// A new original segment after a completed original+translation pair.
		if run, ok := flushRun(s); ok {
			runs = append(runs, run)
		}
		s.original = ""
		s.translation = ""
		s.final = tok.IsFinal
		s.showMarker = false
	}

	s.original += text
	s.language = tok.Language
	return s, runs
}

// Finish flushes whatever remains buffered at the end of the token sequence.
func Finish(s State) []Run {
	if run, ok := flushRun(s); ok {
		return []Run{run}
	}
	return nil
}

// Fold runs the full reduction over finalized history plus the latest
// non-final snapshot.
func Fold(targetLanguage string, tokens []token.Token) []Run {
	s := NewState(targetLanguage)
	var runs []Run
	for _, tok := range tokens {
		var emitted []Run
		s, emitted = Reduce(s, tok)
		runs = append(runs, emitted...)
	}
	return append(runs, Finish(s)...)
}

// flushRun converts buffered text into a run, dropping internal end-of-turn
// markers and suppressing fully empty spans.
func flushRun(s State) (Run, bool) {
	original := stripMarkers(s.original)
	translation := strings.TrimSpace(stripMarkers(s.translation))
	if original == "" && translation == "" {
		return Run{}, false
	}
	return Run{
		Kind:        RunText,
		Original:    original,
		Translation: translation,
		Language:    s.language,
		Final:       s.final,
		ShowMarker:  s.showMarker,
	}, true
}

// stripMarkers removes literal end-of-turn control markers from display text.
func stripMarkers(text string) string {
	text = strings.ReplaceAll(text, "<end>", "")
	return strings.ReplaceAll(text, "<END>", "")
}
