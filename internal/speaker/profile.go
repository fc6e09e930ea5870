// Package speaker tracks per-speaker language usage across a session.
package speaker

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Profile accumulates resolved language samples for one diarized speaker.
type Profile struct {
	ID int

	counts  map[string]int
	seen    []string // first-seen order, breaks dominant-language ties
	last    string
	samples int
}

// NewProfile creates an empty profile for a speaker id.
func NewProfile(id int) *Profile {
	return &Profile{ID: id, counts: map[string]int{}}
}

// AddSample records one resolved language occurrence.
func (p *Profile) AddSample(language string) {
	if language == "" {
		return
	}
	if _, ok := p.counts[language]; !ok {
		p.seen = append(p.seen, language)
	}
	p.counts[language]++
	p.last = language
	p.samples++
}

// LastLanguage returns the most recently resolved language, or "".
func (p *Profile) LastLanguage() string {
	return p.last
}

// TotalSamples returns the number of recorded samples.
func (p *Profile) TotalSamples() int {
	return p.samples
}

// LanguageCounts returns a copy of the language occurrence counts.
func (p *Profile) LanguageCounts() map[string]int {
	counts := make(map[string]int, len(p.counts))
	for lang, n := range p.counts {
		counts[lang] = n
	}
	return counts
}

// Dominant returns the most used language; ties resolve to the language seen
// first so the answer is stable while counts stay level.
func (p *Profile) Dominant() string {
	best := ""
	bestCount := 0
	for _, lang := range p.seen {
		if p.counts[lang] > bestCount {
			best = lang
			bestCount = p.counts[lang]
		}
	}
	return best
}

// Label returns the display label for the speaker.
func (p *Profile) Label() string {
	return fmt.Sprintf("Speaker %d", p.ID)
}

// profileState is the persisted wire form of a profile.
type profileState struct {
	LanguageCounts map[string]int `json:"language_counts"`
	LastLanguage   string         `json:"last_language,omitempty"`
	TotalSamples   int            `json:"total_samples"`
}

// MarshalJSON serializes counts, last language, and sample total.
func (p *Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(profileState{
		LanguageCounts: p.counts,
		LastLanguage:   p.last,
		TotalSamples:   p.samples,
	})
}

// UnmarshalJSON restores a persisted profile. First-seen order is not part of
// the state file, so ties re-seed from counts (descending, then code) instead.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var state profileState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}

	p.counts = state.LanguageCounts
	if p.counts == nil {
		p.counts = map[string]int{}
	}
	p.last = state.LastLanguage
	p.samples = state.TotalSamples

	p.seen = make([]string, 0, len(p.counts))
	for lang := range p.counts {
		p.seen = append(p.seen, lang)
	}
	sort.Slice(p.seen, func(i, j int) bool {
		if p.counts[p.seen[i]] != p.counts[p.seen[j]] {
			return p.counts[p.seen[i]] > p.counts[p.seen[j]]
		}
		return p.seen[i] < p.seen[j]
	})
	return nil
}
