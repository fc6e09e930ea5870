// Package session owns the durable conversation state: the resolved token
// history, per-speaker language profiles, and the on-disk layout that lets a
// session resume after a crash or restart.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/jcllobet/mother-in-law-decoder/internal/language"
	"github.com/jcllobet/mother-in-law-decoder/internal/speaker"
	"github.com/jcllobet/mother-in-law-decoder/internal/token"
)

const stateFileName = "session_state.json"

// ErrNoTokens indicates a segment save with nothing buffered.
var ErrNoTokens = errors.New("no tokens to save")

// Config describes how to open a session directory.
type Config struct {
	Name            string
	BaseDir         string
	SourceLanguages []string
	TargetLanguage  string
	FFmpegPath      string
}

// Session is the mutable conversation state for one named session. All
// methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	name   string
	dir    string
	ffmpeg string

	sources []string
	target  string

	segmentCount int
	tokens       []token.Token
	audio        []byte
	speakers     *speaker.Store

	resumed       bool
	needsLanguage bool
}

// persistedState is the session_state.json document. Field names match the
// historical on-disk format so old session directories keep resuming.
type persistedState struct {
	Name            string                      `json:"name"`
	Updated         string                      `json:"updated"`
	SourceLanguages []string                    `json:"source_languages"`
	TargetLanguage  string                      `json:"target_language"`
	SegmentCount    int                         `json:"segment_count"`
	Tokens          []token.Token               `json:"tokens"`
	SpeakerProfiles map[string]*speaker.Profile `json:"speaker_profiles"`
}

// Open creates or resumes the session directory for cfg.Name. A corrupt or
// unreadable state file is treated as a fresh session rather than an error.
func Open(cfg Config) (*Session, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("session name is required")
	}
	dir := filepath.Join(cfg.BaseDir, cfg.Name)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir %q: %w", dir, err)
	}

	s := &Session{
		name:     cfg.Name,
		dir:      dir,
		ffmpeg:   cfg.FFmpegPath,
		sources:  append([]string(nil), cfg.SourceLanguages...),
		target:   cfg.TargetLanguage,
		speakers: speaker.NewStore(),
	}
	if s.ffmpeg == "" {
		s.ffmpeg = "ffmpeg"
	}

	s.restore()

	if len(s.sources) == 0 || s.target == "" {
		s.needsLanguage = true
	}
	return s, nil
}

// restore loads session_state.json if present and well formed.
func (s *Session) restore() {
	data, err := os.ReadFile(filepath.Join(s.dir, stateFileName))
	if err != nil {
		return
	}
	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return
	}

	s.resumed = true
	s.segmentCount = state.SegmentCount
	s.tokens = state.Tokens
	if len(s.sources) == 0 {
		s.sources = state.SourceLanguages
	}
	if s.target == "" {
		s.target = state.TargetLanguage
	}
	for id, profile := range state.SpeakerProfiles {
		n, err := strconv.Atoi(id)
		if err != nil || profile == nil {
			continue
		}
		profile.ID = n
		s.speakers.Put(profile)
	}
}

// Name returns the session name.
func (s *Session) Name() string { return s.name }

// Dir returns the session directory path.
func (s *Session) Dir() string { return s.dir }

// Resumed reports whether prior state was loaded from disk.
func (s *Session) Resumed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumed
}

// NeedsLanguages reports whether the session is missing its language
// configuration and cannot stream until SetLanguages is called.
func (s *Session) NeedsLanguages() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.needsLanguage
}

// SetLanguages records the source and target languages for the session.
func (s *Session) SetLanguages(sources []string, target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources = append([]string(nil), sources...)
	s.target = target
	s.needsLanguage = len(s.sources) == 0 || s.target == ""
}

// SourceLanguages returns a copy of the configured source languages.
func (s *Session) SourceLanguages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sources...)
}

// TargetLanguage returns the configured translation target.
func (s *Session) TargetLanguage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// SegmentCount returns how many segments have been saved so far.
func (s *Session) SegmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.segmentCount
}

// Resolve stabilizes the token's language against the speaker's history and
// returns the token tagged with its resolved language. The raw language field
// is left untouched; display logic keys off it directly.
func (s *Session) Resolve(tok token.Token) token.Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	var profile *speaker.Profile
	if id, ok := tok.SpeakerID(); ok {
		profile = s.speakers.Get(id)
	}
	tok.ResolvedLanguage = language.Resolve(tok, profile)
	return tok
}

// AddToken appends one finalized token to the session history.
func (s *Session) AddToken(tok token.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = append(s.tokens, tok)
}

// AddFrame appends captured PCM bytes to the current segment's audio buffer.
func (s *Session) AddFrame(pcm []byte) {
	if len(pcm) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audio = append(s.audio, pcm...)
}

// Tokens returns a copy of the finalized token history.
func (s *Session) Tokens() []token.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]token.Token(nil), s.tokens...)
}

// HasTokens reports whether any finalized tokens are buffered.
func (s *Session) HasTokens() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens) > 0
}

// SpeakerProfile returns the profile for id, if one exists.
func (s *Session) SpeakerProfile(id int) (*speaker.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speakers.Lookup(id)
}

// SpeakerIDs returns the known speaker ids in ascending order.
func (s *Session) SpeakerIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speakers.IDs()
}

// SaveState writes session_state.json atomically.
func (s *Session) SaveState() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveStateLocked()
}

func (s *Session) saveStateLocked() error {
	profiles := make(map[string]*speaker.Profile, s.speakers.Len())
	for _, id := range s.speakers.IDs() {
		if p, ok := s.speakers.Lookup(id); ok {
			profiles[strconv.Itoa(id)] = p
		}
	}

	state := persistedState{
		Name:            s.name,
		Updated:         time.Now().Format(time.RFC3339),
		SourceLanguages: s.sources,
		TargetLanguage:  s.target,
		SegmentCount:    s.segmentCount,
		Tokens:          s.tokens,
		SpeakerProfiles: profiles,
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}

	path := filepath.Join(s.dir, stateFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace session state: %w", err)
	}
	return nil
}
