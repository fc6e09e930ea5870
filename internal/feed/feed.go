// Package feed maintains the realtime recognition websocket: config
// handshake, audio upload, and the token batches coming back.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jcllobet/mother-in-law-decoder/internal/token"
)

const (
	// DefaultURL is the realtime transcription endpoint.
	DefaultURL = "wss://stt-rt.soniox.com/transcribe-websocket"
	// DefaultModel is the realtime multilingual recognition model.
	DefaultModel = "stt-rt-v3"

	audioFormat = "pcm_s16le"
	sampleRate  = 16000
	numChannels = 1
)

// Journal receives tokens as they arrive. Finalized tokens are appended to
// durable history; every token is resolved first.
type Journal interface {
	Resolve(token.Token) token.Token
	AddToken(token.Token)
}

// StreamConfig controls stream initialization and recognition behavior.
type StreamConfig struct {
	URL             string
	APIKey          string
	Model           string
	SourceLanguages []string
	TargetLanguage  string
	Context         string
	DialTimeout     time.Duration

	// DebugResponseSink receives raw response frames as JSONL when set.
	DebugResponseSink io.Writer
}

// handshake is the recognition config sent as the first websocket message.
type handshake struct {
	APIKey                       string          `json:"api_key"`
	Model                        string          `json:"model"`
	AudioFormat                  string          `json:"audio_format"`
	SampleRate                   int             `json:"sample_rate"`
	NumChannels                  int             `json:"num_channels"`
	LanguageHints                []string        `json:"language_hints"`
	EnableLanguageIdentification bool            `json:"enable_language_identification"`
	EnableSpeakerDiarization     bool            `json:"enable_speaker_diarization"`
	EnableEndpointDetection      bool            `json:"enable_endpoint_detection"`
	Translation                  translationSpec `json:"translation"`
	Context                      *contextSpec    `json:"context,omitempty"`
}

type translationSpec struct {
	Type           string `json:"type"`
	TargetLanguage string `json:"target_language"`
}

type contextSpec struct {
	Text string `json:"text"`
}

// message is one server response frame.
type message struct {
	Tokens       []token.Token `json:"tokens"`
	ErrorCode    *int          `json:"error_code"`
	ErrorMessage string        `json:"error_message"`
	Finished     bool          `json:"finished"`
}

// Stream wraps one active recognition websocket lifecycle.
type Stream struct {
	conn    *websocket.Conn
	journal Journal

	recvDone chan struct{}

	writeMu    sync.Mutex
	closedSend bool

	mu        sync.Mutex
	snapshot  []token.Token // latest non-final tokens, replaced per frame
	recvErr   error
	finished  bool
	debugSink io.Writer
}

// DialStream connects, sends the recognition config, and starts the receive
// loop. Tokens flow into journal as frames arrive.
func DialStream(ctx context.Context, cfg StreamConfig, journal Journal) (*Stream, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("recognition api key is empty")
	}
	if journal == nil {
		return nil, errors.New("feed journal is nil")
	}
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}

	dialer := websocket.Dialer{HandshakeTimeout: cfg.DialTimeout}
	conn, _, err := dialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial recognition feed %q: %w", cfg.URL, err)
	}

	hello := handshake{
		APIKey:                       cfg.APIKey,
		Model:                        cfg.Model,
		AudioFormat:                  audioFormat,
		SampleRate:                   sampleRate,
		NumChannels:                  numChannels,
		LanguageHints:                cfg.SourceLanguages,
		EnableLanguageIdentification: true,
		EnableSpeakerDiarization:     true,
		EnableEndpointDetection:      true,
		Translation: translationSpec{
			Type:           "one_way",
			TargetLanguage: cfg.TargetLanguage,
		},
	}
	if text := strings.TrimSpace(cfg.Context); text != "" {
		hello.Context = &contextSpec{Text: text}
	}
	if err := conn.WriteJSON(hello); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("send recognition config: %w", err)
	}

	s := &Stream{
		conn:      conn,
		journal:   journal,
		recvDone:  make(chan struct{}),
		debugSink: cfg.DebugResponseSink,
	}
	go s.recvLoop()
	return s, nil
}

// recvLoop reads response frames until the server finishes or fails.
func (s *Stream) recvLoop() {
	defer close(s.recvDone)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return
			}
			s.mu.Lock()
			if !s.finished && s.recvErr == nil {
				s.recvErr = err
			}
			s.mu.Unlock()
			return
		}
		if done := s.apply(data); done {
			return
		}
	}
}

// apply folds one response frame into journal and snapshot state. It returns
// true when the stream is complete.
func (s *Stream) apply(data []byte) bool {
	if sink := s.debugSink; sink != nil {
		_, _ = sink.Write(append(data, '\n'))
	}

	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.mu.Lock()
		s.recvErr = fmt.Errorf("decode recognition frame: %w", err)
		s.mu.Unlock()
		return true
	}

	if msg.ErrorCode != nil {
		detail := msg.ErrorMessage
		if detail == "" {
			detail = "unknown error"
		}
		s.mu.Lock()
		s.recvErr = fmt.Errorf("recognition service error %d: %s", *msg.ErrorCode, detail)
		s.mu.Unlock()
		return true
	}

	var nonFinal []token.Token
	for _, tok := range msg.Tokens {
		if tok.Text == "" {
			continue
		}
		resolved := s.journal.Resolve(tok)
		if resolved.IsFinal {
			s.journal.AddToken(resolved)
			continue
		}
		nonFinal = append(nonFinal, resolved)
	}

	// The snapshot is replaced wholesale every frame; an empty frame clears
	// stale provisional text.
	s.mu.Lock()
	s.snapshot = nonFinal
	if msg.Finished {
		s.finished = true
	}
	s.mu.Unlock()
	return msg.Finished
}

// Snapshot returns the latest batch of non-final tokens.
func (s *Stream) Snapshot() []token.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]token.Token(nil), s.snapshot...)
}

// SendAudio sends one chunk of PCM audio over the active stream.
func (s *Stream) SendAudio(chunk []byte) error {
	if len(chunk) == 0 {
		return nil
	}

	s.mu.Lock()
	recvErr := s.recvErr
	s.mu.Unlock()
	if recvErr != nil {
		return fmt.Errorf("stream receive loop failed: %w", recvErr)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closedSend {
		return errors.New("stream already closed for sending")
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, chunk)
}

// CloseSend signals end of audio. The server flushes remaining tokens and
// sends a finished frame.
func (s *Stream) CloseSend() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closedSend {
		return nil
	}
	s.closedSend = true
	return s.conn.WriteMessage(websocket.TextMessage, nil)
}

// Wait blocks until the receive loop ends and returns its terminal error.
func (s *Stream) Wait(ctx context.Context) error {
	select {
	case <-s.recvDone:
	case <-ctx.Done():
		_ = s.conn.Close()
		return ctx.Err()
	}
	return s.Err()
}

// Done is closed when the receive loop exits.
func (s *Stream) Done() <-chan struct{} { return s.recvDone }

// Err returns the terminal receive error, if any.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recvErr
}

// Finished reports whether the server signaled end of stream.
func (s *Stream) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Close tears down the websocket immediately.
func (s *Stream) Close() error {
	s.writeMu.Lock()
	s.closedSend = true
	s.writeMu.Unlock()
	return s.conn.Close()
}
