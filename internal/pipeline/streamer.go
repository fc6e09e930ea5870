// Package pipeline owns one end-to-end capture -> recognition -> session
// streaming instance.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jcllobet/mother-in-law-decoder/internal/audio"
	"github.com/jcllobet/mother-in-law-decoder/internal/config"
	"github.com/jcllobet/mother-in-law-decoder/internal/feed"
	"github.com/jcllobet/mother-in-law-decoder/internal/session"
	"github.com/jcllobet/mother-in-law-decoder/internal/token"
)

// Streamer wires audio capture into the recognition feed and the session
// journal for one live run.
type Streamer struct {
	cfg    config.Config
	logger *slog.Logger
	sess   *session.Session
	apiKey string

	mu      sync.Mutex
	started bool

	selection audio.Selection
	capture   *audio.Capture
	stream    *feed.Stream

	sendErrCh chan error

	debugWireFile *os.File
}

// NewStreamer constructs a streamer from runtime config and an open session.
func NewStreamer(cfg config.Config, logger *slog.Logger, sess *session.Session, apiKey string) *Streamer {
	return &Streamer{cfg: cfg, logger: logger, sess: sess, apiKey: apiKey}
}

// Start resolves device selection, dials the recognition feed, and starts
// audio capture.
func (s *Streamer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("streamer already started")
	}

	selection, err := audio.SelectDevice(ctx, s.cfg.Audio.Input, s.cfg.Audio.Fallback)
	if err != nil {
		return err
	}
	s.selection = selection
	if selection.Warning != "" {
		s.logWarn(selection.Warning)
	}

	if s.cfg.Debug.EnableWireDump {
		file, ferr := createDebugFile("wire", "jsonl")
		if ferr != nil {
			return ferr
		}
		s.debugWireFile = file
	}

	stream, err := feed.DialStream(ctx, feed.StreamConfig{
		URL:             s.cfg.Service.URL,
		APIKey:          s.apiKey,
		Model:           s.cfg.Service.Model,
		SourceLanguages: s.sess.SourceLanguages(),
		TargetLanguage:  s.sess.TargetLanguage(),
		Context:         s.cfg.Service.Context,
		DialTimeout:     5 * time.Second,
		DebugResponseSink: func() *os.File {
			if s.debugWireFile == nil {
				return nil
			}
			return s.debugWireFile
		}(),
	}, s.sess)
	if err != nil {
		s.closeDebugArtifactsLocked()
		return err
	}
	s.stream = stream

	capture, err := audio.StartCapture(ctx, selection.Device)
	if err != nil {
		_ = stream.Close()
		s.closeDebugArtifactsLocked()
		return err
	}
	s.capture = capture

	s.sendErrCh = make(chan error, 1)
	go s.sendLoop()

	s.started = true
	return nil
}

// Snapshot returns the feed's latest non-final tokens for display.
func (s *Streamer) Snapshot() []token.Token {
	s.mu.Lock()
	stream := s.stream
	s.mu.Unlock()
	if stream == nil {
		return nil
	}
	return stream.Snapshot()
}

// Err returns the terminal feed error, if any.
func (s *Streamer) Err() error {
	s.mu.Lock()
	stream := s.stream
	s.mu.Unlock()
	if stream == nil {
		return nil
	}
	return stream.Err()
}

// Done returns a channel closed when the feed's receive loop exits.
func (s *Streamer) Done() <-chan struct{} {
	s.mu.Lock()
	stream := s.stream
	s.mu.Unlock()
	if stream == nil {
		return nil
	}
	return stream.Done()
}

// DeviceDescription returns the selected capture device for status display.
func (s *Streamer) DeviceDescription() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return describeDevice(s.selection.Device)
}

// Stop halts capture, signals end of audio, and drains the feed so trailing
// tokens land in the session before the final segment save.
func (s *Streamer) Stop(ctx context.Context) error {
	s.mu.Lock()
	started := s.started
	capture := s.capture
	stream := s.stream
	sendErrCh := s.sendErrCh
	s.mu.Unlock()

	if !started || capture == nil || stream == nil {
		return fmt.Errorf("streamer not started")
	}

	_ = capture.Stop()

	var sendErr error
	if sendErrCh != nil {
		sendErr = <-sendErrCh
	}
	if sendErr != nil {
		_ = stream.Close()
		s.writeDebugAudio(capture.RawPCM())
		s.closeDebugArtifacts()
		return fmt.Errorf("send audio stream: %w", sendErr)
	}

	if err := stream.CloseSend(); err != nil {
		_ = stream.Close()
		s.closeDebugArtifacts()
		return fmt.Errorf("signal end of audio: %w", err)
	}

	drainCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	err := stream.Wait(drainCtx)
	_ = stream.Close()

	s.writeDebugAudio(capture.RawPCM())
	s.closeDebugArtifacts()

	if err != nil {
		return fmt.Errorf("drain recognition feed: %w", err)
	}
	return nil
}

// Cancel stops capture and tears the feed down without draining.
func (s *Streamer) Cancel(_ context.Context) error {
	s.mu.Lock()
	capture := s.capture
	stream := s.stream
	s.mu.Unlock()

	if capture != nil {
		_ = capture.Stop()
		s.writeDebugAudio(capture.RawPCM())
	}
	if stream != nil {
		_ = stream.Close()
	}
	s.closeDebugArtifacts()
	return nil
}

// sendLoop forwards capture chunks to the feed and the session audio buffer,
// reporting the first send failure.
func (s *Streamer) sendLoop() {
	s.mu.Lock()
	capture := s.capture
	stream := s.stream
	errCh := s.sendErrCh
	s.mu.Unlock()

	if errCh == nil {
		return
	}

	sent := false
	sendResult := func(err error) {
		if sent {
			return
		}
		errCh <- err
		sent = true
	}
	defer sendResult(nil)

	for chunk := range capture.Chunks() {
		if len(chunk) == 0 {
			continue
		}
		s.sess.AddFrame(chunk)
		if err := stream.SendAudio(chunk); err != nil {
			_ = capture.Stop()
			sendResult(err)
			return
		}
	}
}

// describeDevice formats device metadata for logs and status display.
func describeDevice(device audio.Device) string {
	description := strings.TrimSpace(device.Description)
	id := strings.TrimSpace(device.ID)
	if description == "" {
		return id
	}
	if id == "" {
		return description
	}
	return fmt.Sprintf("%s (%s)", description, id)
}

// logWarn emits warning-level logs when logger is configured.
func (s *Streamer) logWarn(message string) {
	if s.logger == nil {
		return
	}
	s.logger.Warn(message)
}

// createDebugFile creates timestamped debug artifacts under state/mil-decoder/debug.
func createDebugFile(prefix string, extension string) (*os.File, error) {
	stateDir, err := resolveStateDir()
	if err != nil {
		return nil, err
	}
	debugDir := filepath.Join(stateDir, "mil-decoder", "debug")
	if err := os.MkdirAll(debugDir, 0o700); err != nil {
		return nil, fmt.Errorf("create debug dir: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405.000")
	path := filepath.Join(debugDir, fmt.Sprintf("%s-%s.%s", prefix, timestamp, extension))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open debug file %q: %w", path, err)
	}
	return file, nil
}

// resolveStateDir returns the XDG_STATE_HOME fallback path for debug artifacts.
func resolveStateDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory for state: %w", err)
	}
	return filepath.Join(home, ".local", "state"), nil
}

// closeDebugArtifacts closes open debug sinks.
func (s *Streamer) closeDebugArtifacts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeDebugArtifactsLocked()
}

func (s *Streamer) closeDebugArtifactsLocked() {
	if s.debugWireFile != nil {
		_ = s.debugWireFile.Close()
		s.debugWireFile = nil
	}
}

// writeDebugAudio writes raw PCM to WAV when debug.audio_dump is enabled.
func (s *Streamer) writeDebugAudio(rawPCM []byte) {
	if !s.cfg.Debug.EnableAudioDump || len(rawPCM) == 0 {
		return
	}

	file, err := createDebugFile("audio", "wav")
	if err != nil {
		s.logWarn(fmt.Sprintf("unable to create debug audio dump: %v", err))
		return
	}
	defer file.Close()

	if err := audio.WritePCM16WAV(file, rawPCM, 16000, 1); err != nil {
		s.logWarn(fmt.Sprintf("unable to write debug audio dump: %v", err))
	}
}
