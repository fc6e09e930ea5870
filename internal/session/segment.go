package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/jcllobet/mother-in-law-decoder/internal/audio"
	"github.com/jcllobet/mother-in-law-decoder/internal/token"
	"github.com/jcllobet/mother-in-law-decoder/internal/transcript"
)

const (
	segmentTimestampFormat = "20060102_150405"
	ffmpegTimeout          = 60 * time.Second

	sampleRate = 16000
	channels   = 1
)

// SegmentResult describes the files written by one SaveSegment call.
type SegmentResult struct {
	Index     int
	JSONPath  string
	TextPath  string
	AudioPath string
}

// SaveSegment writes the full token history and the buffered audio as a
// numbered segment, bumps the segment counter, and persists the session
// state. Token history is never truncated, so each segment snapshot is a
// superset of the previous one; only the audio buffer is cleared. The raw
// capture is written as WAV and compressed to MP3 when ffmpeg is available;
// without ffmpeg the WAV is kept as is.
func (s *Session) SaveSegment(ctx context.Context) (SegmentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tokens) == 0 {
		return SegmentResult{}, ErrNoTokens
	}

	index := s.segmentCount + 1
	stamp := time.Now().Format(segmentTimestampFormat)
	base := filepath.Join(s.dir, fmt.Sprintf("segment_%03d_%s", index, stamp))
	result := SegmentResult{Index: index}

	tokenData, err := json.MarshalIndent(segmentDocument{
		Session:        s.name,
		Segment:        index,
		TargetLanguage: s.target,
		Tokens:         s.tokens,
	}, "", "  ")
	if err != nil {
		return SegmentResult{}, fmt.Errorf("encode segment tokens: %w", err)
	}
	result.JSONPath = base + ".json"
	if err := os.WriteFile(result.JSONPath, tokenData, 0o600); err != nil {
		return SegmentResult{}, fmt.Errorf("write segment tokens: %w", err)
	}

	rendered := transcript.RenderPlain(transcript.Fold(s.target, s.tokens))
	result.TextPath = base + ".txt"
	if err := os.WriteFile(result.TextPath, []byte(rendered+"\n"), 0o600); err != nil {
		return SegmentResult{}, fmt.Errorf("write segment transcript: %w", err)
	}

	if len(s.audio) > 0 {
		audioPath, err := s.writeAudioLocked(ctx, base)
		if err != nil {
			return SegmentResult{}, err
		}
		result.AudioPath = audioPath
	}

	s.audio = nil
	s.segmentCount = index

	if err := s.saveStateLocked(); err != nil {
		return result, err
	}
	return result, nil
}

// segmentDocument is the segment_NNN_*.json payload.
type segmentDocument struct {
	Session        string        `json:"session"`
	Segment        int           `json:"segment"`
	TargetLanguage string        `json:"target_language"`
	Tokens         []token.Token `json:"tokens"`
}

// writeAudioLocked writes the WAV file and attempts MP3 compression.
func (s *Session) writeAudioLocked(ctx context.Context, base string) (string, error) {
	wavPath := base + ".wav"
	file, err := os.OpenFile(wavPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("open segment audio %q: %w", wavPath, err)
	}
	if err := audio.WritePCM16WAV(file, s.audio, sampleRate, channels); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("write segment audio: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close segment audio: %w", err)
	}

	mp3Path := base + ".mp3"
	if err := s.compressToMP3(ctx, wavPath, mp3Path); err != nil {
		// Compression is best effort; keep the WAV when ffmpeg is missing
		// or fails.
		return wavPath, nil
	}
	_ = os.Remove(wavPath)
	return mp3Path, nil
}

// compressToMP3 shells out to ffmpeg to convert the segment WAV.
func (s *Session) compressToMP3(ctx context.Context, wavPath, mp3Path string) error {
	ctx, cancel := context.WithTimeout(ctx, ffmpegTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.ffmpeg,
		"-y", "-i", wavPath,
		"-codec:a", "libmp3lame",
		"-qscale:a", "2",
		mp3Path,
	)
	if err := cmd.Run(); err != nil {
		_ = os.Remove(mp3Path)
		return fmt.Errorf("ffmpeg convert %q: %w", wavPath, err)
	}
	return nil
}
