package transcript

import (
	"fmt"
	"strings"
)

// SpeakerLabel formats the default display label for a speaker id.
func SpeakerLabel(id int) string {
	return fmt.Sprintf("Speaker %d", id)
}

// RenderPlain renders runs as uncolored text with translations parenthesized
// inline. Used for segment transcript files and clipboard export.
func RenderPlain(runs []Run) string {
	var b strings.Builder
	for _, run := range runs {
		switch run.Kind {
		case RunSpeaker:
			if !run.Opening {
				b.WriteString("\n\n")
			}
			b.WriteString(SpeakerLabel(run.Speaker))
			b.WriteString(": ")
		case RunText:
			b.WriteString(run.Original)
			if run.Translation != "" {
				fmt.Fprintf(&b, " (%s)", run.Translation)
			}
		}
	}
	return b.String()
}
