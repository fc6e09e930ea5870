package config

import (
	"fmt"
	"strings"

	"github.com/jcllobet/mother-in-law-decoder/internal/language"
)

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	url := strings.TrimSpace(cfg.Service.URL)
	if url == "" {
		return nil, fmt.Errorf("service.url must not be empty")
	}
	if !strings.HasPrefix(url, "ws://") && !strings.HasPrefix(url, "wss://") {
		return nil, fmt.Errorf("service.url must use the ws:// or wss:// scheme")
	}
	if strings.TrimSpace(cfg.Service.Model) == "" {
		return nil, fmt.Errorf("service.model must not be empty")
	}

	if cfg.UI.LiveLines <= 0 {
		return nil, fmt.Errorf("ui.live_lines must be > 0")
	}
	if cfg.UI.PageSize <= 0 {
		return nil, fmt.Errorf("ui.page_size must be > 0")
	}

	if len(cfg.Clipboard.Argv) == 0 {
		return nil, fmt.Errorf("clipboard_cmd must not be empty")
	}

	// Unknown codes are passed through to the service; flag them so typos
	// surface without blocking startup.
	for _, code := range cfg.Languages.Sources {
		if !language.Valid(code) {
			warnings = append(warnings, Warning{Message: fmt.Sprintf("languages.sources contains unrecognized code %q", code)})
		}
	}
	if target := cfg.Languages.Target; target != "" && !language.Valid(target) {
		warnings = append(warnings, Warning{Message: fmt.Sprintf("languages.target %q is not a recognized code", target)})
	}

	return warnings, nil
}
