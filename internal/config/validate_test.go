package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDefaultsPass(t *testing.T) {
	warnings, err := Validate(Default())
	require.NoError(t, err)
	require.Empty(t, warnings)
}

func TestValidateRejectsBadService(t *testing.T) {
	cfg := Default()
	cfg.Service.URL = ""
	_, err := Validate(cfg)
	require.ErrorContains(t, err, "service.url")

	cfg = Default()
	cfg.Service.URL = "https://not-a-socket"
	_, err = Validate(cfg)
	require.ErrorContains(t, err, "ws://")

	cfg = Default()
	cfg.Service.Model = " "
	_, err = Validate(cfg)
	require.ErrorContains(t, err, "service.model")
}

func TestValidateRejectsBadUIDimensions(t *testing.T) {
	cfg := Default()
	cfg.UI.LiveLines = 0
	_, err := Validate(cfg)
	require.ErrorContains(t, err, "ui.live_lines")

	cfg = Default()
	cfg.UI.PageSize = -1
	_, err = Validate(cfg)
	require.ErrorContains(t, err, "ui.page_size")
}

func TestValidateRejectsEmptyClipboardCommand(t *testing.T) {
	cfg := Default()
	cfg.Clipboard = CommandConfig{}
	_, err := Validate(cfg)
	require.ErrorContains(t, err, "clipboard_cmd")
}

func TestValidateWarnsOnUnknownLanguages(t *testing.T) {
	cfg := Default()
	cfg.Languages.Sources = []string{"es", "zz"}
	cfg.Languages.Target = "en"

	warnings, err := Validate(cfg)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Message, "zz")
}
