package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToHelp(t *testing.T) {
	parsed, err := Parse(nil)
	require.NoError(t, err)
	require.True(t, parsed.ShowHelp)
	require.Equal(t, CommandHelp, parsed.Command)
}

func TestParseCommandWithConfig(t *testing.T) {
	parsed, err := Parse([]string{"--config", "/tmp/decoder.conf", "doctor"})
	require.NoError(t, err)
	require.Equal(t, CommandDoctor, parsed.Command)
	require.Equal(t, "/tmp/decoder.conf", parsed.ConfigPath)
	require.False(t, parsed.ShowHelp)
}

func TestParseRunWithSessionFlags(t *testing.T) {
	parsed, err := Parse([]string{
		"run",
		"-s", "kitchen",
		"--source-languages", "es, en",
		"--target-language", "en",
		"--device", "alsa_input.usb-mic",
		"--context", "Marta, Barcelona, paella",
	})
	require.NoError(t, err)
	require.Equal(t, CommandRun, parsed.Command)
	require.Equal(t, "kitchen", parsed.Session)
	require.Equal(t, []string{"es", "en"}, parsed.SourceLanguages)
	require.Equal(t, "en", parsed.TargetLanguage)
	require.Equal(t, "alsa_input.usb-mic", parsed.Device)
	require.Equal(t, "Marta, Barcelona, paella", parsed.Context)
}

func TestParseArgMatrix(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  string
		wantCmd  Command
		wantHelp bool
		wantPath string
	}{
		{
			name:     "help short flag",
			args:     []string{"-h"},
			wantCmd:  CommandHelp,
			wantHelp: true,
		},
		{
			name:     "help long flag",
			args:     []string{"--help"},
			wantCmd:  CommandHelp,
			wantHelp: true,
		},
		{
			name:     "version flag",
			args:     []string{"--version"},
			wantCmd:  CommandVersion,
			wantHelp: false,
		},
		{
			name:     "config after command",
			args:     []string{"status", "--config", "/tmp/cfg"},
			wantCmd:  CommandStatus,
			wantHelp: false,
			wantPath: "/tmp/cfg",
		},
		{
			name:    "missing config path",
			args:    []string{"--config"},
			wantErr: "requires a value",
		},
		{
			name:    "missing session name",
			args:    []string{"run", "--session"},
			wantErr: "requires a value",
		},
		{
			name:    "empty source languages",
			args:    []string{"run", "--source-languages", " , "},
			wantErr: "at least one language code",
		},
		{
			name:    "unknown flag",
			args:    []string{"--bogus"},
			wantErr: "unknown flag",
		},
		{
			name:    "unknown command",
			args:    []string{"bogus"},
			wantErr: "unknown command",
		},
		{
			name:    "two commands",
			args:    []string{"doctor", "status"},
			wantErr: "unexpected second command",
		},
		{
			name:     "valid save command",
			args:     []string{"save"},
			wantCmd:  CommandSave,
			wantHelp: false,
		},
		{
			name:     "valid stop with config",
			args:     []string{"--config", "/tmp/cfg", "stop"},
			wantCmd:  CommandStop,
			wantHelp: false,
			wantPath: "/tmp/cfg",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := Parse(tc.args)
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.wantCmd, parsed.Command)
			require.Equal(t, tc.wantHelp, parsed.ShowHelp)
			require.Equal(t, tc.wantPath, parsed.ConfigPath)
		})
	}
}

func TestHelpTextIncludesCoreCommands(t *testing.T) {
	text := HelpText("decoder")
	require.Contains(t, text, "run")
	require.Contains(t, text, "save")
	require.Contains(t, text, "stop")
	require.Contains(t, text, "doctor")
	require.Contains(t, text, "--config PATH")
	require.Contains(t, text, "--source-languages")
}
