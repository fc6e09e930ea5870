package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandRun     Command = "run"
	CommandSave    Command = "save"
	CommandStop    Command = "stop"
	CommandStatus  Command = "status"
	CommandDevices Command = "devices"
	CommandDoctor  Command = "doctor"
	CommandVersion Command = "version"
	CommandHelp    Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandRun:     {},
	CommandSave:    {},
	CommandStop:    {},
	CommandStatus:  {},
	CommandDevices: {},
	CommandDoctor:  {},
	CommandVersion: {},
	CommandHelp:    {},
}

type Parsed struct {
	Command         Command
	ConfigPath      string
	Session         string
	SourceLanguages []string
	TargetLanguage  string
	Device          string
	Context         string
	ShowHelp        bool
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}
	haveCommand := false

	takeValue := func(i *int, flag string) (string, error) {
		*i++
		if *i >= len(args) {
			return "", fmt.Errorf("%s requires a value", flag)
		}
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
			haveCommand = true
		case "--config":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.ConfigPath = value
		case "-s", "--session":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.Session = value
		case "--source-languages":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.SourceLanguages = splitLanguages(value)
			if len(parsed.SourceLanguages) == 0 {
				return Parsed{}, errors.New("--source-languages requires at least one language code")
			}
		case "--target-language":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.TargetLanguage = strings.TrimSpace(value)
		case "--device":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.Device = value
		case "--context":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.Context = value
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			if _, ok := validCommands[cmd]; !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}
			if haveCommand {
				return Parsed{}, fmt.Errorf("unexpected second command %q", arg)
			}

			parsed.Command = cmd
			parsed.ShowHelp = cmd == CommandHelp
			haveCommand = true
		}
	}

	return parsed, nil
}

func splitLanguages(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [flags] <command>

Commands:
  run       Start a live transcription session
  save      Ask the running session to save the current segment
  stop      Ask the running session to save and exit
  status    Print the running session's state
  devices   List available input devices
  doctor    Run configuration and environment checks
  version   Print version information
  help      Show this help

Flags:
  --config PATH            Config file path (default: $XDG_CONFIG_HOME/mil-decoder/config.conf)
  -s, --session NAME       Session name to create or resume (run)
  --source-languages LIST  Comma-separated language codes to listen for (run)
  --target-language CODE   Language to translate into (run)
  --device ID              Input device ID override (run)
  --context TEXT           Recognition context hint, e.g. names and jargon (run)
  -h, --help               Show help
  --version                Show version
`, binaryName)
}
