package config

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	clipboard := "wl-copy --trim-newline"

	return Config{
		Service: ServiceConfig{
			URL:   "wss://stt-rt.soniox.com/transcribe-websocket",
			Model: "stt-rt-v3",
		},
		Audio: AudioConfig{
			Input:    "default",
			Fallback: "default",
		},
		Languages: LanguagesConfig{},
		UI: UIConfig{
			LiveLines: 24,
			PageSize:  20,
		},
		Clipboard: CommandConfig{Raw: clipboard, Argv: mustParseArgv(clipboard)},
		Debug:     DebugConfig{},
	}
}
