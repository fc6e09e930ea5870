// Package config resolves, parses, validates, and defaults decoder configuration.
package config

// Config is the fully materialized runtime configuration.
type Config struct {
	Service   ServiceConfig
	Audio     AudioConfig
	Session   SessionConfig
	Languages LanguagesConfig
	UI        UIConfig
	Clipboard CommandConfig
	Debug     DebugConfig
}

// ServiceConfig controls the realtime recognition connection.
type ServiceConfig struct {
	URL     string
	Model   string
	Context string
}

// AudioConfig controls preferred and fallback input-source selection.
type AudioConfig struct {
	Input    string
	Fallback string
}

// SessionConfig controls where session directories live.
type SessionConfig struct {
	Dir string
}

// LanguagesConfig carries default language hints for new sessions.
type LanguagesConfig struct {
	Sources []string
	Target  string
}

// UIConfig controls live-view and scroll-view dimensions.
type UIConfig struct {
	LiveLines int
	PageSize  int
}

// CommandConfig stores a raw command string and its parsed argv form.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// DebugConfig controls optional debug artifact output.
type DebugConfig struct {
	EnableWireDump  bool
	EnableAudioDump bool
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Line    int
	Message string
}
