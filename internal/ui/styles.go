// Package ui holds the lipgloss styles and color policy for the terminal
// display: a festive base theme, per-language colors grouped by language
// family, and per-speaker emoji identities.
package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors.
var (
	ColorGreen = lipgloss.Color("#165b33")
	ColorGold  = lipgloss.Color("#d4af37")
	ColorRed   = lipgloss.Color("#c41e3a")
	ColorWhite = lipgloss.Color("#ffffff")
	ColorGray  = lipgloss.Color("#666666")
	ColorBlack = lipgloss.Color("#000000")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGreen)

	LiveBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorBlack).
			Background(ColorGreen)

	ScrollBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorBlack).
				Background(ColorRed)

	ScrollRangeStyle = lipgloss.NewStyle().
				Foreground(ColorRed)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	SessionNameStyle = lipgloss.NewStyle().
				Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	PendingStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	TranslationStyle = lipgloss.NewStyle().
				Foreground(ColorWhite)

	PendingTranslationStyle = lipgloss.NewStyle().
				Foreground(ColorWhite).
				Italic(true).
				Faint(true)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorGold)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	TruncationStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Faint(true)

	ResumeStyle = lipgloss.NewStyle().
			Foreground(ColorGold)
)

// languageColors maps language codes to display colors, grouped by family so
// related languages share a spectrum while staying distinguishable. English
// is neutral grey; the session target language always renders white.
var languageColors = map[string]lipgloss.Color{
	"en": "#b0b0b0",

	// Germanic: ice and steel blues.
	"de": "#4682b4",
	"nl": "#7ec8e3",
	"da": "#a8c8dc",
	"no": "#5cacee",
	"sv": "#b8d4e8",

	// Romance: warm sunset golds and corals.
	"es": "#ffd700",
	"fr": "#ff6b6b",
	"it": "#ffaa5e",
	"pt": "#e8b923",
	"ro": "#db7093",
	"ca": "#ff8c42",
	"gl": "#c9a227",

	// East and West Slavic: cool violets.
	"ru": "#9400d3",
	"pl": "#8a2be2",
	"cs": "#7b68ee",
	"sk": "#9370db",
	"uk": "#ba55d3",

	// South Slavic: magentas and pinks.
	"bg": "#ff1493",
	"sr": "#da70d6",
	"hr": "#ff69b4",
	"bs": "#db7093",
	"sl": "#dda0dd",
	"mk": "#ee82ee",

	// Baltic and Finno-Ugric: aquatic teals.
	"lt": "#00ced1",
	"lv": "#20b2aa",
	"et": "#48d1cc",
	"fi": "#66cdaa",
	"hu": "#40e0d0",

	// Isolates get unique colors.
	"el": "#2e8b57",
	"eu": "#ffea00",

	// Middle Eastern and Turkic: jewel blues.
	"ar": "#4169e1",
	"he": "#6a5acd",
	"fa": "#008b8b",
	"tr": "#1e90ff",
	"ur": "#5f9ea0",

	// South Asian: vibrant warms.
	"hi": "#ff6347",
	"gu": "#ff8c00",
	"mr": "#ffa07a",
	"pa": "#f08080",
	"ta": "#ff7256",
	"te": "#e9967a",
	"ml": "#ff69b4",

	// East Asian: crimson spread.
	"zh": "#dc143c",
	"ja": "#ff4500",
	"ko": "#c71585",

	// Southeast Asian: tropical greens.
	"vi": "#32cd32",
	"th": "#98fb98",
	"id": "#3cb371",
	"ms": "#00fa9a",
	"tl": "#7fff00",
}

// defaultLanguageColor is the gold fallback for unmapped codes.
var defaultLanguageColor = lipgloss.Color("#d4af37")

// speakerStyles pairs an emoji with a high-contrast color; speakers wrap
// around the table by id.
var speakerStyles = []struct {
	Emoji string
	Color lipgloss.Color
}{
	{"🎄", "#98fb98"},
	{"🎅", "#ff6b6b"},
	{"✨", "#ffd700"},
	{"🎁", "#ff69b4"},
	{"🔔", "#ffb347"},
	{"🕯️", "#dda0dd"},
	{"🧦", "#87ceeb"},
	{"🍪", "#deb887"},
	{"☃️", "#e0ffff"},
	{"❄️", "#b0e0e6"},
	{"🦌", "#cd853f"},
	{"👵", "#f0e68c"},
	{"🎀", "#ffb6c1"},
	{"🧣", "#20b2aa"},
}

// SpeakerStyle returns the emoji and bold label style for a speaker id.
func SpeakerStyle(id int) (string, lipgloss.Style) {
	if id < 0 {
		id = -id
	}
	entry := speakerStyles[id%len(speakerStyles)]
	return entry.Emoji, lipgloss.NewStyle().Bold(true).Foreground(entry.Color)
}

// LanguageColor returns the display color for a language code. The target
// language always renders white so translated speech reads as neutral.
func LanguageColor(code, targetLanguage string) lipgloss.Color {
	if code == targetLanguage {
		return ColorWhite
	}
	if color, ok := languageColors[code]; ok {
		return color
	}
	return defaultLanguageColor
}
