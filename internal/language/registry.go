// Package language holds the supported-language registry and the per-speaker
// language resolution policy.
package language

import (
	"sort"
	"strings"
)

// Info describes one supported language.
type Info struct {
	Name string
	Flag string
}

// registry lists every language the recognition service can identify.
var registry = map[string]Info{
	"ar": {Name: "Arabic", Flag: "🇸🇦"},
	"eu": {Name: "Basque", Flag: "🪨"},
	"bs": {Name: "Bosnian", Flag: "🇧🇦"},
	"bg": {Name: "Bulgarian", Flag: "🇧🇬"},
	"ca": {Name: "Catalan", Flag: "🐈"},
	"zh": {Name: "Chinese", Flag: "🇨🇳"},
	"hr": {Name: "Croatian", Flag: "🇭🇷"},
	"cs": {Name: "Czech", Flag: "🇨🇿"},
	"da": {Name: "Danish", Flag: "🇩🇰"},
	"nl": {Name: "Dutch", Flag: "🇳🇱"},
	"en": {Name: "English", Flag: "🇺🇸"},
	"et": {Name: "Estonian", Flag: "🇪🇪"},
	"fi": {Name: "Finnish", Flag: "🇫🇮"},
	"fr": {Name: "French", Flag: "🇫🇷"},
	"gl": {Name: "Galician", Flag: "🐟"},
	"de": {Name: "German", Flag: "🇩🇪"},
	"el": {Name: "Greek", Flag: "🇬🇷"},
	"gu": {Name: "Gujarati", Flag: "🇮🇳"},
	"he": {Name: "Hebrew", Flag: "🇮🇱"},
	"hi": {Name: "Hindi", Flag: "🇮🇳"},
	"hu": {Name: "Hungarian", Flag: "🇭🇺"},
	"id": {Name: "Indonesian", Flag: "🇮🇩"},
	"it": {Name: "Italian", Flag: "🇮🇹"},
	"ja": {Name: "Japanese", Flag: "🇯🇵"},
	"ko": {Name: "Korean", Flag: "🇰🇷"},
	"lv": {Name: "Latvian", Flag: "🇱🇻"},
	"lt": {Name: "Lithuanian", Flag: "🇱🇹"},
	"mk": {Name: "Macedonian", Flag: "🇲🇰"},
	"ms": {Name: "Malay", Flag: "🇲🇾"},
	"ml": {Name: "Malayalam", Flag: "🇮🇳"},
	"mr": {Name: "Marathi", Flag: "🇮🇳"},
	"no": {Name: "Norwegian", Flag: "🇳🇴"},
	"fa": {Name: "Persian", Flag: "🇮🇷"},
	"pl": {Name: "Polish", Flag: "🇵🇱"},
	"pt": {Name: "Portuguese", Flag: "🇵🇹"},
	"pa": {Name: "Punjabi", Flag: "🇮🇳"},
	"ro": {Name: "Romanian", Flag: "🇷🇴"},
	"ru": {Name: "Russian", Flag: "🇷🇺"},
	"sr": {Name: "Serbian", Flag: "🇷🇸"},
	"sk": {Name: "Slovak", Flag: "🇸🇰"},
	"sl": {Name: "Slovenian", Flag: "🇸🇮"},
	"es": {Name: "Spanish", Flag: "🇪🇸"},
	"sv": {Name: "Swedish", Flag: "🇸🇪"},
	"tl": {Name: "Tagalog", Flag: "🇵🇭"},
	"ta": {Name: "Tamil", Flag: "🇮🇳"},
	"te": {Name: "Telugu", Flag: "🇮🇳"},
	"th": {Name: "Thai", Flag: "🇹🇭"},
	"tr": {Name: "Turkish", Flag: "🇹🇷"},
	"uk": {Name: "Ukrainian", Flag: "🇺🇦"},
	"ur": {Name: "Urdu", Flag: "🇵🇰"},
	"vi": {Name: "Vietnamese", Flag: "🇻🇳"},
}

// Valid reports whether code is a supported language code.
func Valid(code string) bool {
	_, ok := registry[code]
	return ok
}

// Name returns the display name for code, or the upper-cased code itself.
func Name(code string) string {
	if info, ok := registry[code]; ok {
		return info.Name
	}
	return strings.ToUpper(code)
}

// Flag returns the flag emoji for code, or a globe for unknown codes.
func Flag(code string) string {
	if info, ok := registry[code]; ok {
		return info.Flag
	}
	return "🌐"
}

// AllCodes returns every supported code sorted alphabetically.
func AllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Option pairs a code with its display name for pickers and search results.
type Option struct {
	Code string
	Name string
}

// Search ranks languages against a query: exact code match, code prefix, name
// prefix, then name substring. An empty query lists everything alphabetically.
func Search(query string) []Option {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		options := make([]Option, 0, len(registry))
		for _, code := range AllCodes() {
			options = append(options, Option{Code: code, Name: registry[code].Name})
		}
		return options
	}

	type ranked struct {
		rank int
		opt  Option
	}
	var results []ranked
	for code, info := range registry {
		name := strings.ToLower(info.Name)
		rank := -1
		switch {
		case code == query:
			rank = 0
		case strings.HasPrefix(code, query):
			rank = 1
		case strings.HasPrefix(name, query):
			rank = 2
		case strings.Contains(name, query):
			rank = 3
		}
		if rank >= 0 {
			results = append(results, ranked{rank: rank, opt: Option{Code: code, Name: info.Name}})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].rank != results[j].rank {
			return results[i].rank < results[j].rank
		}
		return results[i].opt.Name < results[j].opt.Name
	})

	options := make([]Option, 0, len(results))
	for _, r := range results {
		options = append(options, r.opt)
	}
	return options
}
