// Package voices maps detected languages to synthesis voice profiles.
//
// Resolution is a two-level fallback cascade: a direct table match wins;
// otherwise the reply is machine-translated to the default language and the
// table is consulted again; if even that entry is missing, a hardcoded
// last-resort profile is used. Each outcome is independently observable on
// the returned Resolution.
package voices

import "strings"

// Provider identifies a synthesis backend. The set is closed: exactly two
// vendors exist, and pkg/synth dispatches on this tag.
type Provider string

const (
	// ProviderPolly is the managed cloud TTS backend.
	ProviderPolly Provider = "polly"

	// ProviderElevenLabs is the keyed HTTP TTS backend.
	ProviderElevenLabs Provider = "elevenlabs"
)

// Profile selects a synthesis configuration: vendor, voice identity,
// engine or model tier, and the language the voice speaks.
type Profile struct {
	Provider Provider
	VoiceID  string
	Engine   string
	Language string
}

// Table is the static language→profile mapping, loaded at process start
// and never mutated afterwards.
type Table struct {
	entries map[string]Profile
}

// NewTable copies entries into an immutable table.
func NewTable(entries map[string]Profile) Table {
	m := make(map[string]Profile, len(entries))
	for lang, p := range entries {
		m[lang] = p
	}
	return Table{entries: m}
}

// Lookup returns the profile for a language code, if present.
func (t Table) Lookup(lang string) (Profile, bool) {
	p, ok := t.entries[lang]
	return p, ok
}

// Len returns the number of mapped languages.
func (t Table) Len() int {
	return len(t.entries)
}

// BaseLang strips the region subtag from a language code:
// "en-US" → "en", "pt" → "pt".
func BaseLang(code string) string {
	if i := strings.IndexByte(code, '-'); i >= 0 {
		return code[:i]
	}
	return code
}

// LastResortProfile is the hardcoded final fallback, used only when the
// default language itself is missing from the table.
var LastResortProfile = Profile{
	Provider: ProviderPolly,
	VoiceID:  "Joanna",
	Engine:   "neural",
	Language: "en-US",
}

// DefaultTable returns the built-in language→voice mapping.
func DefaultTable() Table {
	return NewTable(map[string]Profile{
		"en-US": {Provider: ProviderPolly, VoiceID: "Joanna", Engine: "neural", Language: "en-US"},
		"es-US": {Provider: ProviderPolly, VoiceID: "Lupe", Engine: "neural", Language: "es-US"},
		"fr-FR": {Provider: ProviderPolly, VoiceID: "Lea", Engine: "neural", Language: "fr-FR"},
		"de-DE": {Provider: ProviderPolly, VoiceID: "Vicki", Engine: "neural", Language: "de-DE"},
		"it-IT": {Provider: ProviderPolly, VoiceID: "Bianca", Engine: "neural", Language: "it-IT"},
		"pt-BR": {Provider: ProviderPolly, VoiceID: "Camila", Engine: "neural", Language: "pt-BR"},
		"ja-JP": {Provider: ProviderPolly, VoiceID: "Takumi", Engine: "neural", Language: "ja-JP"},
		"ko-KR": {Provider: ProviderPolly, VoiceID: "Seoyeon", Engine: "neural", Language: "ko-KR"},
		"zh-CN": {Provider: ProviderPolly, VoiceID: "Zhiyu", Engine: "neural", Language: "zh-CN"},
		"hi-IN": {Provider: ProviderElevenLabs, VoiceID: "21m00Tcm4TlvDq8ikWAM", Engine: "eleven_multilingual_v2", Language: "hi-IN"},
		"ar-SA": {Provider: ProviderElevenLabs, VoiceID: "pNInz6obpgDQGcFmaJgB", Engine: "eleven_multilingual_v2", Language: "ar-SA"},
	})
}
