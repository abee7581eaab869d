package voices

import (
	"context"
	"errors"
	"testing"

	"github.com/voxlane/voxlane/pkg/translate"
)

func testTable() Table {
	return NewTable(map[string]Profile{
		"en-US": {Provider: ProviderPolly, VoiceID: "Joanna", Engine: "neural", Language: "en-US"},
		"de-DE": {Provider: ProviderPolly, VoiceID: "Vicki", Engine: "neural", Language: "de-DE"},
		"hi-IN": {Provider: ProviderElevenLabs, VoiceID: "voice-hi", Engine: "eleven_multilingual_v2", Language: "hi-IN"},
	})
}

func TestResolveDirectHit(t *testing.T) {
	translator := &translate.Mock{}
	resolver := NewResolver(testTable(), translator, "en-US", nil)

	res := resolver.Resolve(context.Background(), "de-DE", "Guten Tag")

	if res.Profile.VoiceID != "Vicki" {
		t.Errorf("expected Vicki, got %q", res.Profile.VoiceID)
	}
	if res.SpokenText != "Guten Tag" {
		t.Errorf("reply must be spoken verbatim, got %q", res.SpokenText)
	}
	if res.Translated || res.LastResort {
		t.Error("direct hit must not translate or fall back")
	}
	if translator.CallCount() != 0 {
		t.Errorf("expected no translation calls, got %d", translator.CallCount())
	}
}

func TestResolveUnmappedLanguageTranslates(t *testing.T) {
	translator := &translate.Mock{}
	resolver := NewResolver(testTable(), translator, "en-US", nil)

	res := resolver.Resolve(context.Background(), "sv-SE", "Hej hej")

	if res.Profile.Language != "en-US" {
		t.Errorf("expected default-language profile, got %q", res.Profile.Language)
	}
	if !res.Translated {
		t.Error("expected Translated to be set")
	}
	if res.SpokenText != "[en] Hej hej" {
		t.Errorf("unexpected spoken text: %q", res.SpokenText)
	}

	calls := translator.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected one translation call, got %d", len(calls))
	}
	if calls[0].SourceLang != "sv" || calls[0].TargetLang != "en" {
		t.Errorf("expected base subtags sv→en, got %s→%s", calls[0].SourceLang, calls[0].TargetLang)
	}
}

func TestResolveSameBaseLanguageSkipsTranslation(t *testing.T) {
	translator := &translate.Mock{}
	resolver := NewResolver(testTable(), translator, "en-US", nil)

	// en-GB is unmapped but shares the base subtag with the default.
	res := resolver.Resolve(context.Background(), "en-GB", "Cheers")

	if res.SpokenText != "Cheers" {
		t.Errorf("expected verbatim reply, got %q", res.SpokenText)
	}
	if res.Translated {
		t.Error("same base subtag must not be marked translated")
	}
	if res.Profile.Language != "en-US" {
		t.Errorf("expected default-language profile, got %q", res.Profile.Language)
	}
	if translator.CallCount() != 0 {
		t.Errorf("expected no translation calls, got %d", translator.CallCount())
	}
}

func TestResolveTranslationFailure(t *testing.T) {
	translator := &translate.Mock{
		TranslateFunc: func(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
			return "", errors.New("service unavailable")
		},
	}
	resolver := NewResolver(testTable(), translator, "en-US", nil)

	res := resolver.Resolve(context.Background(), "sv-SE", "Hej hej")

	if res.SpokenText != TranslationApology {
		t.Errorf("expected apology text, got %q", res.SpokenText)
	}
	if res.Translated {
		t.Error("failed translation must not be marked translated")
	}
	if res.Profile.Language != "en-US" {
		t.Errorf("expected default-language profile, got %q", res.Profile.Language)
	}
}

func TestResolveLastResort(t *testing.T) {
	// Table without the default language.
	table := NewTable(map[string]Profile{
		"de-DE": {Provider: ProviderPolly, VoiceID: "Vicki", Engine: "neural", Language: "de-DE"},
	})
	translator := &translate.Mock{}
	resolver := NewResolver(table, translator, "en-US", nil)

	res := resolver.Resolve(context.Background(), "sv-SE", "Hej hej")

	if !res.LastResort {
		t.Error("expected last-resort flag")
	}
	if res.Profile != LastResortProfile {
		t.Errorf("expected last-resort profile, got %+v", res.Profile)
	}
}

func TestBaseLang(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en-US", "en"},
		{"pt-BR", "pt"},
		{"ja", "ja"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := BaseLang(tt.in); got != tt.want {
			t.Errorf("BaseLang(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTableImmutable(t *testing.T) {
	source := map[string]Profile{
		"en-US": {Provider: ProviderPolly, VoiceID: "Joanna", Engine: "neural", Language: "en-US"},
	}
	table := NewTable(source)

	source["en-US"] = Profile{VoiceID: "Mutated"}
	source["fr-FR"] = Profile{VoiceID: "Added"}

	if p, _ := table.Lookup("en-US"); p.VoiceID != "Joanna" {
		t.Errorf("table entry mutated through source map: %q", p.VoiceID)
	}
	if _, ok := table.Lookup("fr-FR"); ok {
		t.Error("entry added to source map leaked into table")
	}
	if table.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", table.Len())
	}
}

func TestDefaultTableCoversDefaultLanguage(t *testing.T) {
	table := DefaultTable()
	profile, ok := table.Lookup("en-US")
	if !ok {
		t.Fatal("default table must map en-US")
	}
	if profile.Provider != ProviderPolly {
		t.Errorf("unexpected provider for en-US: %q", profile.Provider)
	}
}
