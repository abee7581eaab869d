package voices

import (
	"context"
	"log/slog"

	"github.com/voxlane/voxlane/pkg/translate"
)

// TranslationApology is spoken when machine translation fails. The reply
// still gets voiced; the failure never propagates.
const TranslationApology = "I'm sorry, I couldn't prepare an answer in a language I can speak. Please try again."

// Resolution is the outcome of the voice cascade.
type Resolution struct {
	// Profile is the synthesis target.
	Profile Profile

	// SpokenText is what will be voiced. Equals the reply text unless a
	// translation or apology substitution occurred.
	SpokenText string

	// Translated is true when SpokenText is a successful machine
	// translation of the reply.
	Translated bool

	// LastResort is true when even the default language was unmapped.
	LastResort bool
}

// Resolver walks the fallback cascade for a detected language.
type Resolver struct {
	table           Table
	translator      translate.Translator
	defaultLanguage string
	lastResort      Profile
	logger          *slog.Logger
}

// NewResolver creates a Resolver over a voice table and a translator.
// defaultLanguage is the region-qualified fallback language ("en-US").
func NewResolver(table Table, translator translate.Translator, defaultLanguage string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		table:           table,
		translator:      translator,
		defaultLanguage: defaultLanguage,
		lastResort:      LastResortProfile,
		logger:          logger.With("component", "voices.resolver"),
	}
}

// Resolve picks the voice profile and spoken text for a reply in the
// detected language.
//
// Direct table hit: the reply is spoken verbatim by the mapped voice.
// Otherwise the reply is translated to the default language (skipped when
// the base subtags already match) and the default language's voice is
// used; if that entry is missing too, the hardcoded last resort wins.
func (r *Resolver) Resolve(ctx context.Context, detectedLang, replyText string) Resolution {
	if profile, ok := r.table.Lookup(detectedLang); ok {
		return Resolution{Profile: profile, SpokenText: replyText}
	}

	spoken := replyText
	translated := false

	srcBase := BaseLang(detectedLang)
	dstBase := BaseLang(r.defaultLanguage)
	if srcBase != dstBase {
		text, err := r.translator.Translate(ctx, replyText, srcBase, dstBase)
		if err != nil {
			r.logger.Warn("translation failed, using apology text",
				"source", srcBase,
				"target", dstBase,
				"error", err,
			)
			spoken = TranslationApology
		} else {
			spoken = text
			translated = true
		}
	}

	profile, ok := r.table.Lookup(r.defaultLanguage)
	if !ok {
		// A well-formed table always maps the default language. Guard the
		// invariant anyway.
		r.logger.Error("default language missing from voice table, using last resort",
			"default_language", r.defaultLanguage,
		)
		return Resolution{Profile: r.lastResort, SpokenText: spoken, Translated: translated, LastResort: true}
	}

	return Resolution{Profile: profile, SpokenText: spoken, Translated: translated}
}
