// Package translate converts reply text between base languages when no
// synthesis voice exists for the detected language.
package translate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstranslate "github.com/aws/aws-sdk-go-v2/service/translate"
)

// Translator is the machine-translation collaborator. Language codes are
// base subtags ("en", "sv"), not region-qualified tags.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// awsAPI is the slice of the Amazon Translate client the service uses.
type awsAPI interface {
	TranslateText(ctx context.Context, in *awstranslate.TranslateTextInput, optFns ...func(*awstranslate.Options)) (*awstranslate.TranslateTextOutput, error)
}

// AWS implements Translator on Amazon Translate.
type AWS struct {
	api    awsAPI
	logger *slog.Logger
}

// NewAWS creates a translator backed by the given client.
func NewAWS(client *awstranslate.Client, logger *slog.Logger) *AWS {
	if logger == nil {
		logger = slog.Default()
	}
	return &AWS{
		api:    client,
		logger: logger.With("component", "translate.aws"),
	}
}

// Translate converts text from sourceLang to targetLang.
func (a *AWS) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	out, err := a.api.TranslateText(ctx, &awstranslate.TranslateTextInput{
		Text:               aws.String(text),
		SourceLanguageCode: aws.String(sourceLang),
		TargetLanguageCode: aws.String(targetLang),
	})
	if err != nil {
		return "", fmt.Errorf("translate: %s -> %s: %w", sourceLang, targetLang, err)
	}

	translated := aws.ToString(out.TranslatedText)
	a.logger.Debug("translated text",
		"source", sourceLang,
		"target", targetLang,
		"chars", len(translated),
	)
	return translated, nil
}

// Verify AWS implements Translator at compile time.
var _ Translator = (*AWS)(nil)
