package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

const UnknownLanguage = "unknown"

func DetectLanguage(content string) string {
	if len(strings.TrimSpace(content)) == 0 {
		return UnknownLanguage
	}

	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.Bengali,
				lingua.Hindi,
				lingua.Arabic,
				lingua.Chinese,
				lingua.Japanese,
				lingua.Korean,
				lingua.Spanish,
				lingua.French,
				lingua.German,
				lingua.Portuguese,
				lingua.Russian,
			).
			Build()
	})

	if lang, ok := languageDetector.DetectLanguageOf(content); ok {
		return strings.ToLower(lang.IsoCode639_1().String())
	}
	return UnknownLanguage
}
