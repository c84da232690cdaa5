package utils

import (
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

var bundle *i18n.Bundle

var supportedLanguages = []language.Tag{
	language.English,
	language.Hebrew,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

func InitI18NBundle() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.MustLoadMessageFile(path.Join(viper.GetString("i18n.dir"), "en.yaml"))
	bundle.MustLoadMessageFile(path.Join(viper.GetString("i18n.dir"), "he.yaml"))
}

func NewLocalizer(lang string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, lang)
}

// PreferredLanguage picks a supported language out of an Accept-Language value
// or a plain language code. English is the fallback.
func PreferredLanguage(accept string) string {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return language.English.String()
	}

	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return language.English.String()
	}
	return supportedLanguages[index].String()
}
