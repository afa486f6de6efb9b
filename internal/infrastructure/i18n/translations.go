package i18n

import (
	"embed"
	"log"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"qrattend/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

var _ output.T = (*Translator)(nil)

// Translator is a thin wrapper around go-i18n's Bundle/Localizer, bound to
// one locale with English as fallback.
type Translator struct {
	localizer *i18n.Localizer
}

// NewTranslator loads the embedded catalogs and binds them to locale
// (e.g. "fr"). An unparsable locale falls back to English.
func NewTranslator(locale string) *Translator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.fr.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			log.Printf("i18n: failed to load %s: %v", file, err)
		}
	}

	return &Translator{localizer: i18n.NewLocalizer(bundle, tag.String(), language.English.String())}
}

// T renders the message identified by key, or the key itself when no
// catalog has it.
func (t *Translator) T(key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		log.Printf("i18n: localize failed (key=%s): %v", key, err)
		return key
	}
	return msg
}
