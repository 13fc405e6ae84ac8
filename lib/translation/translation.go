package translation

import (
	"github.com/leonelquinteros/gotext"
)

func GetLanguage() string {
	lang := gotext.GetLanguage()
	if lang == "und" || lang == "" {
		return "en"
	}
	return lang
}

// Translate looks up msgID in the configured locale, falling back to the
// msgID itself when no translation exists.
func Translate(msgID string, vars ...interface{}) string {
	return gotext.Get(msgID, vars...)
}
