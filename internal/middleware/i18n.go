// internal/middleware/i18n.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// supportedLanguages is ordered like the catalog codes below; the first
// entry is the fallback.
var (
	supportedLanguages = []language.Tag{language.English, language.Hindi}
	languageCodes      = []string{"en", "hi"}
	languageMatcher    = language.NewMatcher(supportedLanguages)
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", matchLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// matchLanguage picks the catalog for an Accept-Language header, honouring
// q-values. Anything unparseable or unsupported gets English.
func matchLanguage(header string) string {
	if header == "" {
		return languageCodes[0]
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return languageCodes[0]
	}

	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return languageCodes[0]
	}
	return languageCodes[index]
}
