package middleware

import (
	"net/http"

	"github.com/diewo77/go-photodesk/i18n"
)

const langCookie = "lang"

// Preferences picks the UI language from ?lang=, then the lang cookie, then
// Accept-Language. A valid ?lang= is remembered in the cookie.
func Preferences(defaultLang string) func(http.Handler) http.Handler {
	if i18n.Normalize(defaultLang) == "" {
		defaultLang = i18n.Default
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := i18n.Normalize(r.URL.Query().Get("lang")); q != "" {
				lang = q
				http.SetCookie(w, &http.Cookie{
					Name:     langCookie,
					Value:    lang,
					Path:     "/",
					MaxAge:   86400 * 365,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			} else if c, err := r.Cookie(langCookie); err == nil {
				lang = i18n.Normalize(c.Value)
			}
			if lang == "" {
				if h := r.Header.Get("Accept-Language"); h != "" {
					lang = i18n.DetectLanguage(h)
				} else {
					lang = defaultLang
				}
			}
			next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
		})
	}
}
