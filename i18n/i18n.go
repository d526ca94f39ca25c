// Package i18n holds the UI message catalogs. Portuguese is the default
// language; English is available through the lang cookie or query string.
package i18n

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const Default = "pt"

type langKey struct{}

// WithLang stores the request language in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext returns the request language or Default.
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey{}).(string); ok && lang != "" {
		return lang
	}
	return Default
}

// Supported reports whether a catalog exists for lang.
func Supported(lang string) bool {
	_, ok := catalogs[lang]
	return ok
}

// Normalize maps "pt-BR", "EN-gb" and friends onto a catalog name.
// It returns "" when no catalog matches.
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if Supported(lang) {
		return lang
	}
	return ""
}

// DetectLanguage picks the first supported language of an Accept-Language
// header. Quality values are ignored; browsers list languages by preference.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if lang := Normalize(tag); lang != "" {
			return lang
		}
	}
	return Default
}

// T translates code. Unknown languages use the default catalog and unknown
// codes are returned as is.
func T(lang, code string) string {
	if msg, ok := catalogs[lang][code]; ok {
		return msg
	}
	if msg, ok := catalogs[Default][code]; ok {
		return msg
	}
	return code
}

// Tf translates code and formats the result with args.
func Tf(lang, code string, args ...any) string {
	return fmt.Sprintf(T(lang, code), args...)
}

// FormatDate renders a calendar date the way the language writes it.
func FormatDate(lang string, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if lang == "en" {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("02/01/2006")
}

// FormatMoney renders an amount in reais with two decimals and digit grouping.
func FormatMoney(lang string, v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	intPart, frac, _ := strings.Cut(s, ".")

	thousands, decimal := ".", ","
	if lang == "en" {
		thousands, decimal = ",", "."
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousands)
		}
		b.WriteRune(r)
	}
	out := "R$ " + b.String() + decimal + frac
	if neg {
		out = "-" + out
	}
	return out
}
