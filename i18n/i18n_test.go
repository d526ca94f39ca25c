package i18n

import (
	"context"
	"testing"
	"time"
)

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("pt-BR,pt;q=0.8") != "pt" {
		t.Fatalf("expected pt")
	}
	if DetectLanguage("de-DE,fr;q=0.8") != "pt" {
		t.Fatalf("expected pt fallback for unsupported languages")
	}
	if DetectLanguage("de-DE, en;q=0.5") != "en" {
		t.Fatalf("expected first supported language")
	}
	if DetectLanguage("") != "pt" {
		t.Fatalf("expected default pt")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("pt", "required") != "Campo obrigatório" {
		t.Fatalf("expected Campo obrigatório")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to pt translation if exists
	if T("es", "auth.invalid_credentials") != "E-mail ou senha incorretos." {
		t.Fatalf("expected pt fallback for es lang")
	}
	if got := Tf("pt", "list.total", 1, 3); got != "Mostrando 1 de 3" {
		t.Fatalf("Tf = %q", got)
	}
}

func TestCatalogsHaveTheSameKeys(t *testing.T) {
	for code := range catalogs[Default] {
		if _, ok := catalogs["en"][code]; !ok {
			t.Errorf("en is missing %q", code)
		}
	}
	for code := range catalogs["en"] {
		if _, ok := catalogs[Default][code]; !ok {
			t.Errorf("pt is missing %q", code)
		}
	}
}

func TestLangContext(t *testing.T) {
	if LangFromContext(context.Background()) != Default {
		t.Fatalf("expected default language")
	}
	if LangFromContext(WithLang(context.Background(), "en")) != "en" {
		t.Fatalf("expected en from context")
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	if got := FormatDate("pt", d); got != "01/03/2024" {
		t.Fatalf("pt date: got %q", got)
	}
	if got := FormatDate("en", d); got != "Mar 1, 2024" {
		t.Fatalf("en date: got %q", got)
	}
	if FormatDate("pt", time.Time{}) != "" {
		t.Fatalf("zero time should render empty")
	}
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		lang string
		in   float64
		want string
	}{
		{"pt", 1500, "R$ 1.500,00"},
		{"pt", 999.5, "R$ 999,50"},
		{"pt", 1234567.891, "R$ 1.234.567,89"},
		{"en", 1500, "R$ 1,500.00"},
		{"pt", -20, "-R$ 20,00"},
		{"pt", 0, "R$ 0,00"},
	}
	for _, c := range cases {
		if got := FormatMoney(c.lang, c.in); got != c.want {
			t.Errorf("FormatMoney(%q, %v) = %q, want %q", c.lang, c.in, got, c.want)
		}
	}
}
