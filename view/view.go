// Package view renders the embedded HTML templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/go-photodesk/auth"
	"github.com/diewo77/go-photodesk/i18n"
)

//go:embed templates static
var files embed.FS

var (
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}

	location = time.UTC
)

// SetLocation sets the time zone dates are shown in.
func SetLocation(loc *time.Location) {
	if loc != nil {
		location = loc
	}
}

// Funcs returns the standard func map including i18n and simple helpers.
func Funcs(r *http.Request) template.FuncMap {
	lang := i18n.Default
	if r != nil {
		lang = i18n.LangFromContext(r.Context())
	}
	return template.FuncMap{
		"t":     func(code string) string { return i18n.T(lang, code) },
		"tf":    func(code string, args ...any) string { return i18n.Tf(lang, code, args...) },
		"lang":  func() string { return lang },
		"money": func(v any) string { f, _ := toFloat64(v); return i18n.FormatMoney(lang, f) },
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return i18n.FormatDate(lang, t.In(location))
		},
		// day formats calendar dates, which carry no time zone.
		"day": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return i18n.FormatDate(lang, t)
		},
		"year":  func() int { return time.Now().Year() },
		"join":  strings.Join,
		"lines": func(items []string) string { return strings.Join(items, "\n") },
		// dict creates a map from key-value pairs for passing to sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

func toFloat64(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// Static serves the embedded stylesheet under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// load parses layout, partials and the page once. The func map bound here
// is replaced per request in Render.
func load(name string) (*template.Template, error) {
	tplCache.RLock()
	t, ok := tplCache.m[name]
	tplCache.RUnlock()
	if ok {
		return t, nil
	}

	partials, err := fs.Glob(files, "templates/partials/*.html")
	if err != nil {
		return nil, err
	}
	patterns := append([]string{"templates/layout.html"}, partials...)
	patterns = append(patterns, "templates/"+name)
	t, err = template.New("layout.html").Funcs(Funcs(nil)).ParseFS(files, patterns...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	tplCache.Lock()
	tplCache.m[name] = t
	tplCache.Unlock()
	return t, nil
}

// Render executes a page with status 200.
// name is relative to the templates directory (e.g., "clients/index.html").
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	return RenderStatus(w, r, http.StatusOK, name, data)
}

// RenderStatus executes a page into a buffer first so a template error never
// leaves a half-written response.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) error {
	base, err := load(name)
	if err != nil {
		return err
	}
	t, err := base.Clone()
	if err != nil {
		return err
	}
	t.Funcs(Funcs(r))

	// Ensure data map exists and inject common defaults to avoid template errors.
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	if _, exists := data["Session"]; !exists {
		s, loggedIn := auth.SessionFromContext(r.Context())
		data["Session"] = s
		data["IsLoggedIn"] = loggedIn
	}
	if _, exists := data["Path"]; !exists {
		data["Path"] = r.URL.Path
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
