// Package i18nhttp resolves the request language and builds language
// switcher options for HTTP surfaces.
package i18nhttp

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/promptops/console/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "promptops_lang"
)

// LanguageOption represents a supported language option in UI surfaces.
type LanguageOption struct {
	Tag    string
	Label  string
	Active bool
}

type supportedSet struct {
	tags    []language.Tag
	byName  map[string]language.Tag
	matcher language.Matcher
}

// supported is derived from the embedded catalog locales, base locale first.
var supported = sync.OnceValue(func() supportedSet {
	base := language.MustParse(catalog.BaseLocale)
	set := supportedSet{
		tags:   []language.Tag{base},
		byName: map[string]language.Tag{base.String(): base},
	}
	for _, locale := range catalog.Default().Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		if _, ok := set.byName[tag.String()]; ok {
			continue
		}
		set.tags = append(set.tags, tag)
		set.byName[tag.String()] = tag
	}
	set.matcher = language.NewMatcher(set.tags)
	return set
})

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := supported().tags
	out := make([]language.Tag, len(tags))
	copy(out, tags)
	return out
}

// Default returns the default language tag.
func Default() language.Tag {
	return supported().tags[0]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ResolveTag determines the best language tag for the request.
// The bool indicates whether the lang query param should be persisted as a cookie.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}

	if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
		if tag, ok := ParseTag(langValue); ok {
			return tag, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			set := supported()
			_, index, confidence := set.matcher.Match(tags...)
			if confidence != language.No {
				return set.tags[index], false
			}
		}
	}

	return Default(), false
}

// ParseTag returns the supported tag matching value exactly.
func ParseTag(value string) (language.Tag, bool) {
	parsed, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Tag{}, false
	}
	tag, ok := supported().byName[parsed.String()]
	return tag, ok
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// NormalizeTag coerces unknown tags to the default supported language.
func NormalizeTag(value string) language.Tag {
	if tag, ok := ParseTag(value); ok {
		return tag
	}
	return Default()
}

// BuildLanguageOptions returns supported language options with active selection.
func BuildLanguageOptions(supported []language.Tag, activeLang string, labelForTag func(tag language.Tag) string) []LanguageOption {
	options := make([]LanguageOption, 0, len(supported))
	activeTag := NormalizeTag(activeLang)
	for _, tag := range supported {
		label := tag.String()
		if labelForTag != nil {
			if resolved := strings.TrimSpace(labelForTag(tag)); resolved != "" {
				label = resolved
			}
		}
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  label,
			Active: tag == activeTag,
		})
	}
	return options
}

// ActiveLanguageLabel returns the label for the active language selection.
func ActiveLanguageLabel(options []LanguageOption) string {
	for _, option := range options {
		if option.Active {
			return option.Label
		}
	}
	if len(options) == 0 {
		return ""
	}
	return options[0].Label
}

// LanguageURL returns the current URL with the language param updated.
func LanguageURL(path string, rawQuery string, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

// LanguageKeyLabel maps a language tag to its core catalog label key.
func LanguageKeyLabel(tag language.Tag) string {
	return "core.language." + tag.String()
}
