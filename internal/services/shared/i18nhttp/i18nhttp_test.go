package i18nhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		target      string
		cookie      string
		accept      string
		want        language.Tag
		wantPersist bool
	}{
		{name: "query param", target: "/?lang=pt-BR", want: language.BrazilianPortuguese, wantPersist: true},
		{name: "unsupported query falls through", target: "/?lang=fr-FR", cookie: "pt-BR", want: language.BrazilianPortuguese},
		{name: "cookie", target: "/", cookie: "pt-BR", want: language.BrazilianPortuguese},
		{name: "accept language", target: "/", accept: "pt-BR,pt;q=0.9", want: language.BrazilianPortuguese},
		{name: "default", target: "/", want: language.AmericanEnglish},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "http://example.com"+tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			tag, persist := ResolveTag(req)
			if tag != tc.want {
				t.Fatalf("tag = %v, want %v", tag, tc.want)
			}
			if persist != tc.wantPersist {
				t.Fatalf("persist = %v, want %v", persist, tc.wantPersist)
			}
		})
	}
}

func TestSupportedStartsWithBaseLocale(t *testing.T) {
	t.Parallel()
	tags := Supported()
	if len(tags) < 2 {
		t.Fatalf("Supported() = %v, want at least two locales", tags)
	}
	if tags[0] != language.AmericanEnglish {
		t.Fatalf("Supported()[0] = %v, want en-US", tags[0])
	}
}

func TestBuildLanguageOptions(t *testing.T) {
	t.Parallel()

	options := BuildLanguageOptions(
		[]language.Tag{language.AmericanEnglish, language.BrazilianPortuguese},
		"pt-BR",
		func(tag language.Tag) string { return tag.String() + "-label" },
	)
	if len(options) != 2 {
		t.Fatalf("len(options) = %d, want 2", len(options))
	}
	if !options[1].Active {
		t.Fatalf("options[1].Active = false, want true")
	}
	if got := ActiveLanguageLabel(options); got != "pt-BR-label" {
		t.Fatalf("ActiveLanguageLabel() = %q, want pt-BR-label", got)
	}
}

func TestLanguageURL(t *testing.T) {
	t.Parallel()

	got := LanguageURL("/prompts", "page=2", "en-US")
	if got != "/prompts?lang=en-US&page=2" {
		t.Fatalf("LanguageURL = %q", got)
	}
}

func TestLanguageKeyLabel(t *testing.T) {
	t.Parallel()
	if got := LanguageKeyLabel(language.BrazilianPortuguese); got != "core.language.pt-BR" {
		t.Fatalf("LanguageKeyLabel() = %q", got)
	}
}
