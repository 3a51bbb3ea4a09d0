package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if !bundle.HasLocale(BaseLocale) {
		t.Fatalf("expected base locale %s", BaseLocale)
	}
	if !bundle.HasLocale("pt-BR") {
		t.Fatalf("expected locale pt-BR")
	}

	for _, namespace := range []string{"core", "admin", "errors"} {
		if got := len(bundle.NamespaceMessages("en-US", namespace)); got == 0 {
			t.Fatalf("expected en-US %s namespace messages", namespace)
		}
	}
}

func TestEmbeddedLocalesTranslateEveryBaseKey(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	base := bundle.LocaleMessages(BaseLocale)
	for _, locale := range bundle.Locales() {
		messages := bundle.LocaleMessages(locale)
		for key := range base {
			if _, ok := messages[key]; !ok {
				t.Errorf("%s is missing %q", locale, key)
			}
		}
	}
}

func TestLoadFromFSRejectsCoreKeyOutsideCoreNamespace(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/admin.yaml"), `locale: "en-US"
namespace: "admin"
messages:
  "core.bad": "nope"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "core.good": "ok"
`)

	_, err := LoadFromFS(os.DirFS(tempDir))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "a.key": "a"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/admin.yaml"), `locale: "en-US"
namespace: "admin"
messages:
  "a.key": "b"
`)

	_, err := LoadFromFS(os.DirFS(tempDir))
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestLoadFromFSRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{
			name: "locale does not match path",
			files: map[string]string{
				"locales/en-US/admin.yaml": "locale: \"pt-BR\"\nnamespace: \"admin\"\nmessages:\n  \"a\": \"b\"\n",
			},
		},
		{
			name: "namespace does not match filename",
			files: map[string]string{
				"locales/en-US/admin.yaml": "locale: \"en-US\"\nnamespace: \"web\"\nmessages:\n  \"a\": \"b\"\n",
			},
		},
		{
			name: "empty messages",
			files: map[string]string{
				"locales/en-US/admin.yaml": "locale: \"en-US\"\nnamespace: \"admin\"\n",
			},
		},
		{
			name: "malformed yaml",
			files: map[string]string{
				"locales/en-US/admin.yaml": "locale: [\n",
			},
		},
		{
			name: "missing base locale",
			files: map[string]string{
				"locales/pt-BR/admin.yaml": "locale: \"pt-BR\"\nnamespace: \"admin\"\nmessages:\n  \"a\": \"b\"\n",
			},
		},
		{
			name: "translation without base key",
			files: map[string]string{
				"locales/en-US/admin.yaml": "locale: \"en-US\"\nnamespace: \"admin\"\nmessages:\n  \"a\": \"b\"\n",
				"locales/pt-BR/admin.yaml": "locale: \"pt-BR\"\nnamespace: \"admin\"\nmessages:\n  \"orphan\": \"c\"\n",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tempDir := t.TempDir()
			for name, content := range tc.files {
				mustWriteFile(t, filepath.Join(tempDir, name), content)
			}
			if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNamespaceMessagesWithFallback(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	resolved, messages := bundle.NamespaceMessagesWithFallback("fr-FR", "errors")
	if resolved != "en-US" {
		t.Fatalf("resolved locale = %q, want en-US", resolved)
	}
	if len(messages) == 0 {
		t.Fatal("expected fallback errors namespace messages")
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/admin.yaml"), "locale: \"en-US\"\nnamespace: \"admin\"\nmessages:\n  \"greet\": \"hi\"\n  \"bye\": \"bye\"\n")
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-BR/admin.yaml"), "locale: \"pt-BR\"\nnamespace: \"admin\"\nmessages:\n  \"greet\": \"oi\"\n")
	bundle, err := LoadFromFS(os.DirFS(tempDir))
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}

	if got, _ := bundle.Message("pt-BR", "greet"); got != "oi" {
		t.Fatalf("Message(pt-BR, greet) = %q, want oi", got)
	}
	if got, _ := bundle.Message("pt-BR", "bye"); got != "bye" {
		t.Fatalf("Message(pt-BR, bye) = %q, want base fallback", got)
	}
	if _, ok := bundle.Message("pt-BR", "missing"); ok {
		t.Fatal("expected missing key to report false")
	}
}

func TestDefaultRegistersPrinterMessages(t *testing.T) {
	_ = Default()
	p := message.NewPrinter(language.MustParse("pt-BR"))
	if got := p.Sprintf("table.page_of", 1, 3); got != "Página 1 de 3" {
		t.Fatalf("Sprintf(table.page_of) = %q", got)
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
