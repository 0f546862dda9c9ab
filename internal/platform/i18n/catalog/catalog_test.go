package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalog(t *testing.T, dir, locale, namespace, body string) {
	t.Helper()
	path := filepath.Join(dir, "locales", locale, namespace+".yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	content := "locale: \"" + locale + "\"\nnamespace: \"" + namespace + "\"\nmessages:\n" + body
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}

	for _, locale := range []string{BaseLocale, "pt-BR"} {
		if !bundle.HasLocale(locale) {
			t.Fatalf("expected locale %s", locale)
		}
	}
	if got := bundle.Locales(); len(got) != 2 || got[0] != "en-US" || got[1] != "pt-BR" {
		t.Fatalf("Locales() = %v", got)
	}
	if len(bundle.LocaleMessages(BaseLocale)) == 0 {
		t.Fatal("expected base locale messages")
	}
	if len(bundle.NamespaceMessages(BaseLocale, "errors")) == 0 {
		t.Fatal("expected base errors namespace messages")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "pt-BR", "core", "  \"core.name\": \"Coberturas\"\n")

	if _, err := LoadFromFS(os.DirFS(dir)); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func TestLoadFromFSRejectsCoreKeyOutsideCoreNamespace(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "en-US", "core", "  \"core.good\": \"ok\"\n")
	writeCatalog(t, dir, "en-US", "errors", "  \"core.bad\": \"nope\"\n")

	if _, err := LoadFromFS(os.DirFS(dir)); err == nil {
		t.Fatal("expected core-key placement error")
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "en-US", "core", "  \"a.key\": \"a\"\n")
	writeCatalog(t, dir, "en-US", "errors", "  \"a.key\": \"b\"\n")

	if _, err := LoadFromFS(os.DirFS(dir)); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestNamespaceMessagesWithFallback(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}

	resolved, messages := bundle.NamespaceMessagesWithFallback("pt-BR", "errors")
	if resolved != "pt-BR" {
		t.Fatalf("resolved locale = %q, want pt-BR", resolved)
	}
	if len(messages) == 0 {
		t.Fatal("expected pt-BR errors namespace messages")
	}

	resolved, messages = bundle.NamespaceMessagesWithFallback("fr-FR", "errors")
	if resolved != BaseLocale {
		t.Fatalf("resolved locale = %q, want %s", resolved, BaseLocale)
	}
	if len(messages) == 0 {
		t.Fatal("expected fallback errors namespace messages")
	}
}
