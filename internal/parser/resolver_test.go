package parser

import "testing"

func TestResolve(t *testing.T) {
	t.Parallel()

	r := NewResolver("")

	tests := []struct {
		name    string
		input   string
		wantURL string
		want    InputKind
	}{
		{"httpsPassthrough", "https://example.com/page", "https://example.com/page", KindDirectURL},
		{"httpPassthrough", "http://example.com", "http://example.com", KindDirectURL},
		{"bareDomain", "example.com", "https://example.com", KindBareDomain},
		{"domainWithPath", "example.com/docs/intro", "https://example.com/docs/intro", KindBareDomain},
		{"trimsWhitespace", "  example.com  ", "https://example.com", KindBareDomain},
		{"dotWithSpaceIsSearch", "example. com", "https://duckduckgo.com/?q=example.+com", KindSearch},
		{"noDotIsSearch", "localhost:8080", "https://duckduckgo.com/?q=localhost%3A8080", KindSearch},
		{"plainWordsAreSearch", "hello world", "https://duckduckgo.com/?q=hello+world", KindSearch},
		{"escapesReservedChars", "c++ tutorials", "https://duckduckgo.com/?q=c%2B%2B+tutorials", KindSearch},
		{"schemeCheckIsCaseSensitive", "HTTP://EXAMPLE.COM", "https://HTTP://EXAMPLE.COM", KindBareDomain},
		{"empty", "", "https://duckduckgo.com/?q=", KindSearch},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := r.Resolve(tt.input)
			if got.URL != tt.wantURL {
				t.Fatalf("Resolve(%q).URL = %q, want %q", tt.input, got.URL, tt.wantURL)
			}
			if got.Kind != tt.want {
				t.Fatalf("Resolve(%q).Kind = %v, want %v", tt.input, got.Kind, tt.want)
			}
		})
	}
}

func TestResolveCustomTemplate(t *testing.T) {
	t.Parallel()

	r := NewResolver("https://www.google.com/search?q={query}")
	got := r.Resolve("go generics")
	if got.URL != "https://www.google.com/search?q=go+generics" {
		t.Fatalf("unexpected search URL: %q", got.URL)
	}
}

func TestResolveTemplateWithoutPlaceholderFallsBack(t *testing.T) {
	t.Parallel()

	r := NewResolver("https://broken.example.com/search")
	got := r.Resolve("query")
	if got.URL != "https://duckduckgo.com/?q=query" {
		t.Fatalf("unexpected fallback URL: %q", got.URL)
	}
}
