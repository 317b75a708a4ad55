// Package parser turns address-bar input into loadable URLs.
package parser

import (
	neturl "net/url"
	"strings"
)

// DefaultSearchTemplate is the search URL used when no engine is
// configured. {query} is replaced with the form-escaped search terms.
const DefaultSearchTemplate = "https://duckduckgo.com/?q={query}"

// InputKind classifies how a piece of input was resolved.
type InputKind int

const (
	// KindDirectURL means the input already carried an http or https scheme.
	KindDirectURL InputKind = iota
	// KindBareDomain means the input looked like a host and https:// was prepended.
	KindBareDomain
	// KindSearch means the input was handed to the search engine.
	KindSearch
)

func (k InputKind) String() string {
	switch k {
	case KindDirectURL:
		return "direct"
	case KindBareDomain:
		return "domain"
	case KindSearch:
		return "search"
	}
	return "unknown"
}

// Resolution is the outcome of resolving one piece of input.
type Resolution struct {
	URL  string
	Kind InputKind
}

// Resolver maps address-bar input onto URLs.
type Resolver struct {
	searchTemplate string
}

// NewResolver creates a resolver using the given search URL template.
// The template must contain the {query} placeholder; when it is empty
// or malformed the resolver falls back to DefaultSearchTemplate.
func NewResolver(searchTemplate string) *Resolver {
	if !strings.Contains(searchTemplate, "{query}") {
		searchTemplate = DefaultSearchTemplate
	}
	return &Resolver{searchTemplate: searchTemplate}
}

// Resolve applies the address-bar rules in order: input that already
// starts with http:// or https:// passes through untouched; input that
// contains a dot and no spaces is treated as a bare host and prefixed
// with https://; everything else becomes a search query.
func (r *Resolver) Resolve(input string) Resolution {
	trimmed := strings.TrimSpace(input)

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return Resolution{URL: trimmed, Kind: KindDirectURL}
	}

	if strings.Contains(trimmed, ".") && !strings.Contains(trimmed, " ") {
		return Resolution{URL: "https://" + trimmed, Kind: KindBareDomain}
	}

	return Resolution{URL: r.searchURL(trimmed), Kind: KindSearch}
}

// searchURL substitutes the escaped query into the engine template.
// Escaping follows form encoding, so spaces become '+'.
func (r *Resolver) searchURL(query string) string {
	return strings.ReplaceAll(r.searchTemplate, "{query}", neturl.QueryEscape(query))
}
