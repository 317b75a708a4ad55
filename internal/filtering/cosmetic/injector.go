// Package cosmetic builds the JavaScript snippet that strips ad-bearing
// elements out of loaded pages.
package cosmetic

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/grafana/sobek/parser"
)

//go:embed remover.js
var removerScript string

// DefaultSelectors lists the CSS selectors swept after each page load.
// The patterns are deliberately broad; pages that legitimately match
// them lose those elements too, which is accepted.
var DefaultSelectors = []string{
	`[id*="ad"]`,
	`[class*="ad"]`,
	`[class*="ads"]`,
	`[class*="advert"]`,
	`iframe[src*="ads"]`,
	`iframe[src*="doubleclick"]`,
	`iframe[src*="adservice"]`,
	`div[data-ad]`,
	`div[data-ad-client]`,
	`div[data-ad-slot]`,
}

// Injector composes the removal script injected into pages.
type Injector struct {
	selectors []string
	script    string
}

// NewInjector creates an injector for the given selectors. A nil or
// empty slice selects DefaultSelectors.
func NewInjector(selectors []string) *Injector {
	if len(selectors) == 0 {
		selectors = DefaultSelectors
	}
	return &Injector{selectors: selectors}
}

// Script returns the complete snippet to evaluate in a page: the
// embedded remover plus an init call carrying the selector list.
// The result is cached after the first call.
func (i *Injector) Script() string {
	if i.script != "" {
		return i.script
	}

	selectorsJSON, err := json.Marshal(i.selectors)
	if err != nil {
		// []string cannot fail to marshal; keep the remover alone if it
		// somehow does.
		return removerScript
	}

	i.script = fmt.Sprintf("%s\nwindow.__casement_adblock_init(%s);", removerScript, string(selectorsJSON))
	return i.script
}

// Validate checks that the composed script parses as JavaScript. Run
// once at startup so a broken embedded asset surfaces before the first
// injection instead of as silent per-page console errors.
func (i *Injector) Validate() error {
	if _, err := parser.ParseFile(nil, "remover.js", i.Script(), 0); err != nil {
		return fmt.Errorf("failed to parse ad removal script: %w", err)
	}
	return nil
}

// Count reports how many selectors the sweep covers.
func (i *Injector) Count() int {
	return len(i.selectors)
}
