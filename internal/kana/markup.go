// Package kana normalizes Japanese text for answer matching.
package kana

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup removes tags from an HTML fragment and returns its trimmed text.
// Content inside style and script elements is dropped.
func StripMarkup(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skipping := map[string]bool{}
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if isSkipTag(string(name)) {
				skipping[string(name)] = true
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			delete(skipping, string(name))
		case html.TextToken:
			if len(skipping) == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isSkipTag(name string) bool {
	return name == "style" || name == "script"
}
