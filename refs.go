package main

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractRefs collects the attribute values of every <tag attr=...> in the
// rendered HTML that are absolute http/https URLs. Relative or scheme-less
// values and tags missing the attribute are skipped, not collected: whether
// a URL is broken is decided later by the reachability probe, not here.
func extractRefs(html, tag, attr string) (map[string]struct{}, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse rendered HTML: %w", err)
	}

	refs := make(map[string]struct{})
	doc.Find(fmt.Sprintf("%s[%s]", tag, attr)).Each(func(_ int, s *goquery.Selection) {
		val, ok := s.Attr(attr)
		if !ok {
			return
		}
		val = strings.TrimSpace(val)
		if strings.HasPrefix(val, "http://") || strings.HasPrefix(val, "https://") {
			refs[val] = struct{}{}
		}
	})
	return refs, nil
}
