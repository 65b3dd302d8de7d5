// Package contextwindow derives the ±1-page neighborhood of document sections
// used to ground search and generation requests in nearby content.
package contextwindow

import (
	"strings"

	"pdf-insight-workspace/pkg/store"
)

// Extract filters sections to those whose page lies within one page of
// currentPage, preserving original relative order, and joins their snippets
// into a single context string. An empty result means "no nearby context";
// callers search on the selected text alone rather than treating it as an
// error. Pure function, no I/O.
func Extract(sections []store.DocumentSection, currentPage int) ([]store.DocumentSection, string) {
	var filtered []store.DocumentSection
	for _, section := range sections {
		if section.PageNumber >= currentPage-1 && section.PageNumber <= currentPage+1 {
			filtered = append(filtered, section)
		}
	}

	snippets := make([]string, len(filtered))
	for i, section := range filtered {
		snippets[i] = section.Snippet
	}
	return filtered, strings.Join(snippets, " ")
}

// SectionIDs applies the same page window and returns only the section ids,
// the shape the insight and audio endpoints expect.
func SectionIDs(sections []store.DocumentSection, currentPage int) []string {
	filtered, _ := Extract(sections, currentPage)
	ids := make([]string, 0, len(filtered))
	for _, section := range filtered {
		ids = append(ids, section.ID)
	}
	return ids
}
