package pricing

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"homelytics/internal/phrase"
)

const (
	// CustomItemPrice is the flat estimate for furniture outside the catalog.
	CustomItemPrice = 35000
	customPrefix    = "Custom: "
	minCustomLength = 3
	segmentDelims   = ",/&"
)

var segmentWords = []string{"and", "with", "plus"}

var fillerWords = map[string]struct{}{
	"add": {}, "please": {}, "show": {}, "include": {}, "room": {}, "my": {},
	"the": {}, "a": {}, "an": {}, "to": {}, "in": {}, "with": {}, "and": {},
	"make": {}, "have": {}, "should": {}, "be": {}, "needs": {}, "want": {},
	"like": {}, "color": {}, "coloured": {}, "colored": {}, "paint": {},
	"of": {}, "for": {}, "on": {}, "at": {}, "this": {}, "that": {},
}

// CustomItem is a furniture mention the catalog does not know.
type CustomItem struct {
	// Name is the filtered segment text in its original casing.
	Name        string
	DisplayName string
	Price       int
}

// ExtractCustom returns one custom item per prompt segment that names
// something other than an already matched trigger phrase. Segments are
// reported in prompt order and duplicates are kept.
func ExtractCustom(prompt string, matched []string) []CustomItem {
	if strings.TrimSpace(prompt) == "" {
		return nil
	}

	var items []CustomItem
	for _, segment := range phrase.Split(prompt, segmentDelims, segmentWords...) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if phrase.ContainsAny(strings.ToLower(segment), matched) {
			continue
		}
		name := stripFiller(segment)
		if utf8.RuneCountInString(name) < minCustomLength {
			continue
		}
		items = append(items, CustomItem{
			Name:        name,
			DisplayName: customPrefix + titleCase(name),
			Price:       CustomItemPrice,
		})
	}
	return items
}

func stripFiller(segment string) string {
	words := strings.Fields(segment)
	kept := words[:0]
	for _, w := range words {
		if _, filler := fillerWords[strings.ToLower(w)]; filler {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// Casers keep state, so each call gets its own.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
