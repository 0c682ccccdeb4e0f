// Package phrase finds words and multi-word phrases in free text without
// matching inside larger words.
package phrase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsWordRune reports whether r is part of a word: a letter, a digit or an
// underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Index returns the byte offset of the first occurrence of needle in text
// that is not directly preceded or followed by a word rune, or -1.
// The comparison is exact; callers lowercase both sides when needed.
func Index(text, needle string) int {
	if needle == "" {
		return -1
	}
	offset := 0
	for offset <= len(text)-len(needle) {
		i := strings.Index(text[offset:], needle)
		if i < 0 {
			return -1
		}
		start := offset + i
		end := start + len(needle)
		if bounded(text, start, end) {
			return start
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return -1
}

// Contains reports whether needle occurs in text as a whole word or phrase.
func Contains(text, needle string) bool {
	return Index(text, needle) >= 0
}

// ContainsAny reports whether any of needles occurs bounded in text.
func ContainsAny(text string, needles []string) bool {
	for _, n := range needles {
		if Contains(text, n) {
			return true
		}
	}
	return false
}

func bounded(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if IsWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if IsWordRune(r) {
			return false
		}
	}
	return true
}

// Split cuts text at every rune in delims and at every standalone word in
// words (compared case-insensitively). Separators are dropped, segments
// keep their original text and order, and empty segments are kept.
func Split(text, delims string, words ...string) []string {
	var segments []string
	start, i := 0, 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case strings.ContainsRune(delims, r):
			segments = append(segments, text[start:i])
			i += size
			start = i
		case IsWordRune(r):
			j := i + size
			for j < len(text) {
				next, n := utf8.DecodeRuneInString(text[j:])
				if !IsWordRune(next) {
					break
				}
				j += n
			}
			if equalsAny(text[i:j], words) {
				segments = append(segments, text[start:i])
				start = j
			}
			i = j
		default:
			i += size
		}
	}
	return append(segments, text[start:])
}

func equalsAny(word string, words []string) bool {
	for _, w := range words {
		if strings.EqualFold(word, w) {
			return true
		}
	}
	return false
}
