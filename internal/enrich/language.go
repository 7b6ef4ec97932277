package enrich

import "unicode/utf8"

type Tag string

const (
	TagHindiHeavy Tag = "hindi-heavy"
	TagHinglish   Tag = "hinglish"
	TagEnglish    Tag = "english"
	TagOther      Tag = "other"
)

const (
	devanagariFirst = '\u0900'
	devanagariLast  = '\u097F'

	heavyRatio = 0.30
	mixedRatio = 0.05
)

// Language tags a message body by the share of Devanagari code points.
// Every code point counts toward the total, including spaces and digits.
func Language(body string) Tag {
	total := utf8.RuneCountInString(body)
	if total == 0 {
		return TagOther
	}

	script := 0
	for _, r := range body {
		if r >= devanagariFirst && r <= devanagariLast {
			script++
		}
	}

	ratio := float64(script) / float64(total)
	switch {
	case ratio > heavyRatio:
		return TagHindiHeavy
	case ratio > mixedRatio:
		return TagHinglish
	default:
		return TagEnglish
	}
}
