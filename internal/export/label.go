package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatLabel turns a camelCase key into title-cased words: "lossOfLiquor" -> "Loss Of Liquor".
func FormatLabel(key string) string {
	var words []string
	start := 0
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, key[start:i])
			start = i
		}
	}
	words = append(words, key[start:])

	return cases.Title(language.English).String(strings.Join(words, " "))
}
