package canon

import "strings"

// diacriticExceptions is the fixed table of tokens the award source garbles.
// Matching stays exact-string after this table; names outside it that the
// source mangles simply fail to join (counted upstream, never guessed).
var diacriticExceptions = map[string]string{
	"Jokic":  "Jokić",
	"Doncic": "Dončić",
}

// FormatPlayerName canonicalizes a player name for joining: each token is
// title-cased, then passed through the diacritic exception table.
// "nikola jokic" -> "Nikola Jokić".
func FormatPlayerName(name string) string {
	parts := strings.Fields(name)
	for i, part := range parts {
		part = capitalize(part)
		if fixed, ok := diacriticExceptions[part]; ok {
			part = fixed
		}
		parts[i] = part
	}
	return strings.Join(parts, " ")
}

// capitalize upper-cases the first rune and lower-cases the rest of the
// token, so differently-cased spellings of a name collapse to one key.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	first := strings.ToUpper(string(runes[0]))
	if len(runes) == 1 {
		return first
	}
	return first + strings.ToLower(string(runes[1:]))
}
