package manual

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"
)

var (
	paragraphBreak = regexp.MustCompile(`\n[ \t]*\n+`)
	pageMarker     = regexp.MustCompile(`^(e-\d+|-?\s*\d+\s*-?|page \d+( of \d+)?)$`)
	dotLeader      = regexp.MustCompile(`\.{4,}`)
)

// Clean normalizes extracted manual text: whitespace inside a paragraph is
// collapsed, page furniture is dropped and repeated paragraphs (running
// headers, repeated warnings) are kept once. Paragraphs are joined by a
// blank line.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	seen := map[string]bool{}
	var kept []string
	for _, paragraph := range paragraphBreak.Split(text, -1) {
		canonical := strings.TrimSpace(extraneousWhitespace.ReplaceAllString(paragraph, " "))
		if isBoilerplate(canonical) {
			continue
		}
		hash := paragraphHash(strings.ToLower(canonical))
		if seen[hash] {
			continue
		}
		seen[hash] = true
		kept = append(kept, canonical)
	}
	return strings.Join(kept, "\n\n")
}

func isBoilerplate(paragraph string) bool {
	lower := strings.ToLower(paragraph)
	switch {
	case lower == "":
		return true
	case lower == "contents", lower == "index":
		return true
	case strings.HasPrefix(lower, "copyright"), strings.HasPrefix(lower, "©"):
		return true
	case strings.HasPrefix(lower, "casio computer co"):
		return true
	case pageMarker.MatchString(lower):
		return true
	case dotLeader.MatchString(lower):
		return true
	}
	if len(lower) <= 12 && !strings.Contains(lower, " ") {
		return true
	}
	letters := 0
	for _, r := range lower {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters*5 < len(lower)
}

func paragraphHash(text string) string {
	sum := sha1.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
