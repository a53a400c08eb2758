package llm

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// SystemInstruction scopes every provider to calculator help.
const SystemInstruction = "You are a helpful AI assistant for the Casio FC-100V financial calculator. " +
	"Users will ask questions about how to use the calculator, its functions, or financial calculations. " +
	"Provide clear, concise, and accurate information. " +
	"If a question is outside this scope, politely state that you are specialized for calculator assistance."

var (
	errEmptyQuestion = errors.New("question cannot be empty")
	// ErrMissingAPIKey is returned by hosted providers asked without a key.
	ErrMissingAPIKey = errors.New("API key is not set")
)

var whitespaceRe = regexp.MustCompile(`\s+`)

func clipText(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// buildQuestionPrompt returns the user turn. Without a manual the question is
// sent as typed.
func buildQuestionPrompt(question, manual string) string {
	excerpt := extractQuestionContext(manual, question, maxManualChars)
	if excerpt == "" {
		return question
	}
	var b strings.Builder
	b.WriteString("Relevant excerpts from the FC-100V user's guide:\n")
	b.WriteString(excerpt)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

func extractQuestionContext(content, question string, limit int) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}
	keywords := questionKeywords(question)
	if len(keywords) == 0 {
		return clipText(content, limit)
	}

	sentences := roughSentenceSplit(content)
	var matches []string
	totalLen := 0

	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for keyword := range keywords {
			if strings.Contains(lower, keyword) {
				matches = append(matches, sentence)
				totalLen += len(sentence)
				break
			}
		}
		if totalLen >= limit {
			break
		}
	}

	if len(matches) == 0 {
		return clipText(content, limit)
	}
	return clipText(strings.Join(matches, " "), limit)
}

var stopwords = map[string]struct{}{
	"what": {}, "why": {}, "how": {}, "is": {}, "the": {}, "a": {}, "an": {}, "of": {},
	"does": {}, "do": {}, "in": {}, "on": {}, "for": {}, "are": {}, "be": {}, "use": {},
	"using": {}, "can": {}, "calculator": {}, "key": {}, "press": {}, "and": {}, "with": {},
}

func questionKeywords(question string) map[string]struct{} {
	question = strings.ToLower(question)
	question = whitespaceRe.ReplaceAllString(question, " ")
	tokens := strings.FieldsFunc(question, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	keywords := map[string]struct{}{}
	for _, token := range tokens {
		if len(token) < 3 {
			continue
		}
		if _, skip := stopwords[token]; skip {
			continue
		}
		keywords[token] = struct{}{}
	}
	return keywords
}

func roughSentenceSplit(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if sentence := strings.TrimSpace(current.String()); sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
		}
	}
	if tail := strings.TrimSpace(current.String()); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}
