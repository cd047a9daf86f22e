package processors

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Model completions rarely contain just the requested payload: reasoning
// models wrap output in <think> blocks, chat models add prose and markdown
// code fences. The extractors here isolate the JSON object or HTML document
// from whatever surrounds it.

var thinkingRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

var jsonFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

var htmlFenceRe = regexp.MustCompile("(?is)```(?:html)?\\s*(<!DOCTYPE.*?</html>)\\s*```")

// StripThinking removes reasoning-model thinking blocks from a completion
func StripThinking(text string) string {
	return strings.TrimSpace(thinkingRe.ReplaceAllString(text, ""))
}

// ExtractJSON locates a syntactically valid top-level JSON object inside a
// completion, tolerating surrounding prose and code fences. Candidates are
// tried in order: fenced blocks first, then every brace-matched object in
// the raw text, until one decodes.
func ExtractJSON(text string) (string, error) {
	text = StripThinking(text)

	for _, match := range jsonFenceRe.FindAllStringSubmatch(text, -1) {
		if json.Valid([]byte(match[1])) {
			return match[1], nil
		}
	}

	for start := strings.IndexByte(text, '{'); start != -1; {
		if end, ok := matchBraces(text, start); ok {
			candidate := text[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, nil
			}
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next == -1 {
			break
		}
		start += 1 + next
	}

	return "", fmt.Errorf("no parsable JSON object in completion (%d chars)", len(text))
}

// ExtractHTML locates a complete HTML document inside a completion,
// tolerating surrounding commentary and code fences
func ExtractHTML(text string) (string, error) {
	text = StripThinking(text)

	if match := htmlFenceRe.FindStringSubmatch(text); match != nil {
		return strings.TrimSpace(match[1]), nil
	}

	lower := strings.ToLower(text)
	start := strings.Index(lower, "<!doctype")
	if start == -1 {
		start = strings.Index(lower, "<html")
	}
	end := strings.LastIndex(lower, "</html>")

	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no complete HTML document in completion (%d chars)", len(text))
	}

	return strings.TrimSpace(text[start : end+len("</html>")]), nil
}

// matchBraces returns the index of the brace closing the object opened at
// start. String literals and escapes are honored so braces inside values
// don't end the scan early.
func matchBraces(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}
