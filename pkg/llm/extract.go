package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fencedBlockRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// ExtractJSONObject pulls a JSON object out of raw model output. Models wrap
// JSON in prose or markdown fences often enough that three strategies are
// tried in order: a fenced code block, the first brace-balanced {...} span,
// then the entire trimmed text. The first candidate that is valid JSON wins.
func ExtractJSONObject(text string) (string, error) {
	var candidates []string

	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	if span := braceSpan(text); span != "" {
		candidates = append(candidates, span)
	}
	candidates = append(candidates, strings.TrimSpace(text))

	for _, cand := range candidates {
		if cand == "" || cand[0] != '{' {
			continue
		}
		if json.Valid([]byte(cand)) {
			return cand, nil
		}
	}

	return "", fmt.Errorf("llm: no json object found in model output (%d chars, starts %q)", len(text), head(text, 40))
}

// braceSpan returns the first balanced {...} span, tracking string literals
// so braces inside quoted values don't skew the depth count.
func braceSpan(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}
	return ""
}

func head(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
