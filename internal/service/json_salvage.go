package service

import (
	"encoding/json"
	"strings"
)

// extractJSON recovers a JSON document from model output in two stages:
// strip markdown code fences and try the remainder directly, then fall back
// to the largest balanced {...} or [...] span. Returns false when neither
// stage yields valid JSON; only the caller converts that into an error.
func extractJSON(raw string) (string, bool) {
	candidate := stripFences(raw)
	if json.Valid([]byte(candidate)) {
		return candidate, true
	}

	if span := largestBalancedSpan(raw); span != "" && json.Valid([]byte(span)) {
		return span, true
	}
	return "", false
}

// stripFences removes a leading ```/```json fence line and a trailing ```
// fence, if present.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```json")
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// largestBalancedSpan returns the longest brace- or bracket-balanced span in
// raw, tracking string literals and escapes so braces inside values do not
// break the count. Empty string means no balanced span exists.
func largestBalancedSpan(raw string) string {
	best := ""
	for i := 0; i < len(raw); i++ {
		open := raw[i]
		if open != '{' && open != '[' {
			continue
		}
		if end := matchBalanced(raw, i); end > i {
			if span := raw[i : end+1]; len(span) > len(best) {
				best = span
			}
			// Skip past this span; nested opens inside it can only yield
			// shorter candidates.
			i = end
		}
	}
	return best
}

func matchBalanced(raw string, start int) int {
	var (
		depth    int
		inString bool
		escaped  bool
	)
	for i := start; i < len(raw); i++ {
		c := raw[i]
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
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i
			}
			if depth < 0 {
				return -1
			}
		}
	}
	return -1
}
