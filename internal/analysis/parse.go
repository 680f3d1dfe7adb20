package analysis

import (
	"encoding/json"
	"strings"
)

// Parse reason strings, kept identical to what the dashboard shows.
const (
	reasonNoJSON  = "응답 파싱 실패"
	reasonBadJSON = "JSON 파싱 오류"
)

// ExtractResult locates a JSON object inside the model's free-text reply and
// decodes it. Models routinely wrap their JSON in prose, so the reply is
// never required to be JSON-only: the greedy first-'{' to last-'}' span is
// tried first, then a bracket-depth scan for the first balanced object. When
// neither yields valid JSON the returned error is a *ParseError carrying the
// unmodified reply.
func ExtractResult(reply string) (*Result, error) {
	span, ok := greedySpan(reply)
	if !ok {
		return nil, &ParseError{Reason: reasonNoJSON, Raw: reply}
	}

	if res, err := decodeResult(span, reply); err == nil {
		return res, nil
	}

	// The greedy span mis-extracts when the surrounding prose itself contains
	// braces; fall back to the first balanced object.
	if span, ok = balancedSpan(reply); ok {
		if res, err := decodeResult(span, reply); err == nil {
			return res, nil
		}
	}

	return nil, &ParseError{Reason: reasonBadJSON, Raw: reply}
}

// ExtractInto decodes the located JSON object into v instead of a Result,
// for replies with shapes of their own (e.g. the medical info lookup).
func ExtractInto(reply string, v any) error {
	span, ok := greedySpan(reply)
	if !ok {
		return &ParseError{Reason: reasonNoJSON, Raw: reply}
	}
	if json.Unmarshal([]byte(span), v) == nil {
		return nil
	}
	if span, ok = balancedSpan(reply); ok {
		if json.Unmarshal([]byte(span), v) == nil {
			return nil
		}
	}
	return &ParseError{Reason: reasonBadJSON, Raw: reply}
}

func decodeResult(span, raw string) (*Result, error) {
	res := &Result{}
	if err := json.Unmarshal([]byte(span), res); err != nil {
		return nil, err
	}
	// Keep the loosely-typed view for keys the structs do not name.
	if err := json.Unmarshal([]byte(span), &res.Fields); err != nil {
		return nil, err
	}
	res.Raw = raw
	return res, nil
}

// greedySpan returns the first-'{' to last-'}' substring.
func greedySpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// balancedSpan scans from the first '{' tracking brace depth (string- and
// escape-aware) and returns the first balanced object.
func balancedSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

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
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
