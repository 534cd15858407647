package utils

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Model completions are not guaranteed well-formed JSON even when the request
// asks for JSON mode. RecoverJSON runs a fixed ladder of repairs ordered from
// least to most destructive, so correct input is never mangled and repair only
// happens on an observed parse failure.

var (
	// digit followed by a quoted key without a separating comma's whitespace
	// normalized, e.g. `120,   "name"` and `120, "name"` -> `120,"name"`.
	digitKeyPattern = regexp.MustCompile(`([0-9]),\s*"([a-zA-Z])`)

	trailingArrayComma  = regexp.MustCompile(`\}\s*,\s*\]`)
	trailingObjectComma = regexp.MustCompile(`,\s*\}`)
	trailingComma       = regexp.MustCompile(`,\s*([}\]])`)

	// known completion glitches around coordinate pairs
	lonLatComma       = regexp.MustCompile(`("longitude"\s*:\s*[0-9.]+)\s*,?\s*("latitude")`)
	latitudeTrailing  = regexp.MustCompile(`("latitude"\s*:\s*[0-9.]+)[^0-9,}\]]*\}`)
	markdownFenceOpen = regexp.MustCompile("```(?:json)?")
)

// RecoverJSON extracts a parseable JSON document from raw completion text.
// Tiers, strictly in order, first success wins:
//  1. direct parse of the trimmed (and fence-stripped) text
//  2. structural cleanup then parse
//  3. greedy substring from the first '{' to the last '}'
//  4. targeted patches for known coordinate/trailing-comma glitches
//
// If every tier fails the text is reported as ErrUnparsableResponse.
func RecoverJSON(raw string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(markdownFenceOpen.ReplaceAllString(raw, ""))
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}

	cleaned := CleanJSONText(trimmed)
	if json.Valid([]byte(cleaned)) {
		return json.RawMessage(cleaned), nil
	}

	if start, end := strings.Index(trimmed, "{"), strings.LastIndex(trimmed, "}"); start >= 0 && end > start {
		sub := trimmed[start : end+1]
		if json.Valid([]byte(sub)) {
			return json.RawMessage(sub), nil
		}
	}

	patched := applyTargetedPatches(trimmed)
	if json.Valid([]byte(patched)) {
		return json.RawMessage(patched), nil
	}

	return nil, ErrUnparsableResponse
}

// CleanJSONText removes the characters that most commonly break a completion:
// literal and escaped newlines, over-escaped quotes, stray quotes hugging
// braces and trailing commas.
func CleanJSONText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, `\n`, " ")
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `"{`, `{`)
	s = strings.ReplaceAll(s, `}"`, `}`)
	s = digitKeyPattern.ReplaceAllString(s, `${1},"${2}`)
	s = trailingArrayComma.ReplaceAllString(s, "}]")
	s = trailingObjectComma.ReplaceAllString(s, "}")
	return s
}

func applyTargetedPatches(s string) string {
	s = lonLatComma.ReplaceAllString(s, `${1},${2}`)
	s = latitudeTrailing.ReplaceAllString(s, `${1}}`)
	s = trailingComma.ReplaceAllString(s, `${1}`)
	return s
}
