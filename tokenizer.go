// tokenizer.go: Line tokenizer for the Hestia profile format
//
// Splits raw file text into a single-pass sequence of classified lines.
// Blank lines, ';' comments and malformed lines are consumed silently;
// only section headers and key=value pairs surface as tokens. This
// mirrors the forgiving nature of classic profile readers: a damaged
// line is dropped, never an error.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"bufio"
	"bytes"
	"strings"
)

// tokenKind classifies a meaningful line.
type tokenKind uint8

const (
	tokenSectionHeader tokenKind = iota
	tokenKeyValue
)

// token is one classified line from the tokenizer.
type token struct {
	kind    tokenKind
	section string // header name, trimmed
	key     string // trimmed, non-empty
	value   string // verbatim remainder after the first '='
}

// utf8BOM is stripped from the start of input so byte-order marked files
// parse identically to plain UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// tokenizer yields tokens one line at a time. It is a single forward
// pass over the input and is not restartable.
type tokenizer struct {
	scanner *bufio.Scanner
}

// newTokenizer creates a tokenizer over raw file bytes.
func newTokenizer(data []byte) *tokenizer {
	data = bytes.TrimPrefix(data, utf8BOM)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	// Values are unbounded: grow well past the Scanner default so long
	// lines never truncate silently.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &tokenizer{scanner: scanner}
}

// Next returns the next meaningful token, or ok=false at end of input.
func (t *tokenizer) Next() (token, bool) {
	for t.scanner.Scan() {
		line := strings.TrimSuffix(t.scanner.Text(), "\r")
		if tok, ok := classifyLine(line); ok {
			return tok, true
		}
	}
	return token{}, false
}

// classifyLine classifies a single logical line. Returns ok=false for
// blank lines, comments and anything malformed.
func classifyLine(line string) (token, bool) {
	trimmed := strings.TrimSpace(line)

	// Blank or ';' comment: never stored, never round-tripped.
	if trimmed == "" || strings.HasPrefix(trimmed, ";") {
		return token{}, false
	}

	// Section header: [name], name trimmed.
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		name := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
		return token{kind: tokenSectionHeader, section: name}, true
	}

	// Key=value: key is trimmed and must be non-empty, value is the
	// verbatim remainder after the first '=' with no trimming so
	// intentional leading or trailing content survives.
	if eq := strings.IndexByte(line, '='); eq >= 0 {
		key := strings.TrimSpace(line[:eq])
		if key == "" {
			return token{}, false
		}
		return token{kind: tokenKeyValue, key: key, value: line[eq+1:]}, true
	}

	// Any other non-blank line is silently skipped.
	return token{}, false
}
