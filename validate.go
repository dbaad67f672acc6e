// validate.go: Strict lint pass over raw profile bytes
//
// The parser is deliberately forgiving and drops malformed lines
// without reporting. Lint runs the same classification strictly and
// returns what the parser would silently skip, so tooling can surface
// problems the engine tolerates.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: AGILira System Libraries
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"unicode"
)

// LintIssue describes one line the parser would skip or mangle.
type LintIssue struct {
	Line   int
	Text   string
	Reason string
}

func (i LintIssue) String() string {
	return fmt.Sprintf("line %d: %s", i.Line, i.Reason)
}

// Lint reports every line of data that would not survive a parse:
// malformed headers, empty keys, bare words, and keys carrying control
// characters. A clean file returns an empty slice.
func Lint(data []byte) []LintIssue {
	data = bytes.TrimPrefix(data, utf8BOM)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var issues []LintIssue
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			if !strings.HasSuffix(trimmed, "]") {
				issues = append(issues, LintIssue{lineNum, line, "unterminated section header"})
			}
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			issues = append(issues, LintIssue{lineNum, line, "line is neither a section header nor key=value"})
			continue
		}

		key := strings.TrimSpace(line[:eq])
		if key == "" {
			issues = append(issues, LintIssue{lineNum, line, "key cannot be empty"})
			continue
		}
		if reason := lintKey(key); reason != "" {
			issues = append(issues, LintIssue{lineNum, line, reason})
		}
	}

	return issues
}

// lintKey flags dangerous characters in a key. Null bytes and control
// characters survive the parse but corrupt the file for other readers.
func lintKey(key string) string {
	for _, char := range key {
		if char == '\x00' {
			return "null byte not allowed in keys"
		}
		if char < 32 && char != '\t' {
			return "control character not allowed in keys"
		}
		if !unicode.IsPrint(char) && char != '\t' {
			return "non-printable character not allowed in keys"
		}
	}
	return ""
}
