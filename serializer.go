// serializer.go: Canonical profile rendering for Hestia
//
// Renders a Document back to the on-disk text form: sections in document
// order as [name] followed by key=value lines, a blank line between
// sections, and the unnamed global section first with no header line.
// Round-trip is value-preserving, not byte-preserving: comments and
// blank lines read from the original file are not reproduced.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"bytes"
)

// serializeDocument renders the document to file bytes, terminated with
// a trailing newline.
func serializeDocument(doc *Document) []byte {
	var buf bytes.Buffer

	first := true
	for _, s := range doc.sections {
		// The global section renders without a header and is dropped
		// entirely when empty; empty named sections keep their header.
		if s.Name == "" && len(s.entries) == 0 {
			continue
		}

		if !first {
			buf.WriteByte('\n')
		}
		first = false

		if s.Name != "" {
			buf.WriteByte('[')
			buf.WriteString(s.Name)
			buf.WriteString("]\n")
		}
		for _, e := range s.entries {
			buf.WriteString(e.Key)
			buf.WriteByte('=')
			buf.WriteString(e.Value)
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes()
}
