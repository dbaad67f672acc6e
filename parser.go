// parser.go: Profile parser for Hestia
//
// Folds the tokenizer's line sequence into a Document. Parsing never
// fails on data: unparseable lines are dropped by the tokenizer, and a
// repeated section header re-selects the existing section instead of
// creating a duplicate.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

// parseDocument builds a Document from raw file bytes.
//
// The parser starts in the unnamed global section. A section header
// switches the current section, creating it if new; later occurrences
// of the same name continue adding to the same section. A key=value
// token inserts or overwrites an entry in the current section.
func parseDocument(data []byte) *Document {
	doc := NewDocument()
	tok := newTokenizer(data)
	current := "" // unnamed global section

	for {
		t, ok := tok.Next()
		if !ok {
			break
		}
		switch t.kind {
		case tokenSectionHeader:
			current = t.section
			doc.ensureSection(current)
		case tokenKeyValue:
			doc.Set(current, t.key, t.value)
		}
	}

	return doc
}
