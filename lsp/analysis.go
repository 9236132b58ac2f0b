// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lsp turns the lexer/parser/validator pipeline into
// editor-facing features: published diagnostics, completions, and
// hover documentation, plus the document store that tracks open files.
// All feature computations are pure functions of an Analysis snapshot,
// so they can be re-run on every keystroke without any caching beyond
// the store's own text cache.
package lsp

import (
	"sort"

	"github.com/takumi3488/protobuf-edition-lsp/ast"
	"github.com/takumi3488/protobuf-edition-lsp/parser"
	"github.com/takumi3488/protobuf-edition-lsp/reporter"
	"github.com/takumi3488/protobuf-edition-lsp/validator"
)

// Analysis is the immutable result of running the full pipeline over
// one snapshot of a document's text. Feature handlers take an Analysis
// plus request-specific input and never look at the live document.
type Analysis struct {
	Source                []byte
	File                  *ast.FileNode
	Tokens                []parser.Token
	ParseDiagnostics      []reporter.Diagnostic
	ValidationDiagnostics []reporter.Diagnostic
	Symbols               *SymbolIndex

	lineOffsets []int // byte offset of each line start
}

// Analyze runs lexer, parser, and validator over source. It never
// fails: arbitrarily broken input yields an Analysis whose AST covers
// the whole input and whose diagnostics describe what went wrong.
func Analyze(source []byte) *Analysis {
	file, tokens, parseDiags := parser.ParseSource(source)
	a := &Analysis{
		Source:                source,
		File:                  file,
		Tokens:                tokens,
		ParseDiagnostics:      parseDiags,
		ValidationDiagnostics: validator.Validate(file),
		Symbols:               BuildSymbolIndex(file),
		lineOffsets:           []int{0},
	}
	for i, b := range source {
		if b == '\n' {
			a.lineOffsets = append(a.lineOffsets, i+1)
		}
	}
	return a
}

// PositionToPos converts a zero-based (line, column) pair into a full
// source position. Out-of-range lines clamp to the end of the file and
// out-of-range columns to the end of the line, which is the friendliest
// interpretation of a position from a slightly stale client.
func (a *Analysis) PositionToPos(line, col int) ast.SourcePos {
	if line < 0 {
		line, col = 0, 0
	}
	if line >= len(a.lineOffsets) {
		return ast.SourcePos{
			Line:   len(a.lineOffsets) - 1,
			Col:    len(a.Source) - a.lineOffsets[len(a.lineOffsets)-1],
			Offset: len(a.Source),
		}
	}
	lineStart := a.lineOffsets[line]
	lineEnd := len(a.Source)
	if line+1 < len(a.lineOffsets) {
		lineEnd = a.lineOffsets[line+1] - 1
	}
	if col < 0 {
		col = 0
	}
	if lineStart+col > lineEnd {
		col = lineEnd - lineStart
	}
	return ast.SourcePos{Line: line, Col: col, Offset: lineStart + col}
}

// Diagnostics merges parse and validation diagnostics into the single
// ordered sequence published to the client.
func (a *Analysis) Diagnostics() []reporter.Diagnostic {
	return ComputeDiagnostics(a.ParseDiagnostics, a.ValidationDiagnostics)
}

// ComputeDiagnostics is the union of parse and validation diagnostics,
// sorted by span start and deduplicated only when two diagnostics agree
// on span, code, and message.
func ComputeDiagnostics(parseDiags, validationDiags []reporter.Diagnostic) []reporter.Diagnostic {
	merged := make([]reporter.Diagnostic, 0, len(parseDiags)+len(validationDiags))
	merged = append(merged, parseDiags...)
	merged = append(merged, validationDiags...)
	sort.SliceStable(merged, func(i, j int) bool {
		if c := merged[i].Span.Compare(merged[j].Span); c != 0 {
			return c < 0
		}
		if merged[i].Code != merged[j].Code {
			return merged[i].Code < merged[j].Code
		}
		return merged[i].Message < merged[j].Message
	})
	out := merged[:0]
	for i, d := range merged {
		if i > 0 {
			prev := out[len(out)-1]
			if prev.Span == d.Span && prev.Code == d.Code && prev.Message == d.Message {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}
