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

package lsp

import (
	"github.com/takumi3488/protobuf-edition-lsp/ast"
	"github.com/takumi3488/protobuf-edition-lsp/parser"
)

type CompletionKind int

const (
	CompletionKeyword CompletionKind = iota
	CompletionType
	CompletionField
)

// CompletionItem is one completion candidate: the text to insert, what
// kind of thing it is, and an optional human-readable detail line.
type CompletionItem struct {
	Label  string
	Kind   CompletionKind
	Detail string
}

var enumBodyKeywords = []string{"option", "reserved"}

var serviceBodyKeywords = []string{"rpc", "option"}

// ComputeCompletions determines the syntactic context at the cursor
// and returns context-appropriate candidates. It is a pure function of
// the analysis snapshot: equal inputs always yield identical output.
//
// Context is derived from the innermost AST node containing the cursor
// together with the last token ending at or before it. At a statement
// boundary inside a message the candidates are scalar type keywords,
// structural keywords, and type names declared earlier in the file;
// once a field type has been typed the type-keyword candidates drop
// away, since what follows is a field name the user has to invent.
func ComputeCompletions(a *Analysis, pos ast.SourcePos) []CompletionItem {
	anchor, touching := anchorToken(a.Tokens, pos)
	if touching && anchor.prev != nil {
		// the cursor is still attached to the word being typed; classify
		// by what precedes that word and let the client filter by prefix
		anchor = *anchor.prev
	}

	scope := enclosingScope(a.File, pos)
	if !anchor.atBoundary() {
		// a completed word (or '=', a literal, ...) precedes the cursor:
		// a field name, field number, or similar continuation is expected
		// and none of those can be suggested
		return nil
	}

	var items []CompletionItem
	switch scope.(type) {
	case *ast.MessageNode, *ast.OneofNode:
		for _, name := range ast.ScalarTypeNames() {
			items = append(items, CompletionItem{Label: name, Kind: CompletionType, Detail: "scalar type"})
		}
		for _, kw := range parser.MessageDeclKeywords() {
			items = append(items, CompletionItem{Label: kw, Kind: CompletionKeyword, Detail: "keyword"})
		}
		for _, sym := range a.Symbols.DeclaredBefore(pos) {
			items = append(items, CompletionItem{Label: sym.Name, Kind: CompletionType, Detail: sym.Kind.String()})
		}
	case *ast.EnumNode:
		for _, kw := range enumBodyKeywords {
			items = append(items, CompletionItem{Label: kw, Kind: CompletionKeyword, Detail: "keyword"})
		}
	case *ast.ServiceNode:
		for _, kw := range serviceBodyKeywords {
			items = append(items, CompletionItem{Label: kw, Kind: CompletionKeyword, Detail: "keyword"})
		}
	default:
		for _, kw := range parser.FileDeclKeywords() {
			items = append(items, CompletionItem{Label: kw, Kind: CompletionKeyword, Detail: "keyword"})
		}
	}
	return items
}

// anchorState is the token context to the left of the cursor.
type anchorState struct {
	tok  *parser.Token
	prev *anchorState
}

// atBoundary reports whether this anchor allows a new declaration to
// start: beginning of file, or after '{', '}', or ';'.
func (s anchorState) atBoundary() bool {
	if s.tok == nil {
		return true
	}
	return s.tok.IsPunct("{") || s.tok.IsPunct("}") || s.tok.IsPunct(";")
}

// anchorToken finds the last significant token ending at or before
// pos. touching reports whether the cursor sits immediately at that
// token's end with no whitespace between, meaning the user is still in
// the middle of typing it.
func anchorToken(tokens []parser.Token, pos ast.SourcePos) (anchorState, bool) {
	var anchor anchorState
	touching := false
	for i := range tokens {
		tok := &tokens[i]
		if tok.Kind == parser.TokenComment || tok.Kind == parser.TokenEOF {
			continue
		}
		if tok.Span.End.Offset > pos.Offset {
			break
		}
		prev := anchor
		anchor = anchorState{tok: tok, prev: &prev}
		touching = tok.Span.End.Offset == pos.Offset && tok.Kind == parser.TokenIdentifier
	}
	return anchor, touching
}

// enclosingScope returns the innermost message, enum, or service body
// containing pos, or nil at file scope.
func enclosingScope(file *ast.FileNode, pos ast.SourcePos) ast.Node {
	node, path := ast.NodeAt(file, pos)
	if node != nil {
		path = append(path, node)
	}
	for i := len(path) - 1; i >= 0; i-- {
		switch n := path[i].(type) {
		case *ast.MessageNode, *ast.OneofNode, *ast.EnumNode, *ast.ServiceNode:
			// the cursor must be inside the braces, not on the name or
			// keyword; the name token always precedes the body
			if insideBody(n, pos) {
				return n
			}
		}
	}
	return nil
}

// insideBody reports whether pos falls after the declaration's header.
// The heuristic is the span of the declaration's name: anything past it
// is body (or the open brace, which completion treats the same way).
func insideBody(n ast.Node, pos ast.SourcePos) bool {
	var name *ast.IdentNode
	switch n := n.(type) {
	case *ast.MessageNode:
		name = n.Name
	case *ast.OneofNode:
		name = n.Name
	case *ast.EnumNode:
		name = n.Name
	case *ast.ServiceNode:
		name = n.Name
	}
	if name == nil {
		return true
	}
	return name.Span().End.Offset < pos.Offset
}
