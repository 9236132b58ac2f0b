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
	"fmt"
	"strings"

	"github.com/takumi3488/protobuf-edition-lsp/ast"
	"github.com/takumi3488/protobuf-edition-lsp/parser"
)

// Hover is the documentation shown when the user points at something:
// markdown contents plus the span of the thing being described, so the
// client can highlight it.
type Hover struct {
	Contents string
	Span     ast.SourceSpan
}

var scalarTypeDocs = map[string]string{
	"double":   "64-bit floating point number",
	"float":    "32-bit floating point number",
	"int32":    "32-bit signed integer using variable-length encoding",
	"int64":    "64-bit signed integer using variable-length encoding",
	"uint32":   "32-bit unsigned integer using variable-length encoding",
	"uint64":   "64-bit unsigned integer using variable-length encoding",
	"sint32":   "32-bit signed integer using zigzag encoding",
	"sint64":   "64-bit signed integer using zigzag encoding",
	"fixed32":  "32-bit unsigned integer using fixed-width encoding",
	"fixed64":  "64-bit unsigned integer using fixed-width encoding",
	"sfixed32": "32-bit signed integer using fixed-width encoding",
	"sfixed64": "64-bit signed integer using fixed-width encoding",
	"bool":     "Boolean value (true or false)",
	"string":   "UTF-8 encoded string",
	"bytes":    "Arbitrary sequence of bytes",
}

var keywordDocs = map[string]string{
	"message":  "Defines a message type",
	"enum":     "Defines an enumeration",
	"service":  "Defines an RPC service",
	"rpc":      "Defines a service method",
	"repeated": "Field can have zero or more values",
	"optional": "Field presence is tracked explicitly",
	"required": "Field must be set (proto2 only)",
	"oneof":    "Exactly one field from a set must be set",
	"syntax":   "Specifies the protocol buffer syntax version",
	"edition":  "Specifies the protocol buffer edition (2023)",
	"package":  "Declares the package name",
	"import":   "Imports definitions from another .proto file",
	"reserved": "Declares field numbers or names that must not be used",
	"map":      "An associative map from a scalar key to any type",
}

// ComputeHover resolves the innermost node at the cursor and describes
// it: scalar type or keyword semantics for known words, a declaration
// summary for fields, enum values, messages, enums, and services. Any
// comment immediately preceding the hovered declaration in the token
// stream is included verbatim.
func ComputeHover(a *Analysis, pos ast.SourcePos) *Hover {
	tok := tokenAt(a.Tokens, pos)
	if tok == nil || tok.Kind != parser.TokenIdentifier {
		return nil
	}

	if doc, ok := scalarTypeDocs[tok.Text]; ok {
		return &Hover{Contents: markdownDoc(tok.Text, doc), Span: tok.Span}
	}
	if doc, ok := keywordDocs[tok.Text]; ok {
		return &Hover{Contents: markdownDoc(tok.Text, doc), Span: tok.Span}
	}

	node, path := ast.NodeAt(a.File, pos)
	if node == nil {
		return nil
	}
	path = append(path, node)
	// the innermost declaration on the path owns the hovered identifier
	for i := len(path) - 1; i >= 0; i-- {
		if desc, span, ok := describeDecl(path[i]); ok {
			contents := desc
			if comment := precedingComment(a.Tokens, span.Start); comment != "" {
				contents += "\n\n" + comment
			}
			return &Hover{Contents: contents, Span: tok.Span}
		}
	}
	return nil
}

func markdownDoc(word, info string) string {
	return fmt.Sprintf("**%s**\n\n%s", word, info)
}

// describeDecl renders a one-line summary of a declaration node. The
// second return is the declaration's full span, used to locate its
// leading comment.
func describeDecl(n ast.Node) (string, ast.SourceSpan, bool) {
	switch n := n.(type) {
	case *ast.FieldNode:
		if n.Name == nil {
			return "", ast.SourceSpan{}, false
		}
		var b strings.Builder
		fmt.Fprintf(&b, "**%s**", n.Name.Val)
		if typeName := fieldTypeName(n.FieldType); typeName != "" {
			fmt.Fprintf(&b, "\n\nfield of type `%s`", typeName)
			if n.Tag != nil {
				fmt.Fprintf(&b, ", number %d", n.Tag.Val)
			}
		} else if n.Tag != nil {
			fmt.Fprintf(&b, "\n\nfield number %d", n.Tag.Val)
		}
		return b.String(), n.Span(), true
	case *ast.EnumValueNode:
		if n.Name == nil {
			return "", ast.SourceSpan{}, false
		}
		if n.Number != nil {
			return fmt.Sprintf("**%s**\n\nenum value %d", n.Name.Val, n.Number.Val), n.Span(), true
		}
		return fmt.Sprintf("**%s**\n\nenum value", n.Name.Val), n.Span(), true
	case *ast.MessageNode:
		if n.Name == nil {
			return "", ast.SourceSpan{}, false
		}
		return markdownDoc(n.Name.Val, "message"), n.Span(), true
	case *ast.EnumNode:
		if n.Name == nil {
			return "", ast.SourceSpan{}, false
		}
		return markdownDoc(n.Name.Val, "enum"), n.Span(), true
	case *ast.ServiceNode:
		if n.Name == nil {
			return "", ast.SourceSpan{}, false
		}
		return markdownDoc(n.Name.Val, "service"), n.Span(), true
	case *ast.RPCNode:
		if n.Name == nil {
			return "", ast.SourceSpan{}, false
		}
		return markdownDoc(n.Name.Val, "rpc method"), n.Span(), true
	}
	return "", ast.SourceSpan{}, false
}

func fieldTypeName(t ast.TypeNode) string {
	switch t := t.(type) {
	case *ast.NamedTypeNode:
		return t.Name
	case *ast.MapTypeNode:
		key, value := "", ""
		if t.KeyType != nil {
			key = t.KeyType.Name
		}
		if named, ok := t.ValueType.(*ast.NamedTypeNode); ok {
			value = named.Name
		}
		return fmt.Sprintf("map<%s, %s>", key, value)
	}
	return ""
}

// tokenAt returns the token whose span contains pos, preferring an
// identifier when the cursor sits exactly on a boundary between two
// tokens.
func tokenAt(tokens []parser.Token, pos ast.SourcePos) *parser.Token {
	var found *parser.Token
	for i := range tokens {
		tok := &tokens[i]
		if tok.Kind == parser.TokenEOF {
			break
		}
		if tok.Span.Contains(pos) {
			if found == nil || tok.Kind == parser.TokenIdentifier {
				found = tok
			}
		}
	}
	return found
}

// precedingComment returns the text of the comment token immediately
// before the declaration starting at declStart, or "" when something
// other than whitespace separates them.
func precedingComment(tokens []parser.Token, declStart ast.SourcePos) string {
	var prev *parser.Token
	for i := range tokens {
		tok := &tokens[i]
		if tok.Span.End.Offset > declStart.Offset {
			break
		}
		if tok.Kind == parser.TokenEOF {
			break
		}
		prev = tok
	}
	if prev == nil || prev.Kind != parser.TokenComment {
		return ""
	}
	return commentText(prev.Text)
}

// commentText strips the comment markers, leaving the comment's text
// verbatim.
func commentText(raw string) string {
	switch {
	case strings.HasPrefix(raw, "//"):
		return strings.TrimPrefix(strings.TrimPrefix(raw, "//"), " ")
	case strings.HasPrefix(raw, "/*"):
		body := strings.TrimPrefix(raw, "/*")
		body = strings.TrimSuffix(body, "*/")
		return strings.TrimSpace(body)
	}
	return raw
}
