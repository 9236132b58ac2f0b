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

package parser

import (
	"fmt"

	"github.com/takumi3488/protobuf-edition-lsp/ast"
)

// TokenKind classifies a lexed token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	// TokenIdentifier covers keywords too: protobuf keywords are not
	// reserved words in all positions, so the lexer emits them as plain
	// identifiers and the parser reclassifies by spelling.
	TokenIdentifier
	TokenIntLiteral
	TokenFloatLiteral
	TokenStringLiteral
	TokenPunctuation
	TokenComment
	// TokenError marks input the lexer could not form a token from:
	// stray characters, unterminated strings, unterminated block
	// comments, or malformed numbers. Lexing always continues after it.
	TokenError
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of file"
	case TokenIdentifier:
		return "identifier"
	case TokenIntLiteral:
		return "integer literal"
	case TokenFloatLiteral:
		return "float literal"
	case TokenStringLiteral:
		return "string literal"
	case TokenPunctuation:
		return "punctuation"
	case TokenComment:
		return "comment"
	case TokenError:
		return "invalid token"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a single lexeme with its source span. Tokens are immutable;
// Text is a slice of the source the lexer ran over and is only valid as
// long as that source is retained.
type Token struct {
	Kind TokenKind
	Text string
	Span ast.SourceSpan

	// Err describes why a TokenError token could not be lexed.
	Err string
}

// IsIdent reports whether the token is an identifier spelled exactly
// text.
func (t Token) IsIdent(text string) bool {
	return t.Kind == TokenIdentifier && t.Text == text
}

// IsPunct reports whether the token is the given punctuation rune.
func (t Token) IsPunct(text string) bool {
	return t.Kind == TokenPunctuation && t.Text == text
}

// Keywords that may begin a declaration at file scope. The parser uses
// these as recovery points when resynchronizing after an error.
var fileDeclKeywords = map[string]struct{}{
	"syntax": {}, "edition": {}, "package": {}, "import": {},
	"option": {}, "message": {}, "enum": {}, "service": {},
}

// FileDeclKeywords returns the keywords that start a top-level
// declaration, in a fixed order, for completion candidates.
func FileDeclKeywords() []string {
	return []string{"syntax", "edition", "package", "import", "message", "enum", "service", "option"}
}

// MessageDeclKeywords returns the keywords that start a declaration in a
// message body, in a fixed order, for completion candidates.
func MessageDeclKeywords() []string {
	return []string{"message", "enum", "oneof", "option", "reserved", "optional", "repeated", "map"}
}
