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
	"math"
	"strconv"
	"strings"

	"github.com/takumi3488/protobuf-edition-lsp/ast"
	"github.com/takumi3488/protobuf-edition-lsp/reporter"
)

// Parse consumes a token slice (as produced by Tokenize) and builds a
// file AST. It always returns a non-nil file whose span covers the full
// input, no matter how malformed the tokens are: grammar violations are
// recorded as diagnostics, the parser resynchronizes at the next
// recovery point, and a placeholder node stands in for whatever could
// not be parsed. It accepts the superset of the proto2, proto3, and
// edition-2023 grammars; mode-specific legality is the validator's
// responsibility.
func Parse(tokens []Token) (*ast.FileNode, []reporter.Diagnostic) {
	p := &parser{
		handler: reporter.NewHandler(),
	}
	for _, tok := range tokens {
		if tok.Kind == TokenComment {
			continue
		}
		p.toks = append(p.toks, tok)
	}
	if len(p.toks) == 0 || p.toks[len(p.toks)-1].Kind != TokenEOF {
		panic("bug (parser): token slice does not end in EOF")
	}
	file := p.parseFile()
	return file, p.handler.Diagnostics()
}

// ParseSource tokenizes and parses in one step, returning the token
// slice (comments included) alongside the AST for use by the feature
// handlers.
func ParseSource(source []byte) (*ast.FileNode, []Token, []reporter.Diagnostic) {
	tokens := Tokenize(source)
	file, diags := Parse(tokens)
	return file, tokens, diags
}

type parser struct {
	toks    []Token // significant tokens only; comments are filtered out
	pos     int
	last    ast.SourceSpan // span of the most recently consumed token
	handler *reporter.Handler
}

func (p *parser) cur() Token {
	return p.toks[p.pos]
}

func (p *parser) peek(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) advance() Token {
	tok := p.toks[p.pos]
	if tok.Kind != TokenEOF {
		p.last = tok.Span
		p.pos++
	}
	return tok
}

func (p *parser) eatPunct(text string) bool {
	if p.cur().IsPunct(text) {
		p.advance()
		return true
	}
	return false
}

// spanFrom joins a production's first token span with the span of the
// last token consumed so far.
func (p *parser) spanFrom(start ast.SourceSpan) ast.SourceSpan {
	if p.last.End.Offset < start.Start.Offset {
		// nothing was consumed past the start
		return start
	}
	return start.Join(p.last)
}

func (p *parser) errExpected(what string) {
	tok := p.cur()
	if tok.Kind == TokenEOF {
		p.handler.Errorf(tok.Span, "missing-token", "expected %s, got end of file", what)
		return
	}
	p.handler.Errorf(tok.Span, "missing-token", "expected %s, got %q", what, tok.Text)
}

func (p *parser) errUnexpected(context string) {
	tok := p.cur()
	switch tok.Kind {
	case TokenError:
		p.handler.Errorf(tok.Span, "invalid-token", "%s", tok.Err)
	case TokenEOF:
		p.handler.Errorf(tok.Span, "unexpected-token", "unexpected end of file %s", context)
	default:
		p.handler.Errorf(tok.Span, "unexpected-token", "unexpected %q %s", tok.Text, context)
	}
}

// expectPunct consumes the given punctuation or records a missing-token
// diagnostic without consuming anything, so the unexpected token remains
// available as a recovery point for the caller.
func (p *parser) expectPunct(text string) bool {
	if p.eatPunct(text) {
		return true
	}
	p.errExpected("'" + text + "'")
	return false
}

func (p *parser) expectIdent(what string) *ast.IdentNode {
	tok := p.cur()
	if tok.Kind != TokenIdentifier {
		p.errExpected(what)
		return nil
	}
	p.advance()
	return ast.NewIdentNode(tok.Text, tok.Span)
}

// skipTo consumes tokens until one satisfies stop, a semicolon is
// consumed, or end of file. It always consumes at least one token, which
// is what guarantees forward progress through arbitrarily broken input.
// The returned placeholder node spans everything skipped.
func (p *parser) skipTo(stop func(Token) bool) *ast.ErrNode {
	start := p.cur().Span
	end := start
	consumed := false
	for {
		tok := p.cur()
		if tok.Kind == TokenEOF {
			break
		}
		if consumed && stop(tok) {
			break
		}
		end = tok.Span
		p.advance()
		consumed = true
		if tok.IsPunct(";") {
			break
		}
	}
	return ast.NewErrNode(start.Join(end))
}

func isFileDeclStart(tok Token) bool {
	if tok.Kind != TokenIdentifier {
		return false
	}
	_, ok := fileDeclKeywords[tok.Text]
	return ok
}

func isMessageDeclStart(tok Token) bool {
	// any identifier can start a field declaration
	return tok.Kind == TokenIdentifier || tok.IsPunct("}") || tok.IsPunct(".")
}

// ---- file level ----

func (p *parser) parseFile() *ast.FileNode {
	eofSpan := p.toks[len(p.toks)-1].Span
	file := ast.NewFileNode(ast.NewSourceSpan(ast.SourcePos{}, eofSpan.End))

	for p.cur().Kind != TokenEOF {
		tok := p.cur()
		switch {
		case tok.IsIdent("syntax"):
			n := p.parseSyntax()
			if file.Syntax == nil {
				file.Syntax = n
			}
		case tok.IsIdent("edition"):
			n := p.parseEdition()
			if file.Edition == nil {
				file.Edition = n
			}
		case tok.IsIdent("package"):
			n := p.parsePackage()
			if file.Package == nil {
				file.Package = n
			}
		case tok.IsIdent("import"):
			file.Imports = append(file.Imports, p.parseImport())
		case tok.IsIdent("option"):
			file.Decls = append(file.Decls, p.parseOptionDecl())
		case tok.IsIdent("message"):
			file.Decls = append(file.Decls, p.parseMessage())
		case tok.IsIdent("enum"):
			file.Decls = append(file.Decls, p.parseEnum())
		case tok.IsIdent("service"):
			file.Decls = append(file.Decls, p.parseService())
		case tok.IsPunct(";"):
			p.advance()
		default:
			p.errUnexpected("at file scope")
			file.Decls = append(file.Decls, p.skipTo(isFileDeclStart))
		}
	}
	return file
}

func (p *parser) parseSyntax() *ast.SyntaxNode {
	start := p.advance().Span // syntax
	if !p.expectPunct("=") {
		return ast.NewSyntaxNode(nil, p.spanFrom(start))
	}
	value := p.parseStringValue("syntax value")
	p.expectSemicolon()
	return ast.NewSyntaxNode(value, p.spanFrom(start))
}

func (p *parser) parseEdition() *ast.EditionNode {
	start := p.advance().Span // edition
	if !p.expectPunct("=") {
		return ast.NewEditionNode(nil, p.spanFrom(start))
	}
	value := p.parseStringValue("edition value")
	p.expectSemicolon()
	return ast.NewEditionNode(value, p.spanFrom(start))
}

func (p *parser) parseStringValue(what string) *ast.StringLiteralNode {
	tok := p.cur()
	if tok.Kind != TokenStringLiteral {
		p.errExpected(what + " (a string literal)")
		return nil
	}
	p.advance()
	return ast.NewStringLiteralNode(unquote(tok.Text), tok.Text, tok.Span)
}

// expectSemicolon records a diagnostic when the statement terminator is
// missing but deliberately leaves the offending token alone: it is
// usually the start of the next declaration, and eating it would turn a
// single typo into a cascade.
func (p *parser) expectSemicolon() {
	if !p.eatPunct(";") {
		p.errExpected("';'")
	}
}

func (p *parser) parsePackage() *ast.PackageNode {
	start := p.advance().Span // package
	name := p.parseQualifiedName("package name")
	p.expectSemicolon()
	return ast.NewPackageNode(name, p.spanFrom(start))
}

// parseQualifiedName parses a dotted identifier, optionally starting
// with a dot, into a single IdentNode holding the joined text.
func (p *parser) parseQualifiedName(what string) *ast.IdentNode {
	var parts []string
	start := p.cur().Span
	if p.cur().IsPunct(".") {
		p.advance()
		parts = append(parts, "")
	}
	tok := p.cur()
	if tok.Kind != TokenIdentifier {
		p.errExpected(what)
		return nil
	}
	parts = append(parts, tok.Text)
	p.advance()
	for p.cur().IsPunct(".") {
		p.advance()
		tok = p.cur()
		if tok.Kind != TokenIdentifier {
			p.errExpected("identifier after '.'")
			break
		}
		parts = append(parts, tok.Text)
		p.advance()
	}
	return ast.NewIdentNode(strings.Join(parts, "."), p.spanFrom(start))
}

func (p *parser) parseImport() *ast.ImportNode {
	start := p.advance().Span // import
	var public, weak bool
	if p.cur().IsIdent("public") {
		public = true
		p.advance()
	} else if p.cur().IsIdent("weak") {
		weak = true
		p.advance()
	}
	path := p.parseStringValue("import path")
	p.expectSemicolon()
	return ast.NewImportNode(path, public, weak, p.spanFrom(start))
}

// ---- options ----

func (p *parser) parseOptionDecl() *ast.OptionNode {
	start := p.advance().Span // option
	name := p.parseOptionName()
	var value ast.ValueNode
	if p.expectPunct("=") {
		value = p.parseValue()
	}
	p.expectSemicolon()
	return ast.NewOptionNode(name, value, p.spanFrom(start))
}

// parseOptionName parses a dotted option path, including parenthesized
// extension components, into its source text, e.g. "(my.ext).flag".
func (p *parser) parseOptionName() *ast.OptionNameNode {
	start := p.cur().Span
	var text strings.Builder
	any := false
	for {
		tok := p.cur()
		switch {
		case tok.IsPunct("("):
			p.advance()
			inner := p.parseQualifiedName("extension name")
			text.WriteByte('(')
			if inner != nil {
				text.WriteString(inner.Val)
			}
			if p.eatPunct(")") {
				text.WriteByte(')')
			} else {
				p.errExpected("')'")
			}
			any = true
		case tok.Kind == TokenIdentifier:
			p.advance()
			text.WriteString(tok.Text)
			any = true
		default:
			if !any {
				p.errExpected("option name")
				return nil
			}
			return ast.NewOptionNameNode(text.String(), p.spanFrom(start))
		}
		if p.cur().IsPunct(".") {
			p.advance()
			text.WriteByte('.')
			continue
		}
		return ast.NewOptionNameNode(text.String(), p.spanFrom(start))
	}
}

func (p *parser) parseValue() ast.ValueNode {
	tok := p.cur()
	switch tok.Kind {
	case TokenStringLiteral:
		p.advance()
		return ast.NewStringLiteralNode(unquote(tok.Text), tok.Text, tok.Span)
	case TokenIntLiteral:
		p.advance()
		return intLiteral(tok)
	case TokenFloatLiteral:
		p.advance()
		f, _ := strconv.ParseFloat(strings.TrimPrefix(tok.Text, "-"), 64)
		if strings.HasPrefix(tok.Text, "-") {
			f = -f
		}
		return ast.NewFloatLiteralNode(f, tok.Text, tok.Span)
	case TokenIdentifier:
		p.advance()
		return ast.NewIdentNode(tok.Text, tok.Span)
	case TokenPunctuation:
		if tok.Text == "{" {
			return p.parseAggregateValue()
		}
	}
	p.errExpected("option value")
	return nil
}

// parseAggregateValue parses a message-literal value: entries of the
// form name [:] value, where value may itself be an aggregate.
func (p *parser) parseAggregateValue() *ast.AggregateNode {
	start := p.advance().Span // {
	var entries []*ast.AggregateEntryNode
	for {
		tok := p.cur()
		if tok.Kind == TokenEOF || tok.IsPunct("}") {
			break
		}
		if tok.IsPunct(";") || tok.IsPunct(",") {
			p.advance()
			continue
		}
		if tok.Kind != TokenIdentifier {
			p.errUnexpected("in aggregate value")
			p.skipTo(func(t Token) bool { return t.IsPunct("}") || t.Kind == TokenIdentifier })
			continue
		}
		entryStart := tok.Span
		name := ast.NewIdentNode(tok.Text, tok.Span)
		p.advance()
		var value ast.ValueNode
		if p.eatPunct(":") {
			value = p.parseValue()
		} else if p.cur().IsPunct("{") {
			value = p.parseAggregateValue()
		} else {
			p.errExpected("':' or '{'")
		}
		entries = append(entries, ast.NewAggregateEntryNode(name, value, p.spanFrom(entryStart)))
	}
	if !p.eatPunct("}") {
		p.errExpected("'}'")
	}
	return ast.NewAggregateNode(entries, p.spanFrom(start))
}

// parseCompactOptions parses a bracketed option list on a field or enum
// value: [name = value, name = value].
func (p *parser) parseCompactOptions() []*ast.OptionNode {
	p.advance() // [
	var opts []*ast.OptionNode
	for {
		tok := p.cur()
		if tok.Kind == TokenEOF || tok.IsPunct("]") || tok.IsPunct(";") || tok.IsPunct("}") {
			break
		}
		if tok.IsPunct(",") {
			p.advance()
			continue
		}
		optStart := tok.Span
		name := p.parseOptionName()
		if name == nil {
			p.skipTo(func(t Token) bool { return t.IsPunct("]") || t.IsPunct(",") })
			continue
		}
		var value ast.ValueNode
		if p.expectPunct("=") {
			value = p.parseValue()
		}
		opts = append(opts, ast.NewOptionNode(name, value, p.spanFrom(optStart)))
	}
	if !p.eatPunct("]") {
		p.errExpected("']'")
	}
	return opts
}

// ---- messages ----

func (p *parser) parseMessage() *ast.MessageNode {
	start := p.advance().Span // message
	name := p.expectIdent("message name")
	decls := p.parseMessageBody()
	return ast.NewMessageNode(name, decls, p.spanFrom(start))
}

func (p *parser) parseMessageBody() []ast.MessageElement {
	if !p.expectPunct("{") {
		return nil
	}
	var decls []ast.MessageElement
	for {
		tok := p.cur()
		switch {
		case tok.Kind == TokenEOF:
			p.errExpected("'}'")
			return decls
		case tok.IsPunct("}"):
			p.advance()
			return decls
		case tok.IsPunct(";"):
			p.advance()
		case tok.IsIdent("message"):
			decls = append(decls, p.parseMessage())
		case tok.IsIdent("enum"):
			decls = append(decls, p.parseEnum())
		case tok.IsIdent("oneof"):
			decls = append(decls, p.parseOneof())
		case tok.IsIdent("option"):
			decls = append(decls, p.parseOptionDecl())
		case tok.IsIdent("reserved"):
			decls = append(decls, p.parseReserved())
		case tok.IsIdent("optional") || tok.IsIdent("required") || tok.IsIdent("repeated"):
			label := ast.NewIdentNode(tok.Text, tok.Span)
			p.advance()
			decls = append(decls, p.parseField(label, tok.Span))
		case tok.Kind == TokenIdentifier || tok.IsPunct("."):
			decls = append(decls, p.parseField(nil, tok.Span))
		default:
			p.errUnexpected("in message body")
			decls = append(decls, p.skipTo(isMessageDeclStart))
		}
	}
}

// parseField parses a field declaration, tolerating any amount of
// missing tail: a bare type, a type and name, and so on all produce a
// FieldNode (marked incomplete) so that completion has a node to anchor
// to while the user is still typing.
func (p *parser) parseField(label *ast.IdentNode, start ast.SourceSpan) *ast.FieldNode {
	fieldType := p.parseFieldType()

	var name *ast.IdentNode
	if tok := p.cur(); tok.Kind == TokenIdentifier {
		name = ast.NewIdentNode(tok.Text, tok.Span)
		p.advance()
	} else {
		p.errExpected("field name")
		return ast.NewFieldNode(label, fieldType, nil, nil, nil, p.spanFrom(start))
	}

	if !p.eatPunct("=") {
		p.errExpected("'='")
		return ast.NewFieldNode(label, fieldType, name, nil, nil, p.spanFrom(start))
	}

	var tag *ast.IntLiteralNode
	if tok := p.cur(); tok.Kind == TokenIntLiteral {
		tag = intLiteral(tok)
		p.advance()
	} else {
		p.errExpected("field number")
		return ast.NewFieldNode(label, fieldType, name, nil, nil, p.spanFrom(start))
	}

	var opts []*ast.OptionNode
	if p.cur().IsPunct("[") {
		opts = p.parseCompactOptions()
	}
	p.expectSemicolon()
	return ast.NewFieldNode(label, fieldType, name, tag, opts, p.spanFrom(start))
}

func (p *parser) parseFieldType() ast.TypeNode {
	tok := p.cur()
	// two tokens of lookahead distinguish a map type from a field whose
	// type is a message named "map"
	if tok.IsIdent("map") && p.peek(1).IsPunct("<") {
		return p.parseMapType()
	}
	if tok.Kind == TokenIdentifier || tok.IsPunct(".") {
		name := p.parseQualifiedName("type name")
		if name == nil {
			return nil
		}
		return ast.NewNamedTypeNode(name.Val, name.Span())
	}
	p.errExpected("field type")
	return nil
}

func (p *parser) parseMapType() *ast.MapTypeNode {
	start := p.advance().Span // map
	p.advance()               // <
	var keyType *ast.NamedTypeNode
	if tok := p.cur(); tok.Kind == TokenIdentifier {
		keyType = ast.NewNamedTypeNode(tok.Text, tok.Span)
		p.advance()
	} else {
		p.errExpected("map key type")
	}
	var valueType ast.TypeNode
	if p.expectPunct(",") {
		if tok := p.cur(); tok.Kind == TokenIdentifier || tok.IsPunct(".") {
			valueType = p.parseFieldType()
		} else {
			p.errExpected("map value type")
		}
	}
	if !p.eatPunct(">") {
		p.errExpected("'>'")
	}
	return ast.NewMapTypeNode(keyType, valueType, p.spanFrom(start))
}

func (p *parser) parseOneof() *ast.OneofNode {
	start := p.advance().Span // oneof
	name := p.expectIdent("oneof name")
	var decls []ast.MessageElement
	if p.expectPunct("{") {
		for {
			tok := p.cur()
			if tok.Kind == TokenEOF {
				p.errExpected("'}'")
				break
			}
			if tok.IsPunct("}") {
				p.advance()
				break
			}
			switch {
			case tok.IsPunct(";"):
				p.advance()
			case tok.IsIdent("option"):
				decls = append(decls, p.parseOptionDecl())
			case tok.IsIdent("optional") || tok.IsIdent("required") || tok.IsIdent("repeated"):
				// labels are illegal in a oneof, but that is the
				// validator's diagnostic to raise, not a parse error
				label := ast.NewIdentNode(tok.Text, tok.Span)
				p.advance()
				decls = append(decls, p.parseField(label, tok.Span))
			case tok.Kind == TokenIdentifier || tok.IsPunct("."):
				decls = append(decls, p.parseField(nil, tok.Span))
			default:
				p.errUnexpected("in oneof body")
				decls = append(decls, p.skipTo(isMessageDeclStart))
			}
		}
	}
	return ast.NewOneofNode(name, decls, p.spanFrom(start))
}

func (p *parser) parseReserved() *ast.ReservedNode {
	start := p.advance().Span // reserved
	var ranges []*ast.RangeNode
	var names []*ast.StringLiteralNode

	if p.cur().Kind == TokenStringLiteral {
		for {
			name := p.parseStringValue("reserved name")
			if name == nil {
				break
			}
			names = append(names, name)
			if !p.eatPunct(",") {
				break
			}
		}
	} else {
		for {
			tok := p.cur()
			if tok.Kind != TokenIntLiteral {
				p.errExpected("reserved range")
				break
			}
			lo := intLiteral(tok)
			p.advance()
			rangeStart := tok.Span
			var hi *ast.IntLiteralNode
			var max bool
			if p.cur().IsIdent("to") {
				p.advance()
				switch end := p.cur(); {
				case end.IsIdent("max"):
					max = true
					p.advance()
				case end.Kind == TokenIntLiteral:
					hi = intLiteral(end)
					p.advance()
				default:
					p.errExpected("range end (a number or 'max')")
				}
			}
			ranges = append(ranges, ast.NewRangeNode(lo, hi, max, p.spanFrom(rangeStart)))
			if !p.eatPunct(",") {
				break
			}
		}
	}
	p.expectSemicolon()
	return ast.NewReservedNode(ranges, names, p.spanFrom(start))
}

// ---- enums ----

func (p *parser) parseEnum() *ast.EnumNode {
	start := p.advance().Span // enum
	name := p.expectIdent("enum name")
	var decls []ast.EnumElement
	if p.expectPunct("{") {
		for {
			tok := p.cur()
			if tok.Kind == TokenEOF {
				p.errExpected("'}'")
				break
			}
			if tok.IsPunct("}") {
				p.advance()
				break
			}
			switch {
			case tok.IsPunct(";"):
				p.advance()
			case tok.IsIdent("option"):
				decls = append(decls, p.parseOptionDecl())
			case tok.IsIdent("reserved"):
				decls = append(decls, p.parseReserved())
			case tok.Kind == TokenIdentifier:
				decls = append(decls, p.parseEnumValue())
			default:
				p.errUnexpected("in enum body")
				decls = append(decls, p.skipTo(isMessageDeclStart))
			}
		}
	}
	return ast.NewEnumNode(name, decls, p.spanFrom(start))
}

func (p *parser) parseEnumValue() *ast.EnumValueNode {
	tok := p.cur()
	start := tok.Span
	name := ast.NewIdentNode(tok.Text, tok.Span)
	p.advance()

	if !p.eatPunct("=") {
		p.errExpected("'='")
		return ast.NewEnumValueNode(name, nil, nil, p.spanFrom(start))
	}
	var number *ast.IntLiteralNode
	if tok := p.cur(); tok.Kind == TokenIntLiteral {
		number = intLiteral(tok)
		p.advance()
	} else {
		p.errExpected("enum value number")
		return ast.NewEnumValueNode(name, nil, nil, p.spanFrom(start))
	}
	var opts []*ast.OptionNode
	if p.cur().IsPunct("[") {
		opts = p.parseCompactOptions()
	}
	p.expectSemicolon()
	return ast.NewEnumValueNode(name, number, opts, p.spanFrom(start))
}

// ---- services ----

func (p *parser) parseService() *ast.ServiceNode {
	start := p.advance().Span // service
	name := p.expectIdent("service name")
	var decls []ast.ServiceElement
	if p.expectPunct("{") {
		for {
			tok := p.cur()
			if tok.Kind == TokenEOF {
				p.errExpected("'}'")
				break
			}
			if tok.IsPunct("}") {
				p.advance()
				break
			}
			switch {
			case tok.IsPunct(";"):
				p.advance()
			case tok.IsIdent("option"):
				decls = append(decls, p.parseOptionDecl())
			case tok.IsIdent("rpc"):
				decls = append(decls, p.parseRPC())
			default:
				p.errUnexpected("in service body")
				decls = append(decls, p.skipTo(func(t Token) bool {
					return t.IsIdent("rpc") || t.IsIdent("option") || t.IsPunct("}")
				}))
			}
		}
	}
	return ast.NewServiceNode(name, decls, p.spanFrom(start))
}

func (p *parser) parseRPC() *ast.RPCNode {
	start := p.advance().Span // rpc
	name := p.expectIdent("rpc name")
	input := p.parseRPCType("request type")
	if input == nil {
		return ast.NewRPCNode(name, nil, nil, nil, p.spanFrom(start))
	}
	if p.cur().IsIdent("returns") {
		p.advance()
	} else {
		p.errExpected("'returns'")
		return ast.NewRPCNode(name, input, nil, nil, p.spanFrom(start))
	}
	output := p.parseRPCType("response type")

	var opts []*ast.OptionNode
	if p.eatPunct("{") {
		for {
			tok := p.cur()
			if tok.Kind == TokenEOF {
				p.errExpected("'}'")
				break
			}
			if tok.IsPunct("}") {
				p.advance()
				break
			}
			switch {
			case tok.IsPunct(";"):
				p.advance()
			case tok.IsIdent("option"):
				opts = append(opts, p.parseOptionDecl())
			default:
				p.errUnexpected("in rpc body")
				p.skipTo(func(t Token) bool { return t.IsIdent("option") || t.IsPunct("}") })
			}
		}
	} else {
		p.expectSemicolon()
	}
	return ast.NewRPCNode(name, input, output, opts, p.spanFrom(start))
}

func (p *parser) parseRPCType(what string) *ast.RPCTypeNode {
	start := p.cur().Span
	if !p.expectPunct("(") {
		return nil
	}
	var stream bool
	if p.cur().IsIdent("stream") && p.peek(1).Kind == TokenIdentifier {
		stream = true
		p.advance()
	}
	var msgType *ast.NamedTypeNode
	if tok := p.cur(); tok.Kind == TokenIdentifier || tok.IsPunct(".") {
		name := p.parseQualifiedName(what)
		if name != nil {
			msgType = ast.NewNamedTypeNode(name.Val, name.Span())
		}
	} else {
		p.errExpected(what)
	}
	if !p.eatPunct(")") {
		p.errExpected("')'")
	}
	return ast.NewRPCTypeNode(msgType, stream, p.spanFrom(start))
}

// intLiteral builds an integer literal node from a token, preserving the
// raw text and saturating the parsed value at the int64 boundaries so
// out-of-range literals survive to be diagnosed by the validator.
func intLiteral(tok Token) *ast.IntLiteralNode {
	text := tok.Text
	neg := strings.HasPrefix(text, "-")
	digits := strings.TrimPrefix(text, "-")
	var val uint64
	var err error
	switch {
	case strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X"):
		val, err = strconv.ParseUint(digits[2:], 16, 64)
	case strings.HasPrefix(digits, "0") && len(digits) > 1:
		val, err = strconv.ParseUint(digits, 8, 64)
	default:
		val, err = strconv.ParseUint(digits, 10, 64)
	}
	if err != nil && isRangeErr(err) {
		val = math.MaxUint64
	}
	var signed int64
	switch {
	case neg && val > math.MaxInt64:
		signed = math.MinInt64
	case neg:
		signed = -int64(val)
	case val > math.MaxInt64:
		signed = math.MaxInt64
	default:
		signed = int64(val)
	}
	return ast.NewIntLiteralNode(signed, text, tok.Span)
}
