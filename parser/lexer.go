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
	"bytes"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/takumi3488/protobuf-edition-lsp/ast"
)

type runeReader struct {
	data []byte
	pos  int
	err  error
	mark int
}

func (rr *runeReader) readRune() (r rune, size int, err error) {
	if rr.err != nil {
		return 0, 0, rr.err
	}
	if rr.pos == len(rr.data) {
		rr.err = io.EOF
		return 0, 0, rr.err
	}
	r, sz := utf8.DecodeRune(rr.data[rr.pos:])
	rr.pos += sz
	return r, sz, nil
}

func (rr *runeReader) unreadRune(sz int) {
	newPos := rr.pos - sz
	if newPos < rr.mark {
		if rr.err == io.EOF {
			rr.err = nil
			// un-reading EOF should not move the position
			return
		}
		panic("unread past mark")
	}
	rr.pos = newPos
}

func (rr *runeReader) peekRune() (rune, bool) {
	if rr.err != nil || rr.pos == len(rr.data) {
		return 0, false
	}
	r, _ := utf8.DecodeRune(rr.data[rr.pos:])
	return r, true
}

func (rr *runeReader) offset() int {
	return rr.pos
}

func (rr *runeReader) setMark() {
	rr.mark = rr.pos
}

func (rr *runeReader) getMark() string {
	return string(rr.data[rr.mark:rr.pos])
}

var utf8Bom = []byte{0xEF, 0xBB, 0xBF}

const punctuationRunes = "{}()[]<>;,.=:-"

type lexer struct {
	input  *runeReader
	lines  []int
	tokens []Token
}

// Tokenize converts source into a finite token slice ending in a
// TokenEOF token. It never fails: unrecognized characters, unterminated
// strings, and unterminated block comments become TokenError tokens and
// scanning continues. Comments are retained as tokens. Re-running on the
// same source is deterministic and side-effect free.
func Tokenize(source []byte) []Token {
	if bytes.HasPrefix(source, utf8Bom) {
		// preserve offsets by blanking rather than trimming the BOM
		source = append(append([]byte(nil), "   "...), source[len(utf8Bom):]...)
	}
	l := &lexer{
		input: &runeReader{data: source},
		lines: lineOffsets(source),
	}
	l.run()
	return l.tokens
}

func lineOffsets(source []byte) []int {
	offsets := []int{0}
	for i, b := range source {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

func (l *lexer) pos(offset int) ast.SourcePos {
	line := sort.Search(len(l.lines), func(i int) bool { return l.lines[i] > offset }) - 1
	return ast.SourcePos{Line: line, Col: offset - l.lines[line], Offset: offset}
}

func (l *lexer) emit(kind TokenKind) {
	l.emitErr(kind, "")
}

func (l *lexer) emitErr(kind TokenKind, errMsg string) {
	l.tokens = append(l.tokens, Token{
		Kind: kind,
		Text: l.input.getMark(),
		Span: ast.NewSourceSpan(l.pos(l.input.mark), l.pos(l.input.offset())),
		Err:  errMsg,
	})
}

func (l *lexer) run() {
	for {
		l.input.setMark()
		c, _, err := l.input.readRune()
		if err != nil {
			eof := l.pos(len(l.input.data))
			l.tokens = append(l.tokens, Token{Kind: TokenEOF, Span: ast.NewSourceSpan(eof, eof)})
			return
		}

		if strings.ContainsRune("\r\n\t\f\v ", c) {
			// whitespace is not tokenized; it survives as position gaps
			continue
		}

		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			l.readIdentifier()
			l.emit(TokenIdentifier)

		case c >= '0' && c <= '9':
			l.readNumber()
			l.classifyNumber()

		case c == '.':
			// decimal literals may start with a dot
			if cn, ok := l.input.peekRune(); ok && cn >= '0' && cn <= '9' {
				l.readNumber()
				l.classifyNumber()
				continue
			}
			l.emit(TokenPunctuation)

		case c == '-':
			// a sign is only part of a number; protobuf has no other use
			// for a bare minus
			if cn, ok := l.input.peekRune(); ok && (cn == '.' || (cn >= '0' && cn <= '9')) {
				l.readNumber()
				l.classifyNumber()
				continue
			}
			l.emit(TokenPunctuation)

		case c == '"' || c == '\'':
			l.readStringLiteral(c)

		case c == '/':
			cn, szn, err := l.input.readRune()
			if err != nil {
				l.emitErr(TokenError, "invalid character")
				continue
			}
			switch cn {
			case '/':
				l.readToEndOfLineComment()
				l.emit(TokenComment)
			case '*':
				if l.readToEndOfBlockComment() {
					l.emit(TokenComment)
				} else {
					l.emitErr(TokenError, "block comment never terminates, unexpected EOF")
				}
			default:
				l.input.unreadRune(szn)
				l.emitErr(TokenError, "invalid character")
			}

		case strings.ContainsRune(punctuationRunes, c):
			l.emit(TokenPunctuation)

		default:
			if c < 32 || c == 127 {
				l.emitErr(TokenError, "invalid control character")
			} else {
				l.emitErr(TokenError, "invalid character")
			}
		}
	}
}

func (l *lexer) readIdentifier() {
	for {
		c, sz, err := l.input.readRune()
		if err != nil {
			return
		}
		if c != '_' && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			l.input.unreadRune(sz)
			return
		}
	}
}

// readNumber consumes the maximal run of characters that could belong to
// a numeric literal, including malformed ones; classifyNumber sorts out
// validity afterwards so that garbage like "1.2.3" becomes a single
// error token rather than several confusing ones.
func (l *lexer) readNumber() {
	allowExpSign := false
	for {
		c, sz, err := l.input.readRune()
		if err != nil {
			return
		}
		if (c == '-' || c == '+') && !allowExpSign {
			l.input.unreadRune(sz)
			return
		}
		allowExpSign = false
		if c != '.' && c != '_' && (c < '0' || c > '9') &&
			(c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			c != '-' && c != '+' {
			l.input.unreadRune(sz)
			return
		}
		if c == 'e' || c == 'E' {
			// scientific notation char can be followed by an exponent sign
			allowExpSign = true
		}
	}
}

func (l *lexer) classifyNumber() {
	token := l.input.getMark()
	digits := strings.TrimPrefix(token, "-")

	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		if _, err := strconv.ParseUint(digits[2:], 16, 64); err != nil && !isRangeErr(err) {
			l.emitErr(TokenError, "invalid syntax in hexadecimal integer value: "+token)
			return
		}
		l.emit(TokenIntLiteral)
		return
	}
	if strings.ContainsAny(digits, ".eE") {
		if strings.ContainsRune(digits, '_') {
			// strconv allows _ digit separators, protobuf does not
			l.emitErr(TokenError, "invalid syntax in float value: "+token)
			return
		}
		if _, err := strconv.ParseFloat(token, 64); err != nil && !isRangeErr(err) {
			l.emitErr(TokenError, "invalid syntax in float value: "+token)
			return
		}
		l.emit(TokenFloatLiteral)
		return
	}
	base := 10
	kind := "integer"
	if strings.HasPrefix(digits, "0") && len(digits) > 1 {
		base = 8
		kind = "octal integer"
	}
	if _, err := strconv.ParseUint(digits, base, 64); err != nil && !isRangeErr(err) {
		l.emitErr(TokenError, "invalid syntax in "+kind+" value: "+token)
		return
	}
	l.emit(TokenIntLiteral)
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// readStringLiteral consumes a quoted string and emits either a string
// token or, for a literal left open at end-of-line or end-of-file, an
// error token spanning everything that was read.
func (l *lexer) readStringLiteral(quote rune) {
	for {
		c, sz, err := l.input.readRune()
		if err != nil {
			l.emitErr(TokenError, "unexpected EOF inside string literal")
			return
		}
		if c == '\n' {
			l.input.unreadRune(sz)
			l.emitErr(TokenError, "encountered end-of-line before end of string literal")
			return
		}
		if c == quote {
			l.emit(TokenStringLiteral)
			return
		}
		if c == '\\' {
			// consume the escaped rune so an escaped quote does not
			// terminate the literal; unquote interprets it later
			if _, _, err := l.input.readRune(); err != nil {
				l.emitErr(TokenError, "unexpected EOF inside string literal")
				return
			}
		}
	}
}

func (l *lexer) readToEndOfLineComment() {
	for {
		c, sz, err := l.input.readRune()
		if err != nil {
			return
		}
		if c == '\n' {
			// don't include the newline in the comment
			l.input.unreadRune(sz)
			return
		}
	}
}

func (l *lexer) readToEndOfBlockComment() bool {
	for {
		c, _, err := l.input.readRune()
		if err != nil {
			return false
		}
		if c == '*' {
			c, sz, err := l.input.readRune()
			if err != nil {
				return false
			}
			if c == '/' {
				return true
			}
			l.input.unreadRune(sz)
		}
	}
}

// unquote interprets a string literal token's escape sequences and
// returns the value. raw must include the surrounding quotes. Escapes
// follow protoc: simple character escapes, octal (up to three digits),
// hex (\xNN), and unicode (\uNNNN, \UNNNNNNNN); anything unrecognized is
// kept verbatim rather than failing, since the token already lexed.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	quote := raw[0]
	body := raw[1:]
	if body[len(body)-1] == quote {
		body = body[:len(body)-1]
	}
	var buf strings.Builder
	for i := 0; i < len(body); {
		c, sz := utf8.DecodeRuneInString(body[i:])
		i += sz
		if c != '\\' || i >= len(body) {
			buf.WriteRune(c)
			continue
		}
		e := body[i]
		i++
		switch {
		case e == 'n':
			buf.WriteByte('\n')
		case e == 'r':
			buf.WriteByte('\r')
		case e == 't':
			buf.WriteByte('\t')
		case e == 'a':
			buf.WriteByte('\a')
		case e == 'b':
			buf.WriteByte('\b')
		case e == 'f':
			buf.WriteByte('\f')
		case e == 'v':
			buf.WriteByte('\v')
		case e == '\\', e == '\'', e == '"', e == '?':
			buf.WriteByte(e)
		case e == 'x' || e == 'X':
			j := i
			for j < len(body) && j-i < 2 && isHexDigit(body[j]) {
				j++
			}
			if j == i {
				buf.WriteByte('\\')
				buf.WriteByte(e)
				continue
			}
			v, _ := strconv.ParseUint(body[i:j], 16, 32)
			buf.WriteByte(byte(v))
			i = j
		case e >= '0' && e <= '7':
			j := i
			for j < len(body) && j-i < 2 && body[j] >= '0' && body[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(body[i-1:j], 8, 32)
			if v <= 0xff {
				buf.WriteByte(byte(v))
			} else {
				buf.WriteString(body[i-1 : j])
			}
			i = j
		case e == 'u' || e == 'U':
			width := 4
			if e == 'U' {
				width = 8
			}
			if i+width <= len(body) {
				if v, err := strconv.ParseUint(body[i:i+width], 16, 32); err == nil && v <= 0x10ffff {
					buf.WriteRune(rune(v))
					i += width
					continue
				}
			}
			buf.WriteByte('\\')
			buf.WriteByte(e)
		default:
			// unknown escape; keep the character itself
			buf.WriteByte(e)
		}
	}
	return buf.String()
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
