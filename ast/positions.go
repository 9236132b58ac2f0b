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

package ast

import "fmt"

// SourcePos identifies a location in a proto source file. Line, Col,
// and Offset are all zero-based; Col and Offset count bytes, not
// runes, which matches how LSP positions are exchanged in the default
// encoding.
type SourcePos struct {
	Line   int
	Col    int
	Offset int
}

// String renders the position one-based for human consumption.
func (p SourcePos) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Col+1)
}

// Before reports whether p strictly precedes other in the file.
func (p SourcePos) Before(other SourcePos) bool {
	return p.Offset < other.Offset
}

// SourceSpan is a half-open region of a source file: Start is the
// position of the first byte, End the position just past the last.
type SourceSpan struct {
	Start SourcePos
	End   SourcePos
}

func NewSourceSpan(start, end SourcePos) SourceSpan {
	return SourceSpan{Start: start, End: end}
}

func (s SourceSpan) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Contains reports whether pos falls within the span. The end position
// is included so that a cursor sitting immediately after the last rune
// of a token still resolves to that token, which is where editors put
// the caret while the user types.
func (s SourceSpan) Contains(pos SourcePos) bool {
	return pos.Offset >= s.Start.Offset && pos.Offset <= s.End.Offset
}

// Join returns the smallest span covering both s and other.
func (s SourceSpan) Join(other SourceSpan) SourceSpan {
	joined := s
	if other.Start.Before(joined.Start) {
		joined.Start = other.Start
	}
	if joined.End.Before(other.End) {
		joined.End = other.End
	}
	return joined
}

// Compare orders spans by start position, breaking ties by end
// position so that an enclosing span sorts after the spans it contains
// when they share a start.
func (s SourceSpan) Compare(other SourceSpan) int {
	if s.Start.Offset != other.Start.Offset {
		if s.Start.Offset < other.Start.Offset {
			return -1
		}
		return 1
	}
	if s.End.Offset != other.End.Offset {
		if s.End.Offset < other.End.Offset {
			return -1
		}
		return 1
	}
	return 0
}
