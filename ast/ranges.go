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

// ReservedNode represents a reserved declaration: either number ranges
// (reserved 2, 15, 9 to 11, 40 to max;) or names (reserved "foo", "bar";).
// A single declaration holds one or the other; the grammar does not mix
// them.
type ReservedNode struct {
	span   SourceSpan
	Ranges []*RangeNode
	Names  []*StringLiteralNode
}

func NewReservedNode(ranges []*RangeNode, names []*StringLiteralNode, span SourceSpan) *ReservedNode {
	return &ReservedNode{span: span, Ranges: ranges, Names: names}
}

func (n *ReservedNode) Span() SourceSpan { return n.span }

func (*ReservedNode) msgElement()  {}
func (*ReservedNode) enumElement() {}

// RangeNode is a single element of a reserved declaration's range list.
// End is nil for a single number; Max marks an open-ended "N to max"
// range.
type RangeNode struct {
	span  SourceSpan
	Start *IntLiteralNode
	End   *IntLiteralNode
	Max   bool
}

func NewRangeNode(start, end *IntLiteralNode, max bool, span SourceSpan) *RangeNode {
	return &RangeNode{span: span, Start: start, End: end, Max: max}
}

func (n *RangeNode) Span() SourceSpan { return n.span }

// Contains reports whether the given field number falls inside the
// range. maxTag is the number "max" stands for in the enclosing context.
func (n *RangeNode) Contains(tag, maxTag int64) bool {
	if n.Start == nil {
		return false
	}
	lo := n.Start.Val
	hi := lo
	switch {
	case n.Max:
		hi = maxTag
	case n.End != nil:
		hi = n.End.Val
	}
	return tag >= lo && tag <= hi
}
