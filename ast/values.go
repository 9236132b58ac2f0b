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

// IdentNode represents an identifier. For dotted references (package
// names, qualified type names, option paths) Val holds the full dotted
// text as written.
type IdentNode struct {
	span SourceSpan
	Val  string
}

func NewIdentNode(val string, span SourceSpan) *IdentNode {
	return &IdentNode{span: span, Val: val}
}

func (n *IdentNode) Span() SourceSpan { return n.span }

func (*IdentNode) valueNode() {}

// StringLiteralNode represents a quoted string. Val is the unescaped
// value; Raw is the literal as written, including quotes.
type StringLiteralNode struct {
	span SourceSpan
	Val  string
	Raw  string
}

func NewStringLiteralNode(val, raw string, span SourceSpan) *StringLiteralNode {
	return &StringLiteralNode{span: span, Val: val, Raw: raw}
}

func (n *StringLiteralNode) Span() SourceSpan { return n.span }

func (*StringLiteralNode) valueNode() {}

// IntLiteralNode represents an integer literal. Val is the parsed value,
// saturated at the int64 boundaries on overflow; Raw preserves the
// literal text exactly as written, even when the value is out of range
// for its position. Whether the value is legal where it appears is a
// validator concern.
type IntLiteralNode struct {
	span SourceSpan
	Val  int64
	Raw  string
}

func NewIntLiteralNode(val int64, raw string, span SourceSpan) *IntLiteralNode {
	return &IntLiteralNode{span: span, Val: val, Raw: raw}
}

func (n *IntLiteralNode) Span() SourceSpan { return n.span }

func (*IntLiteralNode) valueNode() {}

// FloatLiteralNode represents a floating point literal.
type FloatLiteralNode struct {
	span SourceSpan
	Val  float64
	Raw  string
}

func NewFloatLiteralNode(val float64, raw string, span SourceSpan) *FloatLiteralNode {
	return &FloatLiteralNode{span: span, Val: val, Raw: raw}
}

func (n *FloatLiteralNode) Span() SourceSpan { return n.span }

func (*FloatLiteralNode) valueNode() {}

// AggregateNode represents a message-literal option value, e.g.
// { name: "x" nested { id: 1 } }.
type AggregateNode struct {
	span    SourceSpan
	Entries []*AggregateEntryNode
}

func NewAggregateNode(entries []*AggregateEntryNode, span SourceSpan) *AggregateNode {
	return &AggregateNode{span: span, Entries: entries}
}

func (n *AggregateNode) Span() SourceSpan { return n.span }

func (*AggregateNode) valueNode() {}

// AggregateEntryNode is a single name/value pair in an aggregate value.
type AggregateEntryNode struct {
	span  SourceSpan
	Name  *IdentNode
	Value ValueNode
}

func NewAggregateEntryNode(name *IdentNode, value ValueNode, span SourceSpan) *AggregateEntryNode {
	return &AggregateEntryNode{span: span, Name: name, Value: value}
}

func (n *AggregateEntryNode) Span() SourceSpan { return n.span }
