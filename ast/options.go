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

// OptionNode represents an option declaration, either a statement
// (option name = value;) or an entry in a compact option list
// ([name = value, ...]).
type OptionNode struct {
	span  SourceSpan
	Name  *OptionNameNode
	Value ValueNode
}

func NewOptionNode(name *OptionNameNode, value ValueNode, span SourceSpan) *OptionNode {
	return &OptionNode{span: span, Name: name, Value: value}
}

func (n *OptionNode) Span() SourceSpan { return n.span }

func (*OptionNode) fileElement() {}
func (*OptionNode) msgElement()  {}
func (*OptionNode) enumElement() {}
func (*OptionNode) serviceElement() {}

// OptionNameNode is an option's dotted path. Text holds the path as
// written, including parenthesized extension components, e.g.
// "(my.ext).flag" or "features.field_presence".
type OptionNameNode struct {
	span SourceSpan
	Text string
}

func NewOptionNameNode(text string, span SourceSpan) *OptionNameNode {
	return &OptionNameNode{span: span, Text: text}
}

func (n *OptionNameNode) Span() SourceSpan { return n.span }
