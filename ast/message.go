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

// MessageNode represents a message declaration. Decls preserves source
// order across fields, oneofs, nested types, options, and reserved
// declarations.
type MessageNode struct {
	span SourceSpan
	Name *IdentNode
	Decls []MessageElement
}

func NewMessageNode(name *IdentNode, decls []MessageElement, span SourceSpan) *MessageNode {
	return &MessageNode{span: span, Name: name, Decls: decls}
}

func (n *MessageNode) Span() SourceSpan { return n.span }

func (*MessageNode) fileElement() {}
func (*MessageNode) msgElement()  {}

// OneofNode represents a oneof group. Its Decls may contain fields,
// options, and error placeholders; fields declared inside a oneof share
// the enclosing message's field number space.
type OneofNode struct {
	span SourceSpan
	Name *IdentNode
	Decls []MessageElement
}

func NewOneofNode(name *IdentNode, decls []MessageElement, span SourceSpan) *OneofNode {
	return &OneofNode{span: span, Name: name, Decls: decls}
}

func (n *OneofNode) Span() SourceSpan { return n.span }

func (*OneofNode) msgElement() {}

// Fields returns the fields declared directly in the oneof, in source
// order.
func (n *OneofNode) Fields() []*FieldNode {
	var fields []*FieldNode
	for _, decl := range n.Decls {
		if fld, ok := decl.(*FieldNode); ok {
			fields = append(fields, fld)
		}
	}
	return fields
}
