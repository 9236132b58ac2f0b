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

// EnumNode represents an enum declaration.
type EnumNode struct {
	span SourceSpan
	Name *IdentNode
	Decls []EnumElement
}

func NewEnumNode(name *IdentNode, decls []EnumElement, span SourceSpan) *EnumNode {
	return &EnumNode{span: span, Name: name, Decls: decls}
}

func (n *EnumNode) Span() SourceSpan { return n.span }

func (*EnumNode) fileElement() {}
func (*EnumNode) msgElement()  {}

// Values returns the enum's values in source order.
func (n *EnumNode) Values() []*EnumValueNode {
	var values []*EnumValueNode
	for _, decl := range n.Decls {
		if val, ok := decl.(*EnumValueNode); ok {
			values = append(values, val)
		}
	}
	return values
}

// AllowsAlias reports whether the enum declares option allow_alias =
// true.
func (n *EnumNode) AllowsAlias() bool {
	for _, decl := range n.Decls {
		opt, ok := decl.(*OptionNode)
		if !ok || opt.Name == nil || opt.Name.Text != "allow_alias" {
			continue
		}
		if ident, ok := opt.Value.(*IdentNode); ok && ident.Val == "true" {
			return true
		}
	}
	return false
}

// EnumValueNode represents a single enum value declaration. Number may be
// nil for a partially typed value.
type EnumValueNode struct {
	span    SourceSpan
	Name    *IdentNode
	Number  *IntLiteralNode
	Options []*OptionNode
}

func NewEnumValueNode(name *IdentNode, number *IntLiteralNode, options []*OptionNode, span SourceSpan) *EnumValueNode {
	return &EnumValueNode{span: span, Name: name, Number: number, Options: options}
}

func (n *EnumValueNode) Span() SourceSpan { return n.span }

func (*EnumValueNode) enumElement() {}
