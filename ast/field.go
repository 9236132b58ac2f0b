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

// FieldNode represents a field declaration, inside either a message or a
// oneof. Any of Name, Tag, or FieldType may be nil when the declaration
// was only partially typed; IsIncomplete reports that state.
type FieldNode struct {
	span SourceSpan

	// Label is the optional/required/repeated keyword, or nil. Whether a
	// label is legal under the file's declared syntax is a validator
	// concern.
	Label     *IdentNode
	FieldType TypeNode
	Name      *IdentNode
	Tag       *IntLiteralNode
	Options   []*OptionNode
}

func NewFieldNode(label *IdentNode, fieldType TypeNode, name *IdentNode, tag *IntLiteralNode, options []*OptionNode, span SourceSpan) *FieldNode {
	return &FieldNode{span: span, Label: label, FieldType: fieldType, Name: name, Tag: tag, Options: options}
}

func (n *FieldNode) Span() SourceSpan { return n.span }

func (*FieldNode) msgElement() {}

func (n *FieldNode) IsIncomplete() bool {
	return n.Name == nil || n.Tag == nil || IsNil(n.FieldType)
}

// NamedTypeNode is a field type spelled as an identifier: either one of
// the scalar type keywords or a (possibly dotted) reference to a message
// or enum.
type NamedTypeNode struct {
	span SourceSpan
	Name string
}

func NewNamedTypeNode(name string, span SourceSpan) *NamedTypeNode {
	return &NamedTypeNode{span: span, Name: name}
}

func (n *NamedTypeNode) Span() SourceSpan { return n.span }

func (*NamedTypeNode) typeNode() {}

// IsScalar reports whether the name is one of the protobuf scalar type
// keywords.
func (n *NamedTypeNode) IsScalar() bool {
	return IsScalarType(n.Name)
}

// MapTypeNode is a map<K, V> field type. KeyType restrictions (integral,
// string, or bool) are enforced by the validator, not the parser.
type MapTypeNode struct {
	span      SourceSpan
	KeyType   *NamedTypeNode
	ValueType TypeNode
}

func NewMapTypeNode(keyType *NamedTypeNode, valueType TypeNode, span SourceSpan) *MapTypeNode {
	return &MapTypeNode{span: span, KeyType: keyType, ValueType: valueType}
}

func (n *MapTypeNode) Span() SourceSpan { return n.span }

func (*MapTypeNode) typeNode() {}

var scalarTypes = map[string]struct{}{
	"double": {}, "float": {}, "int32": {}, "int64": {},
	"uint32": {}, "uint64": {}, "sint32": {}, "sint64": {},
	"fixed32": {}, "fixed64": {}, "sfixed32": {}, "sfixed64": {},
	"bool": {}, "string": {}, "bytes": {},
}

// IsScalarType reports whether name is a protobuf scalar type keyword.
func IsScalarType(name string) bool {
	_, ok := scalarTypes[name]
	return ok
}

// ScalarTypeNames returns the scalar type keywords in a fixed order, for
// completion candidates.
func ScalarTypeNames() []string {
	return []string{
		"double", "float", "int32", "int64", "uint32", "uint64",
		"sint32", "sint64", "fixed32", "fixed64", "sfixed32", "sfixed64",
		"bool", "string", "bytes",
	}
}

var mapKeyTypes = map[string]struct{}{
	"int32": {}, "int64": {}, "uint32": {}, "uint64": {},
	"sint32": {}, "sint64": {}, "fixed32": {}, "fixed64": {},
	"sfixed32": {}, "sfixed64": {}, "bool": {}, "string": {},
}

// IsMapKeyType reports whether name is legal as a map key type: any
// integral scalar, string, or bool.
func IsMapKeyType(name string) bool {
	_, ok := mapKeyTypes[name]
	return ok
}
