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

import "reflect"

// Node is the interface implemented by all nodes in the AST. It provides
// the span of the node in the source file, which is how diagnostics,
// completion, and hover locate results. A node's span is always a
// contiguous sub-range of its parent's span.
type Node interface {
	Span() SourceSpan
}

// FileElement is a closed variant over declarations that may appear at the
// top level of a file: messages, enums, services, options, and error
// placeholders. The unexported marker method keeps the set closed so that
// per-kind switches stay exhaustive.
type FileElement interface {
	Node
	fileElement()
}

// MessageElement is a closed variant over declarations that may appear in
// a message body: fields, oneofs, nested messages and enums, options,
// reserved declarations, and error placeholders.
type MessageElement interface {
	Node
	msgElement()
}

// EnumElement is a closed variant over declarations that may appear in an
// enum body: values, options, reserved declarations, and error
// placeholders.
type EnumElement interface {
	Node
	enumElement()
}

// ServiceElement is a closed variant over declarations that may appear in
// a service body: rpc methods, options, and error placeholders.
type ServiceElement interface {
	Node
	serviceElement()
}

// ValueNode is a closed variant over option values: string, integer, and
// float literals, identifiers (including true/false), and aggregate
// (message literal) values.
type ValueNode interface {
	Node
	valueNode()
}

// TypeNode is a closed variant over field types: a named type (scalar
// keyword or message/enum reference) or a map type.
type TypeNode interface {
	Node
	typeNode()
}

// IsNil reports whether the given node is nil, including a typed nil
// stored in a non-nil interface value.
func IsNil(n Node) bool {
	return n == nil || reflect.ValueOf(n).IsNil()
}

// ErrNode is the placeholder the parser substitutes for a construct it
// could not parse. It spans the tokens that were skipped during recovery,
// so sibling nodes and the whole-file span invariant remain intact. An
// ErrNode is valid in any declaration position.
type ErrNode struct {
	span SourceSpan
}

func NewErrNode(span SourceSpan) *ErrNode {
	return &ErrNode{span: span}
}

func (n *ErrNode) Span() SourceSpan { return n.span }

func (*ErrNode) fileElement()    {}
func (*ErrNode) msgElement()     {}
func (*ErrNode) enumElement()    {}
func (*ErrNode) serviceElement() {}
