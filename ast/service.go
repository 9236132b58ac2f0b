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

// ServiceNode represents a service declaration.
type ServiceNode struct {
	span SourceSpan
	Name *IdentNode
	Decls []ServiceElement
}

func NewServiceNode(name *IdentNode, decls []ServiceElement, span SourceSpan) *ServiceNode {
	return &ServiceNode{span: span, Name: name, Decls: decls}
}

func (n *ServiceNode) Span() SourceSpan { return n.span }

func (*ServiceNode) fileElement() {}

// Methods returns the service's rpc methods in source order.
func (n *ServiceNode) Methods() []*RPCNode {
	var methods []*RPCNode
	for _, decl := range n.Decls {
		if rpc, ok := decl.(*RPCNode); ok {
			methods = append(methods, rpc)
		}
	}
	return methods
}

// RPCNode represents an rpc method declaration. Input or Output may be
// nil when the declaration was only partially typed.
type RPCNode struct {
	span    SourceSpan
	Name    *IdentNode
	Input   *RPCTypeNode
	Output  *RPCTypeNode
	Options []*OptionNode
}

func NewRPCNode(name *IdentNode, input, output *RPCTypeNode, options []*OptionNode, span SourceSpan) *RPCNode {
	return &RPCNode{span: span, Name: name, Input: input, Output: output, Options: options}
}

func (n *RPCNode) Span() SourceSpan { return n.span }

func (*RPCNode) serviceElement() {}

// RPCTypeNode is the parenthesized request or response type of an rpc,
// with its streaming flag.
type RPCTypeNode struct {
	span   SourceSpan
	Stream bool
	Type   *NamedTypeNode
}

func NewRPCTypeNode(msgType *NamedTypeNode, stream bool, span SourceSpan) *RPCTypeNode {
	return &RPCTypeNode{span: span, Type: msgType, Stream: stream}
}

func (n *RPCTypeNode) Span() SourceSpan { return n.span }
