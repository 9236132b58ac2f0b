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

// Walk traverses the tree rooted at n in pre-order, calling fn for each
// node. If fn returns false, the node's children are not visited.
// Children are visited in source order.
func Walk(n Node, fn func(Node) bool) {
	if IsNil(n) {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, fn)
	}
}

// Children returns the direct children of n in source order. The switch
// is exhaustive over every composite node type; terminal nodes return
// nil.
func Children(n Node) []Node {
	var children []Node
	add := func(c Node) {
		if !IsNil(c) {
			children = append(children, c)
		}
	}
	switch n := n.(type) {
	case *FileNode:
		add(n.Syntax)
		add(n.Edition)
		add(n.Package)
		for _, imp := range n.Imports {
			add(imp)
		}
		for _, decl := range n.Decls {
			add(decl)
		}
	case *SyntaxNode:
		add(n.Value)
	case *EditionNode:
		add(n.Value)
	case *PackageNode:
		add(n.Name)
	case *ImportNode:
		add(n.Path)
	case *MessageNode:
		add(n.Name)
		for _, decl := range n.Decls {
			add(decl)
		}
	case *OneofNode:
		add(n.Name)
		for _, decl := range n.Decls {
			add(decl)
		}
	case *FieldNode:
		add(n.Label)
		add(n.FieldType)
		add(n.Name)
		add(n.Tag)
		for _, opt := range n.Options {
			add(opt)
		}
	case *MapTypeNode:
		add(n.KeyType)
		add(n.ValueType)
	case *EnumNode:
		add(n.Name)
		for _, decl := range n.Decls {
			add(decl)
		}
	case *EnumValueNode:
		add(n.Name)
		add(n.Number)
		for _, opt := range n.Options {
			add(opt)
		}
	case *ServiceNode:
		add(n.Name)
		for _, decl := range n.Decls {
			add(decl)
		}
	case *RPCNode:
		add(n.Name)
		add(n.Input)
		add(n.Output)
		for _, opt := range n.Options {
			add(opt)
		}
	case *RPCTypeNode:
		add(n.Type)
	case *OptionNode:
		add(n.Name)
		add(n.Value)
	case *OptionNameNode:
	case *ReservedNode:
		for _, r := range n.Ranges {
			add(r)
		}
		for _, name := range n.Names {
			add(name)
		}
	case *RangeNode:
		add(n.Start)
		add(n.End)
	case *AggregateNode:
		for _, entry := range n.Entries {
			add(entry)
		}
	case *AggregateEntryNode:
		add(n.Name)
		add(n.Value)
	case *NamedTypeNode, *IdentNode, *StringLiteralNode, *IntLiteralNode, *FloatLiteralNode, *ErrNode:
		// terminals
	}
	return children
}

// NodeAt returns the innermost node whose span contains pos, walking the
// tree rooted at root. The second return is the path of ancestors from
// root down to (and excluding) the returned node. Returns nil if pos is
// outside root's span.
func NodeAt(root Node, pos SourcePos) (Node, []Node) {
	if IsNil(root) || !root.Span().Contains(pos) {
		return nil, nil
	}
	var path []Node
	current := root
	for {
		var next Node
		for _, child := range Children(current) {
			if child.Span().Contains(pos) {
				next = child
				break
			}
		}
		if next == nil {
			return current, path
		}
		path = append(path, current)
		current = next
	}
}
