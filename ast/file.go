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

// FileNode is the root of the AST. Its span always covers the entire
// input, however malformed; Decls preserves source order, which is what
// lets completion offer only names declared before the cursor.
type FileNode struct {
	span SourceSpan

	Syntax  *SyntaxNode
	Edition *EditionNode
	Package *PackageNode
	Imports []*ImportNode
	Decls   []FileElement
}

func NewFileNode(span SourceSpan) *FileNode {
	return &FileNode{span: span}
}

func (f *FileNode) Span() SourceSpan { return f.span }

func (f *FileNode) SetSpan(span SourceSpan) { f.span = span }

// SyntaxValue returns the declared syntax string, or "" if the file has
// no syntax declaration.
func (f *FileNode) SyntaxValue() string {
	if f.Syntax == nil || f.Syntax.Value == nil {
		return ""
	}
	return f.Syntax.Value.Val
}

// EditionValue returns the declared edition string, or "" if the file is
// not an edition file.
func (f *FileNode) EditionValue() string {
	if f.Edition == nil || f.Edition.Value == nil {
		return ""
	}
	return f.Edition.Value.Val
}

// SyntaxNode represents a legacy file header: syntax = "proto2"; or
// syntax = "proto3";.
type SyntaxNode struct {
	span  SourceSpan
	Value *StringLiteralNode
}

func NewSyntaxNode(value *StringLiteralNode, span SourceSpan) *SyntaxNode {
	return &SyntaxNode{span: span, Value: value}
}

func (n *SyntaxNode) Span() SourceSpan { return n.span }

// EditionNode represents an edition file header: edition = "2023";.
type EditionNode struct {
	span  SourceSpan
	Value *StringLiteralNode
}

func NewEditionNode(value *StringLiteralNode, span SourceSpan) *EditionNode {
	return &EditionNode{span: span, Value: value}
}

func (n *EditionNode) Span() SourceSpan { return n.span }

// PackageNode represents a package declaration. Name holds the dotted
// package path.
type PackageNode struct {
	span SourceSpan
	Name *IdentNode
}

func NewPackageNode(name *IdentNode, span SourceSpan) *PackageNode {
	return &PackageNode{span: span, Name: name}
}

func (n *PackageNode) Span() SourceSpan { return n.span }

// ImportNode represents an import declaration, optionally marked public
// or weak.
type ImportNode struct {
	span   SourceSpan
	Public bool
	Weak   bool
	Path   *StringLiteralNode
}

func NewImportNode(path *StringLiteralNode, public, weak bool, span SourceSpan) *ImportNode {
	return &ImportNode{span: span, Path: path, Public: public, Weak: weak}
}

func (n *ImportNode) Span() SourceSpan { return n.span }
