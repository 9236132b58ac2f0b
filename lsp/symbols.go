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

package lsp

import (
	"sort"
	"strings"

	art "github.com/plar/go-adaptive-radix-tree"

	"github.com/takumi3488/protobuf-edition-lsp/ast"
)

type SymbolKind int

const (
	SymbolMessage SymbolKind = iota
	SymbolEnum
)

func (k SymbolKind) String() string {
	if k == SymbolEnum {
		return "enum"
	}
	return "message"
}

// Symbol is a type name declared in the file that field declarations
// can refer to.
type Symbol struct {
	// Name is the dotted name relative to the file, e.g. "Outer.Inner".
	Name string
	Kind SymbolKind
	// Span covers the declaration's name token, not the whole body.
	Span ast.SourceSpan
}

// SymbolIndex holds every message and enum declared in a file, keyed
// by dotted name in a radix tree so completion can enumerate matches
// by prefix without scanning the whole file.
type SymbolIndex struct {
	tree art.Tree
}

// BuildSymbolIndex walks the file once and indexes each message and
// enum under its dotted name.
func BuildSymbolIndex(file *ast.FileNode) *SymbolIndex {
	idx := &SymbolIndex{tree: art.New()}
	var scope []string

	var visit func(decls []ast.MessageElement)
	add := func(name *ast.IdentNode, kind SymbolKind) string {
		if name == nil {
			return ""
		}
		full := strings.Join(append(scope, name.Val), ".")
		idx.tree.Insert(art.Key(full), Symbol{Name: full, Kind: kind, Span: name.Span()})
		return full
	}
	visit = func(decls []ast.MessageElement) {
		for _, decl := range decls {
			switch decl := decl.(type) {
			case *ast.MessageNode:
				if add(decl.Name, SymbolMessage) != "" {
					scope = append(scope, decl.Name.Val)
					visit(decl.Decls)
					scope = scope[:len(scope)-1]
				}
			case *ast.EnumNode:
				add(decl.Name, SymbolEnum)
			}
		}
	}
	for _, decl := range file.Decls {
		switch decl := decl.(type) {
		case *ast.MessageNode:
			if add(decl.Name, SymbolMessage) != "" {
				scope = append(scope, decl.Name.Val)
				visit(decl.Decls)
				scope = scope[:len(scope)-1]
			}
		case *ast.EnumNode:
			add(decl.Name, SymbolEnum)
		}
	}
	return idx
}

// Lookup finds a symbol by its exact dotted name.
func (idx *SymbolIndex) Lookup(name string) (Symbol, bool) {
	value, found := idx.tree.Search(art.Key(name))
	if !found {
		return Symbol{}, false
	}
	return value.(Symbol), true
}

// WithPrefix returns all symbols whose dotted name starts with prefix,
// sorted by name. An empty prefix returns every symbol.
func (idx *SymbolIndex) WithPrefix(prefix string) []Symbol {
	var out []Symbol
	collect := func(node art.Node) bool {
		if node.Kind() == art.Leaf {
			out = append(out, node.Value().(Symbol))
		}
		return true
	}
	if prefix == "" {
		idx.tree.ForEach(collect)
	} else {
		idx.tree.ForEachPrefix(art.Key(prefix), collect)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DeclaredBefore returns the symbols whose declarations start before
// pos, sorted by name. Completion uses this to offer only names the
// user has already written above the cursor.
func (idx *SymbolIndex) DeclaredBefore(pos ast.SourcePos) []Symbol {
	all := idx.WithPrefix("")
	out := all[:0]
	for _, sym := range all {
		if sym.Span.Start.Before(pos) {
			out = append(out, sym)
		}
	}
	return out
}
