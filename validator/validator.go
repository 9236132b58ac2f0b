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

// Package validator checks a parsed file for semantic rule violations
// that the grammar alone cannot express: duplicate field numbers,
// reserved-range collisions, labels that are illegal for the file's
// syntax mode, and so on. It never mutates the AST and it tolerates
// the placeholder and incomplete nodes a broken parse leaves behind.
package validator

import (
	"strconv"

	"github.com/takumi3488/protobuf-edition-lsp/ast"
	"github.com/takumi3488/protobuf-edition-lsp/reporter"
)

// Field numbers must fall in [1, MaxTag], excluding the range
// [ReservedTagStart, ReservedTagEnd] that protobuf keeps for its own
// wire-format use.
const (
	MaxTag           = 536870911
	ReservedTagStart = 19000
	ReservedTagEnd   = 19999
)

// SyntaxMode is the dialect a file is written in, derived from its
// syntax or edition declaration.
type SyntaxMode int

const (
	ModeProto2 SyntaxMode = iota
	ModeProto3
	ModeEditions
)

// Validate checks file and returns the rule violations found, in
// source order. A nil or empty result means the file is clean.
func Validate(file *ast.FileNode) []reporter.Diagnostic {
	v := &validator{handler: reporter.NewHandler()}
	v.validateFile(file)
	return v.handler.Diagnostics()
}

type validator struct {
	handler  *reporter.Handler
	mode     SyntaxMode
	modeName string // the declared syntax or edition, for diagnostics
}

func (v *validator) validateFile(file *ast.FileNode) {
	v.mode = v.checkSyntaxMode(file)

	// top-level declarations share one namespace
	names := newNameScope(v.handler)
	for _, decl := range file.Decls {
		switch decl := decl.(type) {
		case *ast.MessageNode:
			names.declare(decl.Name, "message")
			v.validateMessage(decl)
		case *ast.EnumNode:
			names.declare(decl.Name, "enum")
			v.validateEnum(decl)
		case *ast.ServiceNode:
			names.declare(decl.Name, "service")
			v.validateService(decl)
		}
	}
}

// checkSyntaxMode validates the file's syntax or edition declaration
// and reports which dialect the rest of validation should assume. A
// file with neither declaration is proto2, matching protoc.
func (v *validator) checkSyntaxMode(file *ast.FileNode) SyntaxMode {
	if file.Syntax != nil && file.Edition != nil {
		v.handler.Errorf(file.Edition.Span(), "invalid-syntax",
			"a file cannot declare both syntax and edition")
	}
	if file.Edition != nil {
		val := file.EditionValue()
		if val != "2023" {
			v.handler.Errorf(file.Edition.Span(), "unsupported-edition",
				"unsupported edition %q; only edition \"2023\" is supported", val)
		}
		v.modeName = "edition " + strconv.Quote(val)
		return ModeEditions
	}
	if file.Syntax != nil {
		val := file.SyntaxValue()
		switch val {
		case "proto2":
			v.modeName = "proto2"
			return ModeProto2
		case "proto3":
			v.modeName = "proto3"
			return ModeProto3
		default:
			v.handler.Errorf(file.Syntax.Span(), "invalid-syntax",
				"invalid syntax %q; expected \"proto2\" or \"proto3\"", val)
		}
	}
	v.modeName = "proto2"
	return ModeProto2
}

func (v *validator) validateMessage(msg *ast.MessageNode) {
	names := newNameScope(v.handler)
	tags := map[int64]ast.SourceSpan{}
	reserved := collectReserved(msg.Decls)

	var walkFields func(decls []ast.MessageElement, inOneof bool)
	walkFields = func(decls []ast.MessageElement, inOneof bool) {
		for _, decl := range decls {
			switch decl := decl.(type) {
			case *ast.FieldNode:
				v.validateField(decl, inOneof, names, tags, reserved)
			case *ast.OneofNode:
				names.declare(decl.Name, "oneof")
				walkFields(decl.Decls, true)
			case *ast.MessageNode:
				names.declare(decl.Name, "message")
				v.validateMessage(decl)
			case *ast.EnumNode:
				names.declare(decl.Name, "enum")
				v.validateEnum(decl)
			}
		}
	}
	walkFields(msg.Decls, false)
	v.checkReservedOverlap(reserved)
}

func (v *validator) validateField(field *ast.FieldNode, inOneof bool, names *nameScope, tags map[int64]ast.SourceSpan, reserved *reservedSet) {
	v.checkLabel(field, inOneof)

	if mapType, ok := field.FieldType.(*ast.MapTypeNode); ok && mapType.KeyType != nil {
		if !ast.IsMapKeyType(mapType.KeyType.Name) {
			v.handler.Errorf(mapType.KeyType.Span(), "invalid-map-key",
				"%q is not a valid map key type; map keys must be an integral or string type or bool", mapType.KeyType.Name)
		}
	}

	if field.Name != nil {
		names.declare(field.Name, "field")
		if span, ok := reserved.names[field.Name.Val]; ok {
			v.handler.RelatedErrorf(field.Name.Span(), []ast.SourceSpan{span},
				"reserved-name-conflict",
				"field name %q is reserved", field.Name.Val)
		}
	}

	// incomplete fields have no number to check
	if field.Tag == nil {
		return
	}
	tag := field.Tag.Val
	tagSpan := field.Tag.Span()
	switch {
	case tag < 1 || tag > MaxTag:
		v.handler.Errorf(tagSpan, "invalid-field-number",
			"field number %s is out of range; field numbers must be between 1 and %d", field.Tag.Raw, MaxTag)
	case tag >= ReservedTagStart && tag <= ReservedTagEnd:
		v.handler.Errorf(tagSpan, "reserved-field-number",
			"field number %d is in the reserved range %d to %d used by the protobuf implementation", tag, ReservedTagStart, ReservedTagEnd)
	default:
		if first, dup := tags[tag]; dup {
			v.handler.RelatedErrorf(tagSpan, []ast.SourceSpan{first},
				"duplicate-field-number",
				"field number %d is already used in this message", tag)
		} else {
			tags[tag] = tagSpan
		}
		if span, hit := reserved.lookup(tag); hit {
			v.handler.RelatedErrorf(tagSpan, []ast.SourceSpan{span},
				"reserved-number-conflict",
				"field number %d is reserved", tag)
		}
	}
}

func (v *validator) checkLabel(field *ast.FieldNode, inOneof bool) {
	if field.Label == nil {
		return
	}
	label := field.Label.Val
	span := field.Label.Span()
	if _, isMap := field.FieldType.(*ast.MapTypeNode); isMap {
		v.handler.Errorf(span, "invalid-label", "map fields cannot have a %s label", label)
		return
	}
	if inOneof {
		v.handler.Errorf(span, "invalid-label", "oneof fields cannot have a %s label", label)
		return
	}
	// required and optional are proto2-only; repeated is legal everywhere
	if (label == "required" || label == "optional") && v.mode != ModeProto2 {
		v.handler.Errorf(span, "invalid-label",
			"the %s label is not permitted in a %s file", label, v.modeName)
	}
}

func (v *validator) validateEnum(enum *ast.EnumNode) {
	names := newNameScope(v.handler)
	numbers := map[int64]ast.SourceSpan{}
	reserved := collectReservedEnum(enum.Decls)
	allowAlias := enum.AllowsAlias()

	values := enum.Values()
	for i, value := range values {
		names.declare(value.Name, "enum value")
		if span, ok := reserved.names[value.Name.Val]; ok {
			v.handler.RelatedErrorf(value.Name.Span(), []ast.SourceSpan{span},
				"reserved-name-conflict",
				"enum value name %q is reserved", value.Name.Val)
		}
		if value.Number == nil {
			continue
		}
		num := value.Number.Val
		numSpan := value.Number.Span()
		// editions enums may open with a nonzero default
		if i == 0 && v.mode != ModeEditions && num != 0 {
			v.handler.Errorf(numSpan, "enum-zero-value",
				"the first value of an enum must be zero in a %s file", v.modeName)
		}
		if first, dup := numbers[num]; dup {
			if !allowAlias {
				v.handler.RelatedErrorf(numSpan, []ast.SourceSpan{first},
					"duplicate-enum-number",
					"enum value number %d is already used; set the allow_alias option to permit aliases", num)
			}
		} else {
			numbers[num] = numSpan
		}
		if span, hit := reserved.lookup(num); hit {
			v.handler.RelatedErrorf(numSpan, []ast.SourceSpan{span},
				"reserved-number-conflict",
				"enum value number %d is reserved", num)
		}
	}
	v.checkReservedOverlap(reserved)
}

func (v *validator) validateService(svc *ast.ServiceNode) {
	methods := map[string]ast.SourceSpan{}
	for _, rpc := range svc.Methods() {
		if rpc.Name == nil {
			continue
		}
		if first, dup := methods[rpc.Name.Val]; dup {
			v.handler.RelatedErrorf(rpc.Name.Span(), []ast.SourceSpan{first},
				"duplicate-method-name",
				"method %q is already defined in this service", rpc.Name.Val)
		} else {
			methods[rpc.Name.Val] = rpc.Name.Span()
		}
	}
}

// checkReservedOverlap flags reserved ranges in the same scope that
// overlap one another.
func (v *validator) checkReservedOverlap(rs *reservedSet) {
	for i, r := range rs.ranges {
		for _, prev := range rs.ranges[:i] {
			if r.lo <= prev.hi && prev.lo <= r.hi {
				v.handler.RelatedErrorf(r.span, []ast.SourceSpan{prev.span},
					"reserved-number-conflict",
					"reserved range overlaps an earlier reserved range")
				break
			}
		}
	}
}

// nameScope tracks declared names within one scope and reports a
// collision the moment a name is declared a second time, pointing back
// at the first declaration.
type nameScope struct {
	handler *reporter.Handler
	seen    map[string]declared
}

type declared struct {
	span ast.SourceSpan
	kind string
}

func newNameScope(handler *reporter.Handler) *nameScope {
	return &nameScope{handler: handler, seen: map[string]declared{}}
}

func (s *nameScope) declare(name *ast.IdentNode, kind string) {
	if name == nil {
		return
	}
	if first, dup := s.seen[name.Val]; dup {
		s.handler.RelatedErrorf(name.Span(), []ast.SourceSpan{first.span},
			"duplicate-name",
			"%q is already defined as a %s in this scope", name.Val, first.kind)
		return
	}
	s.seen[name.Val] = declared{span: name.Span(), kind: kind}
}

// reservedSet is the flattened reserved statements of one message or
// enum scope.
type reservedSet struct {
	ranges []reservedRange
	names  map[string]ast.SourceSpan
}

type reservedRange struct {
	lo, hi int64
	span   ast.SourceSpan
}

func (rs *reservedSet) lookup(n int64) (ast.SourceSpan, bool) {
	for _, r := range rs.ranges {
		if n >= r.lo && n <= r.hi {
			return r.span, true
		}
	}
	return ast.SourceSpan{}, false
}

func (rs *reservedSet) add(node *ast.ReservedNode, maxValue int64) {
	for _, r := range node.Ranges {
		if r.Start == nil {
			continue
		}
		lo := r.Start.Val
		hi := lo
		switch {
		case r.Max:
			hi = maxValue
		case r.End != nil:
			hi = r.End.Val
		}
		rs.ranges = append(rs.ranges, reservedRange{lo: lo, hi: hi, span: r.Span()})
	}
	for _, name := range node.Names {
		if _, dup := rs.names[name.Val]; !dup {
			rs.names[name.Val] = name.Span()
		}
	}
}

func collectReserved(decls []ast.MessageElement) *reservedSet {
	rs := &reservedSet{names: map[string]ast.SourceSpan{}}
	for _, decl := range decls {
		if node, ok := decl.(*ast.ReservedNode); ok {
			rs.add(node, MaxTag)
		}
	}
	return rs
}

func collectReservedEnum(decls []ast.EnumElement) *reservedSet {
	rs := &reservedSet{names: map[string]ast.SourceSpan{}}
	for _, decl := range decls {
		if node, ok := decl.(*ast.ReservedNode); ok {
			rs.add(node, int64(maxEnumNumber))
		}
	}
	return rs
}

// enum numbers are int32
const maxEnumNumber = 2147483647
