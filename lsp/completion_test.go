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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(items []CompletionItem) []string {
	var out []string
	for _, item := range items {
		out = append(out, item.Label)
	}
	return out
}

func TestCompletionsAtMessageBodyStart(t *testing.T) {
	t.Parallel()
	a := Analyze([]byte("enum Color {\n\tCOLOR_RED = 0;\n}\nmessage Foo {\n\t\n}\n"))
	items := ComputeCompletions(a, a.PositionToPos(4, 1))
	got := labels(items)

	// scalar types, structural keywords, and earlier-declared type names
	assert.Contains(t, got, "int32")
	assert.Contains(t, got, "string")
	assert.Contains(t, got, "bytes")
	assert.Contains(t, got, "message")
	assert.Contains(t, got, "oneof")
	assert.Contains(t, got, "reserved")
	assert.Contains(t, got, "Color")
	assert.Contains(t, got, "Foo")
}

func TestCompletionsAfterFieldType(t *testing.T) {
	t.Parallel()
	// once the type is typed, what follows is a field name the user has
	// to invent; no type keywords may be offered
	a := Analyze([]byte("message Foo {\n\tint32 \n}\n"))
	items := ComputeCompletions(a, a.PositionToPos(1, 7))
	assert.Empty(t, items)
}

func TestCompletionsMidWord(t *testing.T) {
	t.Parallel()
	// the cursor touching a half-typed word completes it in the context
	// that precedes the word
	a := Analyze([]byte("message Foo {\n\tstr\n}\n"))
	items := ComputeCompletions(a, a.PositionToPos(1, 4))
	got := labels(items)
	assert.Contains(t, got, "string")
	assert.Contains(t, got, "repeated")
}

func TestCompletionsAtTopLevel(t *testing.T) {
	t.Parallel()
	a := Analyze([]byte(""))
	items := ComputeCompletions(a, a.PositionToPos(0, 0))
	assert.Equal(t, []string{
		"syntax", "edition", "package", "import", "message", "enum", "service", "option",
	}, labels(items))

	a = Analyze([]byte("syntax = \"proto3\";\n\n"))
	items = ComputeCompletions(a, a.PositionToPos(1, 0))
	assert.Contains(t, labels(items), "message")
	assert.NotContains(t, labels(items), "int32")
}

func TestCompletionsInEnumAndServiceBodies(t *testing.T) {
	t.Parallel()
	a := Analyze([]byte("enum E {\n\t\n}\n"))
	assert.Equal(t, []string{"option", "reserved"},
		labels(ComputeCompletions(a, a.PositionToPos(1, 1))))

	a = Analyze([]byte("service S {\n\t\n}\n"))
	assert.Equal(t, []string{"rpc", "option"},
		labels(ComputeCompletions(a, a.PositionToPos(1, 1))))
}

func TestCompletionsOnlyEarlierDeclarations(t *testing.T) {
	t.Parallel()
	a := Analyze([]byte("message Early {}\nmessage Mid {\n\t\n}\nmessage Late {}\n"))
	got := labels(ComputeCompletions(a, a.PositionToPos(2, 1)))
	assert.Contains(t, got, "Early")
	assert.NotContains(t, got, "Late")
}

func TestCompletionsDeterministic(t *testing.T) {
	t.Parallel()
	source := []byte("message Foo {\n\t\n}\n")
	a := Analyze(source)
	b := Analyze(source)
	require.Equal(t,
		ComputeCompletions(a, a.PositionToPos(1, 1)),
		ComputeCompletions(b, b.PositionToPos(1, 1)))
}

func TestCompletionsBrokenInput(t *testing.T) {
	t.Parallel()
	// completion still works while the tree is mid-edit
	a := Analyze([]byte("message Foo {"))
	items := ComputeCompletions(a, a.PositionToPos(0, 13))
	assert.Contains(t, labels(items), "int32")
}
