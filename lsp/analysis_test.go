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

	"github.com/takumi3488/protobuf-edition-lsp/ast"
	"github.com/takumi3488/protobuf-edition-lsp/reporter"
)

func TestAnalyzeMergesDiagnostics(t *testing.T) {
	t.Parallel()
	// one parse error (missing ';') and one validation error (duplicate
	// number) in the same document
	a := Analyze([]byte("message M {\n\tint32 a = 1\n\tint32 b = 1;\n}\n"))
	diags := a.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, "missing-token", diags[0].Code)
	assert.Equal(t, "duplicate-field-number", diags[1].Code)
	// sorted by span start
	assert.True(t, diags[0].Span.Start.Before(diags[1].Span.Start))
}

func TestComputeDiagnosticsSortAndDedupe(t *testing.T) {
	t.Parallel()
	span := func(offset int) ast.SourceSpan {
		return ast.NewSourceSpan(
			ast.SourcePos{Line: 0, Col: offset, Offset: offset},
			ast.SourcePos{Line: 0, Col: offset + 1, Offset: offset + 1},
		)
	}
	d1 := reporter.Diagnostic{Severity: reporter.SeverityError, Span: span(10), Code: "a", Message: "first"}
	d2 := reporter.Diagnostic{Severity: reporter.SeverityError, Span: span(5), Code: "b", Message: "second"}
	dup := d1

	merged := ComputeDiagnostics([]reporter.Diagnostic{d1}, []reporter.Diagnostic{d2, dup})
	require.Len(t, merged, 2)
	assert.Equal(t, "b", merged[0].Code)
	assert.Equal(t, "a", merged[1].Code)
}

func TestAnalyzeNeverNil(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"", "garbage %%%", "message {"} {
		a := Analyze([]byte(input))
		require.NotNil(t, a.File, "input %q", input)
		require.NotNil(t, a.Symbols, "input %q", input)
		assert.Equal(t, len(input), a.File.Span().End.Offset, "input %q", input)
	}
}

func TestPositionToPos(t *testing.T) {
	t.Parallel()
	a := Analyze([]byte("abc\ndefgh\n"))

	pos := a.PositionToPos(1, 2)
	assert.Equal(t, ast.SourcePos{Line: 1, Col: 2, Offset: 6}, pos)

	// columns past the end of the line clamp to the line end
	pos = a.PositionToPos(0, 99)
	assert.Equal(t, ast.SourcePos{Line: 0, Col: 3, Offset: 3}, pos)

	// lines past the end of the file clamp to the end of input
	pos = a.PositionToPos(99, 0)
	assert.Equal(t, 10, pos.Offset)
}

func TestAnalyzeDeterministic(t *testing.T) {
	t.Parallel()
	source := []byte("message M { int32 a = 1; int32 a = 1; }")
	first := Analyze(source)
	second := Analyze(source)
	assert.Equal(t, first.Diagnostics(), second.Diagnostics())
}
